package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"smscat/pkg/classifier"
	"smscat/pkg/config"
)

// modelShowCmd represents the model show command
var modelShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show model metadata",
	Long: `Show the metadata of the model file: version, training time, corpus
size and vocabulary size.

Example:
  smscatctl model show
  smscatctl model show /var/lib/smscat/sms_model.json`,
	Run: func(cmd *cobra.Command, args []string) {
		path := ""
		if len(args) > 0 {
			path = args[0]
		}

		if err := showModel(path); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read model: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	modelCmd.AddCommand(modelShowCmd)
}

func showModel(path string) error {
	if path == "" {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		path = modelPath(cfg)
	}

	m, err := classifier.Load(path)
	if err != nil {
		return err
	}

	fmt.Printf("Path:        %s\n", path)
	fmt.Printf("Version:     %d\n", m.Version)
	fmt.Printf("Trained at:  %s\n", m.TrainedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Printf("Samples:     %d\n", m.SampleCount)
	fmt.Printf("Vocabulary:  %d terms\n", m.Vectorizer.Size())
	fmt.Printf("Categories:  %v\n", m.Bayes.Classes)
	return nil
}
