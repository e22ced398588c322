package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"smscat/pkg/classifier"
	"smscat/pkg/config"
	"smscat/pkg/db"
	gormstore "smscat/pkg/server/store/gorm"
)

// modelTrainCmd represents the model train command
var modelTrainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the classification model",
	Long: `Train the classification model and write it to the model file.

By default the training corpus is read from the training_samples table, which
requires DATABASE_URL. Use --csv to train from a CSV file with body,category
rows instead.

Example:
  smscatctl model train
  smscatctl model train --csv corpus.csv
  smscatctl model train --output /var/lib/smscat/sms_model.json`,
	Run: func(cmd *cobra.Command, args []string) {
		csvPath, _ := cmd.Flags().GetString("csv")
		output, _ := cmd.Flags().GetString("output")

		if err := trainModel(csvPath, output); err != nil {
			fmt.Fprintf(os.Stderr, "Training failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	modelCmd.AddCommand(modelTrainCmd)

	modelTrainCmd.Flags().String("csv", "", "train from a CSV file instead of the database")
	modelTrainCmd.Flags().StringP("output", "o", "", "model file to write (defaults to the configured model path)")
}

func trainModel(csvPath, output string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if output == "" {
		output = modelPath(cfg)
	}

	var samples []classifier.Sample
	if csvPath != "" {
		samples, err = readSamplesCSV(csvPath)
	} else {
		samples, err = readSamplesDB()
	}
	if err != nil {
		return err
	}

	m, err := classifier.Train(samples)
	if err != nil {
		return err
	}

	// Carry the version forward when overwriting an existing model
	if prev, err := classifier.Load(output); err == nil {
		m.Version = prev.Version + 1
	}

	if err := m.Save(output); err != nil {
		return err
	}

	fmt.Printf("Trained model version %d from %d samples\n", m.Version, m.SampleCount)
	printTrainingReport(m, samples)
	fmt.Printf("Model written to %s\n", output)
	return nil
}

func printTrainingReport(m *classifier.Model, samples []classifier.Sample) {
	counts := make(map[string]int)
	correct := 0
	for _, sample := range samples {
		counts[sample.Category]++
		if m.Classify(sample.Body).Category == sample.Category {
			correct++
		}
	}

	for _, category := range classifier.Categories() {
		fmt.Printf("  %-12s %d samples\n", category, counts[category])
	}
	fmt.Printf("Training set accuracy: %.1f%%\n", 100*float64(correct)/float64(len(samples)))
}

func readSamplesDB() ([]classifier.Sample, error) {
	database, err := db.Connect(db.Config{})
	if err != nil {
		return nil, err
	}

	records, err := gormstore.NewTrainingStore(database).ListSamples()
	if err != nil {
		return nil, err
	}

	samples := make([]classifier.Sample, 0, len(records))
	for _, rec := range records {
		samples = append(samples, classifier.Sample{Body: rec.Body, Category: rec.Category})
	}
	return samples, nil
}

func readSamplesCSV(path string) ([]classifier.Sample, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = 2

	var samples []classifier.Sample
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		samples = append(samples, classifier.Sample{Body: record[0], Category: record[1]})
	}
	return samples, nil
}
