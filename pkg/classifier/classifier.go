package classifier

import (
	"errors"
	"sync"
)

// ErrModelNotLoaded is returned when classification is requested before a
// model has been loaded or trained.
var ErrModelNotLoaded = errors.New("model not loaded")

// Classifier holds the active model for concurrent use and supports swapping
// in a reloaded or retrained model at runtime.
type Classifier struct {
	mu    sync.RWMutex
	model *Model
	path  string
}

// New creates a Classifier bound to a model file path. The model is not
// loaded; call Reload or Swap.
func New(path string) *Classifier {
	return &Classifier{path: path}
}

// Path returns the model file path.
func (c *Classifier) Path() string {
	return c.path
}

// Reload loads the model file from disk and swaps it in.
func (c *Classifier) Reload() error {
	model, err := Load(c.path)
	if err != nil {
		return err
	}
	c.Swap(model)
	return nil
}

// Swap replaces the active model.
func (c *Classifier) Swap(model *Model) {
	c.mu.Lock()
	c.model = model
	c.mu.Unlock()
}

// Loaded reports whether a model is available.
func (c *Classifier) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.model != nil
}

// Model returns the active model, or nil.
func (c *Classifier) Model() *Model {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.model
}

// Classify predicts the category of an SMS text with the active model.
func (c *Classifier) Classify(text string) (Prediction, error) {
	c.mu.RLock()
	model := c.model
	c.mu.RUnlock()

	if model == nil {
		return Prediction{}, ErrModelNotLoaded
	}
	return model.Classify(text), nil
}
