package classifier

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trainingSamples() []Sample {
	return []Sample{
		{Body: "Rs 50 paid for bus fare", Category: "Essentials"},
		{Body: "Rs 320 debited for electricity bill payment", Category: "Essentials"},
		{Body: "Rs 1200 spent at Big Bazaar groceries", Category: "Essentials"},
		{Body: "Rs 899 monthly milk and vegetables order", Category: "Essentials"},
		{Body: "Rs 1500 emergency doctor fees", Category: "Emergency"},
		{Body: "Rs 5000 debited for hospital admission", Category: "Emergency"},
		{Body: "Rs 2300 paid at pharmacy for urgent medicines", Category: "Emergency"},
		{Body: "Rs 4000 ambulance charges paid", Category: "Emergency"},
		{Body: "Rs 200 spent on Swiggy order", Category: "Impulse"},
		{Body: "Rs 450 spent on Zomato late night order", Category: "Impulse"},
		{Body: "Rs 999 Amazon sale checkout", Category: "Impulse"},
		{Body: "Rs 300 movie tickets booked", Category: "Impulse"},
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase", "Rs 200 SPENT", "rs 200 spent"},
		{"punctuation", "Rs. 200, spent on Swiggy!", "rs 200 spent on swiggy"},
		{"whitespace", "  rs   200\tspent ", "rs 200 spent"},
		{"empty", "...", ""},
		{"devanagari kept", "₹500 भेजा Swiggy!", "500 भेजा swiggy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestVectorizer(t *testing.T) {
	docs := []string{
		"rs 200 spent on swiggy",
		"rs 50 paid for bus",
		"doctor fees paid",
	}
	v := FitVectorizer(docs)

	t.Run("vocabulary is sorted and complete", func(t *testing.T) {
		assert.Equal(t, 11, v.Size())
		// "200" sorts before "50" before words
		assert.Equal(t, 0, v.Vocabulary["200"])
		_, ok := v.Vocabulary["swiggy"]
		assert.True(t, ok)
	})

	t.Run("transform is L2 normalized", func(t *testing.T) {
		vec := v.Transform("Rs 200 spent on Swiggy order")
		var norm float64
		for _, w := range vec {
			norm += w * w
		}
		assert.InDelta(t, 1.0, norm, 1e-9)
	})

	t.Run("unknown terms are dropped", func(t *testing.T) {
		vec := v.Transform("completely unrelated words")
		assert.Empty(t, vec)
	})

	t.Run("rarer terms weigh more", func(t *testing.T) {
		// "paid" appears in two docs, "swiggy" in one
		assert.Greater(t, v.IDF[v.Vocabulary["swiggy"]], v.IDF[v.Vocabulary["paid"]])
	})
}

func TestTrainAndClassify(t *testing.T) {
	model, err := Train(trainingSamples())
	require.NoError(t, err)
	assert.Equal(t, 12, model.SampleCount)
	assert.False(t, model.TrainedAt.IsZero())

	tests := []struct {
		text string
		want string
	}{
		{"Rs 200 spent on Swiggy order", "Impulse"},
		{"Rs 50 paid for bus fare", "Essentials"},
		{"Rs 1500 emergency doctor fees", "Emergency"},
	}

	for _, tt := range tests {
		pred := model.Classify(tt.text)
		assert.Equal(t, tt.want, pred.Category, "text: %s", tt.text)
		assert.Greater(t, pred.Confidence, 1.0/3)
		assert.LessOrEqual(t, pred.Confidence, 1.0)
	}
}

func TestTrainErrors(t *testing.T) {
	t.Run("missing category", func(t *testing.T) {
		_, err := Train([]Sample{
			{Body: "rs 50 bus fare", Category: "Essentials"},
			{Body: "rs 200 swiggy", Category: "Impulse"},
		})
		assert.ErrorIs(t, err, ErrTooFewSamples)
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := Train([]Sample{{Body: "rs 50", Category: "Groceries"}})
		assert.Error(t, err)
	})
}

func TestProbabilitiesSumToOne(t *testing.T) {
	model, err := Train(trainingSamples())
	require.NoError(t, err)

	vec := model.Vectorizer.Transform("rs 450 spent on zomato")
	probs := model.Bayes.Probabilities(vec)
	require.Len(t, probs, 3)

	var sum float64
	for _, p := range probs {
		sum += p
	}
	assert.False(t, math.IsNaN(sum))
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestModelSaveLoad(t *testing.T) {
	model, err := Train(trainingSamples())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "sms_model.json")
	require.NoError(t, model.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, model.SampleCount, loaded.SampleCount)
	assert.Equal(t, model.Vectorizer.Size(), loaded.Vectorizer.Size())

	pred := loaded.Classify("Rs 200 spent on Swiggy order")
	assert.Equal(t, "Impulse", pred.Category)
}

func TestLoadRejectsIncompleteModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version": 1}`), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestClassifierSwap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sms_model.json")
	c := New(path)

	_, err := c.Classify("rs 200 swiggy")
	assert.ErrorIs(t, err, ErrModelNotLoaded)
	assert.False(t, c.Loaded())

	model, err := Train(trainingSamples())
	require.NoError(t, err)
	require.NoError(t, model.Save(path))

	require.NoError(t, c.Reload())
	assert.True(t, c.Loaded())

	pred, err := c.Classify("Rs 200 spent on Swiggy order")
	require.NoError(t, err)
	assert.Equal(t, "Impulse", pred.Category)
}

func TestCategoryEnum(t *testing.T) {
	assert.Equal(t, []string{"Essentials", "Emergency", "Impulse"}, Categories())

	c, err := CategoryString("emergency")
	require.NoError(t, err)
	assert.Equal(t, CategoryEmergency, c)

	_, err = CategoryString("groceries")
	assert.Error(t, err)
}
