// Package classifier implements the SMS categorization model.
//
// The model is a TF-IDF vectorizer feeding a multinomial naive Bayes
// classifier. It is trained from labelled SMS samples and persisted as a
// versioned JSON document containing the vocabulary, idf weights, class log
// priors and per-class feature log probabilities.
//
// # Usage
//
//	model, err := classifier.Train(samples)
//	if err != nil {
//	    // not enough samples, unknown category, ...
//	}
//	err = model.Save("sms_model.json")
//
//	pred, err := model.Classify("Rs 200 spent on Swiggy order")
//	// pred.Category == "Impulse", pred.Confidence in (0, 1]
//
// The Classifier type wraps a Model for concurrent use by the server and
// supports swapping in a retrained or reloaded model at runtime.
package classifier
