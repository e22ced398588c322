package endpoints

import (
	"time"

	"smscat/pkg/classifier"
	"smscat/pkg/config"
	"smscat/pkg/extract"
	"smscat/pkg/server"
	"smscat/pkg/server/middleware"
	"smscat/pkg/server/store"
)

// TestTokenKey is the HMAC key used by test servers.
var TestTokenKey = []byte("0123456789abcdef0123456789abcdef")

func testCorpus() []classifier.Sample {
	return []classifier.Sample{
		{Body: "Rs 500 debited for grocery shopping at BigBasket", Category: "Essentials"},
		{Body: "Rs 1200 paid for electricity bill", Category: "Essentials"},
		{Body: "Rs 350 spent on milk and vegetables", Category: "Essentials"},
		{Body: "Rs 800 paid for monthly bus pass", Category: "Essentials"},
		{Body: "Rs 2000 hospital emergency admission fee", Category: "Emergency"},
		{Body: "Rs 5000 paid to apollo hospital for urgent surgery", Category: "Emergency"},
		{Body: "Rs 1500 ambulance charges paid", Category: "Emergency"},
		{Body: "Rs 900 emergency medicine purchase at pharmacy", Category: "Emergency"},
		{Body: "Rs 600 spent on Swiggy food order", Category: "Impulse"},
		{Body: "Rs 2500 spent on new shoes at Myntra", Category: "Impulse"},
		{Body: "Rs 450 movie tickets booked on BookMyShow", Category: "Impulse"},
		{Body: "Rs 1800 spent on Zomato and ice cream", Category: "Impulse"},
	}
}

// NewTestModel trains a model on a small built-in corpus.
func NewTestModel() (*classifier.Model, error) {
	return classifier.Train(testCorpus())
}

// TestStores bundles the store implementations for NewTestServer. Nil
// fields are left nil on the server.
type TestStores struct {
	Messages store.MessagesStore
	Training store.TrainingStore
	Clients  store.ClientsStore
	Health   store.HealthStore
}

// NewTestServer creates a server instance for testing. The classifier is
// loaded with a model trained on a built-in corpus, and no listener is
// started: drive it through Router.ServeHTTP.
func NewTestServer(stores TestStores) (*server.Server, error) {
	m, err := NewTestModel()
	if err != nil {
		return nil, err
	}

	c := classifier.New("")
	c.Swap(m)

	cfg := &config.SmscatConfig{
		MessageListLimitMax: 1000,
		TokenTTL:            28800,
		AuthEnabled:         true,
	}

	s := server.NewServer(server.Config{
		AppConfig:          cfg,
		Classifier:         c,
		Merchants:          extract.NewMerchantExtractor(),
		MessagesStore:      stores.Messages,
		TrainingStore:      stores.Training,
		ClientsStore:       stores.Clients,
		HealthStore:        stores.Health,
		TokenAuthenticator: middleware.NewTokenAuthenticator(TestTokenKey, 8*time.Hour),
		Host:               "127.0.0.1",
		Port:               "0",
	})

	return s, nil
}
