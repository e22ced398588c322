package server

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"smscat/pkg/config"
	"smscat/pkg/extract"
)

func TestApplyConfig(t *testing.T) {
	s := NewServer(Config{
		AppConfig: &config.SmscatConfig{MessageListLimitMax: 100},
		Merchants: extract.NewMerchantExtractor(),
	})

	assert.Equal(t, extract.UnknownMerchant, s.Merchants.Merchant("paid at chai point today"))

	s.ApplyConfig(&config.SmscatConfig{
		MessageListLimitMax: 5,
		ExtraMerchants:      []string{"chai point"},
	})

	assert.Equal(t, 5, s.Config.MessageListLimitMax)
	assert.Equal(t, "Chai Point", s.Merchants.Merchant("paid at chai point today"))
}
