package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"rs prefix", "Rs 200 spent on Swiggy order", 200},
		{"rs with dot", "Rs. 1500 emergency doctor fees", 1500},
		{"inr prefix", "INR 350 debited from your account", 350},
		{"rupee symbol", "₹99 paid to Netflix", 99},
		{"amount suffix", "500 rs paid for groceries", 500},
		{"amount keyword", "Transaction amount 750 completed", 750},
		{"debited keyword", "debited 1200 towards bill", 1200},
		{"spent keyword", "spent 89 at Starbucks", 89},
		{"thousands separator", "Rs 1,50,000 debited for rent", 150000},
		{"decimal", "Rs 99.50 paid", 99.50},
		{"no amount", "Your OTP is ready", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Amount(tt.text))
		})
	}
}

func TestMerchant(t *testing.T) {
	e := NewMerchantExtractor()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"single word", "Rs 200 spent on Swiggy order", "Swiggy"},
		{"case insensitive", "Rs 450 SPENT ON ZOMATO", "Zomato"},
		{"two words", "Rs 550 paid to Pizza Hut", "Pizza Hut"},
		{"big bazaar", "Rs 1200 spent at BIG BAZAAR", "Big Bazaar"},
		{"unknown", "Rs 50 paid for bus fare", UnknownMerchant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Merchant(tt.text))
		})
	}
}

func TestMerchantExtras(t *testing.T) {
	e := NewMerchantExtractor("local kirana", " Blinkit ")

	assert.Equal(t, "Local Kirana", e.Merchant("Rs 85 paid to local kirana store"))
	assert.Equal(t, "Blinkit", e.Merchant("Rs 240 blinkit delivery"))
	assert.Equal(t, "Swiggy", e.Merchant("rs 100 swiggy"))
}
