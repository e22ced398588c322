package identity

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestContextRoundTrip(t *testing.T) {
	id := &Identity{
		ClientID:  "flutter-app",
		IssuedAt:  time.Now(),
		ExpiresAt: time.Now().Add(8 * time.Hour),
	}
	id.WithRemoteIP(net.ParseIP("10.0.0.1"))

	ctx := Set(context.Background(), id)
	got, ok := Get(ctx)
	assert.True(t, ok)
	assert.Equal(t, "flutter-app", got.ClientID)
	assert.Equal(t, "10.0.0.1", got.RemoteIP.String())
}

func TestGetMissing(t *testing.T) {
	_, ok := Get(context.Background())
	assert.False(t, ok)
}
