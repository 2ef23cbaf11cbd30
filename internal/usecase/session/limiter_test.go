package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLoginLimiter(t *testing.T) {
	tests := []struct {
		name      string
		perMinute int
		burst     int
	}{
		{name: "configured rate", perMinute: 3, burst: 3},
		{name: "zero raised to one", perMinute: 0, burst: 1},
		{name: "negative raised to one", perMinute: -5, burst: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiter := NewLoginLimiter(tt.perMinute)
			assert.Equal(t, tt.burst, limiter.Burst())

			for i := 0; i < tt.burst; i++ {
				assert.True(t, limiter.Allow(), "attempt %d", i+1)
			}
			assert.False(t, limiter.Allow())
		})
	}
}
