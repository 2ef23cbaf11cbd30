package session

import (
	"time"

	"golang.org/x/time/rate"
)

// NewLoginLimiter bounds password attempts to perMinute across all clients and
// transports, with a burst of the same size. Values below one are raised to one.
func NewLoginLimiter(perMinute int) *rate.Limiter {
	if perMinute <= 0 {
		perMinute = 1
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)
}
