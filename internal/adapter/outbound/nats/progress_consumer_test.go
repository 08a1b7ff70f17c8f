package nats

import (
	"testing"
	"time"
)

func TestRetryDelay(t *testing.T) {
	cases := []struct {
		name       string
		deliveries uint64
		want       time.Duration
	}{
		{"first delivery", 1, 2 * time.Second},
		{"second delivery", 2, 4 * time.Second},
		{"third delivery", 3, 8 * time.Second},
		{"zero clamps to first", 0, 2 * time.Second},
		{"caps at the max delay", 20, 2 * time.Minute},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := retryDelay(tc.deliveries); got != tc.want {
				t.Errorf("retryDelay(%d) = %v, want %v", tc.deliveries, got, tc.want)
			}
		})
	}
}
