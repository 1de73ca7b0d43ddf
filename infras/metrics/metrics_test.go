package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRegisterIsIdempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		Register()
		Register()
	})
}

func TestCounters(t *testing.T) {
	Register()

	IncBookingTransition("Checked In")
	IncBookingTransition("Checked In")
	IncRoomStatus("Cleaning")
	IncHTTP("/api/rooms", "GET", "200")

	assert.InDelta(t, 2, testutil.ToFloat64(bookingTransitions.WithLabelValues("Checked In")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(roomStatusChanges.WithLabelValues("Cleaning")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(httpRequests.WithLabelValues("/api/rooms", "GET", "200")), 0)
}
