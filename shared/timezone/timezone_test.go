package timezone_test

import (
	"hotel/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLocation(t *testing.T) {
	t.Cleanup(func() { timezone.SetLocation("UTC") })

	tests := []struct {
		name string
		zone string
		want string
	}{
		{name: "iana name", zone: "Asia/Jakarta", want: "Asia/Jakarta"},
		{name: "empty falls back to utc", zone: "", want: "UTC"},
		{name: "unknown falls back to utc", zone: "Mars/Olympus", want: "UTC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := timezone.SetLocation(tt.zone)

			assert.Equal(t, tt.want, loc.String())
			assert.Equal(t, tt.want, timezone.GetLocation().String())
			assert.Equal(t, tt.want, timezone.Now().Location().String())
		})
	}
}

func TestTodayFollowsLocation(t *testing.T) {
	t.Cleanup(func() { timezone.SetLocation("UTC") })

	timezone.SetLocation("Asia/Jakarta")

	instant := time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-05-02", timezone.Format(instant, time.DateOnly), "20:00 UTC is already the next day in UTC+7")

	_, err := time.Parse(time.DateOnly, timezone.Today())
	assert.NoError(t, err)
}

func TestParseDate(t *testing.T) {
	t.Cleanup(func() { timezone.SetLocation("UTC") })

	jakarta := timezone.SetLocation("Asia/Jakarta")

	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "leap day", value: "2024-02-29"},
		{name: "invalid day", value: "2023-02-29", wantErr: true},
		{name: "wrong layout", value: "29/02/2024", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := timezone.ParseDate(tt.value)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, jakarta, got.Location())
		})
	}
}
