package timezone

import (
	"hotel/config"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

var location atomic.Pointer[time.Location]

func init() {
	SetLocation(config.Get().App.Timezone)
}

// SetLocation switches the application zone. It returns the zone actually in use.
func SetLocation(name string) *time.Location {
	if name == "" {
		log.Warn().Msg("no timezone configured, using UTC")
		location.Store(time.UTC)

		return time.UTC
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("unknown timezone, falling back to UTC")
		location.Store(time.UTC)

		return time.UTC
	}

	location.Store(loc)
	log.Debug().Str("timezone", loc.String()).Msg("application timezone set")

	return loc
}

// GetLocation returns the application zone, UTC until one is set.
func GetLocation() *time.Location {
	if loc := location.Load(); loc != nil {
		return loc
	}

	return time.UTC
}

func Now() time.Time {
	return time.Now().In(GetLocation())
}

func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

// Parse reads value in the application zone when layout carries no offset.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, GetLocation()) //nolint:wrapcheck
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// Today is the current calendar date in the application zone as YYYY-MM-DD.
func Today() string {
	return Now().Format(time.DateOnly)
}

func ParseDate(value string) (time.Time, error) {
	return Parse(time.DateOnly, value)
}
