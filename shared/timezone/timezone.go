package timezone

import (
	"sync"
	"time"

	"turfbook/config"
	"turfbook/shared/constant"

	"github.com/rs/zerolog/log"
)

var location = sync.OnceValue(func() *time.Location {
	name := config.Get().App.Timezone
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC")

		return time.UTC
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("Failed to load timezone, falling back to UTC")

		return time.UTC
	}

	log.Info().Str("timezone", loc.String()).Msg("Application timezone loaded")

	return loc
})

// Location is the timezone turf opening hours are read in.
func Location() *time.Location {
	return location()
}

func Now() time.Time {
	return time.Now().In(Location())
}

func Format(t time.Time, layout string) string {
	return t.In(Location()).Format(layout)
}

// Today is the current calendar date at the venues, as a UTC midnight.
func Today() time.Time {
	return DayOf(Now())
}

// DayOf keeps the calendar date of t as seen locally and drops the rest.
func DayOf(t time.Time) time.Time {
	year, month, day := t.In(Location()).Date()

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDay reads a YYYY-MM-DD date as a UTC midnight.
func ParseDay(value string) (time.Time, error) {
	return time.Parse(constant.DayFormat, value)
}
