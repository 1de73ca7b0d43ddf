// Package timezone pins every clock read and calendar parse to the hotel's local zone.
//
// The zone comes from APP_TIMEZONE and is loaded when the package is imported; an
// empty or unknown IANA name falls back to UTC. Booking dates are plain YYYY-MM-DD
// strings, so Today and ParseDate are what the booking and report code use:
//
//	today := timezone.Today()                 // "2024-05-01" in the hotel zone
//	day, err := timezone.ParseDate("2024-05-03")
//	stamp := timezone.Format(t, time.RFC3339)
package timezone
