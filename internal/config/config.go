package config

const (
	DefaultTimeZone = "Europe/London"

	// Peer aggregate refresh runs nightly once the day's uploads settle.
	DefaultAggregateSchedule = "30 2 * * *"
	AggregateBatchSize       = 500

	// Upload limits
	MaxUploadBytes = 32 << 20
)
