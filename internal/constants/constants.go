package constants

import "time"

const (
	DefaultCacheTTL = 5 * time.Minute
)

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
	SyncTimeout        = 2 * time.Minute
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
	DBBatchSize       = 100
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	MatchesPerWeek     = 3
	PandaScorePageSize = 100
	MaxMapScore        = 2 // best-of-3
)

// PandaScore series of the current stage, per region.
var SeriesByRegion = map[string]int64{
	"americas": 9442,
	"emea":     9441,
	"pacific":  9435,
	"china":    9434,
}
