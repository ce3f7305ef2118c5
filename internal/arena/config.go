package arena

import (
	"time"

	"github.com/codeclash-games/codeclash/internal/database"
)

type Config struct {
	// Verbose logging
	Debug bool `envconfig:"CLASH_DEBUG" default:"false"`

	// Number of items in the match-history read cache
	CacheSize int `envconfig:"CLASH_CACHE_SIZE" default:"1024"`

	// Port serving the REST API and websocket upgrades
	Port string `envconfig:"CLASH_PORT" default:"8080"`

	// pprof port
	ProfPort string `envconfig:"CLASH_PROF_PORT" default:"8888"`

	// Path to a problems JSON file; empty uses the built-in bank
	ProblemsPath string `envconfig:"CLASH_PROBLEMS_PATH"`

	// Hard cap on a room's lifetime
	RoomTimeout time.Duration `envconfig:"CLASH_ROOM_TIMEOUT" default:"6h"`

	// Cadence of the registry sweep
	CleaningInterval time.Duration `envconfig:"CLASH_CLEANING_INTERVAL" default:"10m"`

	DB database.Config
}
