package module

import (
	"time"

	"newsstand/internal/platform/config"
)

// Options tune the upstream client and the loader owned by this module
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int

	MinBatch       int
	PrefetchMargin int
	PageEdge       int
}

// FromConfig reads module options from CATALOG_* keys
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CATALOG_")
	return Options{
		BaseURL:        c.MayString("BASE_URL", "http://localhost:4100"),
		Timeout:        c.MayDuration("TIMEOUT", 10*time.Second),
		MaxRetries:     c.MayInt("MAX_RETRIES", 5),
		MinBatch:       c.MayInt("MIN_BATCH", 5),
		PrefetchMargin: c.MayInt("PREFETCH_MARGIN", 10),
		PageEdge:       c.MayInt("PAGE_EDGE", 3),
	}
}
