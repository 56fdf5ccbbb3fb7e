package config

import (
	"runtime"

	"github.com/agbru/moneymask/internal/numfmt"
)

// ApplyDefaults fills in settings derived from the host when they were left
// to their automatic value:
//   - Locale "host" is replaced by the process locale (LC_ALL, LC_NUMERIC,
//     LANG), or cleared when none is usable.
//   - Workers 0 becomes the number of CPUs.
func ApplyDefaults(cfg AppConfig) AppConfig {
	if cfg.Locale == "host" {
		cfg.Locale, _ = numfmt.HostLocale()
	}
	if cfg.Workers == 0 {
		cfg.Workers = EstimateWorkers()
	}
	return cfg
}

// EstimateWorkers returns the default batch worker count.
func EstimateWorkers() int {
	n := runtime.NumCPU()
	if n < 1 {
		return 1
	}
	return n
}
