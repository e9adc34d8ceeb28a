package syncer

import "time"

// Config holds configuration for the sync engine as loaded from the
// environment. It maps onto Spec at wiring time.
type Config struct {
	// Strategy is the diff-direction strategy (upload_first, download_first,
	// upload_only, download_only, simultaneously).
	Strategy string `mapstructure:"strategy" default:"upload_first"`
	// IntervalSeconds is the auto-sync period in seconds.
	IntervalSeconds int `mapstructure:"interval_seconds" default:"300"`
	// Concurrent runs the two diff directions concurrently.
	Concurrent bool `mapstructure:"concurrent" default:"false"`
	// PropagateErrors returns pass-level failures to the caller even when
	// progress is being reported.
	PropagateErrors bool `mapstructure:"propagate_errors" default:"false"`
	// Prefix is the object key prefix used by the cloud store adapter.
	Prefix string `mapstructure:"prefix" default:"sync"`
}

// Interval returns the auto-sync period as a duration, defaulting to five
// minutes when unset or invalid.
func (c Config) Interval() time.Duration {
	if c.IntervalSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.IntervalSeconds) * time.Second
}
