// Search configuration, instance-scoped on SearchContext rather than held
// in package-level vars so multiple searches can run concurrently with
// different tuning.

package engine

const (
	DefaultMaxDepth    = 8
	DefaultTimeLimitMs = 2000
	DefaultTTSizeMB    = 64

	MinDepth = 1
	MaxDepth = 100
)

// Config bundles search tuning knobs so individual heuristics (TT,
// ordering, LMR, killers, history, aspiration windows) can be isolated in
// tests by toggling them independently.
type Config struct {
	MaxDepth    int
	TimeLimitMs int
	TTSizeMB    int

	UseTT            bool
	UseMoveOrdering  bool
	UseLMR           bool
	UseKillers       bool
	UseHistory       bool
	UseAspiration    bool
}

func DefaultConfig() Config {
	return Config{
		MaxDepth:        DefaultMaxDepth,
		TimeLimitMs:     DefaultTimeLimitMs,
		TTSizeMB:        DefaultTTSizeMB,
		UseTT:           true,
		UseMoveOrdering: true,
		UseLMR:          true,
		UseKillers:      true,
		UseHistory:      true,
		UseAspiration:   true,
	}
}
