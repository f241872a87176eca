package module

import (
	"time"

	"devstreams/internal/platform/config"
	ahttp "devstreams/internal/services/api/assistant/http"
	asvc "devstreams/internal/services/api/assistant/service"
)

// Options controls matching thresholds and the skill request guard
type Options struct {
	MinDifference int
	MinSimilarity float64
	LiveTimeout   time.Duration

	SkillID   string
	Tolerance time.Duration
}

// FromConfig reads CORE_ASSISTANT_* and the skill guard keys under CORE_API_*
func FromConfig(cfg config.Conf) Options {
	ac := cfg.Prefix("CORE_ASSISTANT_")
	api := cfg.Prefix("CORE_API_")
	return Options{
		MinDifference: ac.MayInt("MIN_DIFFERENCE", asvc.DefaultMinDifference),
		MinSimilarity: ac.MayFloat64("MIN_SIMILARITY", asvc.DefaultMinSimilarity),
		LiveTimeout:   ac.MayDuration("LIVE_TIMEOUT", asvc.DefaultLiveTimeout),
		SkillID:       api.MayString("SKILL_ID", ""),
		Tolerance:     api.MayDuration("TIMESTAMP_TOLERANCE", ahttp.DefaultTolerance),
	}
}
