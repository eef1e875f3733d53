package repository

import (
	"time"

	"github.com/rs/zerolog"
)

// slowLog warns about store round trips slower than threshold.
type slowLog struct {
	logger    *zerolog.Logger
	threshold time.Duration
	backend   string
	kind      string
}

func (l slowLog) observe(op string, start time.Time) {
	if l.logger == nil || l.threshold <= 0 {
		return
	}
	if elapsed := time.Since(start); elapsed > l.threshold {
		l.logger.Warn().
			Str("backend", l.backend).
			Str("kind", l.kind).
			Str("op", op).
			Dur("duration", elapsed).
			Dur("threshold", l.threshold).
			Msg("slow store operation")
	}
}
