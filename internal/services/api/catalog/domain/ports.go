package domain

import (
	"context"
	"time"
)

// ServicePort is the read only catalog consumed by the assistant and handlers
type ServicePort interface {
	// AllChannels returns every channel ordered by id
	AllChannels(ctx context.Context) ([]Channel, error)

	// FutureSessions returns sessions of channelID starting after the given
	// instant, ordered by start ascending
	FutureSessions(ctx context.Context, channelID int64, after time.Time) ([]StreamSession, error)
}
