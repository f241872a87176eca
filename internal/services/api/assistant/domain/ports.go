package domain

import (
	"context"
	"time"

	catdom "devstreams/internal/services/api/catalog/domain"
)

// CatalogPort is the read only channel store
type CatalogPort = catdom.ServicePort

// LiveSource is the external platform directory. Both calls are batched
type LiveSource interface {
	// UserIDs maps the given logins to platform ids. Unknown logins are absent
	UserIDs(ctx context.Context, logins []string) (map[string]string, error)
	// LiveIDs returns the subset of ids currently broadcasting
	LiveIDs(ctx context.Context, ids []string) (map[string]bool, error)
}

// TimezonePort resolves the IANA zone configured on a device
type TimezonePort interface {
	TimeZone(ctx context.Context, d DeviceContext) (string, error)
}

// JournalEntry is one handled request
type JournalEntry struct {
	RequestID string
	Kind      RequestKind
	Intent    string
	Outcome   Outcome
	Channel   string
	LiveCount int
	Elapsed   time.Duration
	At        time.Time
}

// JournalPort records handled requests. Implementations must be safe for
// concurrent use, failures are the caller's to ignore
type JournalPort interface {
	Record(ctx context.Context, e JournalEntry) error
}

// ServicePort is the dispatcher surface exposed to transports
type ServicePort interface {
	Handle(ctx context.Context, in IntentRequest) IntentResponse
}
