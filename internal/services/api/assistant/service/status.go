package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	perr "devstreams/internal/platform/errors"
	"devstreams/internal/platform/logger"
	"devstreams/internal/services/api/assistant/domain"

	"golang.org/x/sync/singleflight"
)

// ErrStatusUnavailable wraps every failure of the live status source
var ErrStatusUnavailable = perr.New(perr.ErrorCodeUnavailable, "live status unavailable")

// DefaultLiveTimeout bounds one shared live lookup
const DefaultLiveTimeout = 10 * time.Second

// StatusClient answers which catalog names are broadcasting. Concurrent
// identical lookups share one upstream round trip, nothing is cached
type StatusClient struct {
	src     domain.LiveSource
	group   singleflight.Group
	timeout time.Duration
	log     logger.Logger
}

// NewStatusClient wraps a live source, src must be non nil. A zero timeout
// uses DefaultLiveTimeout
func NewStatusClient(src domain.LiveSource, timeout time.Duration) *StatusClient {
	if src == nil {
		panic("assistant: status client requires a non-nil LiveSource")
	}
	if timeout <= 0 {
		timeout = DefaultLiveTimeout
	}
	return &StatusClient{src: src, timeout: timeout, log: *logger.Named("assistant.status")}
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", ErrStatusUnavailable, err)
}

// ResolveIDs maps names to platform ids with one batched call. Lookups are
// case insensitive and names that do not resolve are absent
func (s *StatusClient) ResolveIDs(ctx context.Context, names []string) (map[string]string, error) {
	out := make(map[string]string, len(names))
	if len(names) == 0 {
		return out, nil
	}

	logins := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		l := strings.ToLower(strings.TrimSpace(n))
		if l == "" {
			continue
		}
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		logins = append(logins, l)
	}
	if len(logins) == 0 {
		return out, nil
	}

	ids, err := s.src.UserIDs(ctx, logins)
	if err != nil {
		return nil, unavailable(err)
	}
	byLogin := make(map[string]string, len(ids))
	for login, id := range ids {
		byLogin[strings.ToLower(login)] = id
	}
	for _, n := range names {
		if id, ok := byLogin[strings.ToLower(strings.TrimSpace(n))]; ok && id != "" {
			out[n] = id
		}
	}
	return out, nil
}

// LiveSubset returns the ids currently broadcasting with one batched call
func (s *StatusClient) LiveSubset(ctx context.Context, ids []string) (map[string]bool, error) {
	if len(ids) == 0 {
		return map[string]bool{}, nil
	}
	live, err := s.src.LiveIDs(ctx, ids)
	if err != nil {
		return nil, unavailable(err)
	}
	if live == nil {
		live = map[string]bool{}
	}
	return live, nil
}

// LiveChannelNames returns the live subset of names in input order. The
// shared lookup is detached from the caller that started it, a caller that
// gives up only stops waiting
func (s *StatusClient) LiveChannelNames(ctx context.Context, names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}
	key := strings.Join(names, "\x00")

	ch := s.group.DoChan(key, func() (any, error) {
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()
		return s.liveNames(sctx, names)
	})
	select {
	case <-ctx.Done():
		return nil, unavailable(ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			s.log.Debug().Int("names", len(names)).Msg("live lookup coalesced")
		}
		// callers own their slice
		return slices.Clone(res.Val.([]string)), nil
	}
}

func (s *StatusClient) liveNames(ctx context.Context, names []string) ([]string, error) {
	ids, err := s.ResolveIDs(ctx, names)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []string{}, nil
	}

	list := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, n := range names {
		id, ok := ids[n]
		if !ok {
			continue
		}
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			list = append(list, id)
		}
	}
	live, err := s.LiveSubset(ctx, list)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(live))
	for _, n := range names {
		if id, ok := ids[n]; ok && live[id] {
			out = append(out, n)
		}
	}
	return out, nil
}
