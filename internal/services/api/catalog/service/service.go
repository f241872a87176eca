// Package service contains catalog reads
package service

import (
	"context"
	"time"

	"devstreams/internal/modkit/repokit"
	perr "devstreams/internal/platform/errors"
	"devstreams/internal/services/api/catalog/domain"
	"devstreams/internal/services/api/catalog/repo"
)

// Service defines the catalog service contract
type Service interface {
	domain.ServicePort
	Channel(ctx context.Context, id int64) (domain.Channel, error)
}

// Svc implements the catalog service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.Queryer
}

// New constructs a catalog service
func New(db repokit.Queryer, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("catalog.Service requires a database")
	}
	if binder == nil {
		panic("catalog.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: repokit.MustBind(binder, db), binder: binder, db: db}
}

// AllChannels returns every channel ordered by id
func (s *Svc) AllChannels(ctx context.Context) ([]domain.Channel, error) {
	rows, err := s.Repo.Channels(ctx)
	if err != nil {
		return nil, perr.FromDB(err, "list channels")
	}
	out := make([]domain.Channel, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Channel{ID: r.ID, Name: r.Name})
	}
	return out, nil
}

// Channel returns one channel or a NotFound error
func (s *Svc) Channel(ctx context.Context, id int64) (domain.Channel, error) {
	r, err := s.Repo.ChannelByID(ctx, id)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return domain.Channel{}, perr.NotFoundf("channel %d not found", id)
		}
		return domain.Channel{}, perr.FromDBf(err, "get channel %d", id)
	}
	return domain.Channel{ID: r.ID, Name: r.Name}, nil
}

// FutureSessions returns sessions of channelID starting after the given instant
func (s *Svc) FutureSessions(ctx context.Context, channelID int64, after time.Time) ([]domain.StreamSession, error) {
	rows, err := s.Repo.SessionsAfter(ctx, channelID, after)
	if err != nil {
		return nil, perr.FromDBf(err, "list sessions for channel %d", channelID)
	}
	out := make([]domain.StreamSession, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.StreamSession{ID: r.ID, ChannelID: r.ChannelID, UTCStartTime: r.StartUTC.UTC()})
	}
	return out, nil
}
