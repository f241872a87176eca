// Package repo provides sql access for the channel catalog
package repo

import (
	"context"
	"time"

	"devstreams/internal/modkit/repokit"
	"devstreams/internal/platform/store"
)

// Repo is the minimal persistence surface for the catalog
type Repo interface {
	Channels(ctx context.Context) ([]RowChannel, error)
	ChannelByID(ctx context.Context, id int64) (RowChannel, error)
	SessionsAfter(ctx context.Context, channelID int64, after time.Time) ([]RowSession, error)
}

// RowChannel is a channels row
type RowChannel struct {
	ID   int64
	Name string
}

// RowSession is a stream_sessions row
type RowSession struct {
	ID        int64
	ChannelID int64
	StartUTC  time.Time
}

type (
	// SQL is a binder that can bind the repo to a Queryer
	SQL struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewSQL returns a binder usable with both the postgres and sqlite seams
func NewSQL() repokit.Binder[Repo] { return SQL{} }

// Bind wires a Queryer to the repo
func (SQL) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func scanChannel(r store.Row) (RowChannel, error) {
	var c RowChannel
	err := r.Scan(&c.ID, &c.Name)
	return c, err
}

func scanSession(r store.Row) (RowSession, error) {
	var s RowSession
	err := r.Scan(&s.ID, &s.ChannelID, &s.StartUTC)
	return s, err
}

func (r *queries) Channels(ctx context.Context) ([]RowChannel, error) {
	const sql = `
select id, name
from channels
order by id asc
`
	return store.Many(ctx, r.q, scanChannel, sql)
}

func (r *queries) ChannelByID(ctx context.Context, id int64) (RowChannel, error) {
	const sql = `
select id, name
from channels
where id = $1
`
	return store.One(ctx, r.q, scanChannel, sql, id)
}

func (r *queries) SessionsAfter(ctx context.Context, channelID int64, after time.Time) ([]RowSession, error) {
	// strictly after, equal starts are already underway
	const sql = `
select id, channel_id, utc_start_time
from stream_sessions
where channel_id = $1
and utc_start_time > $2
order by utc_start_time asc, id asc
`
	return store.Many(ctx, r.q, scanSession, sql, channelID, after.UTC())
}
