// Package domain holds the channel catalog types
package domain

import "time"

// Channel is a stored streaming channel. Name is the canonical display form
type Channel struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// StreamSession is one scheduled broadcast of a channel, start kept in UTC
type StreamSession struct {
	ID           int64     `json:"id"`
	ChannelID    int64     `json:"channel_id"`
	UTCStartTime time.Time `json:"utc_start_time"`
}
