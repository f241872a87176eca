package domain

// ChannelSessions is the sessions listing for one channel
type ChannelSessions struct {
	Channel  Channel         `json:"channel"`
	Sessions []StreamSession `json:"sessions"`
}
