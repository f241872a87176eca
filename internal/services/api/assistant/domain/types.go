// Package domain holds the assistant request and response model, the wire
// format of the voice platform and the ports the dispatcher depends on
package domain

import (
	"strings"
	"time"

	catdom "devstreams/internal/services/api/catalog/domain"
)

// DeviceContext carries what is needed to read per device settings
type DeviceContext struct {
	APIEndpoint    string
	APIAccessToken string
	DeviceID       string
}

// IntentRequest is a transport neutral view of one inbound request
type IntentRequest struct {
	Kind       RequestKind
	Intent     IntentKind
	IntentName string
	Slots      map[string]string

	// UserTimezone is an IANA zone name. When empty the dispatcher asks the
	// timezone port using Device
	UserTimezone string
	Device       DeviceContext

	RequestID     string
	Timestamp     time.Time
	ApplicationID string
	Locale        string

	// set on session ended requests
	EndReason string
	EndError  string
}

// Slot returns the trimmed value of a slot or ""
func (r IntentRequest) Slot(name string) string {
	if r.Slots == nil {
		return ""
	}
	return strings.TrimSpace(r.Slots[name])
}

// Card is a simple companion card
type Card struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Outcome classifies how a request was answered, used for logs and the journal
type Outcome string

// Outcomes
const (
	OutcomeWelcome      Outcome = "welcome"
	OutcomeNextStream   Outcome = "next_stream"
	OutcomeNoFuture     Outcome = "no_future"
	OutcomeNotFound     Outcome = "not_found"
	OutcomeClarify      Outcome = "clarify"
	OutcomeLiveNow      Outcome = "live_now"
	OutcomeGoodbye      Outcome = "goodbye"
	OutcomeHelp         Outcome = "help"
	OutcomeFallback     Outcome = "fallback"
	OutcomeUnavailable  Outcome = "unavailable"
	OutcomeSessionEnded Outcome = "session_ended"
	OutcomeMalformed    Outcome = "malformed"
)

// IntentResponse is what the dispatcher produces. Empty marks an
// acknowledgment with no speech
type IntentResponse struct {
	Speech     string `json:"speech,omitempty"`
	Reprompt   string `json:"reprompt,omitempty"`
	Card       *Card  `json:"card,omitempty"`
	EndSession bool   `json:"end_session"`
	Empty      bool   `json:"empty,omitempty"`

	Outcome   Outcome `json:"outcome"`
	Channel   string  `json:"channel,omitempty"`
	LiveCount int     `json:"-"`
}

// ResolvedMatch is the catalog channel chosen for a spoken name. Confidence
// orders candidates and is not a probability
type ResolvedMatch struct {
	Channel    catdom.Channel
	Confidence float64
}
