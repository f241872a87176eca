package domain

import (
	"strings"
	"time"
)

// AlexaVersion is the only envelope version the skill speaks
const AlexaVersion = "1.0"

// AlexaRequest is the inbound skill envelope. Only the fields the skill reads
// are declared, the decoder ignores the rest
type AlexaRequest struct {
	Version string        `json:"version"`
	Session *AlexaSession `json:"session,omitempty"`
	Context *AlexaContext `json:"context,omitempty"`
	Request AlexaBody     `json:"request" validate:"required"`
}

// AlexaSession is the session block
type AlexaSession struct {
	New         bool             `json:"new"`
	SessionID   string           `json:"sessionId"`
	Application AlexaApplication `json:"application"`
}

// AlexaApplication identifies the skill
type AlexaApplication struct {
	ApplicationID string `json:"applicationId"`
}

// AlexaContext wraps the system block
type AlexaContext struct {
	System AlexaSystem `json:"System"`
}

// AlexaSystem describes the calling device and the settings API access
type AlexaSystem struct {
	Application    AlexaApplication `json:"application"`
	Device         AlexaDevice      `json:"device"`
	APIEndpoint    string           `json:"apiEndpoint"`
	APIAccessToken string           `json:"apiAccessToken"`
}

// AlexaDevice identifies the device
type AlexaDevice struct {
	DeviceID string `json:"deviceId"`
}

// AlexaBody is the request block shared by all request types
type AlexaBody struct {
	Type      string       `json:"type" validate:"required"`
	RequestID string       `json:"requestId"`
	Timestamp string       `json:"timestamp"`
	Locale    string       `json:"locale"`
	Intent    *AlexaIntent `json:"intent,omitempty"`
	Reason    string       `json:"reason,omitempty"`
	Error     *AlexaError  `json:"error,omitempty"`
}

// AlexaIntent is the recognized intent with its slots
type AlexaIntent struct {
	Name  string               `json:"name"`
	Slots map[string]AlexaSlot `json:"slots,omitempty"`
}

// AlexaSlot is one filled or unfilled slot
type AlexaSlot struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// AlexaError is reported on session ended requests
type AlexaError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ApplicationID prefers the context block and falls back to the session block
func (a AlexaRequest) ApplicationID() string {
	if a.Context != nil && a.Context.System.Application.ApplicationID != "" {
		return a.Context.System.Application.ApplicationID
	}
	if a.Session != nil {
		return a.Session.Application.ApplicationID
	}
	return ""
}

// ToIntentRequest converts the envelope into the dispatcher model. An
// unparsable timestamp yields the zero time
func (a AlexaRequest) ToIntentRequest() IntentRequest {
	in := IntentRequest{
		Kind:          ParseRequestKind(a.Request.Type),
		RequestID:     a.Request.RequestID,
		Locale:        a.Request.Locale,
		ApplicationID: a.ApplicationID(),
		EndReason:     a.Request.Reason,
	}
	if ts, err := time.Parse(time.RFC3339, strings.TrimSpace(a.Request.Timestamp)); err == nil {
		in.Timestamp = ts.UTC()
	}
	if a.Context != nil {
		in.Device = DeviceContext{
			APIEndpoint:    a.Context.System.APIEndpoint,
			APIAccessToken: a.Context.System.APIAccessToken,
			DeviceID:       a.Context.System.Device.DeviceID,
		}
	}
	if a.Request.Intent != nil {
		in.IntentName = a.Request.Intent.Name
		in.Intent = ParseIntentKind(a.Request.Intent.Name)
		if len(a.Request.Intent.Slots) > 0 {
			in.Slots = make(map[string]string, len(a.Request.Intent.Slots))
			for k, s := range a.Request.Intent.Slots {
				in.Slots[k] = s.Value
			}
		}
	}
	if a.Request.Error != nil {
		in.EndError = strings.TrimSpace(a.Request.Error.Type + " - " + a.Request.Error.Message)
	}
	return in
}

// AlexaResponse is the outbound skill envelope
type AlexaResponse struct {
	Version  string            `json:"version"`
	Response AlexaResponseBody `json:"response"`
}

// AlexaResponseBody holds speech, card, reprompt and the session flag.
// Everything is omitted for an empty acknowledgment
type AlexaResponseBody struct {
	OutputSpeech     *AlexaSpeech   `json:"outputSpeech,omitempty"`
	Card             *AlexaCard     `json:"card,omitempty"`
	Reprompt         *AlexaReprompt `json:"reprompt,omitempty"`
	ShouldEndSession *bool          `json:"shouldEndSession,omitempty"`
}

// AlexaSpeech is plain text output speech
type AlexaSpeech struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// AlexaCard is a simple card
type AlexaCard struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// AlexaReprompt is spoken when the user stays silent on an open session
type AlexaReprompt struct {
	OutputSpeech AlexaSpeech `json:"outputSpeech"`
}

// ToAlexa renders a dispatcher response
func (r IntentResponse) ToAlexa() AlexaResponse {
	out := AlexaResponse{Version: AlexaVersion}
	if r.Empty {
		return out
	}
	end := r.EndSession
	body := AlexaResponseBody{
		OutputSpeech:     &AlexaSpeech{Type: "PlainText", Text: r.Speech},
		ShouldEndSession: &end,
	}
	if r.Card != nil {
		body.Card = &AlexaCard{Type: "Simple", Title: r.Card.Title, Content: r.Card.Body}
	}
	if r.Reprompt != "" {
		body.Reprompt = &AlexaReprompt{OutputSpeech: AlexaSpeech{Type: "PlainText", Text: r.Reprompt}}
	}
	out.Response = body
	return out
}
