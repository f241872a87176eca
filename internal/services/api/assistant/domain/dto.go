package domain

import "time"

// IntentInput is the flat body of the debug intents endpoint
type IntentInput struct {
	Type     string `json:"type" validate:"required,oneof=LaunchRequest IntentRequest SessionEndedRequest"`
	Intent   string `json:"intent,omitempty" validate:"max=64"`
	Channel  string `json:"channel,omitempty" validate:"max=128"`
	Timezone string `json:"timezone,omitempty" validate:"omitempty,iana_tz"`
}

// ToIntentRequest converts the debug body. The timezone is taken as given,
// no device lookup happens
func (in IntentInput) ToIntentRequest(now time.Time) IntentRequest {
	r := IntentRequest{
		Kind:         ParseRequestKind(in.Type),
		IntentName:   in.Intent,
		Intent:       ParseIntentKind(in.Intent),
		UserTimezone: in.Timezone,
		Timestamp:    now.UTC(),
	}
	if in.Channel != "" {
		r.Slots = map[string]string{SlotChannel: in.Channel}
	}
	return r
}
