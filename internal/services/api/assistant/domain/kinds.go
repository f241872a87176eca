package domain

// RequestKind is the top level request type sent by the voice platform
type RequestKind uint8

// Request kinds
const (
	RequestUnknown RequestKind = iota
	RequestLaunch
	RequestIntent
	RequestSessionEnded
)

// ParseRequestKind maps the platform type string. Unrecognized values are RequestUnknown
func ParseRequestKind(s string) RequestKind {
	switch s {
	case "LaunchRequest":
		return RequestLaunch
	case "IntentRequest":
		return RequestIntent
	case "SessionEndedRequest":
		return RequestSessionEnded
	default:
		return RequestUnknown
	}
}

func (k RequestKind) String() string {
	switch k {
	case RequestLaunch:
		return "launch"
	case RequestIntent:
		return "intent"
	case RequestSessionEnded:
		return "session_ended"
	default:
		return "unknown"
	}
}

// IntentKind names the intents the skill understands
type IntentKind uint8

// Intent kinds. IntentNone means the request carried no intent name
const (
	IntentNone IntentKind = iota
	IntentWhenNext
	IntentWhoIsLive
	IntentStop
	IntentCancel
	IntentHelp
	IntentFallback
)

// Intent names as configured in the interaction model
const (
	NameWhenNext  = "whenNextIntent"
	NameWhoIsLive = "whoIsLiveIntent"
	NameStop      = "AMAZON.StopIntent"
	NameCancel    = "AMAZON.CancelIntent"
	NameHelp      = "AMAZON.HelpIntent"
	NameFallback  = "AMAZON.FallbackIntent"
)

// SlotChannel is the slot carrying the spoken channel name
const SlotChannel = "channel"

// ParseIntentKind maps an intent name. Empty is IntentNone and any name the
// skill does not know routes to IntentFallback
func ParseIntentKind(name string) IntentKind {
	switch name {
	case "":
		return IntentNone
	case NameWhenNext:
		return IntentWhenNext
	case NameWhoIsLive:
		return IntentWhoIsLive
	case NameStop:
		return IntentStop
	case NameCancel:
		return IntentCancel
	case NameHelp:
		return IntentHelp
	default:
		return IntentFallback
	}
}

func (k IntentKind) String() string {
	switch k {
	case IntentWhenNext:
		return "when_next"
	case IntentWhoIsLive:
		return "who_is_live"
	case IntentStop:
		return "stop"
	case IntentCancel:
		return "cancel"
	case IntentHelp:
		return "help"
	case IntentFallback:
		return "fallback"
	default:
		return "none"
	}
}
