// Package speech composes the spoken replies and companion cards.
// Everything here is pure and safe for concurrent use
package speech

import (
	"fmt"
	"strings"
)

// Fixed utterances
const (
	Welcome  = "Welcome to the Dev Streams skill. Ask me who is streaming now or when your favourite channels are streaming next"
	Reprompt = "Ask me who is streaming now or when your favourite channels are streaming next"
	Help     = "To use this skill, ask me about when your favourite channel is streaming next; or who is broadcasting now. You can also say Alexa Stop to exit the skill"
	Goodbye  = "Thanks for using the Dev Streams skill"
	Fallback = "Sorry, I didn't catch that. You can ask me who is streaming now or when a channel is streaming next"
	Clarify  = "Which channel would you like to know about?"

	StatusUnavailable  = "Sorry, I'm having trouble reaching Twitch right now. Please try again later."
	CatalogUnavailable = "Sorry, I can't reach the DevStreams database right now. Please try again later."
)

// Card titles
const (
	TitleLive     = "Streaming Now!"
	TitleNotFound = "Not Found"
	TitleHelp     = "Dev Streams"
)

// maxListed caps how many names a live summary reads out
const maxListed = 3

// Card is a simple companion card shown in the app
type Card struct {
	Title string
	Body  string
}

// Reply is a composed utterance with an optional card
type Reply struct {
	Speech string
	Card   *Card
}

// NextStream phrases a projected session. when is the already formatted date
// and ok reports whether any future session exists
func NextStream(name, when string, ok bool) Reply {
	var s string
	if ok {
		s = fmt.Sprintf("%s will be streaming next on %s.", name, when)
	} else {
		s = fmt.Sprintf("%s currently has no future streams scheduled.", name)
	}
	return Reply{Speech: s, Card: &Card{Title: name, Body: s}}
}

// NotFound echoes the spoken name back since the listener may have been misheard
func NotFound(spoken string) Reply {
	return Reply{
		Speech: fmt.Sprintf("Sorry, I could not find %s in my database of live coding streamers", spoken),
		Card: &Card{
			Title: TitleNotFound,
			Body:  fmt.Sprintf("%s is not in the DevStreams database", spoken),
		},
	}
}

// LiveNow summarizes who is broadcasting. names keeps its given order
func LiveNow(names []string) Reply {
	return Reply{
		Speech: liveSpeech(names),
		Card:   &Card{Title: TitleLive, Body: liveCardBody(names)},
	}
}

func liveSpeech(names []string) string {
	n := len(names)
	switch {
	case n == 0:
		return "None of the streamers in my database are currently broadcasting."
	case n == 1:
		return names[0] + " is broadcasting now."
	case n <= maxListed:
		return fmt.Sprintf("%d streamers are broadcasting now: %s.", n, joinAnd(names))
	default:
		return fmt.Sprintf("%d streamers are broadcasting now. Here are the first three: %s.",
			n, strings.Join(names[:maxListed], ", "))
	}
}

// joinAnd renders "a and b" or "a, b and c"
func joinAnd(names []string) string {
	if len(names) == 1 {
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}

func liveCardBody(names []string) string {
	if len(names) == 0 {
		return "None"
	}
	return strings.Join(names[:min(len(names), maxListed)], ", ")
}
