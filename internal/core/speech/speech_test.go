package speech

import (
	"strings"
	"testing"
)

func TestLiveNow_Enumeration(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want string
		card string
	}{
		{"none", nil, "None of the streamers in my database are currently broadcasting.", "None"},
		{"one", []string{"A"}, "A is broadcasting now.", "A"},
		{"two", []string{"A", "B"}, "2 streamers are broadcasting now: A and B.", "A, B"},
		{"three", []string{"A", "B", "C"}, "3 streamers are broadcasting now: A, B and C.", "A, B, C"},
		{"five", []string{"A", "B", "C", "D", "E"}, "5 streamers are broadcasting now. Here are the first three: A, B, C.", "A, B, C"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := LiveNow(tc.in)
			if r.Speech != tc.want {
				t.Fatalf("speech = %q, want %q", r.Speech, tc.want)
			}
			if r.Card == nil || r.Card.Title != TitleLive || r.Card.Body != tc.card {
				t.Fatalf("card = %+v", r.Card)
			}
		})
	}
}

func TestLiveNow_DoesNotMutateInput(t *testing.T) {
	in := []string{"A", "B", "C", "D"}
	_ = LiveNow(in)
	if strings.Join(in, "") != "ABCD" {
		t.Fatalf("input changed: %v", in)
	}
}

func TestNextStream(t *testing.T) {
	r := NextStream("DevChatter", "Tuesday, January 02 at 3:00 PM", true)
	if r.Speech != "DevChatter will be streaming next on Tuesday, January 02 at 3:00 PM." {
		t.Fatalf("speech = %q", r.Speech)
	}
	if r.Card.Title != "DevChatter" || r.Card.Body != r.Speech {
		t.Fatalf("card = %+v", r.Card)
	}

	r = NextStream("DevChatter", "", false)
	if r.Speech != "DevChatter currently has no future streams scheduled." {
		t.Fatalf("speech = %q", r.Speech)
	}
}

func TestNotFound(t *testing.T) {
	r := NotFound("zzz top")
	if r.Speech != "Sorry, I could not find zzz top in my database of live coding streamers" {
		t.Fatalf("speech = %q", r.Speech)
	}
	if r.Card.Title != TitleNotFound || r.Card.Body != "zzz top is not in the DevStreams database" {
		t.Fatalf("card = %+v", r.Card)
	}
}

func TestFixedUtterancesNonEmpty(t *testing.T) {
	for _, s := range []string{Welcome, Reprompt, Help, Goodbye, Fallback, Clarify, StatusUnavailable, CatalogUnavailable} {
		if strings.TrimSpace(s) == "" {
			t.Fatal("empty fixed utterance")
		}
	}
}
