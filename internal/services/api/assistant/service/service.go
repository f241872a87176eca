// Package service implements the assistant: channel resolution, live status
// aggregation and the intent dispatcher
package service

import (
	"context"
	"time"

	"devstreams/internal/core/schedule"
	"devstreams/internal/core/speech"
	"devstreams/internal/platform/logger"
	"devstreams/internal/services/api/assistant/domain"
	catdom "devstreams/internal/services/api/catalog/domain"
)

const journalTimeout = 500 * time.Millisecond

// Options tunes the dispatcher. Timezone and Journal are optional
type Options struct {
	MinDifference int
	MinSimilarity float64

	// LiveTimeout bounds one shared live lookup, zero means DefaultLiveTimeout
	LiveTimeout time.Duration

	Timezone domain.TimezonePort
	Journal  domain.JournalPort

	// Now is a clock seam, defaults to time.Now
	Now func() time.Time
}

// Service handles one request at a time and keeps no state between requests
type Service struct {
	catalog  domain.CatalogPort
	status   *StatusClient
	resolver Resolver
	tz       domain.TimezonePort
	journal  domain.JournalPort
	now      func() time.Time
}

var _ domain.ServicePort = (*Service)(nil)

// New wires the dispatcher. catalog and live must be non nil
func New(catalog domain.CatalogPort, live domain.LiveSource, opt Options) *Service {
	if catalog == nil {
		panic("assistant: service requires a non-nil CatalogPort")
	}
	now := opt.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		catalog:  catalog,
		status:   NewStatusClient(live, opt.LiveTimeout),
		resolver: NewResolver(opt.MinDifference, opt.MinSimilarity),
		tz:       opt.Timezone,
		journal:  opt.Journal,
		now:      now,
	}
}

// Status exposes the live status client
func (s *Service) Status() *StatusClient { return s.status }

// Handle answers a request. It never fails, failures of collaborators are
// turned into spoken apologies
func (s *Service) Handle(ctx context.Context, in domain.IntentRequest) domain.IntentResponse {
	start := s.now()
	log := logger.C(ctx).With().
		Str("component", "assistant").
		Str("kind", in.Kind.String()).
		Str("intent", in.IntentName).
		Logger()

	var out domain.IntentResponse
	switch in.Kind {
	case domain.RequestLaunch:
		out = open(domain.OutcomeWelcome, speech.Welcome, speech.Reprompt)
	case domain.RequestIntent:
		out = s.intent(ctx, in, &log)
	case domain.RequestSessionEnded:
		ev := log.Info()
		if in.EndError != "" {
			ev = log.Error().Str("error", in.EndError)
		}
		ev.Str("reason", in.EndReason).Msg("session ended")
		out = domain.IntentResponse{Empty: true, EndSession: true, Outcome: domain.OutcomeSessionEnded}
	case domain.RequestUnknown:
		out = malformed(&log, "unknown request type")
	}

	elapsed := s.now().Sub(start)
	log.Debug().
		Str("outcome", string(out.Outcome)).
		Dur("elapsed", elapsed).
		Msg("request handled")
	s.record(ctx, in, out, start, elapsed, &log)
	return out
}

func (s *Service) intent(ctx context.Context, in domain.IntentRequest, log *logger.Logger) domain.IntentResponse {
	switch in.Intent {
	case domain.IntentWhenNext:
		return s.whenNext(ctx, in, log)
	case domain.IntentWhoIsLive:
		return s.whoIsLive(ctx, log)
	case domain.IntentStop, domain.IntentCancel:
		return domain.IntentResponse{Speech: speech.Goodbye, EndSession: true, Outcome: domain.OutcomeGoodbye}
	case domain.IntentHelp:
		out := open(domain.OutcomeHelp, speech.Help, speech.Reprompt)
		out.Card = &domain.Card{Title: speech.TitleHelp, Body: speech.Help}
		return out
	case domain.IntentFallback:
		return open(domain.OutcomeFallback, speech.Fallback, speech.Reprompt)
	case domain.IntentNone:
		return malformed(log, "intent request without intent name")
	}
	return open(domain.OutcomeFallback, speech.Fallback, speech.Reprompt)
}

func (s *Service) whenNext(ctx context.Context, in domain.IntentRequest, log *logger.Logger) domain.IntentResponse {
	spoken := in.Slot(domain.SlotChannel)
	if spoken == "" {
		return open(domain.OutcomeClarify, speech.Clarify, speech.Clarify)
	}

	channels, err := s.catalog.AllChannels(ctx)
	if err != nil {
		log.Error().Err(err).Msg("catalog read failed")
		return closed(domain.OutcomeUnavailable, speech.CatalogUnavailable)
	}

	match, err := s.resolver.Resolve(spoken, channels)
	if err != nil {
		log.Info().Str("spoken", spoken).Int("catalog", len(channels)).Msg("no channel match")
		out := fromReply(speech.NotFound(spoken), domain.OutcomeNotFound)
		out.Channel = spoken
		return out
	}

	now := s.now()
	sessions, err := s.catalog.FutureSessions(ctx, match.Channel.ID, now)
	if err != nil {
		log.Error().Err(err).Int64("channel_id", match.Channel.ID).Msg("session read failed")
		return closed(domain.OutcomeUnavailable, speech.CatalogUnavailable)
	}

	zone := s.zone(ctx, in, log)
	p, ok, err := schedule.Next(toSchedule(sessions), match.Channel.ID, zone, now)
	if err != nil {
		log.Debug().Err(err).Str("zone", zone).Msg("falling back to UTC")
	}

	outcome := domain.OutcomeNextStream
	if !ok {
		outcome = domain.OutcomeNoFuture
	}
	out := fromReply(speech.NextStream(match.Channel.Name, p.Phrase(), ok), outcome)
	out.Channel = match.Channel.Name
	return out
}

func (s *Service) whoIsLive(ctx context.Context, log *logger.Logger) domain.IntentResponse {
	channels, err := s.catalog.AllChannels(ctx)
	if err != nil {
		log.Error().Err(err).Msg("catalog read failed")
		return closed(domain.OutcomeUnavailable, speech.CatalogUnavailable)
	}

	names := make([]string, len(channels))
	for i, c := range channels {
		names[i] = c.Name
	}
	live, err := s.status.LiveChannelNames(ctx, names)
	if err != nil {
		log.Warn().Err(err).Int("channels", len(names)).Msg("live status lookup failed")
		return closed(domain.OutcomeUnavailable, speech.StatusUnavailable)
	}

	out := fromReply(speech.LiveNow(live), domain.OutcomeLiveNow)
	out.LiveCount = len(live)
	return out
}

// zone prefers the zone carried by the request and otherwise asks the device
// settings. Failures leave it empty so the projector falls back to UTC
func (s *Service) zone(ctx context.Context, in domain.IntentRequest, log *logger.Logger) string {
	if in.UserTimezone != "" {
		return in.UserTimezone
	}
	d := in.Device
	if s.tz == nil || d.APIEndpoint == "" || d.APIAccessToken == "" || d.DeviceID == "" {
		return ""
	}
	z, err := s.tz.TimeZone(ctx, d)
	if err != nil {
		log.Warn().Err(err).Msg("device timezone lookup failed")
		return ""
	}
	return z
}

func (s *Service) record(ctx context.Context, in domain.IntentRequest, out domain.IntentResponse, at time.Time, elapsed time.Duration, log *logger.Logger) {
	if s.journal == nil {
		return
	}
	jctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), journalTimeout)
	defer cancel()

	err := s.journal.Record(jctx, domain.JournalEntry{
		RequestID: in.RequestID,
		Kind:      in.Kind,
		Intent:    in.IntentName,
		Outcome:   out.Outcome,
		Channel:   out.Channel,
		LiveCount: out.LiveCount,
		Elapsed:   elapsed,
		At:        at.UTC(),
	})
	if err != nil {
		log.Warn().Err(err).Msg("journal record failed")
	}
}

func toSchedule(in []catdom.StreamSession) []schedule.Session {
	out := make([]schedule.Session, len(in))
	for i, s := range in {
		out[i] = schedule.Session{ID: s.ID, ChannelID: s.ChannelID, UTCStart: s.UTCStartTime}
	}
	return out
}

func open(o domain.Outcome, text, reprompt string) domain.IntentResponse {
	return domain.IntentResponse{Speech: text, Reprompt: reprompt, Outcome: o}
}

func closed(o domain.Outcome, text string) domain.IntentResponse {
	return domain.IntentResponse{Speech: text, EndSession: true, Outcome: o}
}

func fromReply(r speech.Reply, o domain.Outcome) domain.IntentResponse {
	out := domain.IntentResponse{Speech: r.Speech, EndSession: true, Outcome: o}
	if r.Card != nil {
		out.Card = &domain.Card{Title: r.Card.Title, Body: r.Card.Body}
	}
	return out
}

func malformed(log *logger.Logger, why string) domain.IntentResponse {
	log.Warn().Str("why", why).Msg("malformed request")
	return domain.IntentResponse{Empty: true, Outcome: domain.OutcomeMalformed}
}
