package services

import (
	"context"
	"errors"
	"time"

	"github.com/chubberlisk/crypto-tech/internal/config"
	"github.com/chubberlisk/crypto-tech/internal/domain"
	"github.com/rs/zerolog"
)

type PeopleSource interface {
	ListPeople(ctx context.Context, roles []string) ([]domain.Person, error)
}

type TimeEntrySource interface {
	ListTimeEntries(ctx context.Context, from, to time.Time) ([]domain.TimeEntry, error)
}

type DirectorySource interface {
	ListIdentities(ctx context.Context) ([]domain.Identity, error)
}

type MessageSink interface {
	PostMessage(ctx context.Context, channel, text string) error
}

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

type Metrics interface {
	RecordRun(fired bool)
	RecordRemindersSent(n int)
	RecordEscalation()
	RecordSendFailure()
	RecordRetrievalFailure()
	SetLateRosterSize(n int)
}

type Service struct {
	cfg       config.Config
	log       zerolog.Logger
	people    PeopleSource
	entries   TimeEntrySource
	directory DirectorySource
	sink      MessageSink
	clock     Clock
	metrics   Metrics
}

func New(cfg config.Config, log zerolog.Logger, people PeopleSource, entries TimeEntrySource, directory DirectorySource, sink MessageSink, clock Clock, m Metrics) *Service {
	return &Service{cfg: cfg, log: log, people: people, entries: entries, directory: directory, sink: sink, clock: clock, metrics: m}
}

// Run evaluates the schedule gates against the injected clock and, when at least
// one fires, resolves the late roster and dispatches. Both gates are evaluated
// independently against the same instant: at 13:30 on Friday the reminder pass
// runs first and the escalation pass follows.
func (s *Service) Run(ctx context.Context) error {
	now := s.clock.Now()
	remind := ShouldRemind(now)
	escalate := ShouldEscalate(now)
	if s.metrics != nil {
		s.metrics.RecordRun(remind || escalate)
	}
	if !remind && !escalate {
		s.log.Debug().Time("now", now).Msg("run: outside trigger window")
		return nil
	}
	s.log.Info().Time("now", now).Bool("remind", remind).Bool("escalate", escalate).Msg("run: triggered")
	return s.runPasses(ctx, remind, escalate)
}

// RunReminderPass runs the individual-reminder pass regardless of the clock.
// Used by the admin trigger.
func (s *Service) RunReminderPass(ctx context.Context) error {
	return s.runPasses(ctx, true, false)
}

// RunEscalationPass runs the channel-escalation pass regardless of the clock.
func (s *Service) RunEscalationPass(ctx context.Context) error {
	return s.runPasses(ctx, false, true)
}

func (s *Service) runPasses(ctx context.Context, remind, escalate bool) error {
	from, to := workWindow(s.clock.Now())
	roster, err := s.LateRoster(ctx, from, to)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordRetrievalFailure()
		}
		return err
	}
	identities, err := s.directory.ListIdentities(ctx)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordRetrievalFailure()
		}
		return err
	}
	ids, err := MatchIdentities(roster, identities)
	if err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.SetLateRosterSize(len(ids))
	}
	s.log.Info().Int("late", len(ids)).Time("from", from).Time("to", to).Msg("late roster resolved")

	var errs []error
	if remind {
		if err := s.RemindIndividually(ctx, ids, s.cfg.ReminderText); err != nil {
			errs = append(errs, err)
		}
	}
	if escalate {
		if err := s.Escalate(ctx, s.cfg.Channel, ids, s.cfg.EscalationHeader); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// workWindow is the query range for the current week: Monday 00:00 through the
// current day.
func workWindow(now time.Time) (time.Time, time.Time) {
	wd := int(now.Weekday())
	if wd == 0 {
		wd = 7
	}
	monday := time.Date(now.Year(), now.Month(), now.Day()-(wd-1), 0, 0, 0, 0, now.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return monday, today
}
