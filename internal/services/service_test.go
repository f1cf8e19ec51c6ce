package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chubberlisk/crypto-tech/internal/domain"
	"github.com/rs/zerolog"
)

func triggeredService(sink *spySink, clock *fixedClock) *Service {
	people := stubPeople{people: []domain.Person{
		person(1, "rob@example.com"),
		person(2, "bat@example.com"),
		person(3, "alf@example.com"),
	}}
	directory := stubDirectory{identities: []domain.Identity{
		{ID: "W123AROB", Email: "rob@example.com"},
		{ID: "W345ABAT", Email: "bat@example.com"},
		{ID: "W345ALFR", Email: "alf@example.com"},
	}}
	return New(testConfig(), zerolog.Nop(), people, stubEntries{}, directory, sink, clock, nil)
}

func TestRun_OutsideTriggerWindowTouchesNothing(t *testing.T) {
	sink := &spySink{}
	// A people source that errors: the run must return nil without reaching it.
	svc := New(testConfig(), zerolog.Nop(),
		stubPeople{err: errors.New("should not be called")},
		stubEntries{}, stubDirectory{}, sink,
		&fixedClock{t: friday(10, 45, 0)}, nil)
	if err := svc.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(sink.calls) != 0 {
		t.Fatalf("expected no sends off grid, got %d", len(sink.calls))
	}
}

func TestRun_ReminderPassSendsOneMessagePerLatePerson(t *testing.T) {
	sink := &spySink{}
	svc := triggeredService(sink, &fixedClock{t: friday(10, 30, 0)})
	if err := svc.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(sink.calls) != 3 {
		t.Fatalf("expected 3 sends, got %d", len(sink.calls))
	}
	for i, want := range []string{"W123AROB", "W345ABAT", "W345ALFR"} {
		if sink.calls[i].channel != want {
			t.Fatalf("expected send %d to %s, got %#v", i, want, sink.calls[i])
		}
		if sink.calls[i].text != "Please make sure your timesheet is submitted by 13:30 on Friday." {
			t.Fatalf("unexpected reminder text: %q", sink.calls[i].text)
		}
	}
}

func TestRun_BothPassesFireAtHalfPastOne(t *testing.T) {
	sink := &spySink{}
	svc := triggeredService(sink, &fixedClock{t: friday(13, 30, 0)})
	if err := svc.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	// Reminder pass first (3 direct messages), then one channel escalation.
	if len(sink.calls) != 4 {
		t.Fatalf("expected 4 sends at 13:30, got %d", len(sink.calls))
	}
	last := sink.calls[3]
	if last.channel != "#timesheets" {
		t.Fatalf("expected escalation to channel, got %#v", last)
	}
	want := "These are the people yet to submit time sheets:\n• <@W123AROB>\n• <@W345ABAT>\n• <@W345ALFR>"
	if last.text != want {
		t.Fatalf("escalation text mismatch:\nwant %q\ngot  %q", want, last.text)
	}
}

func TestRun_RepeatedInvocationsAccumulateOnGridOnly(t *testing.T) {
	sink := &spySink{}
	clock := &fixedClock{}
	svc := triggeredService(sink, clock)

	// Tick every 15 minutes from 10:30 to 13:30; only half-hour instants fire,
	// and the final instant adds the escalation on top of the reminder pass.
	total := 0
	for at := friday(10, 30, 0); !at.After(friday(13, 30, 0)); at = at.Add(15 * time.Minute) {
		clock.t = at
		if err := svc.Run(context.Background()); err != nil {
			t.Fatalf("Run at %s: %v", at, err)
		}
		if at.Minute()%30 == 0 {
			total += 3
			if at.Hour() == 13 && at.Minute() == 30 {
				total++
			}
		}
		if len(sink.calls) != total {
			t.Fatalf("at %s expected %d cumulative sends, got %d", at, total, len(sink.calls))
		}
	}
	if len(sink.calls) != 7*3+1 {
		t.Fatalf("expected 22 total sends, got %d", len(sink.calls))
	}
}

func TestRun_IdentityMismatchAbortsBeforeAnySend(t *testing.T) {
	sink := &spySink{}
	people := stubPeople{people: []domain.Person{person(1, "nowhere@example.com")}}
	svc := New(testConfig(), zerolog.Nop(), people, stubEntries{}, stubDirectory{}, sink,
		&fixedClock{t: friday(10, 30, 0)}, nil)
	err := svc.Run(context.Background())
	var me *domain.IdentityMatchError
	if !errors.As(err, &me) {
		t.Fatalf("expected IdentityMatchError, got %v", err)
	}
	if len(sink.calls) != 0 {
		t.Fatalf("expected no sends on identity mismatch, got %d", len(sink.calls))
	}
}

func TestRun_RetrievalFailureAbortsBeforeAnySend(t *testing.T) {
	sink := &spySink{}
	svc := New(testConfig(), zerolog.Nop(),
		stubPeople{err: &domain.RetrievalError{Resource: "harvest users", Err: errors.New("503")}},
		stubEntries{}, stubDirectory{}, sink,
		&fixedClock{t: friday(10, 30, 0)}, nil)
	err := svc.Run(context.Background())
	var re *domain.RetrievalError
	if !errors.As(err, &re) {
		t.Fatalf("expected RetrievalError, got %v", err)
	}
	if len(sink.calls) != 0 {
		t.Fatalf("expected no sends on retrieval failure, got %d", len(sink.calls))
	}
}

func TestWorkWindow_StartsOnMonday(t *testing.T) {
	from, to := workWindow(friday(10, 30, 0))
	if from.Weekday() != time.Monday || from.Day() != 25 {
		t.Fatalf("expected window to start Monday 2019-02-25, got %s", from)
	}
	if to.Day() != 1 || to.Month() != time.March {
		t.Fatalf("expected window to end on the current day, got %s", to)
	}
}
