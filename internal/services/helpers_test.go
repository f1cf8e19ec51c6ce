package services

import (
	"context"
	"time"

	"github.com/chubberlisk/crypto-tech/internal/config"
	"github.com/chubberlisk/crypto-tech/internal/domain"
)

func testConfig() config.Config {
	return config.Config{
		BillableRoles:    []string{"Developer"},
		ThresholdHours:   35,
		Channel:          "#timesheets",
		ReminderText:     "Please make sure your timesheet is submitted by 13:30 on Friday.",
		EscalationHeader: "These are the people yet to submit time sheets:",
		AllSubmittedText: "Everyone has submitted their timesheets!",
	}
}

type stubPeople struct {
	people []domain.Person
	err    error
}

func (s stubPeople) ListPeople(ctx context.Context, roles []string) ([]domain.Person, error) {
	return s.people, s.err
}

type stubEntries struct {
	entries []domain.TimeEntry
	err     error
}

func (s stubEntries) ListTimeEntries(ctx context.Context, from, to time.Time) ([]domain.TimeEntry, error) {
	return s.entries, s.err
}

type stubDirectory struct {
	identities []domain.Identity
	err        error
}

func (s stubDirectory) ListIdentities(ctx context.Context) ([]domain.Identity, error) {
	return s.identities, s.err
}

type postCall struct {
	channel string
	text    string
}

type spySink struct {
	calls   []postCall
	failFor map[string]error
}

func (s *spySink) PostMessage(ctx context.Context, channel, text string) error {
	s.calls = append(s.calls, postCall{channel: channel, text: text})
	if err, ok := s.failFor[channel]; ok {
		return err
	}
	return nil
}

type fixedClock struct {
	t time.Time
}

func (c *fixedClock) Now() time.Time { return c.t }

func person(id int64, email string) domain.Person {
	return domain.Person{ID: domain.PersonID(id), Email: email, IsActive: true, Roles: []string{"Developer"}}
}

func entry(id, personID int64, hours float64) domain.TimeEntry {
	return domain.TimeEntry{ID: id, PersonID: domain.PersonID(personID), Hours: hours}
}
