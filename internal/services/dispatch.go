package services

import (
	"context"
	"strings"

	"github.com/chubberlisk/crypto-tech/internal/domain"
)

// RemindIndividually sends text once to each id. A failed send does not stop the
// batch; failures are collected and returned after every id has been attempted.
func (s *Service) RemindIndividually(ctx context.Context, ids []string, text string) error {
	var failures []domain.SendFailure
	sent := 0
	for _, id := range ids {
		if err := s.sink.PostMessage(ctx, id, text); err != nil {
			s.log.Error().Err(err).Str("target", id).Msg("reminder send failed")
			if s.metrics != nil {
				s.metrics.RecordSendFailure()
			}
			failures = append(failures, domain.SendFailure{Target: id, Err: err})
			continue
		}
		sent++
	}
	if s.metrics != nil {
		s.metrics.RecordRemindersSent(sent)
	}
	if len(failures) > 0 {
		return &domain.DispatchError{Failures: failures}
	}
	return nil
}

// Escalate posts one aggregated message to channel listing ids as mentions, or
// the all-submitted text when the roster is empty.
func (s *Service) Escalate(ctx context.Context, channel string, ids []string, header string) error {
	text := s.cfg.AllSubmittedText
	if len(ids) > 0 {
		text = EscalationText(header, ids)
	}
	if err := s.sink.PostMessage(ctx, channel, text); err != nil {
		if s.metrics != nil {
			s.metrics.RecordSendFailure()
		}
		return &domain.DispatchError{Failures: []domain.SendFailure{{Target: channel, Err: err}}}
	}
	if s.metrics != nil {
		s.metrics.RecordEscalation()
	}
	return nil
}

// EscalationText renders the header followed by one bullet per id, in the order
// the roster was produced. Callers must not re-sort.
func EscalationText(header string, ids []string) string {
	var b strings.Builder
	b.WriteString(header)
	for _, id := range ids {
		b.WriteString("\n• <@")
		b.WriteString(id)
		b.WriteString(">")
	}
	return b.String()
}
