package services

import (
	"context"
	"time"

	"github.com/chubberlisk/crypto-tech/internal/domain"
)

// LateRoster returns the people whose summed hours in [from, to] fall strictly
// below the threshold. People with no entries at all sum to zero. Order follows
// the people listing; the sources already restrict to active billable roles.
func (s *Service) LateRoster(ctx context.Context, from, to time.Time) ([]domain.Person, error) {
	people, err := s.people.ListPeople(ctx, s.cfg.BillableRoles)
	if err != nil {
		return nil, err
	}
	entries, err := s.entries.ListTimeEntries(ctx, from, to)
	if err != nil {
		return nil, err
	}

	hours := make(map[domain.PersonID]float64, len(people))
	for _, e := range entries {
		hours[e.PersonID] += e.Hours
	}

	seen := make(map[domain.PersonID]bool, len(people))
	var late []domain.Person
	for _, p := range people {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		if hours[p.ID] < s.cfg.ThresholdHours {
			late = append(late, p)
		}
	}
	return late, nil
}

// MatchIdentities maps each person to their messaging id by exact email equality.
// Exactly one directory match is required per person; zero or multiple matches
// fail the whole batch rather than shortening the roster. Output preserves input
// order.
func MatchIdentities(people []domain.Person, identities []domain.Identity) ([]string, error) {
	ids := make([]string, 0, len(people))
	for _, p := range people {
		matched := ""
		count := 0
		for _, id := range identities {
			if id.Email == p.Email {
				matched = id.ID
				count++
			}
		}
		if count != 1 {
			return nil, &domain.IdentityMatchError{Email: p.Email, Matches: count}
		}
		ids = append(ids, matched)
	}
	return ids, nil
}
