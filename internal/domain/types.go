package domain

import "time"

// PersonID is the Harvest-side user identifier.
type PersonID int64

// Person is a directory entry on the time-tracking side.
// WeeklyCapacity is in seconds, as Harvest reports it.
type Person struct {
	ID             PersonID
	FirstName      string
	LastName       string
	Email          string
	IsActive       bool
	Roles          []string
	WeeklyCapacity int
}

// TimeEntry is one logged unit of work for one person on one date.
type TimeEntry struct {
	ID        int64
	PersonID  PersonID
	SpentDate time.Time
	Hours     float64
	IsClosed  bool
	ProjectID int64
}

// Identity is a messaging-directory entry, used only for email matching.
type Identity struct {
	ID    string
	Email string
}

// HasAnyRole reports whether the person's role set intersects roles.
func (p Person) HasAnyRole(roles []string) bool {
	for _, want := range roles {
		for _, have := range p.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}
