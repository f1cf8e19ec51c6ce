package services

import "time"

// Trigger predicates. Pure functions of the instant; nothing is remembered
// between evaluations, so two calls within the same half hour both fire.

// onHalfHourGrid reports whether t lands exactly on a half-hour boundary.
func onHalfHourGrid(t time.Time) bool {
	return t.Minute()%30 == 0 && t.Second() == 0 && t.Nanosecond() == 0
}

// withinReminderHours reports whether t is before 14:00 local time.
func withinReminderHours(t time.Time) bool {
	return t.Hour() < 14
}

func targetDay(t time.Time) bool {
	return t.Weekday() == time.Friday
}

// ShouldRemind gates the individual-reminder pass: every half hour on Fridays up
// to but excluding 14:00.
func ShouldRemind(t time.Time) bool {
	return onHalfHourGrid(t) && withinReminderHours(t) && targetDay(t)
}

// ShouldEscalate gates the channel escalation: exactly 13:30 on Fridays. It is
// independent of ShouldRemind; both fire at that instant.
func ShouldEscalate(t time.Time) bool {
	return onHalfHourGrid(t) && t.Hour() == 13 && t.Minute() == 30 && targetDay(t)
}
