package services

import (
	"testing"
	"time"
)

// 2019-03-01 is a Friday.
func friday(hour, min, sec int) time.Time {
	return time.Date(2019, time.March, 1, hour, min, sec, 0, time.UTC)
}

func TestShouldRemind_FiresOnHalfHourGridBeforeTwoPM(t *testing.T) {
	for hour := 10; hour <= 13; hour++ {
		for _, min := range []int{0, 30} {
			at := friday(hour, min, 0)
			if !ShouldRemind(at) {
				t.Errorf("expected remind at %s", at)
			}
		}
	}
}

func TestShouldRemind_DoesNotFireOffGrid(t *testing.T) {
	cases := []time.Time{
		friday(10, 45, 0),
		friday(10, 15, 0),
		friday(10, 30, 1),
		friday(10, 30, 0).Add(500 * time.Millisecond),
	}
	for _, at := range cases {
		if ShouldRemind(at) {
			t.Errorf("expected no remind at %s", at)
		}
	}
}

func TestShouldRemind_DoesNotFireFromTwoPM(t *testing.T) {
	if ShouldRemind(friday(14, 0, 0)) {
		t.Errorf("expected no remind at 14:00")
	}
	if ShouldRemind(friday(14, 30, 0)) {
		t.Errorf("expected no remind at 14:30")
	}
	if !ShouldRemind(friday(13, 30, 0)) {
		t.Errorf("expected remind at 13:30")
	}
}

func TestShouldRemind_OnlyOnFriday(t *testing.T) {
	thursday := time.Date(2019, time.February, 28, 10, 30, 0, 0, time.UTC)
	if ShouldRemind(thursday) {
		t.Errorf("expected no remind on Thursday")
	}
}

func TestShouldEscalate_OnlyAtHalfPastOneOnFriday(t *testing.T) {
	if !ShouldEscalate(friday(13, 30, 0)) {
		t.Fatalf("expected escalation at Friday 13:30")
	}
	cases := []time.Time{
		friday(13, 0, 0),
		friday(13, 30, 1),
		friday(12, 30, 0),
		friday(14, 30, 0),
		time.Date(2019, time.February, 28, 13, 30, 0, 0, time.UTC),
	}
	for _, at := range cases {
		if ShouldEscalate(at) {
			t.Errorf("expected no escalation at %s", at)
		}
	}
}

func TestShouldRemindAndEscalate_BothFireAtHalfPastOne(t *testing.T) {
	at := friday(13, 30, 0)
	if !ShouldRemind(at) || !ShouldEscalate(at) {
		t.Fatalf("expected both triggers at Friday 13:30")
	}
}
