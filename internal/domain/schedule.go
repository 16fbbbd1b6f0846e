package domain

import (
	"math"
	"time"
)

const minutesPerDay = 24 * 60

// Window is a local notification window in minutes since midnight.
// EndM < StartM describes a window spanning midnight.
type Window struct {
	StartM int
	EndM   int
}

// Wraps reports whether the window crosses midnight.
func (w Window) Wraps() bool { return w.EndM < w.StartM }

// InWindow returns true if local time (minutes since midnight) is inside active window.
// Supports wrap-around windows like 22:00–02:00 (fromM > toM). Both ends are inclusive.
func InWindow(localM, fromM, toM int) bool {
	if fromM <= toM {
		return localM >= fromM && localM <= toM
	}
	// wrap: [from..1440) U [0..to]
	return localM >= fromM || localM <= toM
}

// Generate spreads count reminder times evenly over [startM, endM], both ends
// included, and returns them as "HH:MM". For a window spanning midnight the
// end is moved one day ahead and results wrap mod 1440.
func Generate(startM, endM, count int) []string {
	mins := GenerateMinutes(startM, endM, count)
	out := make([]string, len(mins))
	for i, m := range mins {
		out[i] = FormatMinutes(m % minutesPerDay)
	}
	return out
}

// GenerateMinutes is Generate on the virtual timeline: values are minutes
// from the start day's midnight and may exceed 1439 for wrapping windows.
func GenerateMinutes(startM, endM, count int) []int {
	if count <= 1 {
		return []int{startM}
	}
	if endM < startM {
		endM += minutesPerDay
	}
	interval := float64(endM-startM) / float64(count-1)
	out := make([]int, count)
	for i := range out {
		out[i] = startM + int(math.Round(float64(i)*interval))
	}
	return out
}

// ReminderKind classifies an event by its position in the day.
type ReminderKind int

const (
	KindReminder ReminderKind = iota // intermediate
	KindMorning                      // first of the day
	KindEvening                      // last of the day
)

func (k ReminderKind) String() string {
	switch k {
	case KindMorning:
		return "morning"
	case KindEvening:
		return "evening"
	default:
		return "reminder"
	}
}

// KindAt classifies position i of n scheduled events.
func KindAt(i, n int) ReminderKind {
	switch {
	case i == 0:
		return KindMorning
	case i == n-1:
		return KindEvening
	default:
		return KindReminder
	}
}

// DailySchedule is the reminder plan of one user for one local date.
type DailySchedule struct {
	ID          int64
	UserID      int64
	LocalDate   string // YYYY-MM-DD, the day the window starts
	GeneratedAt time.Time
	GoalML      int
	Temperature *float64 // weather snapshot used for the goal
	City        string   // city of the snapshot
	TZ          string
	Events      []ReminderEvent
}

// Times returns the scheduled "HH:MM" list in order.
func (s *DailySchedule) Times() []string {
	out := make([]string, len(s.Events))
	for i, e := range s.Events {
		out[i] = e.LocalTime
	}
	return out
}

// ReminderEvent is one scheduled firing within a DailySchedule.
type ReminderEvent struct {
	ID         int64
	ScheduleID int64
	LocalTime  string    // "HH:MM"
	DueAt      time.Time // UTC instant of LocalTime on the schedule's date
	Kind       ReminderKind
	Sent       bool
	SentAt     *time.Time
}

// DueEvent is an unsent event joined with what delivery needs.
type DueEvent struct {
	ReminderEvent
	UserID      int64
	LocalDate   string
	GoalML      int
	Glasses     int
	Temperature *float64
	City        string // city of the weather snapshot
	TZ          string
	Mode        ActivityMode
}

// BuildSchedule lays out count events over the window for localDate in tz.
func BuildSchedule(userID int64, localDate, tz string, w Window, goalML int, temp *float64, now time.Time) (*DailySchedule, error) {
	day, err := time.Parse(DateLayout, localDate)
	if err != nil {
		return nil, err
	}
	loc := LoadLocation(tz)
	mins := GenerateMinutes(w.StartM, w.EndM, GlassCount(goalML))
	s := &DailySchedule{
		UserID:      userID,
		LocalDate:   localDate,
		GeneratedAt: now.UTC(),
		GoalML:      goalML,
		Temperature: temp,
		TZ:          tz,
		Events:      make([]ReminderEvent, len(mins)),
	}
	for i, m := range mins {
		s.Events[i] = ReminderEvent{
			LocalTime: FormatMinutes(m % minutesPerDay),
			DueAt:     time.Date(day.Year(), day.Month(), day.Day(), 0, m, 0, 0, loc).UTC(),
			Kind:      KindAt(i, len(mins)),
		}
	}
	return s, nil
}

// WindowDate returns the local date whose window covers localNow: for a
// wrapping window, the early-morning part belongs to the previous day.
func WindowDate(localNow time.Time, w Window) string {
	m := localNow.Hour()*60 + localNow.Minute()
	if w.Wraps() && m <= w.EndM {
		return localNow.AddDate(0, 0, -1).Format(DateLayout)
	}
	return localNow.Format(DateLayout)
}
