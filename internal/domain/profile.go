package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidWeight     = errors.New("weight must be between 30 and 200 kg")
	ErrUnknownGender     = errors.New("unknown gender")
	ErrUnknownActivity   = errors.New("unknown activity level")
	ErrUnknownMode       = errors.New("unknown activity mode")
	ErrProfileIncomplete = errors.New("profile incomplete")
)

const (
	MinWeightKg = 30
	MaxWeightKg = 200
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

type ActivityLevel string

const (
	ActivityLow    ActivityLevel = "low"
	ActivityMedium ActivityLevel = "medium"
	ActivityHigh   ActivityLevel = "high"
)

type ActivityMode string

const (
	ModeNormal   ActivityMode = "normal"
	ModeWorkout  ActivityMode = "workout"
	ModeFocus    ActivityMode = "focus"
	ModeVacation ActivityMode = "vacation"
)

// Profile represents per-user physiology, location and notification settings.
type Profile struct {
	UserID               int64
	WeightKg             float64 // 0 until registration sets it
	Gender               Gender
	Activity             ActivityLevel
	Mode                 ActivityMode
	City                 string // free text, weather only
	TZ                   string // IANA name; validated at every use
	WindowStartM         int    // minutes from midnight (0..1439)
	WindowEndM           int    // minutes from midnight (0..1439)
	NotificationsEnabled bool
	RegistrationComplete bool
	CreatedAt            time.Time // UTC
	UpdatedAt            time.Time // UTC
}

// NewProfile returns a profile with the defaults used on first contact.
func NewProfile(userID int64, tz string, now time.Time) *Profile {
	return &Profile{
		UserID:               userID,
		Gender:               GenderMale,
		Activity:             ActivityMedium,
		Mode:                 ModeNormal,
		TZ:                   tz,
		WindowStartM:         8 * 60,
		WindowEndM:           22 * 60,
		NotificationsEnabled: true,
		CreatedAt:            now.UTC(),
		UpdatedAt:            now.UTC(),
	}
}

// Validate checks the fields the goal calculator depends on.
func (p *Profile) Validate() error {
	if p.WeightKg < MinWeightKg || p.WeightKg > MaxWeightKg {
		return fmt.Errorf("%w: weight %.1f", ErrProfileIncomplete, p.WeightKg)
	}
	if _, err := ParseGender(string(p.Gender)); err != nil {
		return err
	}
	if _, err := ParseActivityLevel(string(p.Activity)); err != nil {
		return err
	}
	if _, err := ParseActivityMode(string(p.Mode)); err != nil {
		return err
	}
	return nil
}

// Window returns the notification window of the profile.
func (p *Profile) Window() Window {
	return Window{StartM: p.WindowStartM, EndM: p.WindowEndM}
}

// ValidateWeight rejects weights outside the supported range.
func ValidateWeight(kg float64) error {
	if kg < MinWeightKg || kg > MaxWeightKg {
		return ErrInvalidWeight
	}
	return nil
}

func ParseGender(s string) (Gender, error) {
	switch Gender(strings.ToLower(strings.TrimSpace(s))) {
	case GenderMale, "m":
		return GenderMale, nil
	case GenderFemale, "f":
		return GenderFemale, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGender, s)
}

func ParseActivityLevel(s string) (ActivityLevel, error) {
	switch a := ActivityLevel(strings.ToLower(strings.TrimSpace(s))); a {
	case ActivityLow, ActivityMedium, ActivityHigh:
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownActivity, s)
}

func ParseActivityMode(s string) (ActivityMode, error) {
	switch m := ActivityMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeNormal, ModeWorkout, ModeFocus, ModeVacation:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Field names a profile attribute; used to decide whether an edit affects the schedule.
type Field string

const (
	FieldWeight   Field = "weight"
	FieldGender   Field = "gender"
	FieldActivity Field = "activity_level"
	FieldMode     Field = "mode"
	FieldCity     Field = "city"
	FieldTimezone Field = "timezone"
	FieldWindow   Field = "window"
)

// AffectsSchedule reports whether a change to any of the fields requires a reschedule.
func AffectsSchedule(fields ...Field) bool {
	for _, f := range fields {
		switch f {
		case FieldWeight, FieldGender, FieldActivity, FieldMode, FieldCity, FieldTimezone, FieldWindow:
			return true
		}
	}
	return false
}
