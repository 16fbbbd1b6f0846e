package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidWindow = errors.New("invalid notification window")
	ErrInvalidVolume = errors.New("invalid volume")
)

// ParseWeight parses a body weight in kg, accepting "72", "72.5" or "72,5".
func ParseWeight(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "kg"))
	kg, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidWeight, s)
	}
	if err := ValidateWeight(kg); err != nil {
		return 0, err
	}
	return kg, nil
}

// ParseVolume parses a drink volume like "250" or "250ml". Constraints: 1..5000 ml.
func ParseVolume(s string) (int, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "ml"))
	if !isAllDigits(s) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidVolume, s)
	}
	ml, err := strconv.Atoi(s)
	if err != nil || ml < 1 || ml > MaxIntakeML {
		return 0, fmt.Errorf("%w: %q", ErrInvalidVolume, s)
	}
	return ml, nil
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// ParseActiveWindow parses "HH:MM–HH:MM" or "HH:MM-HH:MM" into minutes since midnight.
func ParseActiveWindow(s string) (fromM, toM int, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, fmt.Errorf("%w: empty", ErrInvalidWindow)
	}
	sep := "–"
	if strings.Contains(s, "-") && !strings.Contains(s, "–") {
		sep = "-"
	}
	parts := strings.Split(s, sep)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: expected format HH:MM–HH:MM", ErrInvalidWindow)
	}
	fromM, err = ParseHHMM(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("from: %w", err)
	}
	toM, err = ParseHHMM(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("to: %w", err)
	}
	if fromM == toM {
		return 0, 0, fmt.Errorf("%w: zero-length window", ErrInvalidWindow)
	}
	return fromM, toM, nil
}

// ParseHHMM parses "HH:MM" into minutes since midnight.
func ParseHHMM(s string) (int, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, errors.New("expected HH:MM")
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, errors.New("invalid hour")
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, errors.New("invalid minute")
	}
	return h*60 + m, nil
}

// ValidateTZ checks that the tz is a valid IANA location.
func ValidateTZ(tz string) (string, error) {
	tz = strings.TrimSpace(tz)
	if tz == "" {
		return "", errors.New("empty timezone")
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return "", err
	}
	return loc.String(), nil
}

// FormatMinutes returns HH:MM for minutes since midnight (00:00..23:59).
func FormatMinutes(mins int) string {
	if mins < 0 {
		mins = 0
	}
	mins %= minutesPerDay
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

// LocalizeTime formats t in user's timezone as HH:MM. Bad zones mean UTC.
func LocalizeTime(t time.Time, tz string) string {
	return t.In(LoadLocation(tz)).Format("15:04")
}
