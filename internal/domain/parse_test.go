package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParseActiveWindow(t *testing.T) {
	cases := []struct {
		in       string
		from, to int
		wantErr  bool
	}{
		{"08:00-22:00", 480, 1320, false},
		{"09:00–21:00", 540, 1260, false},
		{" 22:00 - 02:00 ", 1320, 120, false},
		{"10:00-10:00", 0, 0, true},
		{"25:00-10:00", 0, 0, true},
		{"08:00", 0, 0, true},
		{"", 0, 0, true},
	}
	for _, c := range cases {
		from, to, err := ParseActiveWindow(c.in)
		if c.wantErr {
			if err == nil {
				t.Fatalf("%q: expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: %v", c.in, err)
		}
		if from != c.from || to != c.to {
			t.Fatalf("%q: want %d-%d, got %d-%d", c.in, c.from, c.to, from, to)
		}
	}
}

func TestParseWeight(t *testing.T) {
	if kg, err := ParseWeight("72,5 kg"); err != nil || kg != 72.5 {
		t.Fatalf("want 72.5, got %v (%v)", kg, err)
	}
	for _, in := range []string{"29", "201", "abc", ""} {
		if _, err := ParseWeight(in); !errors.Is(err, ErrInvalidWeight) {
			t.Fatalf("%q: want ErrInvalidWeight, got %v", in, err)
		}
	}
}

func TestParseVolume(t *testing.T) {
	if ml, err := ParseVolume("330ml"); err != nil || ml != 330 {
		t.Fatalf("want 330, got %d (%v)", ml, err)
	}
	for _, in := range []string{"0", "5001", "-5", "1.5"} {
		if _, err := ParseVolume(in); !errors.Is(err, ErrInvalidVolume) {
			t.Fatalf("%q: want ErrInvalidVolume, got %v", in, err)
		}
	}
}

func TestNewIntake_EffectiveVolumeAndLocalDate(t *testing.T) {
	now := mustLocalUTC(t, "Asia/Tokyo", 2025, time.March, 2, 0, 30)
	in := NewIntake(7, 500, DrinkCoffee, "Asia/Tokyo", now)
	if in.EffectiveML != 400 {
		t.Fatalf("want 400 effective ml, got %d", in.EffectiveML)
	}
	if in.LocalDate != "2025-03-02" {
		t.Fatalf("want local date 2025-03-02, got %s", in.LocalDate)
	}
	if _, err := ParseDrinkType("milkshake"); !errors.Is(err, ErrUnknownDrink) {
		t.Fatalf("want ErrUnknownDrink, got %v", err)
	}
}

func TestIntakeFor_OvernightWindowDate(t *testing.T) {
	p := NewProfile(7, "Asia/Tokyo", time.Now())
	p.WindowStartM, p.WindowEndM = 22*60, 2*60
	now := mustLocalUTC(t, "Asia/Tokyo", 2025, time.March, 2, 0, 30)
	if in := IntakeFor(p, 250, DrinkWater, now); in.LocalDate != "2025-03-01" {
		t.Fatalf("want window date 2025-03-01, got %s", in.LocalDate)
	}
	p.WindowStartM, p.WindowEndM = 8*60, 22*60
	if in := IntakeFor(p, 250, DrinkWater, now); in.LocalDate != "2025-03-02" {
		t.Fatalf("want 2025-03-02, got %s", in.LocalDate)
	}
}

func TestLocalize_BadZoneFallsBackToUTC(t *testing.T) {
	now := time.Date(2025, time.December, 31, 23, 30, 0, 0, time.UTC)
	for _, tz := range []string{"", "Mars/Olympus", "not a zone"} {
		local, date := Localize(now, tz)
		if local.Location() != time.UTC || date != "2025-12-31" {
			t.Fatalf("%q: want UTC 2025-12-31, got %v %s", tz, local.Location(), date)
		}
	}
	_, date := Localize(now, "Asia/Almaty")
	if date != "2026-01-01" {
		t.Fatalf("Asia/Almaty: want 2026-01-01, got %s", date)
	}
}

func TestProfileValidate(t *testing.T) {
	p := NewProfile(1, "UTC", time.Now())
	if err := p.Validate(); !errors.Is(err, ErrProfileIncomplete) {
		t.Fatalf("new profile: want ErrProfileIncomplete, got %v", err)
	}
	p.WeightKg = 70
	if err := p.Validate(); err != nil {
		t.Fatalf("complete profile: %v", err)
	}
	p.Mode = "party"
	if err := p.Validate(); !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("want ErrUnknownMode, got %v", err)
	}
}
