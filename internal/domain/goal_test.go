package domain

import "testing"

func ptr(v float64) *float64 { return &v }

func TestDailyGoal_Scenarios(t *testing.T) {
	base := GoalInput{WeightKg: 70, Gender: GenderMale, Activity: ActivityMedium, Mode: ModeNormal}

	tests := []struct {
		name string
		in   func() GoalInput
		want int
	}{
		{"no weather", func() GoalInput { return base }, 2750},
		{"hot day", func() GoalInput { in := base; in.Temperature = ptr(31); return in }, 3000},
		{"cool day no bonus", func() GoalInput { in := base; in.Temperature = ptr(12); return in }, 2750},
		{"workout", func() GoalInput { in := base; in.Mode = ModeWorkout; return in }, 3500},
		{"vacation", func() GoalInput { in := base; in.Mode = ModeVacation; return in }, 2250},
		{"female low exact multiple", func() GoalInput {
			return GoalInput{WeightKg: 50, Gender: GenderFemale, Activity: ActivityLow, Mode: ModeNormal}
		}, 1500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SchedulingGoal.Daily(tt.in()); got != tt.want {
				t.Errorf("want %d, got %d", tt.want, got)
			}
		})
	}
}

func TestWeatherBonusPercent(t *testing.T) {
	cases := map[float64]int{
		-5: 0, 20: 0, 24.9: 0, 25: 5, 31: 10, 35: 15, 49.9: 25, 50: 30, 65: 30,
	}
	for temp, want := range cases {
		if got := WeatherBonusPercent(temp); got != want {
			t.Errorf("temp %.1f: want %d, got %d", temp, want, got)
		}
	}
}

func TestDailyGoal_MonotonicInTemperatureAndCapped(t *testing.T) {
	in := GoalInput{WeightKg: 82, Gender: GenderFemale, Activity: ActivityHigh, Mode: ModeNormal}
	noWeather := RawGoal(in)
	prev := 0
	for temp := 20.0; temp <= 60; temp += 0.5 {
		in.Temperature = ptr(temp)
		got := SchedulingGoal.Daily(in)
		if got < prev {
			t.Fatalf("goal decreased at %.1f°C: %d < %d", temp, got, prev)
		}
		prev = got
		if RawGoal(in) > noWeather*1.3+1e-9 {
			t.Fatalf("bonus above 30%% at %.1f°C", temp)
		}
	}
}

func TestDailyGoal_AlwaysWholeGlasses(t *testing.T) {
	modes := []ActivityMode{ModeNormal, ModeWorkout, ModeFocus, ModeVacation}
	levels := []ActivityLevel{ActivityLow, ActivityMedium, ActivityHigh}
	for w := MinWeightKg; w <= MaxWeightKg; w += 7 {
		for _, g := range []Gender{GenderMale, GenderFemale} {
			for _, a := range levels {
				for _, m := range modes {
					in := GoalInput{WeightKg: float64(w), Gender: g, Activity: a, Mode: m, Temperature: ptr(float64(w % 45))}
					got := SchedulingGoal.Daily(in)
					if got%GlassML != 0 || float64(got)+1e-6 < RawGoal(in) {
						t.Fatalf("%+v: goal %d not the next glass above %.2f", in, got, RawGoal(in))
					}
					if again := SchedulingGoal.Daily(in); again != got {
						t.Fatalf("%+v: not deterministic (%d vs %d)", in, got, again)
					}
				}
			}
		}
	}
}

func TestDailyGoal_ClampPolicy(t *testing.T) {
	c := GoalCalculator{Policy: PolicyClamp, MinML: 1000, MaxML: 5000}
	tiny := GoalInput{WeightKg: 30, Gender: GenderFemale, Activity: ActivityLow, Mode: ModeVacation}
	if got := c.Daily(tiny); got != 1000 {
		t.Errorf("lower clamp: want 1000, got %d", got)
	}
	huge := GoalInput{WeightKg: 200, Gender: GenderMale, Activity: ActivityHigh, Mode: ModeWorkout, Temperature: ptr(45)}
	if got := c.Daily(huge); got != 5000 {
		t.Errorf("upper clamp: want 5000, got %d", got)
	}
	mid := GoalInput{WeightKg: 70, Gender: GenderMale, Activity: ActivityMedium, Mode: ModeNormal}
	if got := c.Daily(mid); got != 2541 {
		t.Errorf("in band: want 2541, got %d", got)
	}
}

func TestGlassCount(t *testing.T) {
	cases := map[int]int{0: 1, 100: 1, 250: 1, 251: 2, 2750: 11, 3000: 12}
	for goal, want := range cases {
		if got := GlassCount(goal); got != want {
			t.Errorf("goal %d: want %d, got %d", goal, want, got)
		}
	}
}

func TestParseGoalPolicy(t *testing.T) {
	if p, err := ParseGoalPolicy(" Clamp "); err != nil || p != PolicyClamp {
		t.Fatalf("want clamp, got %q (%v)", p, err)
	}
	if _, err := ParseGoalPolicy("ceil"); err == nil {
		t.Fatalf("want error for unknown policy")
	}
}
