package domain

import (
	"fmt"
	"math"
	"strings"
)

// GlassML is the volume of one glass; reminder counts are whole glasses.
const GlassML = 250

// GoalPolicy selects how the raw goal is turned into whole millilitres.
type GoalPolicy string

const (
	// PolicyRoundUp250 rounds up to the next glass. Scheduling always uses it.
	PolicyRoundUp250 GoalPolicy = "round250"
	// PolicyClamp truncates and clamps into [MinML, MaxML].
	PolicyClamp GoalPolicy = "clamp"
)

// ParseGoalPolicy maps a config value to a GoalPolicy, case-insensitively.
func ParseGoalPolicy(s string) (GoalPolicy, error) {
	switch p := GoalPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyRoundUp250, PolicyClamp:
		return p, nil
	}
	return "", fmt.Errorf("unknown goal policy %q", s)
}

// GoalInput holds everything the goal depends on.
type GoalInput struct {
	WeightKg    float64
	Gender      Gender
	Activity    ActivityLevel
	Mode        ActivityMode
	Temperature *float64 // nil when weather is unknown
}

// GoalInputFor builds the calculator input from a profile and an optional temperature.
func GoalInputFor(p *Profile, temp *float64) GoalInput {
	return GoalInput{
		WeightKg:    p.WeightKg,
		Gender:      p.Gender,
		Activity:    p.Activity,
		Mode:        p.Mode,
		Temperature: temp,
	}
}

// GoalCalculator maps a GoalInput to a daily goal in ml. It has no state
// besides its policy and is safe for concurrent use.
type GoalCalculator struct {
	Policy GoalPolicy
	MinML  int
	MaxML  int
}

// SchedulingGoal is the calculator the scheduler uses.
var SchedulingGoal = GoalCalculator{Policy: PolicyRoundUp250, MinML: 1000, MaxML: 5000}

// Daily returns the goal in ml.
func (c GoalCalculator) Daily(in GoalInput) int {
	raw := RawGoal(in)
	if c.Policy == PolicyClamp {
		g := int(raw)
		if g < c.MinML {
			g = c.MinML
		}
		if c.MaxML > 0 && g > c.MaxML {
			g = c.MaxML
		}
		return g
	}
	return RoundUpToGlass(raw)
}

// RawGoal is the unrounded goal: weight*30 scaled by gender, activity,
// weather bonus and activity mode.
func RawGoal(in GoalInput) float64 {
	ml := in.WeightKg * 30
	ml *= genderCoeff(in.Gender)
	ml *= activityCoeff(in.Activity)
	if in.Temperature != nil {
		ml *= 1 + float64(WeatherBonusPercent(*in.Temperature))/100
	}
	ml *= ModeCoeff(in.Mode)
	return ml
}

// WeatherBonusPercent gives 5 points per full 5°C above 20°C, at most 30.
func WeatherBonusPercent(tempC float64) int {
	if tempC <= 20 {
		return 0
	}
	bonus := int(math.Floor((tempC-20)/5)) * 5
	if bonus > 30 {
		bonus = 30
	}
	return bonus
}

// RoundUpToGlass rounds ml up to the next multiple of GlassML.
func RoundUpToGlass(ml float64) int {
	// Strip float noise such as 2500.0000000000005 so exact multiples stay put.
	ml = math.Round(ml*1e6) / 1e6
	return int(math.Ceil(ml/GlassML)) * GlassML
}

// GlassCount returns ceil(goal/250), at least 1.
func GlassCount(goalML int) int {
	n := (goalML + GlassML - 1) / GlassML
	if n < 1 {
		n = 1
	}
	return n
}

func genderCoeff(g Gender) float64 {
	if g == GenderMale {
		return 1.1
	}
	return 1.0
}

func activityCoeff(a ActivityLevel) float64 {
	switch a {
	case ActivityLow:
		return 1.0
	case ActivityHigh:
		return 1.2
	default:
		return 1.1
	}
}

// ModeCoeff is the multiplier of an activity mode.
func ModeCoeff(m ActivityMode) float64 {
	switch m {
	case ModeWorkout:
		return 1.3
	case ModeVacation:
		return 0.8
	default:
		return 1.0
	}
}
