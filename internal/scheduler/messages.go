package scheduler

import (
	"fmt"
	"math"
)

// MorningText opens the day with the weather snapshot and the goal.
func MorningText(goalML, glasses int, temp *float64, city string) string {
	return fmt.Sprintf("☀️ Good morning! Weather: %s. Daily goal: %d ml (%d glasses)",
		weatherLabel(temp, city), goalML, glasses)
}

// ReminderText nudges the user with what is left for the day.
func ReminderText(remainingML int) string {
	return fmt.Sprintf("💧 Time to hydrate! Remaining: %d ml", remainingML)
}

// EveningText summarizes the day.
func EveningText(currentML, goalML int) string {
	return fmt.Sprintf("🌙 Daily summary: %d of %d ml (%d%%)", currentML, goalML, Percent(currentML, goalML))
}

// Percent is the share of goal reached, rounded; 0 for a non-positive goal.
func Percent(currentML, goalML int) int {
	if goalML <= 0 {
		return 0
	}
	return int(math.Round(float64(currentML) * 100 / float64(goalML)))
}

func weatherLabel(temp *float64, city string) string {
	if temp == nil {
		return "N/A"
	}
	if city == "" {
		return fmt.Sprintf("%.0f°C", *temp)
	}
	return fmt.Sprintf("%.0f°C in %s", *temp, city)
}
