package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

var ErrUnknownDrink = errors.New("unknown drink type")

// MaxIntakeML bounds a single logged drink.
const MaxIntakeML = 5000

type DrinkType string

const (
	DrinkWater  DrinkType = "water"
	DrinkTea    DrinkType = "tea"
	DrinkCoffee DrinkType = "coffee"
	DrinkJuice  DrinkType = "juice"
	DrinkSoda   DrinkType = "soda"
)

var drinkCoefficients = map[DrinkType]float64{
	DrinkWater:  1.0,
	DrinkTea:    0.9,
	DrinkCoffee: 0.8,
	DrinkJuice:  0.7,
	DrinkSoda:   0.5,
}

func ParseDrinkType(s string) (DrinkType, error) {
	d := DrinkType(strings.ToLower(strings.TrimSpace(s)))
	if d == "" {
		return DrinkWater, nil
	}
	if _, ok := drinkCoefficients[d]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownDrink, s)
	}
	return d, nil
}

// Coefficient is the share of a drink's volume that counts as hydration.
func (d DrinkType) Coefficient() float64 {
	if k, ok := drinkCoefficients[d]; ok {
		return k
	}
	return 1.0
}

// Intake is one logged drink.
type Intake struct {
	UserID      int64
	VolumeML    int
	EffectiveML int
	Drink       DrinkType
	LocalDate   string
	LoggedAt    time.Time // UTC
}

// NewIntake computes the effective volume and the local date for a drink logged at now.
func NewIntake(userID int64, volumeML int, drink DrinkType, tz string, now time.Time) Intake {
	_, date := Localize(now, tz)
	return Intake{
		UserID:      userID,
		VolumeML:    volumeML,
		EffectiveML: int(math.Round(float64(volumeML) * drink.Coefficient())),
		Drink:       drink,
		LocalDate:   date,
		LoggedAt:    now.UTC(),
	}
}

// IntakeFor is NewIntake keyed by the profile's window date, so drinks logged
// after midnight inside an overnight window count toward that window's goal.
func IntakeFor(p *Profile, volumeML int, drink DrinkType, now time.Time) Intake {
	in := NewIntake(p.UserID, volumeML, drink, p.TZ, now)
	local, _ := Localize(now, p.TZ)
	in.LocalDate = WindowDate(local, p.Window())
	return in
}
