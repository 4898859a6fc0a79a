// Package calories computes daily calorie intake recommendations with the
// Mifflin-St Jeor equation.
package calories

import (
	"fmt"
	"math"
	"strings"
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

type Target string

const (
	TargetMuscleGain Target = "muscle gain"
	TargetWeightLoss Target = "weight loss"
	TargetNone       Target = ""
)

var activityMultipliers = map[ActivityLevel]float64{
	ActivityLow:    1.2,
	ActivityMedium: 1.55,
	ActivityHigh:   1.9,
}

const (
	muscleGainAdjustment = 150
	weightLossAdjustment = -200
)

type Params struct {
	Age           int
	WeightKilos   float64
	HeightCentims float64
	Gender        Gender
	ActivityLevel ActivityLevel
	Target        Target
}

func ParseGender(s string) (Gender, error) {
	g := Gender(strings.ToLower(s))
	if g != GenderMale && g != GenderFemale {
		return "", fmt.Errorf("invalid gender %q", s)
	}
	return g, nil
}

func ParseActivityLevel(s string) (ActivityLevel, error) {
	al := ActivityLevel(strings.ToLower(s))
	if _, ok := activityMultipliers[al]; !ok {
		return "", fmt.Errorf("invalid activity level %q", s)
	}
	return al, nil
}

// ParseTarget normalizes the fitness target. Unknown targets are not an
// error, they just leave the recommendation unadjusted.
func ParseTarget(s string) Target {
	return Target(strings.ToLower(s))
}

func (p Params) validate() error {
	if p.Age <= 0 {
		return fmt.Errorf("invalid age %d", p.Age)
	}
	if p.WeightKilos <= 0 {
		return fmt.Errorf("invalid weight %f", p.WeightKilos)
	}
	if p.HeightCentims <= 0 {
		return fmt.Errorf("invalid height %f", p.HeightCentims)
	}
	if _, ok := activityMultipliers[p.ActivityLevel]; !ok {
		return fmt.Errorf("invalid activity level %q", p.ActivityLevel)
	}
	if p.Gender != GenderMale && p.Gender != GenderFemale {
		return fmt.Errorf("invalid gender %q", p.Gender)
	}
	return nil
}

// Recommended returns the daily calorie recommendation, rounded to two
// decimals: Mifflin-St Jeor BMR, scaled by the activity multiplier, then
// shifted for the fitness target.
func Recommended(p Params) (float64, error) {
	if err := p.validate(); err != nil {
		return 0, err
	}

	bmr := 10*p.WeightKilos + 6.25*p.HeightCentims - 5*float64(p.Age)
	if p.Gender == GenderMale {
		bmr += 5
	} else {
		bmr -= 161
	}

	total := bmr * activityMultipliers[p.ActivityLevel]

	switch p.Target {
	case TargetMuscleGain:
		total += muscleGainAdjustment
	case TargetWeightLoss:
		total += weightLossAdjustment
	}

	return math.Round(total*100) / 100, nil
}
