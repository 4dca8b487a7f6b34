package services

import "math"

// DayInputs feeds the daily score. Zero values stand in for "not logged";
// a missing category still counts as 0 inside the five-way mean so that an
// incomplete day never scores as high as a fully logged one.
type DayInputs struct {
	WaterML         float64
	WaterGoalML     float64
	SleepHours      float64
	MoodRating      float64
	ExerciseMinutes float64
	Calories        float64
	CalorieGoal     float64
}

// WaterScore is the water intake ratio against the daily goal, capped at 100.
func WaterScore(totalML, goalML float64) float64 {
	if goalML <= 0 {
		return 0
	}
	return clampPercent(totalML / goalML * 100)
}

// SleepScore treats 7 hours or more as a full score.
func SleepScore(hours float64) float64 {
	if hours >= 7 {
		return 100
	}
	return clampPercent(hours / 7 * 100)
}

// MoodScore maps a 0..10 rating onto 0..100.
func MoodScore(rating float64) float64 {
	return clampPercent(rating / 10 * 100)
}

// ExerciseScore treats 30 minutes or more as a full score.
func ExerciseScore(minutes float64) float64 {
	if minutes >= 30 {
		return 100
	}
	return clampPercent(minutes / 30 * 100)
}

// NutritionScore is the calorie ratio against the daily goal. Unlike the
// other four sub-scores it carries no upper cap, so over-eating pushes it
// past 100. Capping it would change the meaning of the overall score; see
// DESIGN.md before touching this.
func NutritionScore(calories, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	return calories / goal * 100
}

// DailyScore is the unweighted mean of the five sub-scores, rounded to the
// nearest integer.
func DailyScore(in DayInputs) int {
	sum := WaterScore(in.WaterML, in.WaterGoalML) +
		SleepScore(in.SleepHours) +
		MoodScore(in.MoodRating) +
		ExerciseScore(in.ExerciseMinutes) +
		NutritionScore(in.Calories, in.CalorieGoal)
	return int(math.Round(sum / 5))
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
