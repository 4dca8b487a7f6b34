package services

import "testing"

func TestWaterScore(t *testing.T) {
	cases := []struct {
		total, goal, want float64
	}{
		{0, 2000, 0},
		{1000, 2000, 50},
		{2000, 2000, 100},
		{5000, 2000, 100},
		{1500, 0, 0},
		{-100, 2000, 0},
	}
	for _, c := range cases {
		if got := WaterScore(c.total, c.goal); got != c.want {
			t.Fatalf("WaterScore(%v,%v)=%v, want %v", c.total, c.goal, got, c.want)
		}
	}
}

func TestSleepScore(t *testing.T) {
	cases := []struct {
		hours, want float64
	}{
		{0, 0},
		{3.5, 50},
		{7, 100},
		{12, 100},
	}
	for _, c := range cases {
		if got := SleepScore(c.hours); got != c.want {
			t.Fatalf("SleepScore(%v)=%v, want %v", c.hours, got, c.want)
		}
	}
}

func TestMoodAndExerciseScores(t *testing.T) {
	if got := MoodScore(5); got != 50 {
		t.Fatalf("MoodScore(5)=%v, want 50", got)
	}
	if got := MoodScore(10); got != 100 {
		t.Fatalf("MoodScore(10)=%v, want 100", got)
	}
	if got := ExerciseScore(15); got != 50 {
		t.Fatalf("ExerciseScore(15)=%v, want 50", got)
	}
	if got := ExerciseScore(90); got != 100 {
		t.Fatalf("ExerciseScore(90)=%v, want 100", got)
	}
}

// NutritionScore carries no cap: eating past the goal keeps raising it.
func TestNutritionScoreUncapped(t *testing.T) {
	if got := NutritionScore(3000, 2000); got != 150 {
		t.Fatalf("NutritionScore(3000,2000)=%v, want 150", got)
	}
	if got := NutritionScore(1000, 0); got != 0 {
		t.Fatalf("NutritionScore with no goal = %v, want 0", got)
	}
}

func TestClampedScoresStayBounded(t *testing.T) {
	inputs := []float64{-500, -1, 0, 0.5, 33, 99.9, 100, 1000}
	for _, v := range inputs {
		for _, got := range []float64{WaterScore(v, 2000), SleepScore(v), MoodScore(v), ExerciseScore(v)} {
			if got < 0 || got > 100 {
				t.Fatalf("score out of [0,100] for input %v: %v", v, got)
			}
		}
	}
}

func TestDailyScore(t *testing.T) {
	full := DayInputs{
		WaterML: 2000, WaterGoalML: 2000,
		SleepHours:      8,
		MoodRating:      10,
		ExerciseMinutes: 45,
		Calories:        2000, CalorieGoal: 2000,
	}
	if got := DailyScore(full); got != 100 {
		t.Fatalf("full day score = %d, want 100", got)
	}

	// unlogged categories count as zero in the five-way mean
	partial := DayInputs{MoodRating: 5, WaterGoalML: 2000, CalorieGoal: 2000}
	if got := DailyScore(partial); got != 10 {
		t.Fatalf("partial day score = %d, want 10", got)
	}

	if got := DailyScore(DayInputs{}); got != 0 {
		t.Fatalf("empty day score = %d, want 0", got)
	}

	// 50+100+70+50+0 = 270 -> 54
	mixed := DayInputs{
		WaterML: 1000, WaterGoalML: 2000,
		SleepHours:      7,
		MoodRating:      7,
		ExerciseMinutes: 15,
	}
	if got := DailyScore(mixed); got != 54 {
		t.Fatalf("mixed day score = %d, want 54", got)
	}
}
