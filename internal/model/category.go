package model

import (
	"errors"
	"fmt"
	"strings"
)

// Category is a tracked domain. Streaks and achievements are kept per category.
type Category string

const (
	CategoryMood       Category = "mood"
	CategorySleep      Category = "sleep"
	CategoryMedication Category = "medication"
	CategoryExercise   Category = "exercise"
	CategoryWeight     Category = "weight"
	CategoryJournal    Category = "journal"
	CategoryOverall    Category = "overall"
)

var ErrInvalidCategory = errors.New("invalid category")

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryMood,
	CategorySleep,
	CategoryMedication,
	CategoryExercise,
	CategoryWeight,
	CategoryJournal,
	CategoryOverall,
}

// PerfectWeekCategories must all be logged on each of seven consecutive days.
var PerfectWeekCategories = []Category{
	CategoryMood,
	CategorySleep,
	CategoryMedication,
	CategoryExercise,
}

func (c Category) Valid() bool {
	for _, valid := range Categories {
		if c == valid {
			return true
		}
	}
	return false
}

func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}
