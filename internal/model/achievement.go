package model

import (
	"fmt"
	"time"
)

type AchievementType string

const (
	AchievementFirstEntry  AchievementType = "first_entry"
	AchievementPerfectWeek AchievementType = "perfect_week"
)

// StreakMilestones and TotalMilestones fire exactly when the counter equals the value.
var (
	StreakMilestones = []int{3, 7, 14, 30, 60, 100}
	TotalMilestones  = []int{10, 25, 50, 100, 250, 500}
)

func StreakAchievement(n int) AchievementType {
	return AchievementType(fmt.Sprintf("streak_%d", n))
}

func TotalAchievement(n int) AchievementType {
	return AchievementType(fmt.Sprintf("total_%d", n))
}

// Achievement is immutable once earned. At most one exists per
// (UserID, AchievementType, Category).
type Achievement struct {
	ID              string          `db:"id" json:"id"`
	UserID          string          `db:"user_id" json:"user_id"`
	AchievementType AchievementType `db:"achievement_type" json:"achievement_type"`
	Category        Category        `db:"category" json:"category"`
	Title           string          `db:"title" json:"title"`
	Description     string          `db:"description" json:"description"`
	IconEmoji       string          `db:"icon_emoji" json:"icon_emoji"`
	EarnedAt        time.Time       `db:"earned_at" json:"earned_at"`
}
