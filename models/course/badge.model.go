package course

import (
	"time"

	"gorm.io/gorm"
)

// Badge tiers, ordered from lowest to highest
const (
	BadgeBronze  = "BRONZE"
	BadgeSilver  = "SILVER"
	BadgeGold    = "GOLD"
	BadgePerfect = "PERFECT"
)

// CourseBadge is awarded at most once per (user, course) and is immutable
// after creation. CourseID is nullable so a badge survives deletion of its
// course; ArchivedCourseTitle keeps the badge meaningful afterwards.
type CourseBadge struct {
	gorm.Model
	UserID              uint      `json:"user_id" gorm:"uniqueIndex:idx_course_badges_user_course;not null"`
	CourseID            *uint     `json:"course_id" gorm:"uniqueIndex:idx_course_badges_user_course"`
	BadgeType           string    `json:"badge_type"`
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	ScorePercentage     float64   `json:"score_percentage"`
	PointsEarned        int       `json:"points_earned"`
	TotalPointsPossible int       `json:"total_points_possible"`
	CorrectAnswers      int       `json:"correct_answers"`
	TotalQuestions      int       `json:"total_questions"`
	EarnedDate          time.Time `json:"earned_date"`
	ArchivedCourseTitle string    `json:"archived_course_title"`
	IsDeleted           bool      `gorm:"default:false"`
}
