package courseService

import (
	"errors"
	"fmt"
	"lms/config"
	"lms/models/course"
	"log"
	"time"

	"gorm.io/gorm"
)

// BadgeService decides and awards course badges. A badge is created at
// most once per (user, course) and never updated afterwards; once one
// exists, re-evaluation returns it unchanged.
type BadgeService struct {
	db     *gorm.DB
	scores *ScoreService
}

func NewBadgeService(db *gorm.DB) *BadgeService {
	return &BadgeService{db: db, scores: NewScoreService(db)}
}

// minBadgeScore is the percentage below which no badge is awarded
func minBadgeScore() float64 {
	if config.AppConfig == nil {
		return 70
	}
	return config.AppConfig.MinBadgeScore
}

// EvaluateAndAwardBadge awards a badge for the user's course score, or
// returns the already-earned one. A nil badge with nil error means the
// score does not merit a badge (yet). Safe under concurrent invocation:
// the unique index is the authoritative guard, and a losing writer
// re-fetches the winner's row instead of erroring.
func (s *BadgeService) EvaluateAndAwardBadge(userID, courseID uint) (*course.CourseBadge, error) {
	var existing course.CourseBadge
	err := s.db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	res := s.scores.CalculateCourseScore(courseID, userID)
	if res.TotalPossiblePoints == 0 {
		// Not enough data to judge
		return nil, nil
	}
	if res.ScorePercentage < minBadgeScore() {
		return nil, nil
	}

	tier := badgeTier(res)

	var crs course.Course
	if err := s.db.Where("id = ? AND is_deleted = ?", courseID, false).First(&crs).Error; err != nil {
		return nil, err
	}

	badge := course.CourseBadge{
		UserID:              userID,
		CourseID:            &crs.ID,
		BadgeType:           tier,
		Title:               badgeTitle(tier, crs.Title),
		Description:         badgeDescription(tier, res),
		ScorePercentage:     res.ScorePercentage,
		PointsEarned:        res.TotalEarnedPoints,
		TotalPointsPossible: res.TotalPossiblePoints,
		CorrectAnswers:      res.CorrectAnswers,
		TotalQuestions:      res.QuizCount,
		EarnedDate:          time.Now(),
		ArchivedCourseTitle: crs.Title,
	}

	if err := s.db.Create(&badge).Error; err != nil {
		// Most likely a concurrent award hit the unique index first;
		// treat the winner's row as ours
		var winner course.CourseBadge
		if ferr := s.db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&winner).Error; ferr == nil {
			log.Printf("Badge for user %d course %d already created concurrently", userID, courseID)
			return &winner, nil
		}
		return nil, err
	}
	return &badge, nil
}

// badgeTier maps a qualifying score to its tier, checking the highest
// thresholds first. Perfect requires every question answered correctly,
// not just 100 percent of the points.
func badgeTier(res CourseScoreResult) string {
	switch {
	case res.ScorePercentage >= 100 && res.CorrectAnswers == res.QuizCount:
		return course.BadgePerfect
	case res.ScorePercentage >= 90:
		return course.BadgeGold
	case res.ScorePercentage >= 80:
		return course.BadgeSilver
	default:
		return course.BadgeBronze
	}
}

func badgeTitle(tier, courseTitle string) string {
	switch tier {
	case course.BadgePerfect:
		return fmt.Sprintf("Perfect Score: %s", courseTitle)
	case course.BadgeGold:
		return fmt.Sprintf("Gold Achievement: %s", courseTitle)
	case course.BadgeSilver:
		return fmt.Sprintf("Silver Achievement: %s", courseTitle)
	default:
		return fmt.Sprintf("Bronze Achievement: %s", courseTitle)
	}
}

func badgeDescription(tier string, res CourseScoreResult) string {
	if tier == course.BadgePerfect {
		return fmt.Sprintf("Answered all %d questions correctly.", res.QuizCount)
	}
	return fmt.Sprintf("Scored %.1f%% (%d of %d points).", res.ScorePercentage, res.TotalEarnedPoints, res.TotalPossiblePoints)
}
