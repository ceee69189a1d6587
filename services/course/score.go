package courseService

import (
	"lms/models/course"
	"log"

	"gorm.io/gorm"
)

// ScoreService computes course and session scores from stored content and
// progress. All methods are read-only and idempotent: the same stored data
// always produces the same result. Scoring never fails the caller — any
// problem degrades to a zero-valued result.
type ScoreService struct {
	db *gorm.DB
}

func NewScoreService(db *gorm.DB) *ScoreService {
	return &ScoreService{db: db}
}

// CalculateCourseScore produces the score of one user in one course.
// The denominator comes from the course's declared questionnaire, not from
// how many questions were attempted, so unanswered questions count against
// the percentage.
func (s *ScoreService) CalculateCourseScore(courseID, userID uint) CourseScoreResult {
	totalQuestions := s.questionCount(courseID)
	if totalQuestions == 0 {
		// No content or no questionnaire: nothing to score
		return CourseScoreResult{OverallLevel: LevelNeedsImprovement}
	}
	totalPossible := totalQuestions * PointsPerQuestion()

	res := AggregateScores(s.answeredQuestions(courseID, userID))

	// The declared questionnaire is authoritative for the denominator
	res.QuizCount = totalQuestions
	res.TotalPossiblePoints = totalPossible
	res.ScorePercentage = 0
	if totalPossible > 0 {
		res.ScorePercentage = float64(res.TotalEarnedPoints) / float64(totalPossible) * 100
	}
	res.OverallLevel = classifyLevel(res.ScorePercentage)
	return res
}

// CalculateSessionScorePercentage sums earned and possible points across
// all published courses of a session. A session without published courses
// scores 0.
func (s *ScoreService) CalculateSessionScorePercentage(userID, sessionID uint) float64 {
	earned, possible := s.sessionScoreTotals(userID, sessionID)
	if possible == 0 {
		return 0
	}
	return float64(earned) / float64(possible) * 100
}

// sessionScoreTotals returns the summed earned and possible points of all
// published courses in a session
func (s *ScoreService) sessionScoreTotals(userID, sessionID uint) (int, int) {
	courses, err := s.publishedCourses(sessionID)
	if err != nil {
		log.Printf("Error loading courses for session %d: %v", sessionID, err)
		return 0, 0
	}
	earned, possible := 0, 0
	for _, crs := range courses {
		res := s.CalculateCourseScore(crs.ID, userID)
		earned += res.TotalEarnedPoints
		possible += res.TotalPossiblePoints
	}
	return earned, possible
}

// publishedCourses lists the published, non-deleted courses of a session
// in their declared order
func (s *ScoreService) publishedCourses(sessionID uint) ([]course.Course, error) {
	var courses []course.Course
	err := s.db.
		Where("session_id = ? AND is_published = ? AND is_deleted = ?", sessionID, true, false).
		Order("order_index asc").
		Find(&courses).Error
	return courses, err
}

// questionCount reads the course's questionnaire size. Missing course,
// unparsable blocks, or no questionnaire all resolve to 0.
func (s *ScoreService) questionCount(courseID uint) int {
	var crs course.Course
	if err := s.db.Where("id = ? AND is_deleted = ?", courseID, false).First(&crs).Error; err != nil {
		return 0
	}
	blocks, err := course.DecodeBlocks(crs.Blocks)
	if err != nil {
		log.Printf("Unparsable content for course %d: %v", courseID, err)
		return 0
	}
	_, questionnaire, err := course.FindQuestionnaire(blocks)
	if err != nil {
		return 0
	}
	return len(questionnaire.Questions)
}

// answeredQuestions loads the user's stored question answers for a course.
// A missing progress row or malformed entries resolve to fewer answers,
// never to an error.
func (s *ScoreService) answeredQuestions(courseID, userID uint) []AnsweredQuestion {
	var progress course.CourseProgress
	if err := s.db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&progress).Error; err != nil {
		return nil
	}
	interactions, err := course.DecodeInteractions(progress.Interactions)
	if err != nil {
		log.Printf("Unparsable interactions for user %d course %d: %v", userID, courseID, err)
		return nil
	}
	answers := make([]AnsweredQuestion, 0, len(interactions.Answers))
	for _, rec := range interactions.Answers {
		answers = append(answers, AnsweredQuestion{
			IsCorrect:  rec.ScoreResult.IsCorrect,
			FinalScore: rec.ScoreResult.FinalScore,
		})
	}
	return answers
}
