package courseService

import (
	"lms/config"
	"lms/models/course"
)

// Performance levels for a course score
const (
	LevelExcellent        = "EXCELLENT"
	LevelGood             = "GOOD"
	LevelAverage          = "AVERAGE"
	LevelNeedsImprovement = "NEEDS_IMPROVEMENT"
)

// DefaultPointsPerQuestion applies when configuration has not been loaded
const DefaultPointsPerQuestion = 10

// AnsweredQuestion is one scored answer fed into AggregateScores
type AnsweredQuestion struct {
	IsCorrect  bool
	FinalScore int
}

// CourseScoreResult is the derived score of one user in one course. It is
// computed on demand and never persisted.
type CourseScoreResult struct {
	TotalEarnedPoints   int     `json:"total_earned_points"`
	TotalPossiblePoints int     `json:"total_possible_points"`
	ScorePercentage     float64 `json:"score_percentage"`
	QuizCount           int     `json:"quiz_count"`
	CorrectAnswers      int     `json:"correct_answers"`
	OverallLevel        string  `json:"overall_level"`
}

// PointsPerQuestion returns the flat per-question point value. Every
// question is worth the same; there is no partial credit.
func PointsPerQuestion() int {
	if config.AppConfig == nil {
		return DefaultPointsPerQuestion
	}
	return config.AppConfig.PointsPerQuestion
}

// ScoreAnswer scores a single answer: zero for a wrong answer, the flat
// per-question value for a right one
func ScoreAnswer(isCorrect bool) course.ScoreResult {
	if !isCorrect {
		return course.ScoreResult{FinalScore: 0, IsCorrect: false}
	}
	return course.ScoreResult{FinalScore: PointsPerQuestion(), IsCorrect: true}
}

// AggregateScores sums a set of scored answers into a course-level result.
// An empty input yields a zero result, not an error.
func AggregateScores(results []AnsweredQuestion) CourseScoreResult {
	res := CourseScoreResult{QuizCount: len(results)}
	for _, r := range results {
		res.TotalEarnedPoints += r.FinalScore
		if r.IsCorrect {
			res.CorrectAnswers++
		}
	}
	res.TotalPossiblePoints = len(results) * PointsPerQuestion()
	if res.TotalPossiblePoints > 0 {
		res.ScorePercentage = float64(res.TotalEarnedPoints) / float64(res.TotalPossiblePoints) * 100
	}
	res.OverallLevel = classifyLevel(res.ScorePercentage)
	return res
}

// classifyLevel maps a percentage to a performance level
func classifyLevel(percentage float64) string {
	switch {
	case percentage >= 90:
		return LevelExcellent
	case percentage >= 75:
		return LevelGood
	case percentage >= 60:
		return LevelAverage
	default:
		return LevelNeedsImprovement
	}
}
