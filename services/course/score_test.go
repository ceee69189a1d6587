package courseService

import (
	"lms/models/course"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestCalculateCourseScoreUnansweredCountAgainst(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	session := seedSession(t, db)
	crs := seedCourse(t, db, session.ID, 4)

	// Answer only half the questions, both correctly
	answerQuestions(t, db, user.ID, crs.ID, 2, 2)

	res := NewScoreService(db).CalculateCourseScore(crs.ID, user.ID)

	assert.Equal(t, 4, res.QuizCount, "declared questionnaire size is authoritative")
	assert.Equal(t, 4*DefaultPointsPerQuestion, res.TotalPossiblePoints)
	assert.Equal(t, 2*DefaultPointsPerQuestion, res.TotalEarnedPoints)
	assert.Equal(t, 2, res.CorrectAnswers)
	assert.InDelta(t, 50.0, res.ScorePercentage, 0.001)
}

func TestCalculateCourseScoreIdempotent(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	session := seedSession(t, db)
	crs := seedCourse(t, db, session.ID, 3)
	answerQuestions(t, db, user.ID, crs.ID, 3, 2)

	svc := NewScoreService(db)
	first := svc.CalculateCourseScore(crs.ID, user.ID)
	second := svc.CalculateCourseScore(crs.ID, user.ID)

	assert.Equal(t, first, second)
}

func TestCalculateCourseScoreMissingCourse(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)

	res := NewScoreService(db).CalculateCourseScore(9999, user.ID)

	assert.Zero(t, res.TotalEarnedPoints)
	assert.Zero(t, res.TotalPossiblePoints)
	assert.Zero(t, res.ScorePercentage)
}

func TestCalculateCourseScoreNoQuestionnaire(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	session := seedSession(t, db)

	blocks := []course.Block{{Type: course.BlockText, Title: "Only text", Text: "No quiz here."}}
	encoded, err := course.EncodeBlocks(blocks)
	require.NoError(t, err)
	crs := course.Course{SessionID: session.ID, Title: "Textual", Blocks: encoded, IsPublished: true}
	require.NoError(t, db.Create(&crs).Error)

	res := NewScoreService(db).CalculateCourseScore(crs.ID, user.ID)

	assert.Zero(t, res.TotalPossiblePoints)
	assert.Zero(t, res.ScorePercentage)
}

func TestCalculateCourseScoreSkipsMalformedRecords(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	session := seedSession(t, db)
	crs := seedCourse(t, db, session.ID, 2)

	// One valid record, one unparsable record, one non-question entry
	raw := `{
		"1_q0": {"type":"questionnaire","correct":true,"questionIndex":0,"scoreResult":{"finalScore":10,"isCorrect":true}},
		"1_q1": "garbage",
		"viewed_intro": {"type":"media"}
	}`
	progress := course.CourseProgress{UserID: user.ID, CourseID: crs.ID, Interactions: datatypes.JSON(raw)}
	require.NoError(t, db.Create(&progress).Error)

	res := NewScoreService(db).CalculateCourseScore(crs.ID, user.ID)

	assert.Equal(t, DefaultPointsPerQuestion, res.TotalEarnedPoints)
	assert.Equal(t, 1, res.CorrectAnswers)
	assert.Equal(t, 2*DefaultPointsPerQuestion, res.TotalPossiblePoints)
}

func TestCalculateSessionScorePercentage(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	session := seedSession(t, db)
	courseA := seedCourse(t, db, session.ID, 1)
	courseB := seedCourse(t, db, session.ID, 1)

	answerQuestions(t, db, user.ID, courseA.ID, 1, 1) // 1/1
	answerQuestions(t, db, user.ID, courseB.ID, 1, 0) // 0/1

	pct := NewScoreService(db).CalculateSessionScorePercentage(user.ID, session.ID)

	assert.InDelta(t, 50.0, pct, 0.001)
}

func TestCalculateSessionScoreNoCourses(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	session := seedSession(t, db)

	pct := NewScoreService(db).CalculateSessionScorePercentage(user.ID, session.ID)

	assert.Zero(t, pct)
}

func TestCalculateSessionScoreIgnoresUnpublished(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	session := seedSession(t, db)
	published := seedCourse(t, db, session.ID, 1)
	answerQuestions(t, db, user.ID, published.ID, 1, 1)

	unpublished := seedCourse(t, db, session.ID, 1)
	require.NoError(t, db.Model(&course.Course{}).Where("id = ?", unpublished.ID).Update("is_published", false).Error)

	pct := NewScoreService(db).CalculateSessionScorePercentage(user.ID, session.ID)

	assert.InDelta(t, 100.0, pct, 0.001)
}
