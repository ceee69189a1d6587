package courseService

import (
	"fmt"
	"lms/models"
	"lms/models/course"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory database migrated with every model
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&course.Session{},
		&course.Course{},
		&course.Enrollment{},
		&course.CourseProgress{},
		&course.CourseBadge{},
		&course.Certificate{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	user := models.User{Name: "Test Student", Email: fmt.Sprintf("student-%d@example.com", time.Now().UnixNano()), Role: "STUDENT"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedSession(t *testing.T, db *gorm.DB) course.Session {
	t.Helper()
	session := course.Session{Title: "Spring Cohort", Description: "Spring training cohort", IsPublished: true}
	require.NoError(t, db.Create(&session).Error)
	return session
}

// seedCourse creates a published course with a text block followed by a
// questionnaire of questionCount questions. Option 0 is the correct one
// for every question.
func seedCourse(t *testing.T, db *gorm.DB, sessionID uint, questionCount int) course.Course {
	t.Helper()

	questions := make([]course.Question, questionCount)
	for i := range questions {
		questions[i] = course.Question{
			Text: fmt.Sprintf("Question %d", i+1),
			Options: []course.Option{
				{Text: "Right answer", IsCorrect: true},
				{Text: "Wrong answer"},
				{Text: "Also wrong"},
			},
		}
	}

	blocks := []course.Block{
		{Type: course.BlockText, Title: "Introduction", Text: "Welcome to the course."},
		{Type: course.BlockQuestionnaire, Title: "Final Quiz", Questionnaire: &course.Questionnaire{Questions: questions}},
	}
	encoded, err := course.EncodeBlocks(blocks)
	require.NoError(t, err)

	crs := course.Course{
		SessionID:   sessionID,
		Title:       "Test Course",
		Description: "A course used in tests",
		Blocks:      encoded,
		IsPublished: true,
	}
	require.NoError(t, db.Create(&crs).Error)
	return crs
}

// questionnaireBlockIndex is where seedCourse puts the quiz
const questionnaireBlockIndex = 1

// answerQuestions submits answers for questions 0..total-1; the first
// correctCount of them correctly, the rest wrong
func answerQuestions(t *testing.T, db *gorm.DB, userID, courseID uint, total, correctCount int) {
	t.Helper()
	store := NewProgressStore(db, nil, nil)
	for q := 0; q < total; q++ {
		selection := []int{1} // wrong option
		if q < correctCount {
			selection = []int{0}
		}
		_, err := store.SubmitAnswer(userID, courseID, questionnaireBlockIndex, q, selection)
		require.NoError(t, err)
	}
}

// completeCourse marks every block of the course as completed through the
// given store (pass a hook-wired store to exercise downstream evaluation)
func completeCourse(t *testing.T, store *ProgressStore, db *gorm.DB, userID, courseID uint) {
	t.Helper()
	var crs course.Course
	require.NoError(t, db.First(&crs, courseID).Error)
	blocks, err := course.DecodeBlocks(crs.Blocks)
	require.NoError(t, err)
	for i := range blocks {
		_, err := store.MarkBlockComplete(userID, courseID, i)
		require.NoError(t, err)
	}
}
