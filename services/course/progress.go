package courseService

import (
	"errors"
	"lms/models/course"
	"time"

	"gorm.io/gorm"
)

var (
	ErrCourseNotFound   = errors.New("course not found")
	ErrInvalidBlock     = errors.New("block index does not exist in this course")
	ErrNotQuestionnaire = errors.New("block is not the questionnaire block")
	ErrInvalidQuestion  = errors.New("question index does not exist in the questionnaire")
	ErrNoOptionChosen   = errors.New("at least one option must be selected")
)

// ProgressStore is the single write path for course progress. Every
// mutation is a read-modify-write of the (user, course) row; after each
// persisted save it invalidates the score cache and runs the completion
// hook with the before/after completion flags.
type ProgressStore struct {
	db    *gorm.DB
	hook  *CompletionHook
	cache *ScoreCache
}

// NewProgressStore wires the store. Hook and cache may be nil (tests, CLI
// tooling); the database row behavior is identical without them.
func NewProgressStore(db *gorm.DB, hook *CompletionHook, cache *ScoreCache) *ProgressStore {
	return &ProgressStore{db: db, hook: hook, cache: cache}
}

// GetProgress loads a user's progress row for a course, if any
func (s *ProgressStore) GetProgress(userID, courseID uint) (*course.CourseProgress, error) {
	var progress course.CourseProgress
	err := s.db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// SubmitAnswer evaluates a learner's option selection against the course's
// questionnaire and records the outcome. Correctness is computed here, on
// the stored content — clients never get to claim an answer was right.
// Resubmitting the same question overwrites the previous record.
func (s *ProgressStore) SubmitAnswer(userID, courseID uint, blockIndex, questionIndex int, selectedOptions []int) (*course.InteractionRecord, error) {
	if len(selectedOptions) == 0 {
		return nil, ErrNoOptionChosen
	}

	var crs course.Course
	if err := s.db.Where("id = ? AND is_published = ? AND is_deleted = ?", courseID, true, false).First(&crs).Error; err != nil {
		return nil, ErrCourseNotFound
	}
	blocks, err := course.DecodeBlocks(crs.Blocks)
	if err != nil {
		return nil, err
	}
	questionnaireIndex, questionnaire, err := course.FindQuestionnaire(blocks)
	if err != nil {
		return nil, err
	}
	if blockIndex != questionnaireIndex {
		return nil, ErrNotQuestionnaire
	}
	if questionIndex < 0 || questionIndex >= len(questionnaire.Questions) {
		return nil, ErrInvalidQuestion
	}

	isCorrect := answerIsCorrect(questionnaire.Questions[questionIndex], selectedOptions)
	record := course.InteractionRecord{
		Type:          "questionnaire",
		Correct:       isCorrect,
		QuestionIndex: questionIndex,
		Timestamp:     time.Now(),
		ScoreResult:   ScoreAnswer(isCorrect),
	}

	key := course.InteractionKey{Block: blockIndex, Question: questionIndex}
	if _, err := s.SaveInteraction(courseID, key, record, userID); err != nil {
		return nil, err
	}
	return &record, nil
}

// answerIsCorrect requires the selected option set to match the correct
// option set exactly — no partial credit
func answerIsCorrect(question course.Question, selectedOptions []int) bool {
	selected := make(map[int]bool, len(selectedOptions))
	for _, idx := range selectedOptions {
		if idx < 0 || idx >= len(question.Options) {
			return false
		}
		selected[idx] = true
	}
	for idx, opt := range question.Options {
		if opt.IsCorrect != selected[idx] {
			return false
		}
	}
	return true
}

// SaveInteraction persists one answer record under its question key and
// runs the post-save hook. Later writes to the same key overwrite.
func (s *ProgressStore) SaveInteraction(courseID uint, key course.InteractionKey, record course.InteractionRecord, userID uint) (*course.CourseProgress, error) {
	progress, err := s.loadOrInit(userID, courseID)
	if err != nil {
		return nil, err
	}

	interactions, err := course.DecodeInteractions(progress.Interactions)
	if err != nil {
		return nil, err
	}
	interactions.Put(key, record)
	encoded, err := interactions.Encode()
	if err != nil {
		return nil, err
	}

	wasCompleted := progress.IsCompleted
	progress.Interactions = encoded
	progress.LastAccessedBlock = key.Block
	progress.LastAccessed = time.Now()

	if err := s.persist(progress, wasCompleted); err != nil {
		return nil, err
	}
	return progress, nil
}

// MarkBlockComplete adds a block to the completed set; when every block of
// the course's content is completed the row's IsCompleted flag flips to
// true. The flag is monotonic — nothing ever clears it.
func (s *ProgressStore) MarkBlockComplete(userID, courseID uint, blockIndex int) (*course.CourseProgress, error) {
	var crs course.Course
	if err := s.db.Where("id = ? AND is_published = ? AND is_deleted = ?", courseID, true, false).First(&crs).Error; err != nil {
		return nil, ErrCourseNotFound
	}
	blocks, err := course.DecodeBlocks(crs.Blocks)
	if err != nil {
		return nil, err
	}
	if blockIndex < 0 || blockIndex >= len(blocks) {
		return nil, ErrInvalidBlock
	}

	progress, err := s.loadOrInit(userID, courseID)
	if err != nil {
		return nil, err
	}
	completed, err := course.DecodeCompletedBlocks(progress.CompletedBlocks)
	if err != nil {
		return nil, err
	}
	completed[blockIndex] = true
	encoded, err := course.EncodeCompletedBlocks(completed)
	if err != nil {
		return nil, err
	}

	wasCompleted := progress.IsCompleted
	progress.CompletedBlocks = encoded
	progress.LastAccessedBlock = blockIndex
	progress.LastAccessed = time.Now()
	if !progress.IsCompleted && len(completed) >= len(blocks) {
		progress.IsCompleted = true
	}

	if err := s.persist(progress, wasCompleted); err != nil {
		return nil, err
	}
	return progress, nil
}

// loadOrInit returns the existing progress row or a fresh unsaved one
func (s *ProgressStore) loadOrInit(userID, courseID uint) (*course.CourseProgress, error) {
	var progress course.CourseProgress
	err := s.db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&progress).Error
	if err == nil {
		return &progress, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return &course.CourseProgress{UserID: userID, CourseID: courseID}, nil
}

// persist writes the row, then invalidates cached scores and notifies the
// completion hook with the transition edge
func (s *ProgressStore) persist(progress *course.CourseProgress, wasCompleted bool) error {
	if err := s.db.Save(progress).Error; err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.InvalidateUser(progress.UserID)
	}
	if s.hook != nil {
		s.hook.OnProgressSaved(progress.UserID, progress.CourseID, wasCompleted, progress.IsCompleted)
	}
	return nil
}
