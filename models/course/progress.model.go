package course

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CourseProgress holds a user's state within one course: the last block
// they touched, which blocks they finished, and every question answer they
// submitted. One row per (user, course). IsCompleted only ever goes from
// false to true; that edge is what triggers badge and certificate
// evaluation downstream.
type CourseProgress struct {
	gorm.Model
	UserID            uint           `json:"user_id" gorm:"uniqueIndex:idx_course_progress_user_course;not null"`
	CourseID          uint           `json:"course_id" gorm:"uniqueIndex:idx_course_progress_user_course;not null"`
	LastAccessedBlock int            `json:"last_accessed_block"`
	CompletedBlocks   datatypes.JSON `json:"completed_blocks"` // JSON array of block indexes
	Interactions      datatypes.JSON `json:"interactions"`     // flat object keyed "{block}_q{question}"
	LastAccessed      time.Time      `json:"last_accessed"`
	IsCompleted       bool           `json:"is_completed" gorm:"default:false"`
	IsDeleted         bool           `gorm:"default:false"`
}

// ScoreResult is the per-answer scoring outcome embedded in each stored
// interaction record
type ScoreResult struct {
	FinalScore int  `json:"finalScore"`
	IsCorrect  bool `json:"isCorrect"`
}

// InteractionRecord is one persisted answer event for one question. Field
// names match the stored JSON of existing rows and must not change.
type InteractionRecord struct {
	Type          string      `json:"type"`
	Correct       bool        `json:"correct"`
	QuestionIndex int         `json:"questionIndex"`
	Timestamp     time.Time   `json:"timestamp"`
	ScoreResult   ScoreResult `json:"scoreResult"`
}

// InteractionKey addresses one question within a course's block list
type InteractionKey struct {
	Block    int
	Question int
}

// String renders the stored composite form, e.g. "2_q0"
func (k InteractionKey) String() string {
	return fmt.Sprintf("%d_q%d", k.Block, k.Question)
}

// ParseInteractionKey parses the stored composite form
func ParseInteractionKey(s string) (InteractionKey, error) {
	blockPart, questionPart, found := strings.Cut(s, "_q")
	if !found {
		return InteractionKey{}, fmt.Errorf("not a question interaction key: %q", s)
	}
	block, err := strconv.Atoi(blockPart)
	if err != nil {
		return InteractionKey{}, fmt.Errorf("bad block index in key %q: %w", s, err)
	}
	question, err := strconv.Atoi(questionPart)
	if err != nil {
		return InteractionKey{}, fmt.Errorf("bad question index in key %q: %w", s, err)
	}
	return InteractionKey{Block: block, Question: question}, nil
}

// InteractionMap is the in-memory form of a progress row's interaction
// object. Question answers are indexed by (block, question); entries whose
// key or value does not parse as a question answer are kept verbatim in
// extras so a read-modify-write never drops them.
type InteractionMap struct {
	Answers map[InteractionKey]InteractionRecord
	extras  map[string]json.RawMessage
}

// NewInteractionMap returns an empty map ready for Put
func NewInteractionMap() *InteractionMap {
	return &InteractionMap{Answers: make(map[InteractionKey]InteractionRecord)}
}

// DecodeInteractions parses a progress row's stored interaction object.
// Malformed entries are skipped and logged, never fatal.
func DecodeInteractions(raw datatypes.JSON) (*InteractionMap, error) {
	m := NewInteractionMap()
	if len(raw) == 0 {
		return m, nil
	}
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, err
	}
	for key, value := range flat {
		ik, err := ParseInteractionKey(key)
		if err != nil {
			// Not a question answer; preserve as-is
			if m.extras == nil {
				m.extras = make(map[string]json.RawMessage)
			}
			m.extras[key] = value
			continue
		}
		var rec InteractionRecord
		if err := json.Unmarshal(value, &rec); err != nil {
			log.Printf("Skipping malformed interaction record %q: %v", key, err)
			continue
		}
		m.Answers[ik] = rec
	}
	return m, nil
}

// Encode serializes back to the flat string-keyed object
func (m *InteractionMap) Encode() (datatypes.JSON, error) {
	flat := make(map[string]interface{}, len(m.Answers)+len(m.extras))
	for key, value := range m.extras {
		flat[key] = value
	}
	for ik, rec := range m.Answers {
		flat[ik.String()] = rec
	}
	raw, err := json.Marshal(flat)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// Put records an answer; resubmission of the same question overwrites
func (m *InteractionMap) Put(key InteractionKey, rec InteractionRecord) {
	m.Answers[key] = rec
}

// Get returns the answer for one question, if present
func (m *InteractionMap) Get(key InteractionKey) (InteractionRecord, bool) {
	rec, ok := m.Answers[key]
	return rec, ok
}

// DecodeCompletedBlocks parses the stored completed-block index set
func DecodeCompletedBlocks(raw datatypes.JSON) (map[int]bool, error) {
	set := make(map[int]bool)
	if len(raw) == 0 {
		return set, nil
	}
	var indexes []int
	if err := json.Unmarshal(raw, &indexes); err != nil {
		return nil, err
	}
	for _, idx := range indexes {
		set[idx] = true
	}
	return set, nil
}

// EncodeCompletedBlocks serializes the completed-block index set in
// ascending order
func EncodeCompletedBlocks(set map[int]bool) (datatypes.JSON, error) {
	indexes := make([]int, 0, len(set))
	for idx := range set {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)
	raw, err := json.Marshal(indexes)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
