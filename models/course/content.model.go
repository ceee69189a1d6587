package course

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gorm.io/datatypes"
)

// Block content types
const (
	BlockText          = "text"
	BlockMedia         = "media"
	BlockQuestionnaire = "questionnaire"
)

var ErrNoQuestionnaire = errors.New("course has no questionnaire block")

// Block is one entry of a course's ordered content list. Exactly one of the
// payload fields is set, according to Type. Historical rows stored the
// questionnaire payload either re-encoded as a JSON string or inline, and
// either under "content" or "data"; all of that is absorbed here, once, so
// the rest of the code only ever sees the decoded form.
type Block struct {
	Type          string
	Title         string
	Text          string
	MediaURL      string
	Questionnaire *Questionnaire
}

// Questionnaire is the graded question set of a course. A course has at
// most one questionnaire block.
type Questionnaire struct {
	Questions []Question `json:"Questions"`
}

// Question holds the prompt and its ordered options
type Question struct {
	Text    string   `json:"Text"`
	Options []Option `json:"Options"`
}

// Option is one selectable answer for a question
type Option struct {
	Text      string `json:"Text"`
	IsCorrect bool   `json:"IsCorrect"`
}

// UnmarshalJSON decodes a stored block, handling the legacy payload layouts
func (b *Block) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type    string          `json:"type"`
		Title   string          `json:"title"`
		Content json.RawMessage `json:"content"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	payload := raw.Content
	if isEmptyJSON(payload) {
		payload = raw.Data
	}

	b.Type = strings.ToLower(raw.Type)
	b.Title = raw.Title
	b.Text = ""
	b.MediaURL = ""
	b.Questionnaire = nil

	switch b.Type {
	case BlockText:
		return decodeString(payload, &b.Text)
	case BlockMedia:
		return decodeString(payload, &b.MediaURL)
	case BlockQuestionnaire:
		q, err := decodeQuestionnaire(payload)
		if err != nil {
			return err
		}
		b.Questionnaire = q
		return nil
	default:
		return fmt.Errorf("unknown block type %q", raw.Type)
	}
}

// MarshalJSON writes the canonical stored shape: the questionnaire payload
// stays a re-encoded JSON string under "content" so that rows written by
// older versions of the platform and by this one are interchangeable.
func (b Block) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{
		"type":  b.Type,
		"title": b.Title,
	}
	switch b.Type {
	case BlockText:
		out["content"] = b.Text
	case BlockMedia:
		out["content"] = b.MediaURL
	case BlockQuestionnaire:
		if b.Questionnaire == nil {
			return nil, errors.New("questionnaire block without payload")
		}
		inner, err := json.Marshal(b.Questionnaire)
		if err != nil {
			return nil, err
		}
		out["content"] = string(inner)
	default:
		return nil, fmt.Errorf("unknown block type %q", b.Type)
	}
	return json.Marshal(out)
}

// decodeQuestionnaire accepts the payload inline or re-encoded as a string.
// Question field casing (Questions/questions etc.) is covered by the
// case-insensitive matching of encoding/json.
func decodeQuestionnaire(payload json.RawMessage) (*Questionnaire, error) {
	if isEmptyJSON(payload) {
		return nil, errors.New("questionnaire block has no payload")
	}
	if payload[0] == '"' {
		var inner string
		if err := json.Unmarshal(payload, &inner); err != nil {
			return nil, err
		}
		payload = json.RawMessage(inner)
	}
	var q Questionnaire
	if err := json.Unmarshal(payload, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

func decodeString(payload json.RawMessage, dst *string) error {
	if isEmptyJSON(payload) {
		return nil
	}
	return json.Unmarshal(payload, dst)
}

func isEmptyJSON(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

// DecodeBlocks parses a course's serialized block list
func DecodeBlocks(raw datatypes.JSON) ([]Block, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var blocks []Block
	if err := json.Unmarshal(raw, &blocks); err != nil {
		return nil, err
	}
	return blocks, nil
}

// EncodeBlocks serializes a block list for storage
func EncodeBlocks(blocks []Block) (datatypes.JSON, error) {
	raw, err := json.Marshal(blocks)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// FindQuestionnaire returns the index and payload of the course's
// questionnaire block, or ErrNoQuestionnaire
func FindQuestionnaire(blocks []Block) (int, *Questionnaire, error) {
	for i, b := range blocks {
		if b.Type == BlockQuestionnaire && b.Questionnaire != nil {
			return i, b.Questionnaire, nil
		}
	}
	return 0, nil, ErrNoQuestionnaire
}

// ValidateBlocks checks the authoring invariants: exactly one questionnaire
// block with at least one question, each question with at least two options
// and at least one correct option
func ValidateBlocks(blocks []Block) error {
	questionnaires := 0
	for i, b := range blocks {
		if b.Type != BlockQuestionnaire {
			continue
		}
		questionnaires++
		if b.Questionnaire == nil || len(b.Questionnaire.Questions) == 0 {
			return fmt.Errorf("block %d: questionnaire must have at least one question", i)
		}
		for qi, q := range b.Questionnaire.Questions {
			if len(q.Options) < 2 {
				return fmt.Errorf("block %d question %d: at least two options required", i, qi)
			}
			correct := 0
			for _, opt := range q.Options {
				if opt.IsCorrect {
					correct++
				}
			}
			if correct == 0 {
				return fmt.Errorf("block %d question %d: at least one correct option required", i, qi)
			}
		}
	}
	if questionnaires != 1 {
		return fmt.Errorf("course must have exactly one questionnaire block, found %d", questionnaires)
	}
	return nil
}

// StripAnswers returns a copy of the questionnaire safe to send to
// learners: option correctness flags are cleared
func (q *Questionnaire) StripAnswers() *Questionnaire {
	out := &Questionnaire{Questions: make([]Question, len(q.Questions))}
	for i, question := range q.Questions {
		opts := make([]Option, len(question.Options))
		for j, opt := range question.Options {
			opts[j] = Option{Text: opt.Text}
		}
		out.Questions[i] = Question{Text: question.Text, Options: opts}
	}
	return out
}
