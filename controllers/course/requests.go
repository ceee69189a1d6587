package controllers

import (
	courseModels "lms/models/course"
	"strings"
	"time"
)

// SessionRequest is the admin payload for creating or updating a session
type SessionRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

// CourseRequest is the admin payload for creating or updating a course
type CourseRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Author      string `json:"author"`
	OrderIndex  int    `json:"order_index"`
}

// BlocksRequest replaces a course's block list wholesale. The nested
// shape is deep enough that it is validated with struct tags instead of
// the usual hand-rolled checks.
type BlocksRequest struct {
	Blocks []BlockRequest `json:"blocks" validate:"required,min=1,dive"`
}

type BlockRequest struct {
	Type          string                `json:"type" validate:"required,oneof=text media questionnaire"`
	Title         string                `json:"title"`
	Text          string                `json:"text"`
	MediaURL      string                `json:"media_url"`
	Questionnaire *QuestionnaireRequest `json:"questionnaire" validate:"omitempty"`
}

type QuestionnaireRequest struct {
	Questions []QuestionRequest `json:"questions" validate:"required,min=1,dive"`
}

type QuestionRequest struct {
	Text    string          `json:"text" validate:"required"`
	Options []OptionRequest `json:"options" validate:"required,min=2,dive"`
}

type OptionRequest struct {
	Text      string `json:"text" validate:"required"`
	IsCorrect bool   `json:"is_correct"`
}

// ToBlocks converts the request payload into content blocks
func (r *BlocksRequest) ToBlocks() []courseModels.Block {
	blocks := make([]courseModels.Block, len(r.Blocks))
	for i, b := range r.Blocks {
		block := courseModels.Block{
			Type:     strings.ToLower(b.Type),
			Title:    b.Title,
			Text:     b.Text,
			MediaURL: b.MediaURL,
		}
		if b.Questionnaire != nil {
			questionnaire := &courseModels.Questionnaire{
				Questions: make([]courseModels.Question, len(b.Questionnaire.Questions)),
			}
			for qi, q := range b.Questionnaire.Questions {
				opts := make([]courseModels.Option, len(q.Options))
				for oi, opt := range q.Options {
					opts[oi] = courseModels.Option{Text: opt.Text, IsCorrect: opt.IsCorrect}
				}
				questionnaire.Questions[qi] = courseModels.Question{Text: q.Text, Options: opts}
			}
			block.Questionnaire = questionnaire
		}
		blocks[i] = block
	}
	return blocks
}
