package model

import (
	"errors"
	"time"
)

// OptionCount is the fixed number of answer options per question.
const OptionCount = 4

// Sentinel errors shared between the repository, service and handlers.
var (
	ErrNotFound     = errors.New("question not found")
	ErrLastQuestion = errors.New("cannot delete the last remaining question")
)

// Question is a single quiz item: a prompt, four answer options, the
// index of the correct option and an explanation shown after answering.
type Question struct {
	ID            int64     `json:"id"`
	Question      string    `json:"question"`
	Options       []string  `json:"options"`
	CorrectAnswer int       `json:"correctAnswer"` // index into Options, 0..3
	Explanation   string    `json:"explanation"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}

// QuestionInput carries the mutable fields for create and update.
// The persisted column correct_answer is surfaced as correctAnswer.
type QuestionInput struct {
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"required,len=4"`
	CorrectAnswer int      `json:"correctAnswer" validate:"min=0,max=3"`
	Explanation   string   `json:"explanation"`
}
