package quiz

import (
	"context"
	"errors"

	"quizbank/internal/model"
)

// Editor errors surfaced inline to the user; the draft survives them.
var (
	ErrNotPersisted = errors.New("draft has not been saved yet")
	ErrLastQuestion = errors.New("the last remaining question cannot be deleted")
)

// Draft is an in-memory copy of a question being edited. A draft is
// either brand new or tied to an existing row; the two cases are
// explicit rather than inferred from id arithmetic.
type Draft struct {
	existing *int64
	Input    model.QuestionInput
}

// NewDraft returns an empty draft for a question that does not exist
// on the server yet.
func NewDraft() *Draft {
	return &Draft{
		Input: model.QuestionInput{
			Options: make([]string, model.OptionCount),
		},
	}
}

// EditOf returns a draft pre-filled from an existing question. The
// options are copied so edits never touch the machine's in-memory set.
func EditOf(q model.Question) *Draft {
	options := make([]string, len(q.Options))
	copy(options, q.Options)

	id := q.ID
	return &Draft{
		existing: &id,
		Input: model.QuestionInput{
			Question:      q.Question,
			Options:       options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		},
	}
}

// IsNew reports whether the draft represents a not-yet-persisted
// question.
func (d *Draft) IsNew() bool { return d.existing == nil }

// ExistingID returns the id of the row this draft edits, if any.
func (d *Draft) ExistingID() (int64, bool) {
	if d.existing == nil {
		return 0, false
	}
	return *d.existing, true
}

// Mutator is the slice of the API the edit form commits through.
type Mutator interface {
	CreateQuestion(ctx context.Context, in model.QuestionInput) (*model.Question, error)
	UpdateQuestion(ctx context.Context, id int64, in model.QuestionInput) (*model.Question, error)
	DeleteQuestion(ctx context.Context, id int64) error
}

// Editor commits drafts through the API. Save and Delete failures
// leave the draft untouched so the user can correct and resubmit.
type Editor struct {
	api Mutator
}

// NewEditor creates an editor committing through the given API.
func NewEditor(api Mutator) *Editor {
	return &Editor{api: api}
}

// Save commits the draft: Create for new drafts, Update for drafts of
// existing rows. On success the returned question carries the
// server-assigned id.
func (e *Editor) Save(ctx context.Context, d *Draft) (*model.Question, error) {
	if id, ok := d.ExistingID(); ok {
		return e.api.UpdateQuestion(ctx, id, d.Input)
	}
	return e.api.CreateQuestion(ctx, d.Input)
}

// CanDelete reports whether delete should be offered for this draft:
// only existing rows, and never when a single question remains. The
// count guard duplicates the server-side rule so the obvious case
// fails fast without a round trip.
func (e *Editor) CanDelete(d *Draft, total int) bool {
	return !d.IsNew() && total > 1
}

// Delete removes the row the draft edits.
func (e *Editor) Delete(ctx context.Context, d *Draft, total int) error {
	id, ok := d.ExistingID()
	if !ok {
		return ErrNotPersisted
	}
	if total <= 1 {
		return ErrLastQuestion
	}
	return e.api.DeleteQuestion(ctx, id)
}
