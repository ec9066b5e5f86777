package quiz

import (
	"context"
	"math"

	"quizbank/internal/model"
)

// Phase is the current state of the quiz state machine.
type Phase string

const (
	PhaseLoading   Phase = "loading"
	PhaseError     Phase = "error"
	PhaseAnswering Phase = "answering"
	PhaseRevealed  Phase = "revealed"
	PhaseCompleted Phase = "completed"
	PhaseEditing   Phase = "editing"
)

// NoSelection marks a question with no option selected yet.
const NoSelection = -1

// Fetcher loads the full question set from the server.
type Fetcher interface {
	ListQuestions(ctx context.Context) ([]model.Question, error)
}

// Machine tracks play progress: current index, selection, score and
// phase. All transitions happen on the caller's goroutine; the machine
// holds no locks.
type Machine struct {
	fetcher Fetcher

	phase     Phase
	questions []model.Question
	index     int
	score     int
	selected  int
	correct   bool
	loadErr   error

	// phase play was in when editing began, restored on cancel
	returnPhase Phase
}

// NewMachine creates a machine in the loading phase.
func NewMachine(fetcher Fetcher) *Machine {
	return &Machine{
		fetcher:  fetcher,
		phase:    PhaseLoading,
		selected: NoSelection,
	}
}

// Load fetches the question set and enters answering at index 0.
// On failure the machine enters the error phase; Load can be called
// again to retry.
func (m *Machine) Load(ctx context.Context) error {
	questions, err := m.fetcher.ListQuestions(ctx)
	if err != nil {
		m.phase = PhaseError
		m.loadErr = err
		return err
	}

	m.questions = questions
	m.loadErr = nil
	m.reset()
	return nil
}

// Reload re-fetches the question set after an edit was committed. The
// question bank changed, so scoring starts over: score and selection
// are cleared and play resumes answering at the prior index when it
// still exists, at index 0 otherwise. Restarting the count is what
// keeps a question from ever being scored twice across an edit.
func (m *Machine) Reload(ctx context.Context) error {
	questions, err := m.fetcher.ListQuestions(ctx)
	if err != nil {
		return err
	}

	m.questions = questions
	if m.index >= len(m.questions) {
		m.index = 0
	}
	m.score = 0
	m.correct = false
	m.selected = NoSelection
	m.phase = PhaseAnswering
	if len(m.questions) == 0 {
		m.phase = PhaseCompleted
	}
	return nil
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase { return m.phase }

// LoadError returns the error that moved the machine into the error
// phase, or nil.
func (m *Machine) LoadError() error { return m.loadErr }

// Questions returns a copy of the in-memory question set, so callers
// can never mutate the machine's state through it.
func (m *Machine) Questions() []model.Question {
	out := make([]model.Question, len(m.questions))
	copy(out, m.questions)
	for i := range out {
		out[i].Options = append([]string(nil), out[i].Options...)
	}
	return out
}

// Total returns the number of loaded questions.
func (m *Machine) Total() int { return len(m.questions) }

// Index returns the current question index.
func (m *Machine) Index() int { return m.index }

// Current returns the question being played, or nil outside of play.
func (m *Machine) Current() *model.Question {
	if m.index < 0 || m.index >= len(m.questions) {
		return nil
	}
	return &m.questions[m.index]
}

// Selected returns the selected option index, or NoSelection.
func (m *Machine) Selected() int { return m.selected }

// Select records the chosen option, replacing any prior selection.
// Only valid while answering.
func (m *Machine) Select(option int) bool {
	if m.phase != PhaseAnswering {
		return false
	}
	q := m.Current()
	if q == nil || option < 0 || option >= len(q.Options) {
		return false
	}
	m.selected = option
	return true
}

// Submit compares the selection against the correct answer and moves
// to revealed. Submitting with no selection is a no-op. The score is
// incremented at most once per question: submit is only reachable from
// answering and advancing clears the selection.
func (m *Machine) Submit() bool {
	if m.phase != PhaseAnswering || m.selected == NoSelection {
		return false
	}
	q := m.Current()
	if q == nil {
		return false
	}

	m.correct = m.selected == q.CorrectAnswer
	if m.correct {
		m.score++
	}
	m.phase = PhaseRevealed
	return true
}

// LastCorrect reports whether the last submitted answer was correct.
func (m *Machine) LastCorrect() bool { return m.correct }

// Advance moves from revealed to the next question, or to completed
// when no questions remain.
func (m *Machine) Advance() {
	if m.phase != PhaseRevealed {
		return
	}

	if m.index+1 < len(m.questions) {
		m.index++
		m.selected = NoSelection
		m.phase = PhaseAnswering
		return
	}
	m.phase = PhaseCompleted
}

// Score returns the number of correctly answered questions.
func (m *Machine) Score() int { return m.score }

// Percentage returns round(score/total*100).
func (m *Machine) Percentage() int {
	if len(m.questions) == 0 {
		return 0
	}
	return int(math.Round(float64(m.score) / float64(len(m.questions)) * 100))
}

// Restart resets score, index and selection and returns to answering.
func (m *Machine) Restart() {
	m.reset()
}

// BeginEditing enters the editing phase. Editing is reachable from
// answering, revealed and completed.
func (m *Machine) BeginEditing() bool {
	switch m.phase {
	case PhaseAnswering, PhaseRevealed, PhaseCompleted:
		m.returnPhase = m.phase
		m.phase = PhaseEditing
		return true
	default:
		return false
	}
}

// CancelEditing discards the edit and resumes play exactly where it
// left off. Nothing was scored or advanced while editing, so the prior
// phase comes back untouched; an already-submitted question stays
// revealed and cannot be submitted again.
func (m *Machine) CancelEditing() {
	if m.phase != PhaseEditing {
		return
	}
	m.phase = m.returnPhase
}

func (m *Machine) reset() {
	m.index = 0
	m.score = 0
	m.selected = NoSelection
	m.correct = false
	m.phase = PhaseAnswering
	// The server never serves an empty bank, but a foreign endpoint
	// might; an empty set completes immediately instead of answering nil.
	if len(m.questions) == 0 {
		m.phase = PhaseCompleted
	}
}
