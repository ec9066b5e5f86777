package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"quizbank/internal/model"
)

// QuestionRepo provides access to the question table.
type QuestionRepo interface {
	List(ctx context.Context) ([]model.Question, error)
	GetByID(ctx context.Context, id int64) (*model.Question, error)
	Create(ctx context.Context, in model.QuestionInput) (*model.Question, error)
	Update(ctx context.Context, id int64, in model.QuestionInput) (*model.Question, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error

	// Bootstrap helpers used by the entrypoints.
	EnsureSchema(ctx context.Context) error
	SeedIfEmpty(ctx context.Context) (bool, error)
}

type questionRepo struct {
	pool *pgxpool.Pool
}

// NewQuestionRepo creates a question repository backed by PostgreSQL.
func NewQuestionRepo(pool *pgxpool.Pool) QuestionRepo {
	return &questionRepo{pool: pool}
}

const schema = `
	CREATE TABLE IF NOT EXISTS questions (
		id             BIGSERIAL PRIMARY KEY,
		question       TEXT NOT NULL,
		options        TEXT[] NOT NULL,
		correct_answer INT NOT NULL,
		explanation    TEXT NOT NULL DEFAULT '',
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)
`

// EnsureSchema creates the questions table if it does not exist yet.
func (r *questionRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// SampleQuestions is the fixed data set inserted into an empty table.
var SampleQuestions = []model.QuestionInput{
	{
		Question:      "What is the capital of France?",
		Options:       []string{"London", "Berlin", "Paris", "Madrid"},
		CorrectAnswer: 2,
		Explanation:   "Paris has been the capital of France since the 10th century.",
	},
	{
		Question:      "Which planet is known as the Red Planet?",
		Options:       []string{"Venus", "Mars", "Jupiter", "Saturn"},
		CorrectAnswer: 1,
		Explanation:   "Mars appears red because of iron oxide on its surface.",
	},
	{
		Question:      "What is the largest animal on Earth?",
		Options:       []string{"African Elephant", "Blue Whale", "Giraffe", "Colossal Squid"},
		CorrectAnswer: 1,
		Explanation:   "The blue whale can reach 30 metres and around 180 tonnes.",
	},
}

// SeedIfEmpty inserts the sample questions when the table has no rows.
func (r *questionRepo) SeedIfEmpty(ctx context.Context) (bool, error) {
	count, err := r.Count(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	for _, in := range SampleQuestions {
		if _, err := r.Create(ctx, in); err != nil {
			return false, fmt.Errorf("seed question: %w", err)
		}
	}
	return true, nil
}

func (r *questionRepo) List(ctx context.Context) ([]model.Question, error) {
	query := `
		SELECT id, question, options, correct_answer, explanation, created_at, updated_at
		FROM questions
		ORDER BY id ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	questions := make([]model.Question, 0)
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(
			&q.ID,
			&q.Question,
			&q.Options,
			&q.CorrectAnswer,
			&q.Explanation,
			&q.CreatedAt,
			&q.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	return questions, nil
}

func (r *questionRepo) GetByID(ctx context.Context, id int64) (*model.Question, error) {
	query := `
		SELECT id, question, options, correct_answer, explanation, created_at, updated_at
		FROM questions
		WHERE id = $1
	`

	var q model.Question
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&q.ID,
		&q.Question,
		&q.Options,
		&q.CorrectAnswer,
		&q.Explanation,
		&q.CreatedAt,
		&q.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("get question: %w", err)
	}

	return &q, nil
}

func (r *questionRepo) Create(ctx context.Context, in model.QuestionInput) (*model.Question, error) {
	query := `
		INSERT INTO questions (question, options, correct_answer, explanation)
		VALUES ($1, $2, $3, $4)
		RETURNING id, question, options, correct_answer, explanation, created_at, updated_at
	`

	var q model.Question
	err := r.pool.QueryRow(ctx, query, in.Question, in.Options, in.CorrectAnswer, in.Explanation).Scan(
		&q.ID,
		&q.Question,
		&q.Options,
		&q.CorrectAnswer,
		&q.Explanation,
		&q.CreatedAt,
		&q.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}

	return &q, nil
}

func (r *questionRepo) Update(ctx context.Context, id int64, in model.QuestionInput) (*model.Question, error) {
	query := `
		UPDATE questions
		SET question = $1,
		    options = $2,
		    correct_answer = $3,
		    explanation = $4,
		    updated_at = now()
		WHERE id = $5
		RETURNING id, question, options, correct_answer, explanation, created_at, updated_at
	`

	var q model.Question
	err := r.pool.QueryRow(ctx, query, in.Question, in.Options, in.CorrectAnswer, in.Explanation, id).Scan(
		&q.ID,
		&q.Question,
		&q.Options,
		&q.CorrectAnswer,
		&q.Explanation,
		&q.CreatedAt,
		&q.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("update question: %w", err)
	}

	return &q, nil
}

// Delete removes a question unless it is the last one remaining. The
// row-count guard runs inside the delete statement itself, so two
// concurrent deletes cannot jointly empty the table.
func (r *questionRepo) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM questions
		WHERE id = $1 AND (SELECT COUNT(*) FROM questions) > 1
	`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// Nothing was deleted: either the id does not exist or the guard
	// refused the last row. A follow-up read classifies the two.
	var exists bool
	err = r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM questions WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	if !exists {
		return model.ErrNotFound
	}
	return model.ErrLastQuestion
}

func (r *questionRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM questions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return count, nil
}

func (r *questionRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
