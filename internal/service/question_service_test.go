package service

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"quizbank/internal/cache"
	"quizbank/internal/model"
)

type fakeRepo struct {
	questions map[int64]model.Question
	nextID    int64
	pingErr   error
}

func newFakeRepo(seed ...model.QuestionInput) *fakeRepo {
	r := &fakeRepo{questions: make(map[int64]model.Question), nextID: 1}
	for _, in := range seed {
		r.insert(in)
	}
	return r
}

func (r *fakeRepo) insert(in model.QuestionInput) model.Question {
	q := model.Question{
		ID:            r.nextID,
		Question:      in.Question,
		Options:       append([]string(nil), in.Options...),
		CorrectAnswer: in.CorrectAnswer,
		Explanation:   in.Explanation,
	}
	r.questions[q.ID] = q
	r.nextID++
	return q
}

func (r *fakeRepo) List(context.Context) ([]model.Question, error) {
	out := make([]model.Question, 0, len(r.questions))
	for _, q := range r.questions {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*model.Question, error) {
	q, ok := r.questions[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return &q, nil
}

func (r *fakeRepo) Create(_ context.Context, in model.QuestionInput) (*model.Question, error) {
	q := r.insert(in)
	return &q, nil
}

func (r *fakeRepo) Update(_ context.Context, id int64, in model.QuestionInput) (*model.Question, error) {
	if _, ok := r.questions[id]; !ok {
		return nil, model.ErrNotFound
	}
	q := model.Question{
		ID:            id,
		Question:      in.Question,
		Options:       append([]string(nil), in.Options...),
		CorrectAnswer: in.CorrectAnswer,
		Explanation:   in.Explanation,
	}
	r.questions[id] = q
	return &q, nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.questions[id]; !ok {
		return model.ErrNotFound
	}
	if len(r.questions) == 1 {
		return model.ErrLastQuestion
	}
	delete(r.questions, id)
	return nil
}

func (r *fakeRepo) Count(context.Context) (int64, error) {
	return int64(len(r.questions)), nil
}

func (r *fakeRepo) Ping(context.Context) error { return r.pingErr }

func (r *fakeRepo) EnsureSchema(context.Context) error { return nil }

func (r *fakeRepo) SeedIfEmpty(context.Context) (bool, error) { return false, nil }

type fakeCache struct {
	list        []model.Question
	hasList     bool
	invalidated int
}

func (c *fakeCache) GetList(context.Context) ([]model.Question, error) {
	if !c.hasList {
		return nil, cache.ErrCacheMiss
	}
	return c.list, nil
}

func (c *fakeCache) SetList(_ context.Context, questions []model.Question) error {
	c.list = questions
	c.hasList = true
	return nil
}

func (c *fakeCache) Invalidate(context.Context) error {
	c.hasList = false
	c.invalidated++
	return nil
}

func validInput() model.QuestionInput {
	return model.QuestionInput{
		Question:      "What is the capital of France?",
		Options:       []string{"London", "Berlin", "Paris", "Madrid"},
		CorrectAnswer: 2,
		Explanation:   "Paris is the capital of France.",
	}
}

func newService(repo *fakeRepo, c cache.QuestionCache) *QuestionService {
	return NewQuestionService(repo, c, zap.NewNop())
}

func TestCreateThenGetReturnsEqualRecord(t *testing.T) {
	svc := newService(newFakeRepo(), nil)
	in := validInput()

	created, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, in.Question, got.Question)
	assert.Equal(t, in.Options, got.Options)
	assert.Equal(t, in.CorrectAnswer, got.CorrectAnswer)
	assert.Equal(t, in.Explanation, got.Explanation)
}

func TestCreateRejectsInvalidPayloads(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.QuestionInput)
	}{
		{"three options", func(in *model.QuestionInput) { in.Options = in.Options[:3] }},
		{"five options", func(in *model.QuestionInput) { in.Options = append(in.Options, "Rome") }},
		{"nil options", func(in *model.QuestionInput) { in.Options = nil }},
		{"negative correct answer", func(in *model.QuestionInput) { in.CorrectAnswer = -1 }},
		{"correct answer out of range", func(in *model.QuestionInput) { in.CorrectAnswer = 4 }},
		{"empty question", func(in *model.QuestionInput) { in.Question = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()
			svc := newService(repo, nil)

			in := validInput()
			tt.mutate(&in)

			_, err := svc.Create(context.Background(), in)
			assert.ErrorIs(t, err, ErrValidation)

			count, _ := repo.Count(context.Background())
			assert.Zero(t, count, "store must be unchanged after a rejected create")
		})
	}
}

func TestUpdateReplacesFieldsAndKeepsID(t *testing.T) {
	repo := newFakeRepo(validInput())
	svc := newService(repo, nil)

	in := model.QuestionInput{
		Question:      "Which planet is known as the Red Planet?",
		Options:       []string{"Venus", "Mars", "Jupiter", "Saturn"},
		CorrectAnswer: 1,
		Explanation:   "Iron oxide makes Mars look red.",
	}

	updated, err := svc.Update(context.Background(), 1, in)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.ID)

	got, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, in.Question, got.Question)
	assert.Equal(t, in.Options, got.Options)
	assert.Equal(t, in.CorrectAnswer, got.CorrectAnswer)
	assert.Equal(t, in.Explanation, got.Explanation)
}

func TestUpdateUnknownIDReturnsNotFound(t *testing.T) {
	svc := newService(newFakeRepo(validInput()), nil)

	_, err := svc.Update(context.Background(), 42, validInput())
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestDeleteLastQuestionIsRefused(t *testing.T) {
	repo := newFakeRepo(validInput())
	svc := newService(repo, nil)

	err := svc.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, model.ErrLastQuestion)

	count, _ := repo.Count(context.Background())
	assert.Equal(t, int64(1), count, "the remaining row must stay intact")
}

func TestDeleteWithMultipleRowsReducesCount(t *testing.T) {
	repo := newFakeRepo(validInput(), validInput())
	svc := newService(repo, nil)

	require.NoError(t, svc.Delete(context.Background(), 1))

	count, _ := repo.Count(context.Background())
	assert.Equal(t, int64(1), count)

	_, err := svc.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestDeleteUnknownIDReturnsNotFound(t *testing.T) {
	svc := newService(newFakeRepo(validInput(), validInput()), nil)

	err := svc.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestListReadsThroughCacheAndMutationsInvalidate(t *testing.T) {
	repo := newFakeRepo(validInput())
	c := &fakeCache{}
	svc := newService(repo, c)

	first, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.True(t, c.hasList, "list result must be cached")

	created, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, 1, c.invalidated, "create must invalidate the cache")

	second, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, second, 2)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.Equal(t, 2, c.invalidated, "delete must invalidate the cache")
}

func TestHealthReflectsDatabaseReachability(t *testing.T) {
	repo := newFakeRepo(validInput())
	svc := newService(repo, nil)

	status := svc.Health(context.Background())
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "connected", status.Database)
	assert.False(t, status.Timestamp.IsZero())

	repo.pingErr = errors.New("connection refused")
	status = svc.Health(context.Background())
	assert.Equal(t, "error", status.Status)
	assert.Equal(t, "unreachable", status.Database)
}
