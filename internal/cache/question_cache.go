package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"quizbank/internal/model"
)

// ErrCacheMiss is returned when the question list is not cached.
var ErrCacheMiss = errors.New("cache miss")

const questionListKey = "questions:all"

// QuestionCache holds a short-lived copy of the full question list.
type QuestionCache interface {
	GetList(ctx context.Context) ([]model.Question, error)
	SetList(ctx context.Context, questions []model.Question) error
	Invalidate(ctx context.Context) error
}

type questionCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewQuestionCache(client *redis.Client, ttl time.Duration) QuestionCache {
	return &questionCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *questionCache) GetList(ctx context.Context) ([]model.Question, error) {
	data, err := c.client.Get(ctx, questionListKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}

	var questions []model.Question
	err = json.Unmarshal([]byte(data), &questions)
	return questions, err
}

func (c *questionCache) SetList(ctx context.Context, questions []model.Question) error {
	data, err := json.Marshal(questions)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, questionListKey, data, c.ttl).Err()
}

func (c *questionCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, questionListKey).Err()
}
