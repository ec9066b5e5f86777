package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"quizbank/internal/model"
	"quizbank/internal/service"
)

// APIError is a non-2xx response decoded from the server's
// {"error": "..."} body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// API is a thin HTTP client over the question REST API.
type API struct {
	baseURL string
	httpc   *http.Client
}

// New creates an API client for the given base URL, e.g.
// "http://localhost:8080".
func New(baseURL string) *API {
	return &API{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
	}
}

// ListQuestions fetches the full question set.
func (a *API) ListQuestions(ctx context.Context) ([]model.Question, error) {
	var questions []model.Question
	if err := a.do(ctx, http.MethodGet, "/api/questions", nil, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// GetQuestion fetches one question by id.
func (a *API) GetQuestion(ctx context.Context, id int64) (*model.Question, error) {
	var q model.Question
	if err := a.do(ctx, http.MethodGet, fmt.Sprintf("/api/questions/%d", id), nil, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// CreateQuestion inserts a new question and returns it with its
// server-assigned id.
func (a *API) CreateQuestion(ctx context.Context, in model.QuestionInput) (*model.Question, error) {
	var q model.Question
	if err := a.do(ctx, http.MethodPost, "/api/questions", in, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// UpdateQuestion replaces all mutable fields of an existing question.
func (a *API) UpdateQuestion(ctx context.Context, id int64, in model.QuestionInput) (*model.Question, error) {
	var q model.Question
	if err := a.do(ctx, http.MethodPut, fmt.Sprintf("/api/questions/%d", id), in, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// DeleteQuestion removes a question by id.
func (a *API) DeleteQuestion(ctx context.Context, id int64) error {
	return a.do(ctx, http.MethodDelete, fmt.Sprintf("/api/questions/%d", id), nil, nil)
}

// Health fetches the server health report.
func (a *API) Health(ctx context.Context) (*service.HealthStatus, error) {
	var status service.HealthStatus
	if err := a.do(ctx, http.MethodGet, "/api/health", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (a *API) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: "request failed"}
		var payload struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
			apiErr.Message = payload.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
