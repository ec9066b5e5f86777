package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizbank/internal/model"
)

func TestListQuestions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/questions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"question":"What is the capital of France?","options":["London","Berlin","Paris","Madrid"],"correctAnswer":2,"explanation":""}]`))
	}))
	defer srv.Close()

	api := New(srv.URL)
	questions, err := api.ListQuestions(context.Background())
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, int64(1), questions[0].ID)
	assert.Equal(t, 2, questions[0].CorrectAnswer)
}

func TestCreateQuestionSendsBoundaryFieldNames(t *testing.T) {
	var received map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":4,"question":"q","options":["a","b","c","d"],"correctAnswer":0,"explanation":""}`))
	}))
	defer srv.Close()

	api := New(srv.URL)
	created, err := api.CreateQuestion(context.Background(), model.QuestionInput{
		Question:      "q",
		Options:       []string{"a", "b", "c", "d"},
		CorrectAnswer: 0,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), created.ID)

	assert.Contains(t, received, "correctAnswer")
	assert.NotContains(t, received, "correct_answer")
}

func TestErrorBodyDecodesIntoAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"cannot delete the last remaining question"}`))
	}))
	defer srv.Close()

	api := New(srv.URL)
	err := api.DeleteQuestion(context.Background(), 1)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "cannot delete the last remaining question", apiErr.Message)
}

func TestErrorWithoutBodyStillFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	api := New(srv.URL)
	_, err := api.GetQuestion(context.Background(), 1)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "request failed", apiErr.Message)
}

func TestUpdateAndDeletePaths(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodPut:
			w.Write([]byte(`{"id":9,"question":"q","options":["a","b","c","d"],"correctAnswer":1,"explanation":""}`))
		case http.MethodDelete:
			w.Write([]byte(`{"message":"question deleted"}`))
		}
	}))
	defer srv.Close()

	api := New(srv.URL)

	updated, err := api.UpdateQuestion(context.Background(), 9, model.QuestionInput{
		Question:      "q",
		Options:       []string{"a", "b", "c", "d"},
		CorrectAnswer: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), updated.ID)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/questions/9", gotPath)

	require.NoError(t, api.DeleteQuestion(context.Background(), 9))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/api/questions/9", gotPath)
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","database":"connected","timestamp":"2025-01-01T00:00:00Z"}`))
	}))
	defer srv.Close()

	api := New(srv.URL)
	status, err := api.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "connected", status.Database)
}
