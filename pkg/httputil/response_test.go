package httputil

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	data := map[string]string{"message": "success"}

	err := WriteJSON(w, http.StatusOK, data)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message": "success"}`, w.Body.String())
}

func TestWriteRaw(t *testing.T) {
	w := httptest.NewRecorder()

	err := WriteRaw(w, http.StatusOK, "application/yaml", []byte("inputs: {}\n"))

	assert.NoError(t, err)
	assert.Equal(t, "application/yaml", w.Header().Get("Content-Type"))
	assert.Equal(t, "inputs: {}\n", w.Body.String())
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()

	WriteError(w, http.StatusBadRequest, errors.New("test error"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error": "test error"}`, w.Body.String())
}

func TestWriteDetailedError(t *testing.T) {
	w := httptest.NewRecorder()

	WriteDetailedError(w, http.StatusUnprocessableEntity, errors.New("decode failed"), map[string]string{"format": "yaml"})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"error": "decode failed", "details": {"format": "yaml"}}`, w.Body.String())
}

func TestStatusHelpers(t *testing.T) {
	tests := []struct {
		name   string
		write  func(w http.ResponseWriter)
		status int
	}{
		{"bad request", func(w http.ResponseWriter) { WriteBadRequest(w, "m") }, http.StatusBadRequest},
		{"not found", func(w http.ResponseWriter) { WriteNotFoundError(w, "m") }, http.StatusNotFound},
		{"unprocessable", func(w http.ResponseWriter) { WriteUnprocessable(w, "m") }, http.StatusUnprocessableEntity},
		{"internal", func(w http.ResponseWriter) { WriteInternalError(w, errors.New("m")) }, http.StatusInternalServerError},
		{"success", func(w http.ResponseWriter) { WriteSuccess(w, "m") }, http.StatusOK},
		{"no content", func(w http.ResponseWriter) { WriteNoContent(w) }, http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.write(w)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestWriteJSONOrError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSONOrError(w, http.StatusOK, map[string]int{"n": 1}, "encode failed")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"n": 1}`, w.Body.String())

	w = httptest.NewRecorder()
	WriteJSONOrError(w, http.StatusOK, map[string]interface{}{"n": make(chan int)}, "encode failed")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "encode failed")
}
