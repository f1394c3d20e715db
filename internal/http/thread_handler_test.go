package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dbakibillah/petVerse-server/internal/domain"
	"github.com/dbakibillah/petVerse-server/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateThread(t *testing.T) {
	mock := &ThreadBoardMock{id: "65f000000000000000000003"}
	handler := NewThreadHandler(mock)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/threads",
		strings.NewReader(`{"postTitle":"Hello","postDescription":"First post","authorEmail":"jane@example.com"}`))

	handler.CreateThread(recorder, request)

	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.JSONEq(t,
		`{"success":true,"message":"Thread created successfully","insertedId":"65f000000000000000000003"}`,
		recorder.Body.String())
}

func TestGetThread(t *testing.T) {
	id := primitive.NewObjectID()
	handler := NewThreadHandler(&ThreadBoardMock{threads: []domain.Thread{{ID: id, PostTitle: "Hello"}}})

	recorder := httptest.NewRecorder()
	handler.GetThread(recorder, withURLParam(httptest.NewRequest("GET", "/threads/"+id.Hex(), nil), "id", id.Hex()))
	require.Equal(t, http.StatusOK, recorder.Code)

	missing := primitive.NewObjectID().Hex()
	recorder = httptest.NewRecorder()
	handler.GetThread(recorder, withURLParam(httptest.NewRequest("GET", "/threads/"+missing, nil), "id", missing))
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestToggleLike(t *testing.T) {
	mock := &ThreadBoardMock{like: &service.LikeResult{Liked: true, LikesCount: 4}}
	handler := NewThreadHandler(mock)

	id := primitive.NewObjectID().Hex()
	recorder := httptest.NewRecorder()
	request := withURLParam(httptest.NewRequest("PATCH", "/threads/"+id,
		strings.NewReader(`{"userEmail":"jane@example.com"}`)), "id", id)

	handler.ToggleLike(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"success":true,"liked":true,"likesCount":4}`, recorder.Body.String())
	assert.Equal(t, "jane@example.com", mock.lastEmail)
}

func TestToggleLike_Conflict(t *testing.T) {
	handler := NewThreadHandler(&ThreadBoardMock{err: &service.Error{Kind: service.ErrConflict, Message: "Update failed"}})

	id := primitive.NewObjectID().Hex()
	recorder := httptest.NewRecorder()
	request := withURLParam(httptest.NewRequest("PATCH", "/threads/"+id,
		strings.NewReader(`{"userEmail":"jane@example.com"}`)), "id", id)

	handler.ToggleLike(recorder, request)

	assert.Equal(t, http.StatusConflict, recorder.Code)
}

func TestAddComment(t *testing.T) {
	mock := &ThreadBoardMock{added: true}
	handler := NewThreadHandler(mock)

	id := primitive.NewObjectID().Hex()
	recorder := httptest.NewRecorder()
	request := withURLParam(httptest.NewRequest("PATCH", "/threads/comment/"+id,
		strings.NewReader(`{"newComment":{"authorEmail":"jane@example.com","text":"Nice dog"}}`)), "id", id)

	handler.AddComment(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"success":true}`, recorder.Body.String())
	assert.Equal(t, "Nice dog", mock.lastComment.Text)
}

func TestListThreads_Empty(t *testing.T) {
	handler := NewThreadHandler(&ThreadBoardMock{threads: []domain.Thread{}})

	recorder := httptest.NewRecorder()
	handler.ListThreads(recorder, httptest.NewRequest("GET", "/threads", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	var raw []json.RawMessage
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &raw))
	assert.NotNil(t, raw)
	assert.Empty(t, raw)
}
