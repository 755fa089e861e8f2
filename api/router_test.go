package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"surveybot/db"
	"surveybot/survey"
)

func newCommunity(t *testing.T) *survey.Community {
	t.Helper()
	c := survey.NewCommunity(survey.DefaultSettings())
	c.Join(1, "alice")
	c.Join(2, "bob")
	return c
}

func newArchive(t *testing.T) *db.Store {
	t.Helper()
	store, err := db.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealth(t *testing.T) {
	h := New(newCommunity(t), nil, zaptest.NewLogger(t)).Router()

	rec := get(t, h, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","members":2}`, rec.Body.String())
}

func TestActiveSurvey(t *testing.T) {
	c := newCommunity(t)
	h := New(c, nil, zaptest.NewLogger(t)).Router()

	assert.Equal(t, http.StatusNotFound, get(t, h, "/survey/active").Code)

	creator, _ := c.Member(1)
	s, err := survey.Compile([]survey.Draft{{Text: "Pick", Options: []string{"a", "b"}}}, creator, c)
	require.NoError(t, err)
	_, err = s.Open(c.Members(), time.Minute)
	require.NoError(t, err)

	rec := get(t, h, "/survey/active")
	require.Equal(t, http.StatusOK, rec.Code)
	var view ActiveSurvey
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, s.ID, view.ID)
	assert.Equal(t, survey.StateOpen, view.State)
	assert.Equal(t, "alice", view.CreatorName)
	assert.Equal(t, 2, view.Participants)
	assert.Equal(t, []ActiveQuestion{{Text: "Pick", Options: []string{"a", "b"}}}, view.Questions)
	require.NotNil(t, view.Deadline)

	require.True(t, s.Close(survey.ReasonTimeout))
	assert.Equal(t, http.StatusNotFound, get(t, h, "/survey/active").Code)
}

func TestArchiveRoutes(t *testing.T) {
	store := newArchive(t)
	h := New(newCommunity(t), store, zaptest.NewLogger(t)).Router()

	rec := get(t, h, "/surveys")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	require.NoError(t, store.SaveResult(context.Background(), survey.Result{
		SurveyID:  "s-1",
		Reason:    survey.ReasonQuorum,
		OpenedAt:  time.Now(),
		ClosedAt:  time.Now(),
		Questions: []survey.QuestionResult{{Text: "Pick", Total: 1, Ranked: []survey.RankedOption{{Option: "a", Votes: 1, Percent: 100}}}},
	}))

	rec = get(t, h, "/surveys?limit=5")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []db.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "s-1", list[0].SurveyID)

	rec = get(t, h, "/surveys/s-1")
	require.Equal(t, http.StatusOK, rec.Code)
	var res survey.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "a", res.Questions[0].Ranked[0].Option)

	assert.Equal(t, http.StatusNotFound, get(t, h, "/surveys/missing").Code)
}

func TestArchiveDisabled(t *testing.T) {
	h := New(newCommunity(t), nil, nil).Router()
	assert.Equal(t, http.StatusServiceUnavailable, get(t, h, "/surveys").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get(t, h, "/surveys/x").Code)
}

func TestParseLimit(t *testing.T) {
	assert.Equal(t, defaultListLimit, parseLimit(""))
	assert.Equal(t, defaultListLimit, parseLimit("-3"))
	assert.Equal(t, 7, parseLimit("7"))
	assert.Equal(t, maxListLimit, parseLimit("5000"))
}
