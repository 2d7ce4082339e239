package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/john-zaremba/my-easy-tracker/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSearcher struct {
	mu  sync.Mutex
	raw *services.RawFood
	err error
}

func (s *stubSearcher) NaturalSearch(ctx context.Context, query string) (*services.RawFood, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	cp := *s.raw
	return &cp, nil
}

// testRouter wires the log routes with a stub auth layer that pins
// the authenticated user.
func testRouter(svc *services.LogService, uid uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", uid)
		c.Next()
	})

	lc := NewLogController(svc)
	ec := NewLogEntryController(svc, nil)
	r.GET("/api/v1/logs", lc.ListLogs)
	r.GET("/api/v1/logs/:id", lc.GetLog)
	r.DELETE("/api/v1/logs/:id", lc.DeleteLog)
	r.POST("/api/v1/logs/:id/entries", ec.AddEntry)
	r.PATCH("/api/v1/entries/:id", ec.PatchEntry)
	r.DELETE("/api/v1/entries/:id", ec.DeleteEntry)
	return r
}

type logEnvelope struct {
	Log services.LogDetail `json:"log"`
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func newLogFixture(t *testing.T, food services.FoodSearcher, uid uint) (*services.LogService, uint) {
	t.Helper()
	svc := services.NewLogService(services.NewMemoryLogStore(), food)
	log, _, err := svc.GetOrCreateLog(uid, time.Now())
	require.NoError(t, err)
	return svc, log.ID
}

func eggStub() *stubSearcher {
	return &stubSearcher{raw: &services.RawFood{
		FoodName:   "Egg",
		ServingQty: 2.0,
		Calories:   140.0,
		TotalFat:   10.0,
		Protein:    12.0,
		Carbs:      1.0,
	}}
}

func TestAddEntryEndpoint(t *testing.T) {
	svc, logID := newLogFixture(t, eggStub(), 1)
	r := testRouter(svc, 1)

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/logs/%d/entries", logID),
		gin.H{"entryQuery": "2 eggs"})

	require.Equal(t, http.StatusCreated, w.Code)
	var resp logEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Log.Entries, 1)
	assert.Equal(t, 140.0, resp.Log.Total.Calories)
	assert.Equal(t, 64.3, resp.Log.Macros.Fat)
}

func TestAddEntryEndpoint_MissingQuery(t *testing.T) {
	svc, logID := newLogFixture(t, eggStub(), 1)
	r := testRouter(svc, 1)

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/logs/%d/entries", logID), gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddEntryEndpoint_FoodNotFound(t *testing.T) {
	food := eggStub()
	food.err = fmt.Errorf("%w: no food matched", services.ErrNotFound)
	svc, logID := newLogFixture(t, food, 1)
	r := testRouter(svc, 1)

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/logs/%d/entries", logID),
		gin.H{"entryQuery": "gibberish"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	detail, err := svc.GetLogDetail(1, logID)
	require.NoError(t, err)
	assert.Empty(t, detail.Entries)
}

func TestGetLogEndpoint_ForeignLogIsUnauthorized(t *testing.T) {
	svc, logID := newLogFixture(t, eggStub(), 1)
	r := testRouter(svc, 2) // authenticated as a different user

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/logs/%d", logID), nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPatchAndDeleteEntryEndpoints(t *testing.T) {
	svc, logID := newLogFixture(t, eggStub(), 1)
	r := testRouter(svc, 1)

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/logs/%d/entries", logID),
		gin.H{"entryQuery": "2 eggs"})
	require.Equal(t, http.StatusCreated, w.Code)
	var resp logEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	entryID := resp.Log.Entries[0].EntryID

	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/v1/entries/%d", entryID),
		gin.H{"calories": 70, "quantity": 1})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 70.0, resp.Log.Total.Calories)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/entries/%d", entryID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Log.Entries)
	assert.Zero(t, resp.Log.Total.Calories)

	// deleting again must fail loudly, not succeed with stale data
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/entries/%d", entryID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteLogEndpoint(t *testing.T) {
	svc, logID := newLogFixture(t, eggStub(), 1)
	r := testRouter(svc, 1)

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/logs/%d", logID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/logs/%d", logID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
