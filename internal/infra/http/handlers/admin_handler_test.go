package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bloomview/bloomview-api/internal/entity"
	"github.com/bloomview/bloomview-api/internal/infra/http/middleware"
	"github.com/bloomview/bloomview-api/internal/infra/sqlite"
)

const testPasscode = "bloom2025"

// newAdminRouter wires the guarded admin routes exactly as cmd/api does.
func newAdminRouter(t *testing.T) (http.Handler, *sqlite.Store) {
	t.Helper()
	store, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	handler := NewAdminLeadHandler(store)

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middleware.PasscodeGuard(testPasscode))
		r.Get("/api/leads", handler.List)
		r.Patch("/api/leads/{id}", handler.UpdateStatus)
		r.Delete("/api/leads/{id}", handler.Delete)
	})
	return r, store
}

func seedLead(t *testing.T, store *sqlite.Store, name string, createdAt time.Time) *entity.Lead {
	t.Helper()
	lead := entity.NewLead(name, name+"@example.com", "IT Solutions", "Hi")
	lead.CreatedAt = createdAt
	require.NoError(t, store.Insert(context.Background(), lead))
	return lead
}

func doAuthed(router http.Handler, method, path, auth string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListRequiresPasscode(t *testing.T) {
	router, store := newAdminRouter(t)
	seedLead(t, store, "Ada", time.Now().UTC())

	cases := []struct {
		name string
		auth string
	}{
		{"no header", ""},
		{"wrong passcode", "Bearer nope"},
		{"wrong bare passcode", "nope"},
		{"empty bearer", "Bearer "},
		{"prefix of real passcode", "Bearer bloom"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doAuthed(router, "GET", "/api/leads", tc.auth, nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.NotContains(t, w.Body.String(), "Ada", "unauthorized response must not leak lead data")
		})
	}
}

func TestListAcceptsBearerAndBareHeader(t *testing.T) {
	router, store := newAdminRouter(t)
	seedLead(t, store, "Ada", time.Now().UTC())

	for _, auth := range []string{"Bearer " + testPasscode, testPasscode} {
		w := doAuthed(router, "GET", "/api/leads", auth, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var leads []entity.Lead
		require.NoError(t, json.NewDecoder(w.Body).Decode(&leads))
		require.Len(t, leads, 1)
		assert.Equal(t, "Ada", leads[0].Name)
	}
}

func TestListNewestFirst(t *testing.T) {
	router, store := newAdminRouter(t)

	base := time.Now().UTC()
	seedLead(t, store, "oldest", base.Add(-2*time.Hour))
	seedLead(t, store, "newest", base)
	seedLead(t, store, "middle", base.Add(-time.Hour))

	w := doAuthed(router, "GET", "/api/leads", "Bearer "+testPasscode, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var leads []entity.Lead
	require.NoError(t, json.NewDecoder(w.Body).Decode(&leads))
	require.Len(t, leads, 3)
	assert.Equal(t, "newest", leads[0].Name)
	assert.Equal(t, "middle", leads[1].Name)
	assert.Equal(t, "oldest", leads[2].Name)
}

func TestUpdateStatus(t *testing.T) {
	router, store := newAdminRouter(t)
	lead := seedLead(t, store, "Ada", time.Now().UTC())

	body, _ := json.Marshal(map[string]string{"status": "resolved"})
	w := doAuthed(router, "PATCH", "/api/leads/"+lead.ID, "Bearer "+testPasscode, body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Updated")

	leads, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.StatusResolved, leads[0].Status)
}

func TestUpdateStatusUnknownID(t *testing.T) {
	router, _ := newAdminRouter(t)

	body, _ := json.Marshal(map[string]string{"status": "resolved"})
	w := doAuthed(router, "PATCH", "/api/leads/missing", "Bearer "+testPasscode, body)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	router, store := newAdminRouter(t)
	lead := seedLead(t, store, "Ada", time.Now().UTC())

	body, _ := json.Marshal(map[string]string{"status": "archived"})
	w := doAuthed(router, "PATCH", "/api/leads/"+lead.ID, "Bearer "+testPasscode, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	leads, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.StatusNew, leads[0].Status, "invalid status must not be written")
}

func TestDeleteLead(t *testing.T) {
	router, store := newAdminRouter(t)
	lead := seedLead(t, store, "Ada", time.Now().UTC())

	w := doAuthed(router, "DELETE", "/api/leads/"+lead.ID, "Bearer "+testPasscode, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Deleted")

	leads, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, leads)
}

func TestDeleteUnknownID(t *testing.T) {
	router, _ := newAdminRouter(t)

	w := doAuthed(router, "DELETE", "/api/leads/missing", "Bearer "+testPasscode, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMutationsRequirePasscode(t *testing.T) {
	router, store := newAdminRouter(t)
	lead := seedLead(t, store, "Ada", time.Now().UTC())

	body, _ := json.Marshal(map[string]string{"status": "resolved"})
	w := doAuthed(router, "PATCH", "/api/leads/"+lead.ID, "Bearer wrong", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doAuthed(router, "DELETE", "/api/leads/"+lead.ID, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// No side effects from the rejected calls.
	leads, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, entity.StatusNew, leads[0].Status)
}
