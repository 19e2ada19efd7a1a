package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ruteri/geopsi/store"
)

func newTestServer() (*Server, *store.MemoryStore) {
	mem := store.NewMemoryStore(10)
	s := New(Config{Store: mem})
	return s, mem
}

func doPSIRequest(t *testing.T, s *Server, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/psi", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHandlePSISingleMatch(t *testing.T) {
	s, mem := newTestServer()

	body := map[string]any{
		"bob_units": []map[string]any{
			{"id": "b1", "x": 1.2, "y": 3.4},
		},
		"alice_units": []map[string]any{
			{"id": "a1", "x": 1.9, "y": 3.1},
		},
	}
	rec := doPSIRequest(t, s, body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp psiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, []string{"1 3"}, resp.Decrypted)
	require.NotEmpty(t, resp.BobMessage)
	require.NotEmpty(t, resp.AliceMessage)
	require.NotEmpty(t, resp.BobResponse)

	sessions, err := mem.RecentSessions(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.Equal(t, 1, sessions[0].MatchCount)
}

func TestHandlePSINoMatches(t *testing.T) {
	s, _ := newTestServer()

	body := map[string]any{
		"bob_units": []map[string]any{
			{"id": "b1", "x": 10.0, "y": 20.0},
		},
		"alice_units": []map[string]any{
			{"id": "a1", "x": -1.0, "y": -2.0},
		},
	}
	rec := doPSIRequest(t, s, body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp psiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Empty(t, resp.Decrypted)
}

func TestHandlePSIRejectsMalformedBody(t *testing.T) {
	s, _ := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/psi", bytes.NewReader([]byte("not json")))
	rec := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var errResp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	require.NotEmpty(t, errResp.Error)
}

func TestHandlePSITextFormat(t *testing.T) {
	mem := store.NewMemoryStore(10)
	s := New(Config{Store: mem, TextFormat: true})

	body := map[string]any{
		"bob_units": []map[string]any{
			{"id": "b1", "x": 1.2, "y": 3.4},
		},
		"alice_units": []map[string]any{
			{"id": "a1", "x": 1.9, "y": 3.1},
		},
	}
	rec := doPSIRequest(t, s, body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp psiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, []string{"1 3"}, resp.Decrypted)
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
}
