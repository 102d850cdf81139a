package kappamltest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func do(t *testing.T, srv *Server, method, path, key string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, srv.BaseURL()+path, &buf)
	require.NoError(t, err)
	if key != "" {
		req.Header.Set("X-API-Key", key)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestServerRequiresAPIKey(t *testing.T) {
	srv := NewServer(WithAPIKey("secret"))
	defer srv.Close()

	code, _ := do(t, srv, http.MethodPost, "/models", "", map[string]any{"name": "m", "ml_type": "regression"})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = do(t, srv, http.MethodPost, "/models", "wrong", map[string]any{"name": "m", "ml_type": "regression"})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body := do(t, srv, http.MethodPost, "/models", "secret", map[string]any{"name": "m", "ml_type": "regression"})
	assert.Equal(t, http.StatusCreated, code)
	assert.NotEmpty(t, body["id"])
}

func TestServerStatusSequence(t *testing.T) {
	srv := NewServer(WithStatuses("Pending", "Pending", "Deployed"))
	defer srv.Close()

	_, body := do(t, srv, http.MethodPost, "/models", srv.APIKey(), map[string]any{"name": "m", "ml_type": "regression"})
	id, _ := body["id"].(string)
	require.NotEmpty(t, id)

	var seen []any
	for i := 0; i < 4; i++ {
		code, body := do(t, srv, http.MethodGet, "/models/"+id, srv.APIKey(), nil)
		require.Equal(t, http.StatusOK, code)
		seen = append(seen, body["status"])
	}

	assert.Equal(t, []any{"Pending", "Pending", "Deployed", "Deployed"}, seen)
	assert.Equal(t, 4, srv.StatusChecks(id))
	times := srv.StatusCheckTimes(id)
	require.Len(t, times, 4)
	for i := 1; i < len(times); i++ {
		assert.False(t, times[i].Before(times[i-1]))
	}
	assert.Equal(t, 4, srv.Hits(http.MethodGet, "/models/{id}"))
	assert.Equal(t, 1, srv.Hits(http.MethodPost, "/models"))
}

func TestServerLearnPredictMetrics(t *testing.T) {
	srv := NewServer()
	defer srv.Close()
	id := srv.AddModel("m", "regression")
	key := srv.APIKey()

	for _, target := range []float64{1, 2, 3} {
		code, _ := do(t, srv, http.MethodPost, "/models/"+id+"/learn", key, map[string]any{
			"features": map[string]any{"x": target},
			"target":   target,
		})
		require.Equal(t, http.StatusOK, code)
	}

	code, body := do(t, srv, http.MethodPost, "/models/"+id+"/predict", key, map[string]any{
		"features": map[string]any{"x": 1},
	})
	require.Equal(t, http.StatusOK, code)
	assert.InDelta(t, 2.0, body["prediction"], 1e-9)

	code, body = do(t, srv, http.MethodGet, "/models/"+id+"/metrics", key, nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 3, body["observations"])
	assert.Equal(t, 3, srv.Observations(id))
}

func TestServerClassificationPredictsMostFrequentLabel(t *testing.T) {
	srv := NewServer()
	defer srv.Close()
	id := srv.AddModel("c", "classification")

	for _, label := range []string{"cat", "dog", "dog"} {
		code, _ := do(t, srv, http.MethodPost, "/models/"+id+"/learn", srv.APIKey(), map[string]any{
			"features": map[string]any{"x": 1},
			"target":   label,
		})
		require.Equal(t, http.StatusOK, code)
	}

	_, body := do(t, srv, http.MethodPost, "/models/"+id+"/predict", srv.APIKey(), map[string]any{
		"features": map[string]any{"x": 1},
	})
	assert.Equal(t, "dog", body["prediction"])
}

func TestServerDeleteAndNotFound(t *testing.T) {
	srv := NewServer()
	defer srv.Close()
	id := srv.AddModel("m", "regression")

	code, _ := do(t, srv, http.MethodDelete, "/models/"+id, srv.APIKey(), nil)
	assert.Equal(t, http.StatusOK, code)
	assert.False(t, srv.Exists(id))

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/models/" + id},
		{http.MethodDelete, "/models/" + id},
		{http.MethodGet, "/models/" + id + "/metrics"},
	} {
		code, body := do(t, srv, tc.method, tc.path, srv.APIKey(), nil)
		assert.Equal(t, http.StatusNotFound, code, tc.path)
		assert.Equal(t, "Model not found", body["detail"])
	}
}

func TestServerFailWith(t *testing.T) {
	srv := NewServer()
	defer srv.Close()
	id := srv.AddModel("m", "regression")

	srv.FailWith(http.StatusInternalServerError, `{"detail":"boom"}`)
	code, body := do(t, srv, http.MethodGet, "/models/"+id, srv.APIKey(), nil)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "boom", body["detail"])

	srv.Recover()
	code, _ = do(t, srv, http.MethodGet, "/models/"+id, srv.APIKey(), nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 2, srv.Requests())
}
