package app

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kappaml "github.com/kappaml/kappaml-go"
	"github.com/kappaml/kappaml-go/pkg/errors"
	"github.com/kappaml/kappaml-go/pkg/kappamltest"
	"github.com/kappaml/kappaml-go/pkg/logging"
)

func newTestApp(t *testing.T, opts ...Option) *App {
	t.Helper()
	t.Setenv("KAPPAML_API_KEY", "")
	viper.Reset()
	t.Cleanup(viper.Reset)

	opts = append([]Option{
		WithConfig(&Config{LogOutput: "discard"}),
		WithLogger(logging.NewNopLogger()),
	}, opts...)
	a, err := New("1.0.0", "abc123", "2024-01-01", "test", opts...)
	require.NoError(t, err)
	return a
}

// execute runs the root command and returns what it printed.
func execute(t *testing.T, a *App, args ...string) (string, error) {
	t.Helper()

	root := a.createRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestApp_New(t *testing.T) {
	a := newTestApp(t)

	assert.Equal(t, "1.0.0", a.Version())
	assert.Equal(t, "abc123", a.Commit())
	assert.Equal(t, "2024-01-01", a.Date())
	assert.Equal(t, "test", a.BuiltBy())
	assert.NotNil(t, a.Logger())
	assert.NotNil(t, a.Config())
}

func TestApp_ClientWithoutKey(t *testing.T) {
	a := newTestApp(t)

	c, err := a.Client()
	assert.Nil(t, c)
	assert.ErrorIs(t, err, errors.ErrAPIKeyRequired)
}

func TestApp_ClientSingleton(t *testing.T) {
	srv := kappamltest.NewServer()
	defer srv.Close()
	a := newTestApp(t, WithConfig(&Config{APIKey: srv.APIKey(), BaseURL: srv.BaseURL()}))

	var wg sync.WaitGroup
	clients := make([]kappaml.Client, 10)
	for i := range clients {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := a.Client()
			assert.NoError(t, err)
			clients[i] = c
		}(i)
	}
	wg.Wait()

	for _, c := range clients[1:] {
		assert.Same(t, clients[0], c)
	}
}

func TestApp_ShutdownClosesClient(t *testing.T) {
	srv := kappamltest.NewServer()
	defer srv.Close()
	id := srv.AddModel("m", "regression")
	a := newTestApp(t, WithConfig(&Config{APIKey: srv.APIKey(), BaseURL: srv.BaseURL()}))

	c, err := a.Client()
	require.NoError(t, err)
	require.NoError(t, a.Shutdown(context.Background()))

	_, err = c.GetModelStatus(context.Background(), kappaml.ModelID(id))
	assert.ErrorIs(t, err, errors.ErrClientClosed)

	// Shutdown without a client is a no-op.
	assert.NoError(t, newTestApp(t).Shutdown(context.Background()))
}

func TestExecute_EndToEnd(t *testing.T) {
	srv := kappamltest.NewServer(kappamltest.WithStatuses("Pending", "Deployed"))
	defer srv.Close()
	a := newTestApp(t, WithConfig(&Config{PollInterval: 10 * time.Millisecond}))
	global := []string{"--api-key", srv.APIKey(), "--base-url", srv.BaseURL(), "-o", "json"}

	out, err := execute(t, a, append(global, "models", "create", "sales", "--timeout", "1m")...)
	require.NoError(t, err)

	var created map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "Deployed", created["status"])

	_, err = execute(t, a, append(global, "learn", id, "--features", "x=1", "--target", "10")...)
	require.NoError(t, err)

	out, err = execute(t, a, append(global, "predict", id, "--features", "x=1")...)
	require.NoError(t, err)
	assert.Contains(t, out, `"prediction": 10`)
}

func TestExecute_MissingAPIKey(t *testing.T) {
	a := newTestApp(t)

	_, err := execute(t, a, "models", "status", "abc")
	assert.True(t, errors.IsConfigError(err))
}

func TestExecute_InvalidFormat(t *testing.T) {
	a := newTestApp(t)

	_, err := execute(t, a, "-o", "xml", "version")
	assert.Error(t, err)
}

func TestExecute_Version(t *testing.T) {
	a := newTestApp(t)

	out, err := execute(t, a, "-o", "yaml", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "version: 1.0.0")
	assert.Contains(t, out, "commit: abc123")
}
