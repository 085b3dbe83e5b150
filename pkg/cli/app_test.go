package cli

import (
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tool-directory/pkg/api"
	"tool-directory/pkg/config"
	"tool-directory/pkg/db"
	"tool-directory/pkg/form"
	"tool-directory/pkg/models"
	"tool-directory/pkg/services"
	"tool-directory/pkg/submit"
)

var draft = models.Draft{
	Name:        "ripgrep",
	URL:         "example.com",
	Description: "Fast recursive grep",
	Tags:        "cli, search",
	Date:        "2024-01-15",
}

func newTestApp(t *testing.T, policy string) (*App, *bytes.Buffer) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Simulator.DelayMS = 1
	cfg.Simulator.Policy = policy
	cfg.Log.Dir = t.TempDir()

	app := NewApp(cfg, filepath.Join(t.TempDir(), "config.toml"), nil)
	var out bytes.Buffer
	app.SetOutput(&out)
	return app, &out
}

func TestSubmit_Simulated(t *testing.T) {
	app, out := newTestApp(t, submit.PolicyAccept)

	require.NoError(t, app.Submit(context.Background(), draft))
	assert.Contains(t, out.String(), "Tool submitted successfully!")
}

func TestSubmit_SimulatedDuplicate(t *testing.T) {
	app, out := newTestApp(t, submit.PolicyFixedDuplicate)

	err := app.Submit(context.Background(), draft)
	var rej *submit.RejectionError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, submit.ReasonDuplicate, rej.Reason)
	assert.Contains(t, out.String(), "App Name: Tool has already been added")
}

func TestSubmit_SimulatedTransient(t *testing.T) {
	app, out := newTestApp(t, submit.PolicyFixedTransient)

	err := app.Submit(context.Background(), draft)
	assert.Error(t, err)
	assert.Contains(t, out.String(), submit.MsgTransient)
}

func TestSubmit_Invalid(t *testing.T) {
	app, out := newTestApp(t, submit.PolicyAccept)

	bad := draft
	bad.URL = "not a url"
	bad.Description = "123456789"
	err := app.Submit(context.Background(), bad)
	assert.ErrorIs(t, err, form.ErrInvalid)
	assert.Contains(t, out.String(), "URL: Please enter a valid URL")
	assert.Contains(t, out.String(), "What Does it Do?: Description is required")
}

func TestSubmit_APIMode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := services.NewToolService(db.NewMemoryStore(), nil, nil)
	srv := httptest.NewServer(api.NewRouter(svc, "k", nil))
	defer srv.Close()

	app, out := newTestApp(t, submit.PolicyAccept)
	require.NoError(t, app.SetMode(ModeAPI))
	app.cfg.CLI.BaseURL = srv.URL
	app.cfg.CLI.APIKey = "k"

	require.NoError(t, app.Submit(context.Background(), draft))
	assert.Contains(t, out.String(), "https://example.com")

	out.Reset()
	err := app.Submit(context.Background(), draft)
	assert.Error(t, err)
	assert.Contains(t, out.String(), "Tool has already been added")

	out.Reset()
	require.NoError(t, app.ListTools(context.Background()))
	assert.Contains(t, out.String(), "Total: 1 tool(s)")
}

func TestSetMode(t *testing.T) {
	app, _ := newTestApp(t, submit.PolicyAccept)
	assert.Error(t, app.SetMode("carrier-pigeon"))
	assert.NoError(t, app.SetMode(ModeSimulate))
}

func TestSetConfig(t *testing.T) {
	app, out := newTestApp(t, submit.PolicyAccept)

	require.NoError(t, app.SetConfig("simulator.policy=fixed-duplicate"))
	require.NoError(t, app.SetConfig("notify.toast_seconds=7"))
	require.NoError(t, app.SetConfig("log.debug=true"))

	saved, err := config.LoadFrom(app.cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "fixed-duplicate", saved.Simulator.Policy)
	assert.Equal(t, 7, saved.Notify.ToastSeconds)
	assert.True(t, saved.Log.Debug)

	require.NoError(t, app.ShowConfig())
	assert.Contains(t, out.String(), "toast_seconds = 7")
}

func TestSetConfig_Rejects(t *testing.T) {
	app, _ := newTestApp(t, submit.PolicyAccept)

	for _, in := range []string{
		"nonsense",
		"cli=api",
		"cli.mode=carrier-pigeon",
		"api.port=abc",
		"api.port=70000",
		"simulator.delay_ms=0",
		"nope.key=v",
		"cli.nope=v",
	} {
		assert.Error(t, app.SetConfig(in), in)
	}
	assert.Equal(t, ModeSimulate, app.cfg.CLI.Mode)
	assert.Equal(t, 8080, app.cfg.API.Port)
}

func TestRun_FailsFastOnBadMode(t *testing.T) {
	app, _ := newTestApp(t, submit.PolicyAccept)
	app.cfg.CLI.Mode = "carrier-pigeon"

	err := app.Run(context.Background())
	assert.ErrorContains(t, err, "unknown mode")
}
