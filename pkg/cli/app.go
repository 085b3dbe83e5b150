package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"tool-directory/pkg/cli/client"
	"tool-directory/pkg/cli/tools"
	"tool-directory/pkg/cli/tui"
	"tool-directory/pkg/config"
	"tool-directory/pkg/form"
	"tool-directory/pkg/logger"
	"tool-directory/pkg/models"
	"tool-directory/pkg/notify"
	"tool-directory/pkg/submit"
	"tool-directory/pkg/validation"
)

// Submission modes.
const (
	ModeSimulate = "simulate"
	ModeAPI      = "api"
)

// App runs the CLI commands against the configured submitter.
type App struct {
	cfg     *config.Config
	cfgPath string
	log     *zap.SugaredLogger
	out     io.Writer

	client *client.Client
}

// NewApp creates the CLI application. cfgPath is where SetConfig persists
// changes.
func NewApp(cfg *config.Config, cfgPath string, log *zap.SugaredLogger) *App {
	if log == nil {
		log = logger.Nop()
	}
	return &App{
		cfg:     cfg,
		cfgPath: cfgPath,
		log:     log,
		out:     os.Stdout,
	}
}

// SetOutput redirects command output.
func (a *App) SetOutput(w io.Writer) {
	a.out = w
}

// SetMode overrides the configured submission mode for this run.
func (a *App) SetMode(mode string) error {
	switch mode {
	case ModeSimulate, ModeAPI:
		a.cfg.CLI.Mode = mode
		return nil
	}
	return fmt.Errorf("unknown mode %q (want %s or %s)", mode, ModeSimulate, ModeAPI)
}

// getClient returns the HTTP client, creating it if necessary
func (a *App) getClient() (*client.Client, error) {
	if a.client != nil {
		return a.client, nil
	}

	if a.cfg.CLI.BaseURL == "" {
		return nil, fmt.Errorf("API base URL not configured")
	}

	timeout := time.Duration(a.cfg.CLI.SubmitTimeout) * time.Second
	a.client = client.NewClient(a.cfg.CLI.BaseURL, a.cfg.CLI.APIKey, timeout)
	return a.client, nil
}

// submitter returns the collaborator selected by the mode.
func (a *App) submitter() (submit.Submitter, error) {
	switch a.cfg.CLI.Mode {
	case ModeAPI:
		return a.getClient()
	case ModeSimulate, "":
		policy, err := submit.PolicyByName(a.cfg.Simulator.Policy, a.cfg.Simulator.Seed)
		if err != nil {
			return nil, err
		}
		return submit.NewSimulator(
			submit.WithDelay(time.Duration(a.cfg.Simulator.DelayMS)*time.Millisecond),
			submit.WithPolicy(policy),
			submit.WithLogger(a.log),
		), nil
	}
	return nil, fmt.Errorf("unknown mode %q", a.cfg.CLI.Mode)
}

// newForm wires a form to the configured submitter, validator and toaster.
func (a *App) newForm() (*form.Form, *notify.Toaster, error) {
	sub, err := a.submitter()
	if err != nil {
		return nil, nil, err
	}
	v, ok := validation.ByName(a.cfg.CLI.Validator)
	if !ok {
		return nil, nil, fmt.Errorf("unknown validator %q", a.cfg.CLI.Validator)
	}

	toaster := notify.NewToaster(time.Duration(a.cfg.Notify.ToastSeconds)*time.Second, nil)
	f := form.New(sub, notify.NewSink(toaster, a.log),
		form.WithValidator(v),
		form.WithLogger(a.log),
	)
	return f, toaster, nil
}

// Run starts the interactive TUI.
func (a *App) Run(ctx context.Context) error {
	// Built once, before taking over the terminal, so a broken mode or
	// validator fails here.
	f, toaster, err := a.newForm()
	if err != nil {
		return err
	}
	opts := tui.FormOptions{
		SubmitTimeout: time.Duration(a.cfg.CLI.SubmitTimeout) * time.Second,
	}
	newForm := func() tea.Model {
		return tui.NewAddToolForm(f, toaster, opts)
	}

	var lister tui.ToolLister
	if a.cfg.CLI.Mode == ModeAPI {
		c, err := a.getClient()
		if err != nil {
			return err
		}
		lister = c
	}

	a.log.Infow("starting interactive form", "mode", a.cfg.CLI.Mode)
	p := tea.NewProgram(tui.NewRootModel(newForm, lister), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// Submit sends one draft non-interactively and prints the result.
func (a *App) Submit(ctx context.Context, draft models.Draft) error {
	f, toaster, err := a.newForm()
	if err != nil {
		return err
	}
	for _, field := range models.Fields {
		f.Set(field, draft.Get(field))
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(a.cfg.CLI.SubmitTimeout)*time.Second)
	defer cancel()

	out, err := f.Submit(ctx)
	if errors.Is(err, form.ErrInvalid) {
		tools.Write(a.out, tools.FormatFieldErrors(f.Errors()))
		return err
	}
	if err != nil {
		return err
	}

	if out.IsAccepted() {
		tools.Write(a.out, tools.FormatSuccess(notify.MsgAccepted, out.Tool))
		return nil
	}

	if errs := f.Errors(); !errs.Valid() {
		tools.Write(a.out, tools.FormatFieldErrors(errs))
	} else if t, ok := toaster.Current(); ok {
		tools.Write(a.out, tools.FormatError(errors.New(t.Message)))
	}
	return out.Err()
}

// ListTools prints the directory. It needs API mode.
func (a *App) ListTools(ctx context.Context) error {
	c, err := a.getClient()
	if err != nil {
		return err
	}

	list, err := c.ListTools(ctx)
	if err != nil {
		return fmt.Errorf("error fetching tools: %w", err)
	}
	tools.Write(a.out, tools.FormatTable(list))
	return nil
}
