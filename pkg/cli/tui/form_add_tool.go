package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tool-directory/pkg/form"
	"tool-directory/pkg/models"
	"tool-directory/pkg/notify"
	"tool-directory/pkg/submit"
)

// addToolForm is the Bubble Tea model for the tool submission form. All
// draft, validation and submission state lives in form.Form; this model
// only mirrors it into widgets.
type addToolForm struct {
	form    *form.Form
	toaster *notify.Toaster
	timeout time.Duration

	// Inputs
	nameInput textinput.Model
	urlInput  textinput.Model
	descInput textarea.Model
	tagsInput textinput.Model
	picker    datePicker
	spinner   spinner.Model

	currentField int
	showHelp     bool
	cancel       context.CancelFunc
	lastTool     *models.Tool
}

// Focus order; matches models.Fields.
const (
	fieldName = iota
	fieldURL
	fieldDescription
	fieldTags
	fieldDate
	fieldCount
)

// FormOptions configures NewAddToolForm.
type FormOptions struct {
	// SubmitTimeout bounds one submission. Zero means 30 seconds.
	SubmitTimeout time.Duration
	// Today seeds the date picker. Nil uses time.Now.
	Today func() time.Time
}

// NewAddToolForm creates the submission form model. f must have been created
// with a sink writing to toaster.
func NewAddToolForm(f *form.Form, toaster *notify.Toaster, opts FormOptions) tea.Model {
	nameInput := textinput.New()
	nameInput.Placeholder = "e.g. ripgrep"
	nameInput.CharLimit = 120
	nameInput.Width = 60
	nameInput.Focus()

	urlInput := textinput.New()
	urlInput.Placeholder = "example.com"
	urlInput.CharLimit = 2048
	urlInput.Width = 60

	descInput := textarea.New()
	descInput.Placeholder = "At least 10 characters"
	descInput.SetWidth(60)
	descInput.SetHeight(3)
	descInput.CharLimit = 1000
	descInput.ShowLineNumbers = false
	descInput.KeyMap.InsertNewline.SetEnabled(false)

	tagsInput := textinput.New()
	tagsInput.Placeholder = "cli, search"
	tagsInput.CharLimit = 255
	tagsInput.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = infoStyle

	timeout := opts.SubmitTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	m := &addToolForm{
		form:      f,
		toaster:   toaster,
		timeout:   timeout,
		nameInput: nameInput,
		urlInput:  urlInput,
		descInput: descInput,
		tagsInput: tagsInput,
		picker:    newDatePicker(opts.Today),
		spinner:   sp,
	}
	m.syncFromDraft()
	return m
}

// Init implements tea.Model.
func (m *addToolForm) Init() tea.Cmd {
	return textinput.Blink
}

// submitResultMsg carries a submitter's answer for one ticket.
type submitResultMsg struct {
	ticket  form.Ticket
	outcome submit.Outcome
	err     error
}

// toastExpiredMsg fires when the toast with id has outlived its TTL.
type toastExpiredMsg struct {
	id uint64
}

// Update implements tea.Model.
func (m *addToolForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case datePickedMsg:
		m.form.SetDate(msg.date)
		return m, nil

	case submitResultMsg:
		return m.handleResult(msg)

	case toastExpiredMsg:
		m.toaster.Dismiss(msg.id)
		return m, nil

	case spinner.TickMsg:
		if !m.form.Submitting() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateFocused(msg)
}

func (m *addToolForm) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.abandon()
		return m, tea.Quit
	case "esc":
		if m.form.Submitting() {
			m.abandon()
			return m, nil
		}
		return m, tea.Quit
	case "f1":
		m.showHelp = !m.showHelp
		return m, nil
	}

	// Inputs are read-only while a submission is in flight.
	if m.form.Submitting() {
		return m, nil
	}

	switch msg.String() {
	case "tab":
		m.currentField = (m.currentField + 1) % fieldCount
		m.focusCurrentField()
		return m, textinput.Blink
	case "shift+tab":
		m.currentField = (m.currentField - 1 + fieldCount) % fieldCount
		m.focusCurrentField()
		return m, textinput.Blink
	case "enter", "ctrl+s":
		return m.startSubmit()
	}

	return m.updateFocused(msg)
}

// updateFocused routes msg to the focused widget and copies any edit into
// the draft.
func (m *addToolForm) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentField {
	case fieldName:
		m.nameInput, cmd = m.nameInput.Update(msg)
		m.store(models.FieldName, m.nameInput.Value())
	case fieldURL:
		m.urlInput, cmd = m.urlInput.Update(msg)
		m.store(models.FieldURL, m.urlInput.Value())
	case fieldDescription:
		m.descInput, cmd = m.descInput.Update(msg)
		m.store(models.FieldDescription, m.descInput.Value())
	case fieldTags:
		m.tagsInput, cmd = m.tagsInput.Update(msg)
		m.store(models.FieldTags, m.tagsInput.Value())
	case fieldDate:
		m.picker, cmd = m.picker.Update(msg)
	}
	return m, cmd
}

func (m *addToolForm) store(f models.Field, value string) {
	if m.form.Draft().Get(f) != value {
		m.form.Set(f, value)
	}
}

func (m *addToolForm) focusCurrentField() {
	m.nameInput.Blur()
	m.urlInput.Blur()
	m.descInput.Blur()
	m.tagsInput.Blur()
	m.picker.Blur()

	switch m.currentField {
	case fieldName:
		m.nameInput.Focus()
	case fieldURL:
		m.urlInput.Focus()
	case fieldDescription:
		m.descInput.Focus()
	case fieldTags:
		m.tagsInput.Focus()
	case fieldDate:
		m.picker.Focus()
	}
}

// focusFirstError moves focus to the first field with an error.
func (m *addToolForm) focusFirstError() {
	f, _, ok := m.form.Errors().First()
	if !ok {
		return
	}
	for i, field := range models.Fields {
		if field == f {
			m.currentField = i
			break
		}
	}
	m.focusCurrentField()
}

// syncFromDraft copies the draft into the widgets.
func (m *addToolForm) syncFromDraft() {
	d := m.form.Draft()
	m.nameInput.SetValue(d.Name)
	m.urlInput.SetValue(d.URL)
	m.descInput.SetValue(d.Description)
	m.tagsInput.SetValue(d.Tags)
	if d.Date != "" {
		m.picker.SetValue(d.Date)
	}
}

// startSubmit validates the draft and, when valid, sends it off the event
// loop.
func (m *addToolForm) startSubmit() (tea.Model, tea.Cmd) {
	t, err := m.form.Begin()
	if errors.Is(err, form.ErrInvalid) {
		m.focusFirstError()
		return m, nil
	}
	if err != nil {
		return m, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	m.cancel = cancel

	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		defer cancel()
		out, err := m.form.Send(ctx, t)
		return submitResultMsg{ticket: t, outcome: out, err: err}
	})
}

func (m *addToolForm) handleResult(msg submitResultMsg) (tea.Model, tea.Cmd) {
	var err error
	if msg.err != nil {
		err = m.form.Fail(msg.ticket, msg.err)
	} else {
		err = m.form.Complete(msg.ticket, msg.outcome)
	}
	if errors.Is(err, form.ErrStaleTicket) {
		return m, nil
	}
	m.cancel = nil

	if msg.err == nil && msg.outcome.IsAccepted() {
		m.lastTool = msg.outcome.Tool
		m.syncFromDraft()
		m.currentField = fieldName
		m.focusCurrentField()
	} else {
		m.focusFirstError()
	}

	return m, m.scheduleToastExpiry()
}

// scheduleToastExpiry dismisses the live toast once its TTL has passed.
func (m *addToolForm) scheduleToastExpiry() tea.Cmd {
	t, ok := m.toaster.Current()
	if !ok {
		return nil
	}
	return tea.Tick(m.toaster.TTL(), func(time.Time) tea.Msg {
		return toastExpiredMsg{id: t.ID}
	})
}

func (m *addToolForm) abandon() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.form.Abandon()
}

// View implements tea.Model.
func (m *addToolForm) View() string {
	var b strings.Builder
	b.WriteString(renderTitle("Submit a Tool"))

	m.renderField(&b, fieldName, models.FieldName, m.nameInput.View())
	m.renderField(&b, fieldURL, models.FieldURL, m.urlInput.View())
	m.renderField(&b, fieldDescription, models.FieldDescription, m.descInput.View())
	m.renderField(&b, fieldTags, models.FieldTags, m.tagsInput.View())

	date := m.form.Draft().Date
	if date == "" {
		date = mutedStyle.Render("(not picked)")
	}
	m.renderField(&b, fieldDate, models.FieldDate, date+"\n"+m.picker.View())

	if m.form.Submitting() {
		b.WriteString(m.spinner.View() + " " + infoStyle.Render("Submitting...") + "\n\n")
	}

	if t, ok := m.toaster.Current(); ok {
		b.WriteString(renderToast(t))
		b.WriteString("\n\n")
	}
	if m.lastTool != nil {
		b.WriteString(mutedStyle.Render("Last added: " + m.lastTool.Name + " (" + m.lastTool.URL + ")"))
		b.WriteString("\n\n")
	}

	if m.showHelp {
		b.WriteString(AddToolFormHelpContent())
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("[Tab] Navigate  [Enter] Submit  [Space] Pick date  [F1] Help  [Esc] Cancel"))
	b.WriteString("\n")

	return b.String()
}

func (m *addToolForm) renderField(b *strings.Builder, idx int, f models.Field, widget string) {
	label := f.Label() + ":"
	if m.currentField == idx {
		b.WriteString(selectedStyle.Render("› " + label))
	} else {
		b.WriteString(fieldLabelStyle.Render("  " + label))
	}
	b.WriteString("\n")
	b.WriteString(widget)
	b.WriteString("\n")
	if msg := m.form.Error(f); msg != "" {
		b.WriteString(renderInlineError(msg))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}
