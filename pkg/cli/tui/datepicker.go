package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tool-directory/pkg/models"
)

// datePicker is a small month calendar. It reports a chosen day with
// datePickedMsg; callers store the result in yyyy-MM-dd form.
type datePicker struct {
	cursor time.Time
	today  func() time.Time
	focus  bool
}

type datePickedMsg struct {
	date time.Time
}

func newDatePicker(today func() time.Time) datePicker {
	if today == nil {
		today = time.Now
	}
	return datePicker{cursor: truncateDay(today()), today: today}
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// SetValue moves the cursor to a yyyy-MM-dd date. Unparseable values are
// ignored.
func (p *datePicker) SetValue(v string) {
	if t, err := time.ParseInLocation(models.DateLayout, strings.TrimSpace(v), time.Local); err == nil {
		p.cursor = t
	}
}

func (p *datePicker) Focus() { p.focus = true }
func (p *datePicker) Blur()  { p.focus = false }

func (p datePicker) Update(msg tea.Msg) (datePicker, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || !p.focus {
		return p, nil
	}

	switch key.String() {
	case "left", "h":
		p.cursor = p.cursor.AddDate(0, 0, -1)
	case "right", "l":
		p.cursor = p.cursor.AddDate(0, 0, 1)
	case "up", "k":
		p.cursor = p.cursor.AddDate(0, 0, -7)
	case "down", "j":
		p.cursor = p.cursor.AddDate(0, 0, 7)
	case "pgup", "[":
		p.cursor = p.cursor.AddDate(0, -1, 0)
	case "pgdown", "]":
		p.cursor = p.cursor.AddDate(0, 1, 0)
	case "t":
		p.cursor = truncateDay(p.today())
	case " ":
		picked := p.cursor
		return p, func() tea.Msg { return datePickedMsg{date: picked} }
	}
	return p, nil
}

func (p datePicker) View() string {
	var b strings.Builder

	first := time.Date(p.cursor.Year(), p.cursor.Month(), 1, 0, 0, 0, 0, time.Local)
	b.WriteString(boldStyle.Render(first.Format("January 2006")) + "\n")
	b.WriteString(mutedStyle.Render("Su Mo Tu We Th Fr Sa") + "\n")

	b.WriteString(strings.Repeat("   ", int(first.Weekday())))
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		cell := fmt.Sprintf("%2d", d.Day())
		if d.Equal(p.cursor) {
			if p.focus {
				cell = selectedStyle.Reverse(true).Render(cell)
			} else {
				cell = selectedStyle.Render(cell)
			}
		}
		b.WriteString(cell)
		if d.Weekday() == time.Saturday {
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
	}
	b.WriteString("\n")
	return b.String()
}
