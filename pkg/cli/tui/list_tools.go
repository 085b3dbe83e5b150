package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tool-directory/pkg/models"
)

// ToolLister fetches the directory. *client.Client satisfies it.
type ToolLister interface {
	ListTools(ctx context.Context) ([]models.Tool, error)
}

// listToolsModel loads the directory and lets the user browse it.
type listToolsModel struct {
	lister ToolLister

	tools    []models.Tool
	selected int
	err      error
	ready    bool
}

// NewListToolsModel creates a new directory browser.
func NewListToolsModel(lister ToolLister) tea.Model {
	return &listToolsModel{lister: lister}
}

// toolsLoadedMsg is emitted when tools have been fetched.
type toolsLoadedMsg struct {
	tools []models.Tool
	err   error
}

func (m *listToolsModel) Init() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		tools, err := m.lister.ListTools(ctx)
		return toolsLoadedMsg{tools: tools, err: err}
	}
}

func (m *listToolsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case toolsLoadedMsg:
		m.tools, m.err = msg.tools, msg.err
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		key := msg.String()
		if handleQuitKeys(key) {
			return m, tea.Quit
		}
		if !m.ready || m.err != nil || len(m.tools) == 0 {
			// Any key exits the error and empty views.
			if m.ready {
				return m, tea.Quit
			}
			return m, nil
		}
		m.selected, _ = handleListNavigation(key, m.selected, len(m.tools))
	}

	return m, nil
}

func (m *listToolsModel) View() string {
	if !m.ready {
		return renderLoadingState("Loading tools...")
	}
	if m.err != nil {
		return renderErrorView(m.err)
	}
	if len(m.tools) == 0 {
		return renderEmptyState("No tools found.")
	}

	var b strings.Builder
	b.WriteString(renderTitle("Tool Directory"))

	for i, tool := range m.tools {
		marker := " "
		nameStyle := toolNameStyle
		if i == m.selected {
			marker = selectedMarkerStyle.Render("→")
			nameStyle = selectedStyle
		}
		b.WriteString(fmt.Sprintf("%s %s\n", marker, nameStyle.Render(tool.Name)))
		b.WriteString(fmt.Sprintf("  %s\n", toolURLStyle.Render(truncate(tool.URL, 60))))
	}

	b.WriteString("\n")
	b.WriteString(renderDivider(60))
	b.WriteString("\n")
	b.WriteString(renderToolDetails(m.tools[m.selected]))
	b.WriteString("\n")
	b.WriteString(ListToolsHelpContent())
	return b.String()
}
