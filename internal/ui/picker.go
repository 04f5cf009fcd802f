package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/filetidy/filetidy/internal/rename"
)

// proposalItem adapts a proposal for the bubbles list.
type proposalItem struct {
	proposal rename.Proposal
	selected bool
}

func (i proposalItem) Title() string {
	marker := "[ ]"
	if i.selected {
		marker = "[x]"
	}
	if i.proposal.Status != rename.StatusReady {
		marker = " · "
	}
	return fmt.Sprintf("%s %s -> %s", marker, i.proposal.OriginalName, i.proposal.ProposedName)
}

func (i proposalItem) Description() string {
	if len(i.proposal.Issues) > 0 {
		issue := i.proposal.Issues[0]
		return fmt.Sprintf("%s — %s", i.proposal.Status, issue.Message)
	}
	if i.proposal.IsFolderMove {
		return "move to " + i.proposal.DestinationFolder
	}
	return string(i.proposal.Status)
}

func (i proposalItem) FilterValue() string { return i.proposal.OriginalName }

// PickerModel is an interactive proposal selector: space toggles a Ready
// proposal, enter confirms the selection, q aborts.
type PickerModel struct {
	list      list.Model
	confirmed bool
	width     int
	height    int
}

// NewPickerModel builds a picker over the preview's proposals. Ready
// proposals start selected.
func NewPickerModel(preview *rename.Preview) PickerModel {
	items := make([]list.Item, 0, len(preview.Proposals))
	for _, p := range preview.Proposals {
		items = append(items, proposalItem{
			proposal: p,
			selected: p.Status == rename.StatusReady,
		})
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorAccent).
		Bold(true)
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorAccent)
	delegate.Styles.NormalTitle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	delegate.Styles.NormalDesc = lipgloss.NewStyle().
		Foreground(ColorMuted)

	l := list.New(items, delegate, 0, 0)
	l.Title = "SELECT FILES TO RENAME"
	l.Styles.Title = TitleStyle
	l.SetShowStatusBar(false)

	return PickerModel{list: l}
}

func (m PickerModel) Init() tea.Cmd { return nil }

func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-2)

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "enter":
			m.confirmed = true
			return m, tea.Quit
		case " ":
			idx := m.list.Index()
			if item, ok := m.list.SelectedItem().(proposalItem); ok {
				if item.proposal.Status == rename.StatusReady {
					item.selected = !item.selected
					m.list.SetItem(idx, item)
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m PickerModel) View() string {
	return m.list.View() + "\n" +
		FooterStyle.Render("space: toggle · enter: apply · q: cancel")
}

// Confirmed reports whether the user confirmed execution.
func (m PickerModel) Confirmed() bool { return m.confirmed }

// SelectedIDs returns the ids of the proposals left selected.
func (m PickerModel) SelectedIDs() []string {
	var ids []string
	for _, item := range m.list.Items() {
		if pi, ok := item.(proposalItem); ok && pi.selected {
			ids = append(ids, pi.proposal.ID)
		}
	}
	return ids
}
