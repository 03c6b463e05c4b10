package view

import (
	tea "github.com/charmbracelet/bubbletea"
)

// CommonModel holds the terminal size every view lays itself out against.
type CommonModel struct {
	Width  int
	Height int
}

// Resize records the new terminal size.
func (c *CommonModel) Resize(msg tea.WindowSizeMsg) {
	c.Width = msg.Width
	c.Height = msg.Height
}

// BodyHeight is the space left under the title and help lines, never less
// than minRows.
func (c CommonModel) BodyHeight(minRows int) int {
	return max(c.Height-10, minRows)
}

// BackMsg returns the app to the main menu.
type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}
