package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"noted-cli/internal/controller"
)

func Run(ctrl *controller.Controller) error {
	applyColorProfilePreference()
	applyThemePreference()

	m := newAppModel(ctrl)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
