package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"noted-cli/internal/controller"
)

// API-backed operations run on command goroutines and report back with a
// settled opDoneMsg. Requests are individually bounded by the client's
// timeout, so a background context is fine here.

func refreshCmd(ctrl *controller.Controller, keepSelection bool, seq int) tea.Cmd {
	return func() tea.Msg {
		err := ctrl.Refresh(context.Background(), keepSelection)
		return opDoneMsg{op: "refresh", seq: seq, err: errString(err)}
	}
}

func createCmd(ctrl *controller.Controller, seq int) tea.Cmd {
	return func() tea.Msg {
		err := ctrl.CreateNew(context.Background())
		return opDoneMsg{op: "create", seq: seq, err: errString(err)}
	}
}

func saveCmd(ctrl *controller.Controller, seq int) tea.Cmd {
	return func() tea.Msg {
		err := ctrl.Save(context.Background())
		return opDoneMsg{op: "save", seq: seq, err: errString(err)}
	}
}

func deleteCmd(ctrl *controller.Controller, seq int) tea.Cmd {
	return func() tea.Msg {
		err := ctrl.Delete(context.Background())
		return opDoneMsg{op: "delete", seq: seq, err: errString(err)}
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
