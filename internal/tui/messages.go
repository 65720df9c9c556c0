package tui

import (
	"github.com/MKhiriev/lumina/models"
	tea "github.com/charmbracelet/bubbletea"
)

// NavigateTo switches the active page of the login flow. Payload, when set, is
// delivered to the new page instead of calling its Init.
type NavigateTo struct {
	Page    string
	Payload tea.Msg
}

type authResult struct {
	user models.UserResponse
	err  error
}

type historyLoadedMsg struct {
	chats []models.RoleMessage
	err   error
}

type replyMsg struct {
	reply models.Reply
	err   error
}

type clearedMsg struct {
	err error
}

type feedbackSentMsg struct {
	score float64
	err   error
}

type loggedOutMsg struct {
	err error
}

type copiedMsg struct {
	err error
}
