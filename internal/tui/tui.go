// Package tui is the terminal front end of the Lumina client: a login or
// signup flow followed by a chat screen backed by [adapter.LuminaClient].
package tui

import (
	"context"
	"errors"

	"github.com/MKhiriev/lumina/internal/adapter"
	"github.com/MKhiriev/lumina/internal/logger"
	"github.com/MKhiriev/lumina/models"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUserQuit = errors.New("user quit")

type TUI struct {
	client    adapter.LuminaClient
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

func New(client adapter.LuminaClient, buildInfo models.AppBuildInfo, log *logger.Logger) *TUI {
	return &TUI{client: client, buildInfo: buildInfo, logger: log}
}

// LoginFlow runs the menu, login and signup pages until a session is opened.
func (t *TUI) LoginFlow(ctx context.Context) (models.UserResponse, error) {
	flow := newAuthFlow(ctx, t.client, t.buildInfo)
	finalModel, err := tea.NewProgram(flow, tea.WithAltScreen()).Run()
	if err != nil {
		return models.UserResponse{}, err
	}

	result, ok := finalModel.(authFlowModel)
	if !ok {
		return models.UserResponse{}, tea.ErrProgramKilled
	}
	if result.quit {
		return models.UserResponse{}, ErrUserQuit
	}

	t.logger.Info().Str("func", "TUI.LoginFlow").Str("email", result.user.Email).Msg("logged in")
	return result.user, nil
}

// ChatLoop runs the chat screen. logout is true when the user logged out
// rather than quit.
func (t *TUI) ChatLoop(ctx context.Context, user models.UserResponse) (logout bool, err error) {
	model := newChatModel(ctx, t.client, user)
	finalModel, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}

	result, ok := finalModel.(chatModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	return result.logout, nil
}
