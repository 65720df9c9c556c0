package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/lumina/internal/logger"
	"github.com/MKhiriev/lumina/internal/tui"
)

type App struct {
	ui     UI
	logger *logger.Logger
}

func NewApp(ui UI, log *logger.Logger) *App {
	return &App{ui: ui, logger: log}
}

// Run shows the login flow, then the chat screen. Logging out returns to the
// login flow; quitting from either screen ends Run without error.
func (a *App) Run(ctx context.Context) error {
	for {
		user, err := a.ui.LoginFlow(ctx)
		if errors.Is(err, tui.ErrUserQuit) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("login flow: %w", err)
		}

		logout, err := a.ui.ChatLoop(ctx, user)
		if err != nil {
			return fmt.Errorf("chat: %w", err)
		}
		if !logout {
			return nil
		}

		a.logger.Info().Str("func", "App.Run").Str("email", user.Email).Msg("logged out")
	}
}
