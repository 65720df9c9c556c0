package tui

import (
	"context"

	"github.com/MKhiriev/lumina/internal/adapter"
	"github.com/MKhiriev/lumina/models"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	pageMenu   = "menu"
	pageLogin  = "login"
	pageSignup = "signup"
)

// authFlowModel drives the pages shown before a session exists. It ends the
// program once Signup or Login succeeds, or when the user presses ctrl+c.
type authFlowModel struct {
	pages map[string]tea.Model
	page  string

	buildInfo models.AppBuildInfo
	about     bool

	user models.UserResponse
	quit bool
}

func newAuthFlow(ctx context.Context, client adapter.LuminaClient, buildInfo models.AppBuildInfo) authFlowModel {
	return authFlowModel{
		pages: map[string]tea.Model{
			pageMenu:   NewMenuModel(),
			pageLogin:  NewLoginModel(ctx, client),
			pageSignup: NewSignupModel(ctx, client),
		},
		page:      pageMenu,
		buildInfo: buildInfo,
	}
}

func (f authFlowModel) Init() tea.Cmd {
	return f.active().Init()
}

func (f authFlowModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.quit) {
			f.quit = true
			return f, tea.Quit
		}
		if f.about {
			// the about window swallows keys until it is closed
			if key.Matches(msg, keys.esc, keys.about) {
				f.about = false
			}
			return f, nil
		}
		if f.page == pageMenu && key.Matches(msg, keys.about) {
			f.about = true
			return f, nil
		}

	case NavigateTo:
		if _, ok := f.pages[msg.Page]; !ok {
			return f, nil
		}
		f.page = msg.Page
		if msg.Payload != nil {
			payload := msg.Payload
			return f, func() tea.Msg { return payload }
		}
		return f, f.active().Init()

	case authResult:
		if msg.err == nil {
			f.user = msg.user
			return f, tea.Quit
		}
	}

	updated, cmd := f.active().Update(msg)
	f.pages[f.page] = updated
	return f, cmd
}

func (f authFlowModel) View() string {
	if f.about {
		return renderBuildInfoWindow(f.buildInfo)
	}
	return f.active().View()
}

func (f authFlowModel) active() tea.Model {
	return f.pages[f.page]
}
