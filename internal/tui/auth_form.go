// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/lumina/internal/adapter"
	"github.com/MKhiriev/lumina/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type authMode int

const (
	modeLogin authMode = iota
	modeSignup
)

// AuthFormModel is the Bubble Tea model for the login and signup screens.
// Enter submits the form asynchronously; a successful [authResult] is picked
// up by the login flow model, which then ends.
type AuthFormModel struct {
	ctx    context.Context
	client adapter.LuminaClient
	mode   authMode

	labels     []string
	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
}

// NewLoginModel creates the email and password form.
func NewLoginModel(ctx context.Context, client adapter.LuminaClient) *AuthFormModel {
	return newAuthForm(ctx, client, modeLogin, []string{"Email", "Password"})
}

// NewSignupModel creates the name, email and password form.
func NewSignupModel(ctx context.Context, client adapter.LuminaClient) *AuthFormModel {
	return newAuthForm(ctx, client, modeSignup, []string{"Name", "Email", "Password"})
}

func newAuthForm(ctx context.Context, client adapter.LuminaClient, mode authMode, labels []string) *AuthFormModel {
	inputs := make([]textinput.Model, len(labels))
	for i, label := range labels {
		in := textinput.New()
		in.Placeholder = strings.ToLower(label)
		in.CharLimit = 256
		in.Width = 40
		if label == "Password" {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '*'
		}
		inputs[i] = in
	}
	inputs[0].Focus()

	return &AuthFormModel{
		ctx:    ctx,
		client: client,
		mode:   mode,
		labels: labels,
		inputs: inputs,
	}
}

func (m *AuthFormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *AuthFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(authResult); ok {
		m.submitting = false
		m.errMsg = humanizeError(result.err)
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.submitting = false
			m.errMsg = ""
			return m, func() tea.Msg { return NavigateTo{Page: pageMenu} }
		case key.Matches(keyMsg, keys.tab):
			m.moveFocus(1)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.moveFocus(-1)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *AuthFormModel) View() string {
	title, button := "LOG IN", "Log in"
	if m.mode == modeSignup {
		title, button = "SIGN UP", "Sign up"
	}

	labelWidth := 0
	for _, label := range m.labels {
		labelWidth = max(labelWidth, len(label))
	}

	var b strings.Builder
	for i, label := range m.labels {
		b.WriteString(fmt.Sprintf("%-*s │ [%s]\n", labelWidth, label, m.inputs[i].View()))
	}

	if m.submitting {
		b.WriteString("\n[" + button + "...]\n")
	} else {
		b.WriteString("\n[" + button + "]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage(title, strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ enter: submit")
}

func (m *AuthFormModel) submit() tea.Cmd {
	if m.submitting {
		return nil
	}

	values := make([]string, len(m.inputs))
	for i, in := range m.inputs {
		values[i] = strings.TrimSpace(in.Value())
		if values[i] == "" {
			m.errMsg = strings.ToLower(m.labels[i]) + " is required"
			return nil
		}
	}

	m.errMsg = ""
	m.submitting = true

	ctx, client := m.ctx, m.client
	if m.mode == modeSignup {
		req := models.SignupRequest{Name: values[0], Email: values[1], Password: m.inputs[2].Value()}
		return func() tea.Msg {
			user, err := client.Signup(ctx, req)
			return authResult{user: user, err: err}
		}
	}

	req := models.LoginRequest{Email: values[0], Password: m.inputs[1].Value()}
	return func() tea.Msg {
		user, err := client.Login(ctx, req)
		return authResult{user: user, err: err}
	}
}

func (m *AuthFormModel) moveFocus(delta int) {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}
