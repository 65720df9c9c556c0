package tui

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/lumina/internal/adapter"
	"github.com/MKhiriev/lumina/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	cmdClear  = "/clear"
	cmdLogout = "/logout"
	cmdImage  = "/image"

	// chrome is the number of rows taken by everything but the transcript.
	chrome = 9
)

var errImagePathMissing = errors.New("usage: /image <path> [question]")

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

type chatModel struct {
	ctx    context.Context
	client adapter.LuminaClient
	user   models.UserResponse

	transcript viewport.Model
	input      textinput.Model
	width      int

	chats     []models.RoleMessage
	lastRunID string
	rated     bool

	pending bool
	status  string
	errMsg  string

	logout bool
}

func newChatModel(ctx context.Context, client adapter.LuminaClient, user models.UserResponse) chatModel {
	in := textinput.New()
	in.Placeholder = "Ask a question, or /image <path> [question]"
	in.CharLimit = 4000
	in.Width = 76
	in.Focus()

	return chatModel{
		ctx:        ctx,
		client:     client,
		user:       user,
		transcript: viewport.New(80, 20),
		input:      in,
		width:      80,
	}
}

func (m chatModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.cmdLoadHistory())
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.transcript.Width = max(msg.Width-4, 20)
		m.transcript.Height = max(msg.Height-chrome, 3)
		m.input.Width = max(msg.Width-8, 10)
		m.refreshTranscript()
		return m, nil

	case historyLoadedMsg:
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.chats = msg.chats
		m.refreshTranscript()
		return m, nil

	case replyMsg:
		m.pending = false
		if msg.err != nil {
			// drop the optimistic user message
			if n := len(m.chats); n > 0 && m.chats[n-1].Role == models.RoleUser {
				m.chats = m.chats[:n-1]
			}
			m.errMsg = humanizeError(msg.err)
			m.status = ""
			m.refreshTranscript()
			return m, nil
		}
		m.chats = msg.reply.Chats
		m.lastRunID = msg.reply.RunID
		m.rated = false
		m.status = ""
		m.errMsg = ""
		m.refreshTranscript()
		return m, nil

	case clearedMsg:
		m.pending = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.chats = nil
		m.lastRunID = ""
		m.status = "history cleared"
		m.refreshTranscript()
		return m, nil

	case feedbackSentMsg:
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.rated = true
		m.status = "thanks for the feedback"
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("copy to clipboard: %v", msg.err)
			return m, nil
		}
		m.status = "reply copied"
		return m, nil

	case loggedOutMsg:
		m.pending = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.logout = true
		return m, tea.Quit

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.quit):
			return m, tea.Quit
		case key.Matches(msg, keys.enter):
			return m.submit()
		case key.Matches(msg, keys.copy):
			return m, m.cmdCopyLastReply()
		case key.Matches(msg, keys.thumbsUp):
			return m, m.cmdRate(1)
		case key.Matches(msg, keys.thumbsDn):
			return m, m.cmdRate(0)
		case key.Matches(msg, keys.pageUp), key.Matches(msg, keys.pageDown):
			var cmd tea.Cmd
			m.transcript, cmd = m.transcript.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m chatModel) View() string {
	var b strings.Builder

	b.WriteString(m.transcript.View())
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch {
	case m.errMsg != "":
		b.WriteString(errorStyle.Render("Error: " + fitText(m.errMsg, m.width-10)))
	case m.pending:
		b.WriteString(helpStyle.Render("Lumina is thinking..."))
	case m.status != "":
		b.WriteString(helpStyle.Render(m.status))
	}

	title := fmt.Sprintf("LUMINA │ %s <%s>", m.user.Name, m.user.Email)
	hotKeys := "enter: send │ ctrl+y: copy reply │ ctrl+u/ctrl+d: rate reply │ /clear │ /logout"
	return renderPage(title, b.String(), hotKeys)
}

// submit dispatches the input line. Slash commands are handled locally.
func (m chatModel) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	if line == "" || m.pending {
		return m, nil
	}

	m.input.Reset()
	m.errMsg = ""
	m.status = ""

	switch {
	case line == cmdClear:
		m.pending = true
		return m, m.cmdClear()
	case line == cmdLogout:
		m.pending = true
		return m, m.cmdLogout()
	case line == cmdImage || strings.HasPrefix(line, cmdImage+" "):
		path, question, _ := strings.Cut(strings.TrimSpace(strings.TrimPrefix(line, cmdImage)), " ")
		image, err := readImage(path)
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		question = strings.TrimSpace(question)
		m.pending = true
		m.appendUser(fmt.Sprintf("[%s] %s", image.Filename, question))
		return m, m.cmdChatWithImage(question, image)
	}

	m.pending = true
	m.appendUser(line)
	return m, m.cmdChat(line)
}

func (m *chatModel) appendUser(text string) {
	m.chats = append(m.chats, models.RoleMessage{Role: models.RoleUser, Content: strings.TrimSpace(text)})
	m.refreshTranscript()
}

func (m *chatModel) refreshTranscript() {
	m.transcript.SetContent(renderTranscript(m.chats, m.transcript.Width))
	m.transcript.GotoBottom()
}

func renderTranscript(chats []models.RoleMessage, width int) string {
	if len(chats) == 0 {
		return helpStyle.Render("No messages yet. Ask Lumina anything.")
	}

	body := lipgloss.NewStyle().Width(max(width-2, 10)).PaddingLeft(2)

	var b strings.Builder
	for i, msg := range chats {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch msg.Role {
		case models.RoleAssistant:
			b.WriteString(assistantStyle.Render("Lumina"))
		default:
			b.WriteString(userStyle.Render("You"))
		}
		b.WriteString("\n")
		b.WriteString(body.Render(msg.Content))
	}
	return b.String()
}

func (m chatModel) lastReply() string {
	for i := len(m.chats) - 1; i >= 0; i-- {
		if m.chats[i].Role == models.RoleAssistant {
			return m.chats[i].Content
		}
	}
	return ""
}

// readImage loads an image from disk and sniffs its content type.
func readImage(path string) (models.Attachment, error) {
	if path == "" {
		return models.Attachment{}, errImagePathMissing
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return models.Attachment{}, fmt.Errorf("read image: %w", err)
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return models.Attachment{}, fmt.Errorf("%s is not an image (%s)", filepath.Base(path), contentType)
	}

	return models.Attachment{
		Filename:    filepath.Base(path),
		ContentType: contentType,
		Data:        data,
	}, nil
}

// ─────────────────────────────────────────────
// Commands
// ─────────────────────────────────────────────

func (m chatModel) cmdLoadHistory() tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		chats, err := client.History(ctx)
		return historyLoadedMsg{chats: chats, err: err}
	}
}

func (m chatModel) cmdChat(message string) tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		reply, err := client.Chat(ctx, message)
		return replyMsg{reply: reply, err: err}
	}
}

func (m chatModel) cmdChatWithImage(question string, image models.Attachment) tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		reply, err := client.ChatWithImage(ctx, question, image)
		return replyMsg{reply: reply, err: err}
	}
}

func (m chatModel) cmdClear() tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		return clearedMsg{err: client.ClearHistory(ctx)}
	}
}

func (m chatModel) cmdLogout() tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		return loggedOutMsg{err: client.Logout(ctx)}
	}
}

// cmdRate rates the latest agent reply. Vision replies carry no run id and
// cannot be rated.
func (m chatModel) cmdRate(score float64) tea.Cmd {
	if m.lastRunID == "" || m.rated {
		return nil
	}

	ctx, client, runID := m.ctx, m.client, m.lastRunID
	return func() tea.Msg {
		err := client.SubmitFeedback(ctx, models.FeedbackRequest{RunID: runID, Score: &score})
		return feedbackSentMsg{score: score, err: err}
	}
}

func (m chatModel) cmdCopyLastReply() tea.Cmd {
	text := m.lastReply()
	if text == "" {
		return nil
	}
	return func() tea.Msg {
		return copiedMsg{err: copyToClipboard(text)}
	}
}
