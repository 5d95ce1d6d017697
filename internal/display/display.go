// Package display provides the customer-facing presenters: a plain
// line-oriented console and a full-screen terminal UI using Bubble Tea.
//
// The [TUI] type keeps an order status bar and an input prompt at the
// bottom of the terminal. All output is printed above the rendered area
// via Program.Println, so the barista can write while a prompt is open.
package display

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/hammamikhairi/robobarista/internal/domain"
	"github.com/hammamikhairi/robobarista/internal/logger"
)

// Compile-time interface check.
var _ domain.Presenter = (*TUI)(nil)

// TUI manages the terminal through Bubble Tea.
//
// Call [NewTUI] then [TUI.Run] (blocking) on its own goroutine. Other
// goroutines may call the Presenter methods after [TUI.WaitReady]
// returns. Ctrl+C quits the program and makes pending and future
// prompts return [domain.ErrInputClosed].
type TUI struct {
	program *tea.Program
	inputCh chan string
	readyCh chan struct{}
	quitCh  chan struct{}
	log     *logger.Logger
	theme   theme
	title   string
	done    atomic.Bool
}

// NewTUI creates the display. Call Run() to start.
func NewTUI(title string, log *logger.Logger) *TUI {
	return &TUI{
		inputCh: make(chan string, 16),
		readyCh: make(chan struct{}),
		quitCh:  make(chan struct{}),
		log:     log,
		theme:   newTheme(lipgloss.DefaultRenderer()),
		title:   title,
	}
}

// Println prints a line above the prompt. If the program isn't running,
// falls back to fmt.Println.
func (u *TUI) Println(a ...interface{}) {
	if u.program != nil && !u.done.Load() {
		u.program.Println(a...)
	} else {
		fmt.Println(a...)
	}
}

// PromptName asks for the customer's name.
func (u *TUI) PromptName(ctx context.Context) (string, error) {
	return u.prompt(ctx, promptName(), "")
}

// PromptItem asks which menu item the customer wants.
func (u *TUI) PromptItem(ctx context.Context, customer string) (string, error) {
	return u.prompt(ctx, promptItem(customer), customer)
}

// PromptQuantity asks how many of the item to make.
func (u *TUI) PromptQuantity(ctx context.Context, item string) (string, error) {
	return u.prompt(ctx, promptQuantity(item), "")
}

// PromptYesNo asks a yes/no question. The answer is returned as typed.
func (u *TUI) PromptYesNo(ctx context.Context, question string) (string, error) {
	return u.prompt(ctx, question, "")
}

// ShowMessage prints one styled line into the scrollback.
func (u *TUI) ShowMessage(_ context.Context, kind domain.MessageKind, text string) error {
	if u.done.Load() {
		return domain.ErrInputClosed
	}
	u.Println(u.theme.message(kind, text))
	return nil
}

// SetStatus replaces the text of the status bar.
func (u *TUI) SetStatus(status string) {
	if u.program != nil && !u.done.Load() {
		u.program.Send(statusMsg(status))
	}
}

// WaitReady blocks until the Bubble Tea event loop is running.
func (u *TUI) WaitReady() { <-u.readyCh }

// Quit tells Bubble Tea to exit.
func (u *TUI) Quit() {
	if u.program != nil {
		u.program.Quit()
	}
}

// Run starts the Bubble Tea event loop. Blocks until quit.
func (u *TUI) Run() error {
	ti := textinput.New()
	ti.Prompt = promptArrow
	ti.PromptStyle = u.theme.prompt
	ti.TextStyle = u.theme.echo
	ti.Cursor.Style = u.theme.cursor
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 60 // updated on first WindowSizeMsg

	m := model{
		input:   ti,
		theme:   u.theme,
		inputCh: u.inputCh,
		readyCh: u.readyCh,
		title:   u.title,
		echoFn: func(label, v string) {
			u.Println(u.theme.prompt.Render(label) + " " + u.theme.echo.Render(v))
		},
	}

	u.program = tea.NewProgram(m)
	_, err := u.program.Run()
	u.done.Store(true)
	close(u.quitCh)
	return err
}

func (u *TUI) prompt(ctx context.Context, label, customer string) (string, error) {
	if u.done.Load() {
		return "", domain.ErrInputClosed
	}
	if u.program != nil {
		u.program.Send(promptMsg{label: label, customer: customer})
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-u.quitCh:
		return "", domain.ErrInputClosed
	case v := <-u.inputCh:
		u.log.Debug("tui: read %q", v)
		return strings.TrimSpace(v), nil
	}
}

// ── Bubble Tea model ─────────────────────────────────────────────

type model struct {
	input    textinput.Model
	theme    theme
	inputCh  chan<- string
	readyCh  chan struct{}
	echoFn   func(label, v string) // prints the answer into scrollback
	title    string
	label    string
	customer string
	status   string
	width    int
}

// Messages.
type (
	promptMsg struct {
		label    string
		customer string
	}
	statusMsg string
)

func (m model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tea.SetWindowTitle(m.title),
		signalReady(m.readyCh),
	)
}

func signalReady(ch chan struct{}) tea.Cmd {
	return func() tea.Msg {
		close(ch)
		return nil
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.label == "" {
				// Nothing is being asked right now.
				return m, nil
			}
			v := m.input.Value()
			m.input.Reset()
			label := m.label
			m.label = ""
			m.inputCh <- v
			echoFn := m.echoFn
			return m, func() tea.Msg {
				echoFn(label, v)
				return nil
			}
		}

	case promptMsg:
		m.label = msg.label
		if msg.customer != "" {
			m.customer = msg.customer
		}
		return m, tea.SetWindowTitle(m.titleStr())

	case statusMsg:
		m.status = string(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > len(promptArrow) {
			m.input.Width = msg.Width - len(promptArrow)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) titleStr() string {
	if m.customer == "" {
		return m.title
	}
	return m.title + " | " + m.customer
}

func (m model) View() string {
	var b strings.Builder

	if bar := m.renderBar(); bar != "" {
		b.WriteString(bar)
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	if m.label != "" {
		b.WriteString(m.theme.prompt.Render(m.label))
		b.WriteByte('\n')
	}
	b.WriteString(m.input.View())
	return b.String()
}

func (m model) renderBar() string {
	var parts []string
	if m.customer != "" {
		parts = append(parts, "customer: "+m.customer)
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	if len(parts) == 0 {
		return ""
	}

	w := m.width
	if w <= 0 {
		w = 80
	}
	content := truncate.StringWithTail(strings.Join(parts, "  │  "), uint(max(w-2, 1)), "...")
	return m.theme.status.Width(w).Render(" " + content + " ")
}
