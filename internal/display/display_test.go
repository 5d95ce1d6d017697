package display

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/robobarista/internal/domain"
	"github.com/hammamikhairi/robobarista/internal/logger"
)

func newTestModel() (model, chan string, *[]string) {
	inputCh := make(chan string, 1)
	var echoed []string
	ti := textinput.New()
	ti.Focus()
	m := model{
		input:   ti,
		theme:   newTheme(lipgloss.DefaultRenderer()),
		inputCh: inputCh,
		title:   "Robot Coffee Shop",
		echoFn: func(label, v string) {
			echoed = append(echoed, label+"|"+v)
		},
	}
	return m, inputCh, &echoed
}

func TestModelEnterSendsAnswer(t *testing.T) {
	m, inputCh, echoed := newTestModel()

	next, _ := m.Update(promptMsg{label: "Enter your name"})
	m = next.(model)
	m.input.SetValue("Ada")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(model)

	select {
	case v := <-inputCh:
		if v != "Ada" {
			t.Fatalf("got %q", v)
		}
	default:
		t.Fatal("expected answer on input channel")
	}
	if m.label != "" || m.input.Value() != "" {
		t.Fatal("prompt should be cleared after enter")
	}
	if cmd == nil {
		t.Fatal("expected echo command")
	}
	cmd()
	if len(*echoed) != 1 || (*echoed)[0] != "Enter your name|Ada" {
		t.Fatalf("echo = %v", *echoed)
	}
}

func TestModelEnterWithoutPromptIgnored(t *testing.T) {
	m, inputCh, _ := newTestModel()
	m.input.SetValue("hello")

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	select {
	case v := <-inputCh:
		t.Fatalf("no prompt is open, but got %q", v)
	default:
	}
}

func TestModelCtrlCQuits(t *testing.T) {
	m, _, _ := newTestModel()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("ctrl+c should quit")
	}
}

func TestModelViewShowsPromptAndStatus(t *testing.T) {
	m, _, _ := newTestModel()

	next, _ := m.Update(promptMsg{label: "Ada, enter your order", customer: "Ada"})
	m = next.(model)
	next, _ = m.Update(statusMsg("Latte x2"))
	m = next.(model)

	view := m.View()
	for _, want := range []string{"Ada, enter your order", "customer: Ada", "Latte x2"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if got := m.titleStr(); got != "Robot Coffee Shop | Ada" {
		t.Errorf("title = %q", got)
	}
}

func TestRenderBarTruncatesToWidth(t *testing.T) {
	m, _, _ := newTestModel()
	m.width = 20
	m.customer = "Ada"
	m.status = "Caramel Frappuccino x12  R900"

	bar := m.renderBar()
	if !strings.Contains(bar, "...") {
		t.Fatalf("long status should be truncated: %q", bar)
	}
}

func TestTUIPromptReturnsOnQuit(t *testing.T) {
	u := NewTUI("Robot Coffee Shop", logger.New(logger.LevelOff, nil))

	errCh := make(chan error, 1)
	go func() {
		_, err := u.PromptName(context.Background())
		errCh <- err
	}()

	u.done.Store(true)
	close(u.quitCh)

	select {
	case err := <-errCh:
		if !errors.Is(err, domain.ErrInputClosed) {
			t.Fatalf("expected ErrInputClosed, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("prompt did not return after quit")
	}

	if _, err := u.PromptQuantity(context.Background(), "Latte"); !errors.Is(err, domain.ErrInputClosed) {
		t.Fatalf("prompts after quit: expected ErrInputClosed, got %v", err)
	}
}

func TestTUIPromptHonoursContext(t *testing.T) {
	u := NewTUI("Robot Coffee Shop", logger.New(logger.LevelOff, nil))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := u.PromptItem(ctx, "Ada")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected DeadlineExceeded, got %v", err)
	}
}

func TestTUIPromptReadsInput(t *testing.T) {
	u := NewTUI("Robot Coffee Shop", logger.New(logger.LevelOff, nil))
	u.inputCh <- "  yes  "

	got, err := u.PromptYesNo(context.Background(), "Do you want it iced? (yes/no)")
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}
	if got != "yes" {
		t.Fatalf("got %q, want %q", got, "yes")
	}
}

func TestTUIShowMessageAfterQuit(t *testing.T) {
	u := NewTUI("Robot Coffee Shop", logger.New(logger.LevelOff, nil))
	u.done.Store(true)

	err := u.ShowMessage(context.Background(), domain.MessageInfo, "Your total will be: R40")
	if !errors.Is(err, domain.ErrInputClosed) {
		t.Fatalf("expected ErrInputClosed, got %v", err)
	}
}
