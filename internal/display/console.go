package display

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/robobarista/internal/domain"
	"github.com/hammamikhairi/robobarista/internal/logger"
)

// Compile-time interface check.
var _ domain.Presenter = (*Console)(nil)

// Console is a line-oriented presenter: prompts and messages go to an
// io.Writer, answers are read line by line from an io.Reader.
//
// Lines are read on a background goroutine so a prompt can give up when
// its context is cancelled. The goroutine starts with the first prompt.
type Console struct {
	in    io.Reader
	out   io.Writer
	log   *logger.Logger
	theme theme

	once  sync.Once
	lines chan string
	mu    sync.Mutex // serialises writes to out
}

// NewConsole creates a console presenter over the given streams.
func NewConsole(in io.Reader, out io.Writer, log *logger.Logger) *Console {
	return &Console{
		in:    in,
		out:   out,
		log:   log,
		theme: newTheme(lipgloss.NewRenderer(out)),
		lines: make(chan string),
	}
}

// PromptName asks for the customer's name.
func (c *Console) PromptName(ctx context.Context) (string, error) {
	return c.prompt(ctx, promptName())
}

// PromptItem asks which menu item the customer wants.
func (c *Console) PromptItem(ctx context.Context, customer string) (string, error) {
	return c.prompt(ctx, promptItem(customer))
}

// PromptQuantity asks how many of the item to make.
func (c *Console) PromptQuantity(ctx context.Context, item string) (string, error) {
	return c.prompt(ctx, promptQuantity(item))
}

// PromptYesNo asks a yes/no question. The answer is returned as typed.
func (c *Console) PromptYesNo(ctx context.Context, question string) (string, error) {
	return c.prompt(ctx, question)
}

// ShowMessage prints one styled line.
func (c *Console) ShowMessage(_ context.Context, kind domain.MessageKind, text string) error {
	return c.writeln(c.theme.message(kind, text))
}

// Banner prints the startup banner.
func (c *Console) Banner() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := io.WriteString(c.out, RenderBanner())
	return err
}

func (c *Console) prompt(ctx context.Context, label string) (string, error) {
	c.once.Do(func() { go c.readLines() })

	c.mu.Lock()
	_, err := fmt.Fprint(c.out, c.theme.prompt.Render(label)+" "+promptArrow)
	c.mu.Unlock()
	if err != nil {
		return "", fmt.Errorf("writing prompt: %w", err)
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-c.lines:
		if !ok {
			return "", domain.ErrInputClosed
		}
		c.log.Debug("console: read %q", line)
		return strings.TrimSpace(line), nil
	}
}

// readLines feeds c.lines until the reader is exhausted, then closes it.
func (c *Console) readLines() {
	defer close(c.lines)
	scanner := bufio.NewScanner(c.in)
	for scanner.Scan() {
		c.lines <- scanner.Text()
	}
	if err := scanner.Err(); err != nil {
		c.log.Warn("console: input error: %v", err)
	}
}

func (c *Console) writeln(s string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := fmt.Fprintln(c.out, s)
	return err
}
