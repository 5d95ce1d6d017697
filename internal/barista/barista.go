// Package barista runs the checkout conversation: it asks the presenter
// for raw answers, prices the order through the menu package and narrates
// each step through the effects renderer and a speaker.
package barista

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hammamikhairi/robobarista/internal/conversation"
	"github.com/hammamikhairi/robobarista/internal/domain"
	"github.com/hammamikhairi/robobarista/internal/effects"
	"github.com/hammamikhairi/robobarista/internal/logger"
	"github.com/hammamikhairi/robobarista/internal/menu"
	"github.com/hammamikhairi/robobarista/internal/speech"
)

// Defaults used when no option overrides them.
const (
	DefaultShopName = "Robot Coffee Shop"
	DefaultCurrency = "R"

	maxSuggestions = 3
)

// Option configures the barista.
type Option func(*Barista)

// WithShopName sets the name used in the welcome line.
func WithShopName(name string) Option {
	return func(b *Barista) {
		if name != "" {
			b.shopName = name
		}
	}
}

// WithCurrency sets the symbol printed in front of prices.
func WithCurrency(symbol string) Option {
	return func(b *Barista) {
		b.currency = symbol
	}
}

// WithStore records every placed order in store.
func WithStore(store domain.OrderStore) Option {
	return func(b *Barista) {
		b.store = store
	}
}

// WithClock overrides time.Now for order timestamps.
func WithClock(now func() time.Time) Option {
	return func(b *Barista) {
		b.now = now
	}
}

// statusSetter is implemented by presenters that have a status bar.
type statusSetter interface {
	SetStatus(status string)
}

// Receipt is the outcome of one served customer.
type Receipt struct {
	OrderID   string
	Customer  string
	Selection domain.Selection
	Quote     menu.Quote
	PlacedAt  time.Time
}

// Barista serves customers one at a time. It depends only on interfaces
// for input and sound and is fully testable with fakes.
type Barista struct {
	catalog  *menu.Catalog
	ui       domain.Presenter
	voice    domain.Speaker
	renderer *effects.Renderer
	answers  *conversation.AnswerParser
	store    domain.OrderStore
	log      *logger.Logger
	shopName string
	currency string
	now      func() time.Time
}

// New creates a barista with the given collaborators and options.
func New(
	catalog *menu.Catalog,
	ui domain.Presenter,
	voice domain.Speaker,
	renderer *effects.Renderer,
	answers *conversation.AnswerParser,
	log *logger.Logger,
	opts ...Option,
) *Barista {
	b := &Barista{
		catalog:  catalog,
		ui:       ui,
		voice:    voice,
		renderer: renderer,
		answers:  answers,
		log:      log,
		shopName: DefaultShopName,
		currency: DefaultCurrency,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Serve runs one full order: name, menu, item, quantity, options,
// confirmation and total. Invalid answers are asked again; only closed
// input, a cancelled context or a failing store end it early.
func (b *Barista) Serve(ctx context.Context) (*Receipt, error) {
	customer, err := b.askName(ctx)
	if err != nil {
		return nil, err
	}
	if err := b.say(ctx, domain.MessageChat, speech.LineWelcome(customer, b.shopName), ""); err != nil {
		return nil, err
	}

	if err := b.showMenu(ctx); err != nil {
		return nil, err
	}

	item, err := b.askItem(ctx, customer)
	if err != nil {
		return nil, err
	}
	b.setStatus(item.Name)

	qty, err := b.askQuantity(ctx, item)
	if err != nil {
		return nil, err
	}
	b.setStatus(fmt.Sprintf("%s x%d", item.Name, qty))

	var whipped, iced bool
	if item.SupportsWhippedCream {
		if whipped, err = b.askYesNo(ctx, speech.LineWantWhippedCream()); err != nil {
			return nil, err
		}
	}
	if item.SupportsIced && !item.ForcedIced {
		if iced, err = b.askYesNo(ctx, speech.LineWantIced()); err != nil {
			return nil, err
		}
	}

	sel, err := menu.Validate(item, qty, whipped, iced)
	if err != nil {
		return nil, fmt.Errorf("validating selection: %w", err)
	}
	quote := menu.QuoteFor(sel)

	receipt := &Receipt{
		OrderID:   generateID(),
		Customer:  customer,
		Selection: sel,
		Quote:     quote,
		PlacedAt:  b.now(),
	}

	if b.store != nil {
		order := &domain.Order{
			ID:        receipt.OrderID,
			Customer:  customer,
			Selection: sel,
			Total:     quote.Total,
			PlacedAt:  receipt.PlacedAt,
		}
		if err := b.store.Save(ctx, order); err != nil {
			return nil, fmt.Errorf("saving order: %w", err)
		}
	}

	b.log.Info("order %s: %s x%d (whipped=%t iced=%t) for %s, total %d",
		receipt.OrderID, sel.Item.Name, sel.Quantity, sel.WhippedCream, sel.Iced, customer, quote.Total)

	if err := b.confirm(ctx, receipt); err != nil {
		return nil, err
	}
	b.setStatus(fmt.Sprintf("%s x%d  %s%d", item.Name, qty, b.currency, quote.Total))
	return receipt, nil
}

// ── Steps ────────────────────────────────────────────────────────

func (b *Barista) askName(ctx context.Context) (string, error) {
	for {
		raw, err := b.ui.PromptName(ctx)
		if err != nil {
			return "", err
		}
		name, err := conversation.Name(raw)
		if err == nil {
			return name, nil
		}
		if err := b.ui.ShowMessage(ctx, domain.MessageUrgent, speech.LineInvalidName()); err != nil {
			return "", err
		}
	}
}

func (b *Barista) showMenu(ctx context.Context) error {
	items := b.catalog.Items()
	if err := b.ui.ShowMessage(ctx, domain.MessageChat, speech.LineMenuHeader()); err != nil {
		return err
	}
	for _, item := range items {
		if err := b.ui.ShowMessage(ctx, domain.MessageInfo, speech.LineMenuItem(item, b.currency)); err != nil {
			return err
		}
	}
	b.speak(ctx, speech.LineMenuSpoken(items))
	return nil
}

func (b *Barista) askItem(ctx context.Context, customer string) (domain.MenuItem, error) {
	if err := b.say(ctx, domain.MessageChat, speech.LineWhatWouldYouLike(customer), ""); err != nil {
		return domain.MenuItem{}, err
	}
	for {
		raw, err := b.ui.PromptItem(ctx, customer)
		if err != nil {
			return domain.MenuItem{}, err
		}
		item, err := b.catalog.Find(raw)
		if err == nil {
			return item, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return domain.MenuItem{}, err
		}
		if err := b.say(ctx, domain.MessageUrgent, speech.LineNotOnMenu(customer), ""); err != nil {
			return domain.MenuItem{}, err
		}
		if hint := speech.LineDidYouMean(b.catalog.Suggest(raw, maxSuggestions)); hint != "" {
			if err := b.ui.ShowMessage(ctx, domain.MessageHint, hint); err != nil {
				return domain.MenuItem{}, err
			}
		}
	}
}

func (b *Barista) askQuantity(ctx context.Context, item domain.MenuItem) (int, error) {
	for {
		raw, err := b.ui.PromptQuantity(ctx, item.Name)
		if err != nil {
			return 0, err
		}
		qty, err := menu.ParseQuantity(raw)
		if err == nil {
			return qty, nil
		}

		line := speech.LineQuantityNotPositive()
		var qerr *menu.QuantityError
		if errors.As(err, &qerr) {
			switch {
			case qerr.NotNumber:
				line = speech.LineQuantityNotNumber()
			case qerr.TooLarge:
				line = speech.LineQuantityTooLarge(menu.MaxQuantity)
			}
		}
		if err := b.say(ctx, domain.MessageUrgent, line, ""); err != nil {
			return 0, err
		}
	}
}

func (b *Barista) askYesNo(ctx context.Context, question string) (bool, error) {
	for {
		raw, err := b.ui.PromptYesNo(ctx, question)
		if err != nil {
			return false, err
		}
		yes, err := b.answers.YesNo(raw)
		if err == nil {
			return yes, nil
		}
		if err := b.say(ctx, domain.MessageUrgent, speech.LineInvalidAnswer(), ""); err != nil {
			return false, err
		}
	}
}

func (b *Barista) confirm(ctx context.Context, r *Receipt) error {
	sel := r.Selection
	name := sel.Item.Name

	if err := b.say(ctx, domain.MessageChat,
		speech.LineOrderConfirmed(r.Customer, sel.Quantity, name),
		speech.LineOrderConfirmedSpoken(r.Customer, sel.Quantity, name)); err != nil {
		return err
	}
	if sel.WhippedCream {
		if err := b.say(ctx, domain.MessageInfo, speech.LineWithWhippedCream(), ""); err != nil {
			return err
		}
	}
	switch {
	case sel.Item.ForcedIced:
		if err := b.say(ctx, domain.MessageInfo, speech.LineAlwaysIced(name), ""); err != nil {
			return err
		}
	case sel.Iced:
		if err := b.say(ctx, domain.MessageInfo, speech.LineIced(), ""); err != nil {
			return err
		}
	}
	if err := b.say(ctx, domain.MessageChat,
		speech.LineTotal(b.currency, r.Quote.Total),
		speech.LineTotalSpoken(r.Quote.Total)); err != nil {
		return err
	}
	return b.say(ctx, domain.MessageHint, speech.LineBye(r.Customer), "")
}

// ── Output helpers ───────────────────────────────────────────────

// say shows text and then speaks it. spoken overrides what is read
// aloud; empty means "same as printed".
func (b *Barista) say(ctx context.Context, kind domain.MessageKind, text, spoken string) error {
	if err := b.ui.ShowMessage(ctx, kind, text); err != nil {
		return err
	}
	if spoken == "" {
		spoken = text
	}
	b.speak(ctx, spoken)
	return nil
}

// speak renders and plays one line. Speech failures are logged and the
// order carries on.
func (b *Barista) speak(ctx context.Context, text string) {
	plan := b.renderer.Render(speech.CleanForSpeech(text))
	if err := b.voice.Speak(ctx, plan); err != nil {
		b.log.Warn("speech failed: %v", err)
	}
}

func (b *Barista) setStatus(status string) {
	if s, ok := b.ui.(statusSetter); ok {
		s.SetStatus(status)
	}
}
