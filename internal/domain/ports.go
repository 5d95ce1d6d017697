package domain

import "context"

// MessageKind controls how a presenter styles a message.
type MessageKind int

const (
	// MessageChat is something the barista says out loud.
	MessageChat MessageKind = iota
	// MessageInfo is plain information such as a menu line.
	MessageInfo
	// MessageHint is secondary, dimmed text.
	MessageHint
	// MessageUrgent is an error or warning.
	MessageUrgent
)

// Presenter collects raw input from the customer and shows output. The
// console and the full-screen terminal UI both implement it. Prompt methods
// return the raw answer; validation and re-prompting are the caller's job.
// They return ErrInputClosed when the input side goes away.
type Presenter interface {
	PromptName(ctx context.Context) (string, error)
	PromptItem(ctx context.Context, customer string) (string, error)
	PromptQuantity(ctx context.Context, item string) (string, error)
	PromptYesNo(ctx context.Context, question string) (string, error)
	ShowMessage(ctx context.Context, kind MessageKind, text string) error
}

// Speaker turns an utterance plan into sound. Implementations can call a
// cloud TTS service, a local engine, or do nothing at all.
type Speaker interface {
	Speak(ctx context.Context, plan Plan) error
}
