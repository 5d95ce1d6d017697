package domain

import (
	"fmt"
	"strings"
	"time"
)

// InstructionKind tells a speaker what to do with an Instruction.
type InstructionKind int

const (
	// InstructionSpeak says Text at Rate and Volume.
	InstructionSpeak InstructionKind = iota
	// InstructionPause stays silent for Pause.
	InstructionPause
)

// String returns a human-readable instruction kind.
func (k InstructionKind) String() string {
	switch k {
	case InstructionSpeak:
		return "speak"
	case InstructionPause:
		return "pause"
	default:
		return "unknown"
	}
}

// Instruction is one step of an utterance plan.
type Instruction struct {
	Kind   InstructionKind
	Text   string
	Rate   int     // words per minute
	Volume float64 // 1.0 = normal
	Pause  time.Duration
}

// Speak builds a speak instruction.
func Speak(text string, rate int, volume float64) Instruction {
	return Instruction{Kind: InstructionSpeak, Text: text, Rate: rate, Volume: volume}
}

// PauseFor builds a pause instruction.
func PauseFor(d time.Duration) Instruction {
	return Instruction{Kind: InstructionPause, Pause: d}
}

// Plan is an ordered list of instructions for a speech synthesizer.
type Plan []Instruction

// Segments returns only the speak instructions.
func (p Plan) Segments() []Instruction {
	var out []Instruction
	for _, in := range p {
		if in.Kind == InstructionSpeak {
			out = append(out, in)
		}
	}
	return out
}

// Text joins every spoken segment with single spaces.
func (p Plan) Text() string {
	segs := p.Segments()
	words := make([]string, len(segs))
	for i, s := range segs {
		words[i] = s.Text
	}
	return strings.Join(words, " ")
}

// String is a compact debug rendering, e.g. `"hello"@140/1.00 <350ms>`.
func (p Plan) String() string {
	var b strings.Builder
	for i, in := range p {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch in.Kind {
		case InstructionPause:
			fmt.Fprintf(&b, "<%s>", in.Pause)
		default:
			fmt.Fprintf(&b, "%q@%d/%.2f", in.Text, in.Rate, in.Volume)
		}
	}
	return b.String()
}
