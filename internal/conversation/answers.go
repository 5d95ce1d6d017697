// Package conversation interprets the customer's raw answers.
package conversation

import (
	"regexp"
	"strings"

	"github.com/hammamikhairi/robobarista/internal/domain"
	"github.com/hammamikhairi/robobarista/internal/logger"
)

// Answer is a parsed yes/no reply.
type Answer int

const (
	AnswerUnknown Answer = iota
	AnswerYes
	AnswerNo
)

// String returns a human-readable answer.
func (a Answer) String() string {
	switch a {
	case AnswerYes:
		return "yes"
	case AnswerNo:
		return "no"
	default:
		return "unknown"
	}
}

// AnswerParser matches replies against keyword patterns.
type AnswerParser struct {
	log      *logger.Logger
	patterns []patternRule
}

type patternRule struct {
	regex  *regexp.Regexp
	answer Answer
}

// NewAnswerParser creates a keyword-based answer parser.
func NewAnswerParser(log *logger.Logger) *AnswerParser {
	p := &AnswerParser{log: log}
	p.patterns = []patternRule{
		{regexp.MustCompile(`(?i)^(yes|y|yeah|yep|yup|sure|ok|okay|please|yes please)[.!]?$`), AnswerYes},
		{regexp.MustCompile(`(?i)^(no|n|nope|nah|no thanks|no thank you)[.!]?$`), AnswerNo},
	}
	return p
}

// YesNo parses a yes/no reply. Anything else returns
// domain.ErrUnrecognizedAnswer so the caller can ask again.
func (p *AnswerParser) YesNo(input string) (bool, error) {
	trimmed := strings.TrimSpace(input)
	for _, rule := range p.patterns {
		if rule.regex.MatchString(trimmed) {
			p.log.Debug("answer %q -> %s", trimmed, rule.answer)
			return rule.answer == AnswerYes, nil
		}
	}
	p.log.Debug("answer %q not recognized", trimmed)
	return false, domain.ErrUnrecognizedAnswer
}

// Name cleans up a customer name. An empty result means "ask again".
func Name(input string) (string, error) {
	name := strings.Join(strings.Fields(input), " ")
	if name == "" {
		return "", domain.ErrUnrecognizedAnswer
	}
	return name, nil
}
