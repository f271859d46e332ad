// Package command parses the input line of the settings surface into
// structured intents.
package command

import (
	"regexp"
	"strings"

	"github.com/hammamikhairi/nebulapick/internal/domain"
	"github.com/hammamikhairi/nebulapick/internal/logger"
)

// Parser matches user input to intents using keywords and simple
// patterns. The grammar is deliberately small: one verb, at most one
// argument.
type Parser struct {
	log      *logger.Logger
	patterns []patternRule
}

type patternRule struct {
	regex   *regexp.Regexp
	intent  domain.IntentType
	payload bool // capture group 1 becomes the payload
}

// NewParser creates the keyword parser.
func NewParser(log *logger.Logger) *Parser {
	p := &Parser{log: log}
	p.patterns = []patternRule{
		{regexp.MustCompile(`(?i)^(draw|spin|go|start|pick)$`), domain.IntentDraw, false},
		{regexp.MustCompile(`(?i)^add\s+(.+)$`), domain.IntentAdd, true},
		{regexp.MustCompile(`(?i)^(?:remove|rm|del|delete)\s+(.+)$`), domain.IntentRemove, true},
		{regexp.MustCompile(`(?i)^(?:count|winners)\s+(\d+)$`), domain.IntentCount, true},
		{regexp.MustCompile(`(?i)^sound\s+(on|off)$`), domain.IntentSound, true},
		{regexp.MustCompile(`(?i)^(list|names|pool|show)$`), domain.IntentList, false},
		{regexp.MustCompile(`(?i)^load\s+(.+)$`), domain.IntentLoad, true},
		{regexp.MustCompile(`(?i)^save\s+(.+)$`), domain.IntentSave, true},
		{regexp.MustCompile(`(?i)^(dismiss|ok|close|done)$`), domain.IntentDismiss, false},
		{regexp.MustCompile(`(?i)^(help|h|\?)$`), domain.IntentHelp, false},
		{regexp.MustCompile(`(?i)^(quit|exit|q)$`), domain.IntentQuit, false},
	}
	return p
}

// Parse converts one input line into an intent.
func (p *Parser) Parse(input string) *domain.Intent {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return &domain.Intent{Type: domain.IntentUnknown}
	}

	for _, rule := range p.patterns {
		m := rule.regex.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		intent := &domain.Intent{Type: rule.intent}
		if rule.payload {
			intent.Payload = strings.TrimSpace(m[1])
		}
		p.log.Debug("parsed %q -> %s (payload=%q)", trimmed, intent.Type, intent.Payload)
		return intent
	}

	p.log.Debug("no match for %q", trimmed)
	return &domain.Intent{Type: domain.IntentUnknown, Payload: trimmed}
}
