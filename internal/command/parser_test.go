package command

import (
	"io"
	"testing"

	"github.com/hammamikhairi/nebulapick/internal/domain"
	"github.com/hammamikhairi/nebulapick/internal/logger"
)

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	return NewParser(logger.New(logger.LevelOff, io.Discard))
}

func TestParseVerbs(t *testing.T) {
	p := newTestParser(t)

	tests := []struct {
		input   string
		want    domain.IntentType
		payload string
	}{
		{"draw", domain.IntentDraw, ""},
		{"SPIN", domain.IntentDraw, ""},
		{"  go  ", domain.IntentDraw, ""},
		{"add Ada Lovelace", domain.IntentAdd, "Ada Lovelace"},
		{"remove Ada Lovelace", domain.IntentRemove, "Ada Lovelace"},
		{"rm bob", domain.IntentRemove, "bob"},
		{"delete bob", domain.IntentRemove, "bob"},
		{"count 3", domain.IntentCount, "3"},
		{"winners 5", domain.IntentCount, "5"},
		{"sound off", domain.IntentSound, "off"},
		{"sound on", domain.IntentSound, "on"},
		{"list", domain.IntentList, ""},
		{"pool", domain.IntentList, ""},
		{"load names.txt", domain.IntentLoad, "names.txt"},
		{"save out.txt", domain.IntentSave, "out.txt"},
		{"dismiss", domain.IntentDismiss, ""},
		{"ok", domain.IntentDismiss, ""},
		{"help", domain.IntentHelp, ""},
		{"?", domain.IntentHelp, ""},
		{"quit", domain.IntentQuit, ""},
		{"q", domain.IntentQuit, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := p.Parse(tt.input)
			if got.Type != tt.want {
				t.Fatalf("Parse(%q).Type = %s, want %s", tt.input, got.Type, tt.want)
			}
			if got.Payload != tt.payload {
				t.Errorf("Parse(%q).Payload = %q, want %q", tt.input, got.Payload, tt.payload)
			}
		})
	}
}

func TestParseUnknown(t *testing.T) {
	p := newTestParser(t)

	for _, input := range []string{"", "   ", "frobnicate", "count three", "sound loud"} {
		got := p.Parse(input)
		if got.Type != domain.IntentUnknown {
			t.Errorf("Parse(%q).Type = %s, want unknown", input, got.Type)
		}
	}
}

func TestParsePayloadTrimmed(t *testing.T) {
	p := newTestParser(t)

	got := p.Parse("add   carol  ")
	if got.Payload != "carol" {
		t.Errorf("payload = %q, want %q", got.Payload, "carol")
	}
}
