// Package speech — lines.go centralises every spoken phrase. The two
// announcement templates live here so the synthesized and fallback
// paths can never drift apart on name normalization.
package speech

import (
	"strings"

	"github.com/hammamikhairi/nebulapick/internal/domain"
)

// SpokenName converts a display name into its spoken form: underscores
// become spaces so "Ada_Lovelace" is read as "Ada Lovelace".
func SpokenName(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}

// joinSpoken renders a winner list for speech with a pause-friendly
// ", and, " between names, matching how the announcement is paced.
func joinSpoken(winners domain.WinnerSet) string {
	parts := make([]string, len(winners))
	for i, w := range winners {
		parts[i] = SpokenName(w)
	}
	return strings.Join(parts, ", and, ")
}

// LineAnnouncement is the phrase sent to the remote synthesizer.
func LineAnnouncement(winners domain.WinnerSet) string {
	return "The lucky winners are: " + joinSpoken(winners) + "! Congratulations!"
}

// LineFallback is the phrase spoken by the platform fallback voice.
func LineFallback(winners domain.WinnerSet) string {
	return "Congratulations! The winners are: " + joinSpoken(winners) + "!"
}

// LinePrompt wraps the announcement phrase in a delivery instruction
// for the generation request.
func LinePrompt(winners domain.WinnerSet) string {
	return "Say cheerfully, like a game show host: " + LineAnnouncement(winners)
}
