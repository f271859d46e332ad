package speech

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	"github.com/hammamikhairi/nebulapick/internal/domain"
	"github.com/hammamikhairi/nebulapick/internal/logger"
)

// Compile-time interface check.
var _ domain.Speaker = (*PlatformSpeaker)(nil)

// SpeakerOption configures the platform speaker.
type SpeakerOption func(*PlatformSpeaker)

// WithPreferredVoice sets the locale/vendor pair used to pick a voice
// from the platform list.
func WithPreferredVoice(locale, vendor string) SpeakerOption {
	return func(s *PlatformSpeaker) {
		s.locale = locale
		s.vendor = vendor
	}
}

// PlatformSpeaker speaks through the operating system's text-to-speech
// command (`say` on macOS, espeak-ng on Linux, SAPI via PowerShell on
// Windows). At most one utterance is active at a time; a new Announce
// kills the previous one first. Prosody is fixed slightly above normal
// rate and pitch for a celebratory tone.
type PlatformSpeaker struct {
	log    *logger.Logger
	locale string
	vendor string

	mu        sync.Mutex
	active    *exec.Cmd
	voice     string // resolved lazily, "" until first use
	voiceOnce sync.Once
}

// NewPlatformSpeaker creates the fallback speaker.
func NewPlatformSpeaker(log *logger.Logger, opts ...SpeakerOption) *PlatformSpeaker {
	s := &PlatformSpeaker{
		log:    log,
		locale: PreferredLocale,
		vendor: PreferredVendor,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Announce speaks the congratulation phrase for the winner set. The
// utterance is dispatched and runs in the background; any currently
// speaking utterance is cancelled first.
func (s *PlatformSpeaker) Announce(ctx context.Context, winners domain.WinnerSet) error {
	s.Cancel()

	phrase := LineFallback(winners)
	s.voiceOnce.Do(func() { s.voice = s.resolveVoice() })

	cmd, err := s.buildCommand(ctx, phrase)
	if err != nil {
		return err
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("speech: starting %s: %w", cmd.Path, err)
	}

	s.mu.Lock()
	s.active = cmd
	s.mu.Unlock()

	s.log.Debug("speech: announcing via %s (voice=%q)", cmd.Path, s.voice)

	// Reap in the background and drop the active handle when done.
	go func() {
		_ = cmd.Wait()
		s.mu.Lock()
		if s.active == cmd {
			s.active = nil
		}
		s.mu.Unlock()
	}()

	return nil
}

// Cancel kills the active utterance, if any. Safe to call concurrently
// and when nothing is speaking.
func (s *PlatformSpeaker) Cancel() {
	s.mu.Lock()
	cmd := s.active
	s.active = nil
	s.mu.Unlock()

	if cmd != nil && cmd.Process != nil {
		_ = cmd.Process.Kill()
		s.log.Debug("speech: cancelled active utterance")
	}
}

// buildCommand assembles the platform TTS invocation.
func (s *PlatformSpeaker) buildCommand(ctx context.Context, phrase string) (*exec.Cmd, error) {
	switch runtime.GOOS {
	case "darwin":
		args := []string{"-r", "220"}
		if s.voice != "" {
			args = append(args, "-v", s.voice)
		}
		args = append(args, phrase)
		return exec.CommandContext(ctx, "say", args...), nil

	case "windows":
		escaped := strings.ReplaceAll(phrase, "'", "''")
		script := fmt.Sprintf(
			"Add-Type -AssemblyName System.Speech; $s = New-Object System.Speech.Synthesis.SpeechSynthesizer; $s.Rate = 2; $s.Speak('%s')",
			escaped,
		)
		return exec.CommandContext(ctx, "powershell", "-Command", script), nil

	default:
		bin := "espeak-ng"
		if _, err := exec.LookPath(bin); err != nil {
			bin = "espeak"
			if _, err := exec.LookPath(bin); err != nil {
				return nil, fmt.Errorf("speech: no TTS command available: %w", err)
			}
		}
		args := []string{"-s", "180", "-p", "70"}
		if s.voice != "" {
			args = append(args, "-v", s.voice)
		}
		args = append(args, phrase)
		return exec.CommandContext(ctx, bin, args...), nil
	}
}

// resolveVoice enumerates the platform voices once and picks the best
// match: locale+vendor, then locale alone, then the platform default
// (empty string).
func (s *PlatformSpeaker) resolveVoice() string {
	voices := listPlatformVoices()
	voice := ChooseVoice(voices, s.locale, s.vendor)
	if voice == "" {
		s.log.Debug("speech: no voice matched %s/%s, using platform default", s.locale, s.vendor)
	} else {
		s.log.Debug("speech: selected voice %q for %s/%s", voice, s.locale, s.vendor)
	}
	return voice
}

// Voice is one entry of the platform voice inventory.
type Voice struct {
	Name   string
	Locale string
}

// ChooseVoice picks a voice by substring match: first a voice matching
// both the locale and the vendor, then any voice matching the locale,
// then "" for the platform default. Locale separators ('-' vs '_') and
// case are ignored.
func ChooseVoice(voices []Voice, locale, vendor string) string {
	want := normalizeLocale(locale)
	vendorLower := strings.ToLower(vendor)

	localeMatch := ""
	for _, v := range voices {
		if !strings.Contains(normalizeLocale(v.Locale), want) {
			continue
		}
		if vendorLower != "" && strings.Contains(strings.ToLower(v.Name), vendorLower) {
			return v.Name
		}
		if localeMatch == "" {
			localeMatch = v.Name
		}
	}
	return localeMatch
}

func normalizeLocale(l string) string {
	return strings.ToLower(strings.ReplaceAll(l, "_", "-"))
}

// listPlatformVoices shells out to the platform voice inventory.
// Returns nil on any failure; the caller degrades to the default voice.
func listPlatformVoices() []Voice {
	switch runtime.GOOS {
	case "darwin":
		out, err := exec.Command("say", "-v", "?").Output()
		if err != nil {
			return nil
		}
		return ParseSayVoices(string(out))
	case "windows":
		return nil // SAPI default; enumeration not worth a COM round-trip
	default:
		bin := "espeak-ng"
		if _, err := exec.LookPath(bin); err != nil {
			bin = "espeak"
		}
		out, err := exec.Command(bin, "--voices").Output()
		if err != nil {
			return nil
		}
		return ParseESpeakVoices(string(out))
	}
}

// ParseSayVoices parses `say -v ?` output. Each line looks like:
//
//	Samantha            en_US    # Hello! My name is Samantha.
func ParseSayVoices(out string) []Voice {
	var voices []Voice
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		line := sc.Text()
		name, rest, found := strings.Cut(line, "  ")
		if !found {
			continue
		}
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			continue
		}
		voices = append(voices, Voice{Name: strings.TrimSpace(name), Locale: fields[0]})
	}
	return voices
}

// ParseESpeakVoices parses `espeak-ng --voices` output. Each data line
// looks like:
//
//	 5  en-US          M  english-us          other/en-us
func ParseESpeakVoices(out string) []Voice {
	var voices []Voice
	sc := bufio.NewScanner(strings.NewReader(out))
	first := true
	for sc.Scan() {
		line := sc.Text()
		if first { // header row
			first = false
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		voices = append(voices, Voice{Name: fields[3], Locale: fields[1]})
	}
	return voices
}
