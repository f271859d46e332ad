package speech

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hammamikhairi/nebulapick/internal/domain"
	"github.com/hammamikhairi/nebulapick/internal/logger"
)

// Compile-time interface check.
var _ domain.Synthesizer = (*GeminiClient)(nil)

// ── Wire types ───────────────────────────────────────────────────

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"` // base64 PCM
}

type generationConfig struct {
	ResponseModalities []string      `json:"responseModalities"`
	SpeechConfig       *speechConfig `json:"speechConfig,omitempty"`
}

type speechConfig struct {
	VoiceConfig voiceConfig `json:"voiceConfig"`
}

type voiceConfig struct {
	PrebuiltVoiceConfig prebuiltVoiceConfig `json:"prebuiltVoiceConfig"`
}

type prebuiltVoiceConfig struct {
	VoiceName string `json:"voiceName"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// ── Client ───────────────────────────────────────────────────────

// GeminiOption configures the client.
type GeminiOption func(*GeminiClient)

// WithVoice sets the prebuilt voice requested from the service.
func WithVoice(voice string) GeminiOption {
	return func(c *GeminiClient) { c.voice = voice }
}

// WithModel overrides the generation model.
func WithModel(model string) GeminiOption {
	return func(c *GeminiClient) { c.model = model }
}

// WithBaseURL points the client at a different endpoint. Tests use this
// to talk to a local server.
func WithBaseURL(url string) GeminiOption {
	return func(c *GeminiClient) { c.baseURL = url }
}

// WithHTTPTimeout sets the HTTP client timeout.
func WithHTTPTimeout(d time.Duration) GeminiOption {
	return func(c *GeminiClient) { c.httpClient.Timeout = d }
}

// GeminiClient requests a spoken announcement from the Gemini
// generateContent endpoint with an audio response modality, and decodes
// the returned inline PCM payload into a normalized waveform.
type GeminiClient struct {
	apiKey     string
	model      string
	voice      string
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// NewGeminiClient creates a synthesis client. An empty key is allowed;
// Synthesize then reports ErrNoCredential, which callers treat as the
// feature being disabled rather than a failure.
func NewGeminiClient(apiKey string, log *logger.Logger, opts ...GeminiOption) *GeminiClient {
	c := &GeminiClient{
		apiKey:  apiKey,
		model:   DefaultModel,
		voice:   DefaultVoice,
		baseURL: "https://generativelanguage.googleapis.com/v1beta",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Voice returns the configured voice name.
func (c *GeminiClient) Voice() string { return c.voice }

// Synthesize sends one generation request for the winner announcement
// and returns the decoded waveform.
func (c *GeminiClient) Synthesize(ctx context.Context, winners domain.WinnerSet) (domain.Waveform, error) {
	if c.apiKey == "" {
		return nil, domain.ErrNoCredential
	}

	prompt := LinePrompt(winners)
	c.log.Debug("gemini: synthesizing announcement (%d chars, voice=%s)", len(prompt), c.voice)

	body := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: &speechConfig{
				VoiceConfig: voiceConfig{
					PrebuiltVoiceConfig: prebuiltVoiceConfig{VoiceName: c.voice},
				},
			},
		},
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("gemini: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("gemini: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gemini: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini: API %s: %s", resp.Status, truncate(string(respBody), 200))
	}

	var result generateResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("gemini: unmarshal response: %w", err)
	}

	encoded, err := firstAudioPart(result)
	if err != nil {
		return nil, err
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("gemini: decode audio payload: %w", err)
	}

	wave := DecodePCM(raw)
	if len(wave) == 0 {
		return nil, domain.ErrNoAudio
	}

	c.log.Debug("gemini: decoded %d samples (%.1fs)", len(wave), float64(len(wave))/SampleRate)
	return wave, nil
}

// firstAudioPart extracts the single inline audio payload from the
// response, or reports ErrNoAudio when the service returned none.
func firstAudioPart(resp generateResponse) (string, error) {
	for _, cand := range resp.Candidates {
		for _, p := range cand.Content.Parts {
			if p.InlineData != nil && p.InlineData.Data != "" {
				return p.InlineData.Data, nil
			}
		}
	}
	return "", domain.ErrNoAudio
}

// DecodePCM converts raw little-endian signed 16-bit mono PCM into a
// normalized waveform. A trailing odd byte is truncated.
func DecodePCM(raw []byte) domain.Waveform {
	if len(raw)%2 != 0 {
		raw = raw[:len(raw)-1]
	}
	wave := make(domain.Waveform, len(raw)/2)
	for i := range wave {
		sample := int16(binary.LittleEndian.Uint16(raw[i*2:]))
		wave[i] = float32(sample) / 32768.0
	}
	return wave
}

// truncate shortens a string for logging.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
