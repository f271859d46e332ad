// Package speech provides the announcement paths: a remote
// speech-generation client for the synthesized announcement and a
// platform text-to-speech fallback.
package speech

// Audio format of the synthesized announcement: raw signed 16-bit
// little-endian PCM, mono, 24 kHz, delivered base64-encoded inline in
// the generation response.
const (
	SampleRate   = 24000
	ChannelCount = 1
	BitDepth     = 16
)

// DefaultVoice is the prebuilt voice requested from the generation
// service.
const DefaultVoice = "Kore"

// DefaultModel is the speech-capable generation model.
const DefaultModel = "gemini-2.5-flash-preview-tts"

// Env var names for the synthesis credential and voice override.
const (
	EnvAPIKey = "GEMINI_API_KEY"
	EnvVoice  = "NEBULA_TTS_VOICE"
)

// Preferred fallback voice selection: a locale plus a vendor substring,
// matched against the platform voice list. Either match failing degrades
// gracefully (locale-only, then platform default).
const (
	PreferredLocale = "en-US"
	PreferredVendor = "Samantha"
)
