// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Session operations
	OpStemsLoad  Op = "load stems"
	OpStemFetch  Op = "load stem"
	OpCacheOpen  Op = "open stem cache"
	OpCacheStore Op = "cache stems"

	// Transport operations
	OpPlaybackStart Op = "start playback"
	OpPlaybackPause Op = "pause playback"
	OpPlaybackStop  Op = "stop playback"
	OpPlaybackSeek  Op = "seek"
	OpGainChange    Op = "change stem volume"

	// Integrations
	OpAudioOutput   Op = "open audio output"
	OpMPRISStart    Op = "start MPRIS server"
	OpNotifierStart Op = "connect to notification daemon"
	OpStderrCapture Op = "capture stderr"

	// Initialization
	OpInitialize Op = "initialize application"
	OpConfigLoad Op = "load configuration"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
