// Package interfaces defines service contracts for the TruAssets platform
package interfaces

import "context"

// GeminiClient provides access to the Gemini generative API
type GeminiClient interface {
	// GenerateText sends a prompt and returns the generated text
	GenerateText(ctx context.Context, prompt string) (string, error)

	// IsConfigured reports whether an API key is available
	IsConfigured() bool
}
