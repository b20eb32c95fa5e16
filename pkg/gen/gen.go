// Package gen builds persona prompts from the user's settings and issues
// single-shot text-generation requests. One request per call; no retries,
// no streaming, no caching.
package gen

import (
	"context"

	"github.com/starlight-letter/starlight/pkg/settings"
	"github.com/starlight-letter/starlight/pkg/timeutil"
)

// Client generates persona text. Implementations return the plain generated
// text or an error carrying a human-readable message suitable for an alert.
type Client interface {
	// LetterReply writes the persona's reply to the user's letter.
	LetterReply(ctx context.Context, s settings.Settings, userLetter string) (string, error)
	// Fortune writes the persona's fortune message for the given day.
	Fortune(ctx context.Context, s settings.Settings, day timeutil.Day) (string, error)
}
