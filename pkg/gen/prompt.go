package gen

import (
	"fmt"
	"strings"

	"github.com/starlight-letter/starlight/pkg/settings"
	"github.com/starlight-letter/starlight/pkg/timeutil"
)

const defaultCharacter = "a warm and affectionate character"

// SystemPrompt renders the persona instructions shared by every generation
// request: who the character is, who the user is, and how to speak.
func SystemPrompt(s settings.Settings) string {
	character := strings.TrimSpace(s.CharacterPrompt)
	if character == "" {
		character = defaultCharacter
	}
	userName := strings.TrimSpace(s.UserName)
	if userName == "" {
		userName = "friend"
	}
	relationship := strings.TrimSpace(s.Relationship)
	if relationship == "" {
		relationship = "friend"
	}
	speech := "casual, familiar speech"
	if s.FormalSpeech {
		speech = "polite, formal speech"
	}

	b := strings.Builder{}
	fmt.Fprintf(&b, "You are a character described as: %s.\n", character)
	fmt.Fprintf(&b, "The user's name is %q and your relationship to them is %q.\n", userName, relationship)
	if info := strings.TrimSpace(s.UserPrompt); info != "" {
		fmt.Fprintf(&b, "About the user: %s\n", info)
	}
	fmt.Fprintf(&b, "Always use %s.\n", speech)
	b.WriteString("Stay within the character's persona and write natural, sincere text.")
	return b.String()
}

// LetterReplyPrompt renders the task prompt for replying to the user's
// daily letter. Length guidance lives in the prompt text itself.
func LetterReplyPrompt(userLetter string) string {
	b := strings.Builder{}
	b.WriteString("The user sent you this letter today:\n")
	fmt.Fprintf(&b, "%q\n\n", userLetter)
	b.WriteString("Write a reply to it.\n")
	b.WriteString("Use letter form, roughly 300 to 1500 characters.\n")
	b.WriteString("Reply warmly, with genuine feeling.")
	return b.String()
}

// FortunePrompt renders the task prompt for the daily fortune message.
func FortunePrompt(day timeutil.Day) string {
	b := strings.Builder{}
	fmt.Fprintf(&b, "Write today's (%s) fortune as a short message spoken directly by the character.\n\n", day.Long())
	b.WriteString("Include:\n")
	b.WriteString("1) The overall mood of the day — not purely rosy; mention a point of tension or something to watch for.\n")
	b.WriteString("2) One or two lucky colors or items.\n")
	b.WriteString("3) One or two actions or situations best avoided today.\n")
	b.WriteString("4) A short word of advice and encouragement from the character to the user.\n\n")
	b.WriteString("Rules:\n")
	b.WriteString("- Keep it within roughly 150 to 300 characters.\n")
	b.WriteString("- Keep the character's voice and personality.\n")
	b.WriteString("- Stay realistic but hopeful: the day can go well.\n")
	b.WriteString("- Sound like a fortune, not a verdict; no absolute predictions, speak in possibilities and advice.")
	return b.String()
}
