package agent

import "strings"

// englishMarkers is a fixed set of words that flip the detected input
// language to English. This is a cheap heuristic, not a classifier: it
// is allowed to be wrong and only affects downstream phrasing, never
// control flow.
var englishMarkers = []string{
	"hello", "hi ", "please", "thank you", "yes", "no ", "what", "how",
}

// Normalize trims the latest user utterance and tags its language.
// With no user turn in history it is a no-op; downstream stages must
// tolerate empty input.
func Normalize(sess *Session, defaultLanguage string) {
	last := sess.LastUserTurn()
	if last == "" {
		return
	}

	input := strings.TrimSpace(last)

	lang := defaultLanguage
	lower := strings.ToLower(input)
	for _, marker := range englishMarkers {
		if strings.Contains(lower, marker) {
			lang = "en"
			break
		}
	}

	sess.CurrentInput = input
	sess.InputLanguage = lang
	sess.TurnCount++
}
