package reply

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/issa-compass/assistant/internal/prompt"
)

// House style for outgoing replies: follow-ups never greet, nobody asks the
// client for permission to continue, and replies stay short (3 sentences for
// an opener, 2 for a follow-up).

var (
	greetingPrefix = regexp.MustCompile(`(?i)^(sawasdee|hello|hi|hey)\b[!.,\s]*`)
	greetingLine   = regexp.MustCompile(`(?i)^(sawasdee|hello|hi|hey)\b`)

	invitationPhrases = []string{"would you like", "let me", "can i", "shall i"}
	invitationGuide   = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bi can\b.*guide`),
		regexp.MustCompile(`(?i)\bwe can\b.*guide`),
	}
)

const (
	maxSentencesOpener   = 3
	maxSentencesFollowUp = 2
)

// Sanitize applies the deterministic post-processing rules to raw model
// output. An empty result is legal: a reply consisting entirely of filtered
// content sanitizes to "".
func Sanitize(raw, historyText string) string {
	followUp := historyText != prompt.NoHistory

	text := strings.TrimSpace(raw)
	if followUp {
		text = greetingPrefix.ReplaceAllString(text, "")
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if followUp && greetingLine.MatchString(line) {
			continue
		}
		lines = append(lines, line)
	}

	var kept []string
	for _, s := range splitSentences(strings.Join(lines, " ")) {
		if isInvitation(s) {
			continue
		}
		kept = append(kept, s)
	}

	limit := maxSentencesOpener
	if followUp {
		limit = maxSentencesFollowUp
	}
	if len(kept) > limit {
		kept = kept[:limit]
	}

	return strings.Join(kept, " ")
}

func isInvitation(s string) bool {
	lower := strings.ToLower(s)
	for _, phrase := range invitationPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	for _, re := range invitationGuide {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// splitSentences breaks text on `.`, `!` or `?` followed by whitespace.
// The terminator stays with its sentence; a trailing fragment without a
// terminator is kept as-is.
func splitSentences(text string) []string {
	var sentences []string
	var cur strings.Builder

	runes := []rune(text)
	for i, r := range runes {
		cur.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			if s := strings.TrimSpace(cur.String()); s != "" {
				sentences = append(sentences, s)
			}
			cur.Reset()
		}
	}
	if s := strings.TrimSpace(cur.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}
