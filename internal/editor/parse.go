package editor

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// proposal is the structured edit the backend is asked to emit.
type proposal struct {
	Prompt      string `json:"prompt"`
	ChangesMade string `json:"changes_made"`
}

// minSalvageLen guards against salvaging a truncated or placeholder fragment
// that would corrupt the live template.
const minSalvageLen = 100

var (
	salvageStart = regexp.MustCompile(`(?s)"prompt"\s*:\s*"(.+)`)
	salvageEnd   = regexp.MustCompile(`"\s*,?\s*"?changes_made|"\s*\}`)
)

// decodeProposal is the strict first stage: it takes the outermost brace pair
// (backends routinely wrap JSON in prose) and unmarshals it.
func decodeProposal(raw string) (proposal, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return proposal{}, fmt.Errorf("no JSON object in output")
	}

	var p proposal
	if err := json.Unmarshal([]byte(raw[start:end+1]), &p); err != nil {
		return proposal{}, fmt.Errorf("decode proposal: %w", err)
	}
	return p, nil
}

// salvagePrompt is the fallback stage: it pulls a `"prompt": "..."` value out
// of malformed output, unescapes it, and accepts it only past the length
// floor.
func salvagePrompt(raw string) (string, bool) {
	m := salvageStart.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}

	extracted := m[1]
	if loc := salvageEnd.FindStringIndex(extracted); loc != nil {
		extracted = extracted[:loc[0]]
	}

	extracted = strings.ReplaceAll(extracted, `\n`, "\n")
	extracted = strings.ReplaceAll(extracted, `\"`, `"`)
	extracted = strings.TrimRight(extracted, `"`)

	if len(extracted) > minSalvageLen {
		return extracted, true
	}
	return "", false
}
