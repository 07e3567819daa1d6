package transcript

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/issa-compass/assistant/internal/prompt"
)

// Load reads a transcript dump (a JSON array of conversations) from disk.
func Load(path string) ([]Conversation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transcript dump: %w", err)
	}
	var convs []Conversation
	if err := json.Unmarshal(data, &convs); err != nil {
		return nil, fmt.Errorf("parse transcript dump: %w", err)
	}
	return convs, nil
}

// Segment extracts training pairs from the conversations. Each pair is a
// maximal run of consecutive client messages followed by a maximal run of
// consecutive consultant messages; its chat history is every message strictly
// before the client run. A trailing client run with no reply is discarded —
// there is nothing to learn from it. Ordering is preserved exactly, so
// re-running over the same dump yields identical pairs.
func Segment(conversations []Conversation) []Pair {
	var pairs []Pair

	for _, conv := range conversations {
		msgs := conv.Conversation
		scenario := conv.Scenario
		if scenario == "" {
			scenario = "Unknown"
		}

		i := 0
		for i < len(msgs) {
			clientStart := i

			var clientSeq []string
			for i < len(msgs) && msgs[i].Direction == DirectionIn {
				clientSeq = append(clientSeq, msgs[i].Text)
				i++
			}

			var reply []string
			for i < len(msgs) && msgs[i].Direction == DirectionOut {
				reply = append(reply, msgs[i].Text)
				i++
			}

			if len(clientSeq) == 0 && len(reply) == 0 {
				// Unknown direction; skip the message rather than loop forever.
				i++
				continue
			}

			if len(clientSeq) == 0 || len(reply) == 0 {
				continue
			}

			history := make([]Turn, 0, clientStart)
			for _, m := range msgs[:clientStart] {
				role := RoleConsultant
				if m.Direction == DirectionIn {
					role = RoleClient
				}
				history = append(history, Turn{Role: role, Text: m.Text})
			}

			pairs = append(pairs, Pair{
				ClientSequence:  clientSeq,
				ConsultantReply: reply,
				ChatHistory:     history,
				Scenario:        scenario,
				ContactID:       conv.ContactID,
			})
		}
	}

	return pairs
}

// JoinClientSequence flattens a client turn-run into the single message string
// fed to the renderer.
func JoinClientSequence(seq []string) string {
	if len(seq) == 1 {
		return seq[0]
	}
	return strings.Join(seq, "\n")
}

// FormatHistory renders turns as "[ROLE]: text" lines; an empty history
// becomes the no-history sentinel the renderer keys follow-up detection on.
func FormatHistory(history []Turn) string {
	if len(history) == 0 {
		return prompt.NoHistory
	}

	lines := make([]string, 0, len(history))
	for _, t := range history {
		lines = append(lines, fmt.Sprintf("[%s]: %s", strings.ToUpper(t.Role), t.Text))
	}
	return strings.Join(lines, "\n")
}
