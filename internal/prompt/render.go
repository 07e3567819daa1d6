package prompt

import (
	"fmt"
	"strings"
)

// TemplateError reports a template that cannot be rendered, typically because a
// revision dropped one of the required placeholders.
type TemplateError struct {
	Missing string
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("template missing required placeholder %s", e.Missing)
}

// Render substitutes the conversation context into the template. Both
// placeholders must be present; a template that lost one through editing is
// rejected rather than silently rendered without context.
func Render(template, clientMessage, historyText string) (string, error) {
	for _, ph := range []string{PlaceholderHistory, PlaceholderMessage} {
		if !strings.Contains(template, ph) {
			return "", &TemplateError{Missing: ph}
		}
	}

	out := strings.ReplaceAll(template, PlaceholderHistory, historyText)
	out = strings.ReplaceAll(out, PlaceholderMessage, clientMessage)
	return out, nil
}
