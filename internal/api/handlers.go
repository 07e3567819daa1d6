package api

import (
	"encoding/json"
	"net/http"

	"github.com/issa-compass/assistant/internal/prompt"
	"github.com/issa-compass/assistant/internal/transcript"
)

// historyMessage accepts both {message: "..."} and {content: "..."} from
// callers.
type historyMessage struct {
	Role    string  `json:"role"`
	Message *string `json:"message"`
	Content *string `json:"content"`
}

func formatHistory(history []historyMessage) string {
	turns := make([]transcript.Turn, 0, len(history))
	for _, m := range history {
		role := m.Role
		if role == "" {
			role = "unknown"
		}
		var text string
		switch {
		case m.Message != nil:
			text = *m.Message
		case m.Content != nil:
			text = *m.Content
		}
		turns = append(turns, transcript.Turn{Role: role, Text: text})
	}
	return transcript.FormatHistory(turns)
}

type generateRequest struct {
	Message        string           `json:"message"`
	ClientSequence string           `json:"clientSequence"`
	ChatHistory    []historyMessage `json:"chatHistory"`
}

func (s *Server) generateReply(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	clientMessage := req.ClientSequence
	if clientMessage == "" {
		clientMessage = req.Message
	}
	if clientMessage == "" {
		writeError(w, http.StatusBadRequest, "clientSequence is required")
		return
	}

	historyText := formatHistory(req.ChatHistory)

	aiReply, err := s.renderer.GenerateReply(r.Context(), clientMessage, historyText)
	if err != nil {
		s.logger.Error("generate reply failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"aiReply": aiReply})
}

type improveRequest struct {
	ClientSequence  string           `json:"clientSequence"`
	Message         string           `json:"message"`
	ChatHistory     []historyMessage `json:"chatHistory"`
	ConsultantReply string           `json:"consultantReply"`
}

func (s *Server) improveAI(w http.ResponseWriter, r *http.Request) {
	var req improveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	clientMessage := req.ClientSequence
	if clientMessage == "" {
		clientMessage = req.Message
	}
	if clientMessage == "" {
		writeError(w, http.StatusBadRequest, "clientSequence is required")
		return
	}
	if req.ConsultantReply == "" {
		writeError(w, http.StatusBadRequest, "consultantReply is required")
		return
	}

	historyText := formatHistory(req.ChatHistory)

	// Predict with the current template first, then revise from the diff.
	predicted, err := s.renderer.GenerateReply(r.Context(), clientMessage, historyText)
	if err != nil {
		s.logger.Error("prediction failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	res := s.editor.ReviseFromExample(r.Context(), clientMessage, historyText, req.ConsultantReply, predicted)
	if !res.Success {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"predictedReply": predicted,
			"error":          res.Err,
			"rawResponse":    res.RawResponse,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"predictedReply": predicted,
		"updatedPrompt":  res.UpdatedPrompt,
		"changesMade":    res.ChangesMade,
	})
}

type improveManuallyRequest struct {
	Instructions string `json:"instructions"`
}

func (s *Server) improveAIManually(w http.ResponseWriter, r *http.Request) {
	var req improveManuallyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Instructions == "" {
		writeError(w, http.StatusBadRequest, "instructions is required")
		return
	}

	res := s.editor.ReviseManually(r.Context(), req.Instructions)
	if !res.Success {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   res.Err,
			"success": false,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"updatedPrompt": res.UpdatedPrompt,
		"success":       true,
	})
}

func (s *Server) getPrompt(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"prompt": s.editor.CurrentPrompt(r.Context()),
	})
}

func (s *Server) resetPrompt(w http.ResponseWriter, r *http.Request) {
	if !s.store.UpdatePrompt(r.Context(), prompt.PromptName, prompt.DefaultChatbotPrompt) {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   "failed to reset prompt",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Prompt reset to default template",
	})
}
