package transcript

// Message directions as they appear in the raw transcript dump.
const (
	DirectionIn  = "in"  // from the client
	DirectionOut = "out" // from the consultant
)

// Turn roles used in formatted chat history.
const (
	RoleClient     = "client"
	RoleConsultant = "consultant"
)

// RawMessage is one message in a dumped conversation.
type RawMessage struct {
	Direction string `json:"direction"`
	Text      string `json:"text"`
}

// Conversation is one conversation in the transcript dump.
type Conversation struct {
	Scenario     string       `json:"scenario"`
	ContactID    string       `json:"contact_id"`
	Conversation []RawMessage `json:"conversation"`
}

// Turn is an ordered, immutable chat-history entry.
type Turn struct {
	Role string `json:"role"`
	Text string `json:"message"`
}

// Pair is one training exemplar: a maximal run of client messages, the
// consultant reply run that follows it, and everything said before.
type Pair struct {
	ClientSequence  []string `json:"client_sequence"`
	ConsultantReply []string `json:"consultant_reply"`
	ChatHistory     []Turn   `json:"chat_history"`
	Scenario        string   `json:"scenario"`
	ContactID       string   `json:"contact_id"`
}
