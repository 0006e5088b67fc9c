package chat

type Command interface {
	ConversationID() string
}

// AskCommand carries one question through the retrieval and answer flow.
// Role selects the prompt register (patient or professional); Conversation
// groups the turns of one exchange for history retrieval.
type AskCommand struct {
	Question     string
	Role         string
	Conversation string
}

func (c AskCommand) ConversationID() string {
	return c.Conversation
}

type HistoryCommand struct {
	Conversation string
	Cursor       *string
}

func (c HistoryCommand) ConversationID() string {
	return c.Conversation
}
