package api

type Message struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

type Conversation struct {
	Processing bool      `json:"processing"`
	Messages   []Message `json:"messages"`
}

type QueryRequest struct {
	Query string `json:"query"`
}

type QueryResponse struct {
	Reply        *Message     `json:"reply,omitempty"`
	Conversation Conversation `json:"conversation"`
}

type Suggestions struct {
	Suggestions []string `json:"suggestions"`
}
