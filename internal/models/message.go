package models

// ClientMessage is the envelope for every inbound websocket message. Only the
// fields relevant to the given Type are expected to be set; everything else
// is validated at the handler boundary rather than trusted.
type ClientMessage struct {
	Type  string `json:"type"`
	Token string `json:"token,omitempty"`

	// join
	Name string `json:"name,omitempty"`

	// sendChatMessage
	Message string `json:"message,omitempty"`

	// createCustomTask
	Task *CustomTaskPayload `json:"task,omitempty"`

	// specialChoice: the identity of the player picked for the swap.
	Target string `json:"target,omitempty"`

	// adminCommand
	Secret  string   `json:"secret,omitempty"`
	Command string   `json:"command,omitempty"`
	Args    []string `json:"args,omitempty"`
}

// CustomTaskPayload is the client-authored task shape. Points is a pointer so
// a missing value can be told apart from an explicit zero.
type CustomTaskPayload struct {
	Text     string `json:"text"`
	ImageURL string `json:"imageUrl,omitempty"`
	Category string `json:"category,omitempty"`
	Points   *int   `json:"points,omitempty"`
}
