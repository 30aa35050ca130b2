package models

// Prompt is a pointer so an absent or null field can be told apart from "".
type AskRequest struct {
	Prompt *string `json:"prompt" description:"Prompt forwarded unmodified to the model"`
}

type AskResponse struct {
	Response string `json:"response" description:"Text of the model's primary response"`
}

// RelayEvent is one queued prompt (stream payload, batch input line).
type RelayEvent struct {
	RequestID string  `json:"request_id"`
	Prompt    *string `json:"prompt"`
}

// RelayResult is the outcome of a queued prompt. A non-empty Error marks a
// failure; otherwise Response holds the model text, which may be empty.
type RelayResult struct {
	RequestID string `json:"request_id"`
	Response  string `json:"response"`
	Error     string `json:"error,omitempty"`
}

func (r RelayResult) Failed() bool {
	return r.Error != ""
}
