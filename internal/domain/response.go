package domain

// Response is the structured result of handling one voice command.
// Failures are reported here, never raised: Success is false and Message
// carries a human-readable explanation the narrator can speak.
type Response struct {
	Success  bool   `json:"success"`
	Intent   string `json:"intent"`
	Text     string `json:"text,omitempty"`     // the transcribed utterance
	Message  string `json:"message"`            // what to show/speak
	Redirect string `json:"redirect,omitempty"` // navigation target for the caller
}
