package transfer

type GenerateRequest struct {
	Prompt string `json:"prompt" form:"prompt"`
}

type GenerateResponse struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

// TextGenRequest is the body sent to the text-generation endpoint.
type TextGenRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// TextGenChunk is one JSON object of the endpoint's reply. Streaming replies
// send several chunks, each carrying part of the text.
type TextGenChunk struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error"`
}
