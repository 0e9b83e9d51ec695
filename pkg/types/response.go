package types

// ErrorBody is the JSON shape of every failed request.
type ErrorBody struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// MessageBody acknowledges updates and deletes.
type MessageBody struct {
	Message string `json:"message"`
}

// Option is a lookup entry rendered for dropdowns.
type Option struct {
	ID      int64  `json:"id"`
	Display string `json:"display"`
}
