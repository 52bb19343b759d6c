package dto

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// OKResponse is a bare success body.
type OKResponse struct {
	OK bool `json:"ok"`
}
