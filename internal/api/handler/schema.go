package handler

// errorResponse mirrors the envelope written by the central error handler.
type errorResponse struct {
	Error string `json:"error"`
}
