package handler

// Response is the envelope of successful API responses that carry data.
type Response struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// MessageResponse is the envelope of responses without data, e.g. after a delete.
type MessageResponse struct {
	Message string `json:"message"`
}
