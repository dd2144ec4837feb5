package dto

// QueryRequestDTO is the primary submit-a-message request.
type QueryRequestDTO struct {
	Input     string `json:"input" example:"Write a 2-line Instagram caption about rainy mornings"`
	SessionID string `json:"session_id,omitempty"`
	UserID    string `json:"user_id,omitempty"`
	// Download controls the attachment disposition of image replies.
	Download bool `json:"download,omitempty"`
}

// TextResponseDTO is the JSON reply for text answers.
type TextResponseDTO struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
}

// ErrorResponseDTO accompanies every non-2xx status.
type ErrorResponseDTO struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func NewErrorResponse(message string) ErrorResponseDTO {
	return ErrorResponseDTO{Type: "error", Message: message}
}
