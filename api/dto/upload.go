package dto

// UploadResponseDTO confirms a stored reference file.
type UploadResponseDTO struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	SizeBytes   int    `json:"size_bytes"`
	AutoUse     bool   `json:"auto_use"`
	SessionID   string `json:"session_id"`
	UserID      string `json:"user_id"`
}
