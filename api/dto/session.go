package dto

import (
	"time"

	"copydesk/models"
)

// SessionDTO is the client view of one conversation session.
type SessionDTO struct {
	SessionID string     `json:"session_id"`
	UserID    string     `json:"user_id"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Title     string     `json:"title"`
	IsActive  bool       `json:"is_active"`
}

func SessionFromModel(s *models.Session) SessionDTO {
	return SessionDTO{
		SessionID: s.SessionID,
		UserID:    s.UserID,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Title:     s.Title,
		IsActive:  s.IsActive,
	}
}

// ListSessionsResponseDTO lists a user's sessions, most recent first.
type ListSessionsResponseDTO struct {
	UserID   string       `json:"user_id"`
	Sessions []SessionDTO `json:"sessions"`
}
