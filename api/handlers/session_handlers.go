package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"copydesk/api/dto"
)

type createSessionRequest struct {
	UserID string `json:"user_id"`
}

// CreateSessionHandler godoc
// @Summary      Start a new session
// @Description  Forces a fresh session for the user regardless of the expiry window. The previous active session is kept for history.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Success      200  {object}  dto.SessionDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /sessions [post]
func CreateSessionHandler(sessionSvc SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createSessionRequest
		// body is optional; a missing user_id mints a fresh identity
		_ = c.ShouldBindJSON(&req)
		if req.UserID == "" {
			req.UserID = uuid.NewString()
		}

		sess, err := sessionSvc.CreateExplicit(c.Request.Context(), req.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Server error: "+err.Error()))
			return
		}

		c.JSON(http.StatusOK, dto.SessionFromModel(sess))
	}
}

// ListSessionsHandler godoc
// @Summary      List sessions
// @Description  Lists all sessions for a user, most recent first.
// @Tags         sessions
// @Produce      json
// @Param        user_id  query     string  true  "user token"
// @Success      200      {object}  dto.ListSessionsResponseDTO
// @Failure      400      {object}  dto.ErrorResponseDTO
// @Failure      500      {object}  dto.ErrorResponseDTO
// @Router       /sessions [get]
func ListSessionsHandler(sessionSvc SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Query("user_id")
		if userID == "" {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("user_id is required"))
			return
		}

		sessions, err := sessionSvc.List(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Server error: "+err.Error()))
			return
		}

		items := make([]dto.SessionDTO, 0, len(sessions))
		for i := range sessions {
			items = append(items, dto.SessionFromModel(&sessions[i]))
		}
		c.JSON(http.StatusOK, dto.ListSessionsResponseDTO{UserID: userID, Sessions: items})
	}
}
