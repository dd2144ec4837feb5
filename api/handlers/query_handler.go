package handlers

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"copydesk/agent"
	"copydesk/api/dto"
	"copydesk/services"
)

const imageDataPrefix = "data:image/png;base64,"

// QueryHandler godoc
// @Summary      Submit a message
// @Description  Routes a user message through the copywriter policy and returns text or a generated poster image.
// @Tags         chat
// @Accept       json
// @Produce      json
// @Produce      png
// @Param        body  body      dto.QueryRequestDTO  true  "query request"
// @Success      200   {object}  dto.TextResponseDTO
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Failure      500   {object}  dto.ErrorResponseDTO
// @Router       /query [post]
func QueryHandler(chatSvc ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.QueryRequestDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request body"))
			return
		}

		result, err := chatSvc.Ask(c.Request.Context(), services.ChatInput{
			UserID:    req.UserID,
			SessionID: req.SessionID,
			Input:     req.Input,
		})
		if err != nil {
			if errors.Is(err, services.ErrEmptyInput) {
				c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Input cannot be empty"))
				return
			}
			c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Server error: "+err.Error()))
			return
		}

		if result.Type == agent.KindImage {
			writeImage(c, result, req.Download)
			return
		}

		c.JSON(http.StatusOK, dto.TextResponseDTO{
			Type:      "text",
			Message:   result.Message,
			SessionID: result.SessionID,
			UserID:    result.UserID,
		})
	}
}

// writeImage streams the generated PNG. Session and user tokens travel in
// headers because the body is binary.
func writeImage(c *gin.Context, result *services.ChatResult, download bool) {
	payload := strings.TrimPrefix(result.Message, imageDataPrefix)
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Server error: corrupt image payload"))
		return
	}

	c.Header("X-Session-Id", result.SessionID)
	c.Header("X-User-Id", result.UserID)
	disposition := "inline"
	if download {
		disposition = "attachment"
	}
	c.Header("Content-Disposition", disposition+`; filename="generated.png"`)
	c.Data(http.StatusOK, "image/png", raw)
}
