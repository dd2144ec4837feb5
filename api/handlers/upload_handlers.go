package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"copydesk/api/dto"
	"copydesk/services"
)

// UploadHandler godoc
// @Summary      Upload a reference file
// @Description  Stores a file in the session's upload store. Set auto_use=true to have it injected into the next prompt automatically.
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        file        formData  file    true   "file payload (max 20 MiB)"
// @Param        session_id  formData  string  false  "session token; resolved from user_id when absent"
// @Param        user_id     formData  string  false  "user token"
// @Param        auto_use    formData  bool    false  "inject into the next prompt"
// @Success     200  {object}  dto.UploadResponseDTO
// @Failure     400  {object}  dto.ErrorResponseDTO
// @Failure     413  {object}  dto.ErrorResponseDTO
// @Failure     500  {object}  dto.ErrorResponseDTO
// @Router      /uploads [post]
func UploadHandler(uploadSvc UploadService, sessionSvc SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("file is required"))
			return
		}
		// cheap reject before buffering the payload
		if fileHeader.Size > services.MaxUploadBytes {
			c.JSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponse(services.ErrUploadTooLarge.Error()))
			return
		}

		userID := c.PostForm("user_id")
		sessionID := c.PostForm("session_id")
		if sessionID == "" {
			if userID == "" {
				userID = uuid.NewString()
			}
			sess, err := sessionSvc.ResolveOrCreate(c.Request.Context(), userID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Server error: "+err.Error()))
				return
			}
			sessionID = sess.SessionID
		}

		f, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Server error: "+err.Error()))
			return
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Server error: "+err.Error()))
			return
		}

		contentType := fileHeader.Header.Get("Content-Type")
		autoUse := c.PostForm("auto_use") == "true" || c.PostForm("auto_use") == "1"

		up, err := uploadSvc.Store(c.Request.Context(), sessionID, fileHeader.Filename, data, contentType, autoUse)
		if err != nil {
			if errors.Is(err, services.ErrUploadTooLarge) {
				c.JSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponse(err.Error()))
				return
			}
			c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Server error: "+err.Error()))
			return
		}

		c.JSON(http.StatusOK, dto.UploadResponseDTO{
			Filename:    up.Filename,
			ContentType: up.ContentType,
			SizeBytes:   len(up.FileData),
			AutoUse:     up.AutoUse,
			SessionID:   up.SessionID,
			UserID:      userID,
		})
	}
}
