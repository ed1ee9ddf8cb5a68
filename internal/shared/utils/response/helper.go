package response

import (
	"net/http"

	"eventgallery/internal/contracts"
	"eventgallery/internal/shared/constants"

	"github.com/gin-gonic/gin"
)

// RespondJSON writes a successful envelope.
func RespondJSON(c *gin.Context, code int, data interface{}) {
	c.JSON(code, StandardApiResponse{
		Success: true,
		Data:    data,
	})
}

// RespondError writes a failed envelope. The status code is mirrored into
// the error body.
func RespondError(c *gin.Context, code int, kind, message string, details map[string][]string) {
	c.JSON(code, StandardApiResponse{
		Success: false,
		Error: &contracts.APIError{
			Kind:       kind,
			Message:    message,
			StatusCode: code,
			Details:    details,
		},
	})
}

// AbortWithError writes a failed envelope and stops the handler chain.
func AbortWithError(c *gin.Context, code int, kind, message string) {
	RespondError(c, code, kind, message, nil)
	c.Abort()
}

func RespondValidation(c *gin.Context, details map[string][]string) {
	RespondError(c, http.StatusBadRequest, contracts.ErrorKindValidation, constants.MsgValidationError, details)
}

func RespondBadRequest(c *gin.Context, message string) {
	if message == "" {
		message = constants.MsgBadRequest
	}
	RespondError(c, http.StatusBadRequest, contracts.ErrorKindBadRequest, message, nil)
}

func RespondUnauthorized(c *gin.Context, message string) {
	AbortWithError(c, http.StatusUnauthorized, contracts.ErrorKindUnauthorized, message)
}

func RespondNotFound(c *gin.Context, message string) {
	RespondError(c, http.StatusNotFound, contracts.ErrorKindNotFound, message, nil)
}

func RespondForbidden(c *gin.Context, message string) {
	RespondError(c, http.StatusForbidden, contracts.ErrorKindForbidden, message, nil)
}

func RespondConflict(c *gin.Context, message string) {
	RespondError(c, http.StatusConflict, contracts.ErrorKindConflict, message, nil)
}

func RespondInternal(c *gin.Context) {
	RespondError(c, http.StatusInternalServerError, contracts.ErrorKindInternal, constants.MsgInternalError, nil)
}
