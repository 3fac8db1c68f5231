package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shop-backend/internal/apperr"
)

// ErrBody is the uniform error envelope: {"message": "..."}.
type ErrBody struct {
	Message string `json:"message"`
}

func JSON(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// Fail maps an error to its HTTP status and writes the error envelope.
// Internal causes are logged with the request id and kept off the wire.
func Fail(c *gin.Context, l *zap.Logger, err error) {
	status := apperr.Status(err)
	msg := "an unknown error occurred"

	var e *apperr.Error
	if errors.As(err, &e) {
		msg = e.Error()
		if e.Kind == apperr.KindInternal {
			msg = "an unknown error occurred"
			l.Error("internal error",
				zap.String("rid", c.GetString("rid")),
				zap.String("path", c.FullPath()),
				zap.Error(err),
			)
		}
	} else {
		l.Error("unclassified error",
			zap.String("rid", c.GetString("rid")),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	c.AbortWithStatusJSON(status, ErrBody{Message: msg})
}

// FailStatus writes the envelope with an explicit status, for middleware
// that decides the status itself.
func FailStatus(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, ErrBody{Message: msg})
}

// BindError converts a gin binding failure into the validation envelope.
func BindError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrBody{Message: err.Error()})
}
