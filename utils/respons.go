package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Kind    ErrorKind   `json:"kind,omitempty"`
	Field   string      `json:"field,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
		Kind:    KindOf(err),
		Data:    nil,
	})
}

// RespondAppError -> status HTTP diturunkan dari kind error
func RespondAppError(c *gin.Context, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = &AppError{Kind: KindInternal, Message: "Internal Server Error", Err: err}
	}

	code := StatusForKind(appErr.Kind)
	message := appErr.Message
	if appErr.Kind == KindInternal {
		ErrorLogger.WithFields(logrus.Fields{
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		}).Error(err)
		message = "Internal Server Error"
	}

	c.JSON(code, JSONResponse{
		Status:  false,
		Message: message,
		Kind:    appErr.Kind,
		Field:   appErr.Field,
	})
}

// RespondBindError -> error binding gin selalu dianggap validation
func RespondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, JSONResponse{
		Status:  false,
		Message: "Invalid Payload: " + err.Error(),
		Kind:    KindValidation,
	})
}

func StatusForKind(kind ErrorKind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindStateConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
