package httperr

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

var verbose bool

// SetVerbose makes 500 payloads carry the raw error detail. Production keeps
// it off so internals never leak to callers.
func SetVerbose(v bool) {
	verbose = v
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

// InternalErr is Internal plus the server-side log line for the causal
// error; the raw message rides along in the payload only in verbose mode.
func InternalErr(c *gin.Context, code, message string, err error) {
	if err == nil {
		Internal(c, code, message)
		return
	}

	log.Printf("%s %s: %s: %v", c.Request.Method, c.Request.URL.Path, code, err)

	resp := HTTPError{Code: code, Message: message}
	if verbose {
		resp.Detail = err.Error()
	}
	c.JSON(http.StatusInternalServerError, resp)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// Validation turns a binding failure into the field/message list the admin
// UI expects. Non-validator errors (malformed JSON) fall back to a generic
// bad request.
func Validation(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, FieldError{
				Field:   fe.Field(),
				Message: "failed on '" + fe.Tag() + "' validation",
			})
		}
		c.JSON(http.StatusBadRequest, gin.H{"errors": fields})
		return
	}
	BadRequest(c, "invalid_request", err.Error())
}
