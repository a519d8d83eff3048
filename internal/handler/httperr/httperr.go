package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const MsgInternal = "Internal server error"

// Response is the body of every failed request: {"error":{"message":"..."}}.
type Response struct {
	Status int       `json:"-"`
	Error  ErrorBody `json:"error"`
}

type ErrorBody struct {
	Message string `json:"message"`
}

func NewResponse(status int, msg string) Response {
	return Response{Status: status, Error: ErrorBody{Message: msg}}
}

// Abort records err on the context for the request log and replies with msg.
// The cause itself is never written to the client.
func Abort(c *gin.Context, status int, err error, msg string) {
	if err == nil {
		panic("httperr.Abort: err cannot be nil")
	}

	resp := NewResponse(status, msg)
	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// Internal hides err behind the generic 500 message.
func Internal(c *gin.Context, err error) {
	Abort(c, http.StatusInternalServerError, err, MsgInternal)
}
