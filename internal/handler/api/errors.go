package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	reqdto "room-booking/internal/handler/dto/request"
	"room-booking/internal/handler/httperr"
	"room-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const maxStackLines = 12

// respondError maps an error kind onto its status. Reasons of client errors
// are returned verbatim; anything unclassified becomes a generic 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, errs.ErrInvalidRequest):
		httperr.Abort(c, http.StatusBadRequest, err, errs.Reason(err))
	case errs.Is(err, errs.ErrForbidden):
		httperr.Abort(c, http.StatusForbidden, err, errs.Reason(err))
	case errs.Is(err, errs.ErrNotFound):
		httperr.Abort(c, http.StatusNotFound, err, errs.Reason(err))
	case errs.Is(err, errs.ErrConflict):
		httperr.Abort(c, http.StatusConflict, err, errs.Reason(err))
	default:
		slog.ErrorContext(c.Request.Context(), "unhandled error",
			slog.String("error", err.Error()),
			slog.Any("stack", errs.ExtractStackLines(err, maxStackLines)))
		httperr.Internal(c, err)
	}
}

// respondBindError names the offending field when the binding error tells
// which one it was.
func respondBindError(c *gin.Context, err error) {
	msg := "Invalid request"
	var (
		fieldErr *reqdto.InvalidFieldError
		typeErr  *json.UnmarshalTypeError
		ve       validator.ValidationErrors
	)
	switch {
	case errors.As(err, &fieldErr):
		msg = fieldErr.Error()
	case errors.As(err, &typeErr) && typeErr.Field != "":
		msg = fmt.Sprintf("%s has an invalid value.", typeErr.Field)
	case errors.As(err, &ve) && len(ve) > 0:
		msg = fmt.Sprintf("%s has an invalid value.", lowerFirst(ve[0].Field()))
	}
	httperr.Abort(c, http.StatusBadRequest, err, msg)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
