package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pitchcraft/generator"
	"pitchcraft/store"
)

var errInvalidID = errors.New("invalid id")

type badRequest struct{ msg string }

func (e badRequest) Error() string { return e.msg }

func invalidInput(msg string) error { return badRequest{msg: msg} }

// handleError maps err onto a JSON error response and aborts the request.
func handleError(c *gin.Context, err error) {
	var br badRequest
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, errInvalidID), errors.As(err, &br):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func pathID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errInvalidID
	}
	return id, nil
}

// bindOptionalJSON decodes the body into v when there is one.
func bindOptionalJSON(c *gin.Context, v any) error {
	if c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(v); err != nil {
		return invalidInput("invalid JSON body: " + err.Error())
	}
	return nil
}

type outcomeJSON struct {
	Source generator.Source `json:"source"`
	Reason string           `json:"reason,omitempty"`
}

func outcomeOf(o generator.Outcome) outcomeJSON {
	out := outcomeJSON{Source: o.Source}
	if o.Reason != nil {
		out.Reason = o.Reason.Error()
	}
	return out
}
