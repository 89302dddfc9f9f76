package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sandeepkv93/lembrete/internal/reminders"
)

var errInvalidID = errors.New("invalid id")

func statusFor(err error) int {
	var verr *reminders.ValidationError
	switch {
	case errors.As(err, &verr), errors.Is(err, errInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, reminders.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, reminders.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage hides internal failures from clients.
func publicMessage(status int, err error) string {
	switch status {
	case http.StatusNotFound:
		return "not found"
	case http.StatusConflict:
		return "already exists"
	case http.StatusInternalServerError:
		return "internal error"
	default:
		return err.Error()
	}
}

func (s *Server) apiError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("api request failed", "path", c.Request.URL.Path, "err", err)
	}
	c.JSON(status, gin.H{
		"success": false,
		"error":   publicMessage(status, err),
	})
}

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

func parseOptionalID(raw string) (*int64, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, errInvalidID
	}
	return &id, nil
}

var errUnknownStatus = errors.New("status must be pending, done or all")
