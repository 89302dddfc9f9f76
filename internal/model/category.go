package model

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	ErrCategoryNameRequired = errors.New("model: category name is required")
	ErrInvalidColor         = errors.New("model: invalid category color")
)

var colorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrCategoryNameRequired
	}
	if c.Color != "" && !colorPattern.MatchString(c.Color) {
		return fmt.Errorf("%w: %q", ErrInvalidColor, c.Color)
	}
	return nil
}
