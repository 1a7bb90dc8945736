package video

import (
	"errors"
	"fmt"
)

// ErrorKind names one of the rasterizer's error conditions.
type ErrorKind string

const (
	ErrInvalidCharacter  ErrorKind = "invalid_character"
	ErrPaletteNotSelected ErrorKind = "palette_not_selected"
	ErrInvalidColorID    ErrorKind = "invalid_color_id"
)

// RenderError reports a rasterizer fault. PaletteNotSelected is
// recoverable: the present path catches it and silently drops the
// frame rather than propagating it to the host.
type RenderError struct {
	Kind   ErrorKind
	Detail string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("video: %s: %s", e.Kind, e.Detail)
}

func renderError(kind ErrorKind, format string, args ...any) *RenderError {
	return &RenderError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// IsPaletteNotSelected reports whether err is the recoverable
// PaletteNotSelected condition.
func IsPaletteNotSelected(err error) bool {
	var re *RenderError
	return errors.As(err, &re) && re.Kind == ErrPaletteNotSelected
}

// IsInvalidCharacter reports whether err is an InvalidCharacter
// RenderError.
func IsInvalidCharacter(err error) bool {
	var re *RenderError
	return errors.As(err, &re) && re.Kind == ErrInvalidCharacter
}
