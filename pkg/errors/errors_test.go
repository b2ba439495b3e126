package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCodeUnknownSymbol, "no color for symbol %q", "Z")
	want := `UNKNOWN_SYMBOL: no color for symbol "Z"`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	wrapped := Wrap(ErrCodeFontNotFound, stderrors.New("boom"), "load font")
	if got := wrapped.Error(); got != "FONT_NOT_FOUND: load font: boom" {
		t.Errorf("Error() = %q", got)
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeInvalidLabels, "empty")
	if !Is(err, ErrCodeInvalidLabels) {
		t.Error("Is failed to match the code")
	}
	if Is(err, ErrCodeInternal) {
		t.Error("Is matched the wrong code")
	}
	if Is(stderrors.New("plain"), ErrCodeInternal) {
		t.Error("Is matched a plain error")
	}

	// Matching works through fmt wrapping.
	deep := fmt.Errorf("outer: %w", err)
	if !Is(deep, ErrCodeInvalidLabels) {
		t.Error("Is failed to match through a wrapped chain")
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("root cause")
	err := Wrap(ErrCodeInternal, cause, "context")
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is failed to find the cause")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeNotFound, "gone")); got != ErrCodeNotFound {
		t.Errorf("GetCode = %q, want NOT_FOUND", got)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidColor, "bad color")); got != "bad color" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(stderrors.New("plain failure")); got != "plain failure" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}
