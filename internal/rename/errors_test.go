package rename

import (
	"errors"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	cause := errors.New("disk full")

	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			"Kind and message",
			&Error{Kind: KindPreviewFailed, Msg: "template pattern is empty"},
			"preview generation failed: template pattern is empty",
		},
		{
			"Kind message and cause",
			&Error{Kind: KindIO, Msg: "failed to create directory", Err: cause},
			"io error: failed to create directory: disk full",
		},
		{
			"Kind and cause only",
			&Error{Kind: KindRenameFailed, Err: cause},
			"rename operation failed: disk full",
		},
		{
			"Validation kind",
			&Error{Kind: KindValidationFailed, Msg: "destination rejected"},
			"validation failed: destination rejected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := &Error{Kind: KindIO, Msg: "failed to write", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("wrapped cause not reachable through errors.Is")
	}
	if (&Error{Kind: KindPreviewFailed, Msg: "x"}).Unwrap() != nil {
		t.Error("Unwrap on causeless error returned non-nil")
	}
}

func TestPreviewError(t *testing.T) {
	err := previewError("unknown case style: %s", "shouting")

	if err.Kind != KindPreviewFailed {
		t.Errorf("kind = %v, want preview", err.Kind)
	}
	if err.Error() != "preview generation failed: unknown case style: shouting" {
		t.Errorf("Error() = %q", err.Error())
	}
}
