package importing

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	cases := []struct {
		name string
		err  *Error
		want string
	}{
		{"op and message", &Error{Code: CodeConflict, Op: "importer.rename", Message: "name taken"}, "importer.rename: name taken (conflict)"},
		{"op only", &Error{Code: CodeNotFound, Op: "importer.import"}, "importer.import (not_found)"},
		{"message only", &Error{Code: CodeMalformedInput, Message: "bad json"}, "bad json (malformed_input)"},
		{"code only", &Error{Code: CodeInternal}, "internal"},
		{"nil receiver", nil, "<nil>"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.err.Error(); got != c.want {
				t.Fatalf("Error(): want=%q got=%q", c.want, got)
			}
		})
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	if Wrap(CodePersistence, "op", nil) != nil {
		t.Fatalf("Wrap(nil) should be nil")
	}

	cause := errors.New("connection reset")
	err := Wrap(CodePersistence, "importer.import", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("wrapped cause not reachable: %v", err)
	}

	var impErr *Error
	if !errors.As(err, &impErr) || impErr.Code != CodePersistence {
		t.Fatalf("wrapped error lost its shape: %v", err)
	}
}

func TestIsCodeAndCodeOf(t *testing.T) {
	err := NewError(CodeConflict, "importer.rename", "name taken", nil)
	if !IsCode(err, CodeConflict) {
		t.Fatalf("IsCode missed direct error")
	}
	if IsCode(err, CodeNotFound) {
		t.Fatalf("IsCode matched wrong code")
	}
	if CodeOf(err) != CodeConflict {
		t.Fatalf("CodeOf: got=%s", CodeOf(err))
	}

	wrapped := fmt.Errorf("handler: %w", err)
	if !IsCode(wrapped, CodeConflict) {
		t.Fatalf("IsCode missed wrapped error")
	}
	if CodeOf(wrapped) != CodeConflict {
		t.Fatalf("CodeOf on wrapped: got=%s", CodeOf(wrapped))
	}

	if IsCode(errors.New("plain"), CodeConflict) {
		t.Fatalf("IsCode matched plain error")
	}
	if CodeOf(errors.New("plain")) != "" {
		t.Fatalf("CodeOf on plain error should be empty")
	}
	if IsCode(nil, CodeConflict) {
		t.Fatalf("IsCode matched nil")
	}
}
