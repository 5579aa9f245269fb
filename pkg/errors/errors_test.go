package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	base := errors.New("dial tcp: connection refused")

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"invalid input", InvalidInput("invalid date %q", "x"), KindInvalidInput},
		{"not found", NotFound("no %s schedule found", "VA"), KindNotFound},
		{"unexpected", Unexpected(base), KindUnexpected},
		{"wrapped", fmt.Errorf("outer: %w", NotFound("missing")), KindNotFound},
		{"plain error", base, KindUnexpected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("期望 %s，实际: %s", tt.want, got)
			}
		})
	}
}

func TestError_Message(t *testing.T) {
	base := errors.New("connection refused")

	if got := Unexpected(base).Error(); got != "connection refused" {
		t.Errorf("期望沿用底层错误信息，实际: %q", got)
	}
	if !errors.Is(Unexpected(base), base) {
		t.Error("期望 Unwrap 返回底层错误")
	}
	if got := NotFound("no %s schedule found for given date", "VA").Error(); got != "no VA schedule found for given date" {
		t.Errorf("错误信息不符: %q", got)
	}
}
