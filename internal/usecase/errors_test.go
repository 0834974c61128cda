package usecase

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"

	"loanhub-backend/internal/domain/apperr"
)

func TestNotFoundAs(t *testing.T) {
	err := NotFoundAs(fmt.Errorf("repo: %w", gorm.ErrRecordNotFound), "loan %s not found", "abc")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if err.Error() != "loan abc not found" {
		t.Fatalf("msg=%q", err.Error())
	}

	boom := errors.New("boom")
	if got := NotFoundAs(boom, "x"); got != boom {
		t.Fatalf("other errors must pass through, got %v", got)
	}
	if NotFoundAs(nil, "x") != nil {
		t.Fatalf("nil must stay nil")
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(gorm.ErrRecordNotFound) || IsNotFound(errors.New("x")) {
		t.Fatalf("IsNotFound mismatch")
	}
}
