package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusAndCodeSurviveWrapping(t *testing.T) {
	base := NotFound("asset_not_found", "asset %s not found", "abc")
	wrapped := fmt.Errorf("load asset: %w", base)

	if got := StatusOf(wrapped); got != http.StatusNotFound {
		t.Fatalf("status: want=%d got=%d", http.StatusNotFound, got)
	}
	if got := CodeOf(wrapped); got != "asset_not_found" {
		t.Fatalf("code: got=%q", got)
	}
	if !IsNotFound(wrapped) {
		t.Fatal("IsNotFound: want true")
	}
	if base.Error() != "asset abc not found" {
		t.Fatalf("message: got=%q", base.Error())
	}
}

func TestStatusOfPlainErrorIsInternal(t *testing.T) {
	if got := StatusOf(errors.New("boom")); got != http.StatusInternalServerError {
		t.Fatalf("status: got=%d", got)
	}
	if got := CodeOf(errors.New("boom")); got != "" {
		t.Fatalf("code: got=%q", got)
	}
}

func TestErrorFallbacks(t *testing.T) {
	if got := (&Error{Code: "x"}).Error(); got != "x" {
		t.Fatalf("code fallback: got=%q", got)
	}
	if got := (&Error{Status: 418}).Error(); got != "api error (418)" {
		t.Fatalf("status fallback: got=%q", got)
	}
	var nilErr *Error
	if nilErr.Error() != "" {
		t.Fatal("nil error should render empty")
	}
}
