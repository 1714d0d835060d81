package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/mvidali/newsbrief/internal/apperr"
)

func TestNewValidation(t *testing.T) {
	err := apperr.NewValidation("weight must be a number")

	if err.Error() != "weight must be a number" {
		t.Errorf("expected 'weight must be a number', got %q", err.Error())
	}
	if err.Unwrap() != nil {
		t.Errorf("expected nil unwrap, got %v", err.Unwrap())
	}
}

func TestNewValidationWrap(t *testing.T) {
	inner := fmt.Errorf("parse failed")
	err := apperr.NewValidationWrap("invalid topic id", inner)

	if err.Error() != "invalid topic id: parse failed" {
		t.Errorf("expected 'invalid topic id: parse failed', got %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("expected Unwrap to return inner error")
	}
}

func TestUpstreamError_SurvivesFmtWrapping(t *testing.T) {
	inner := fmt.Errorf("connection refused")
	original := apperr.NewUpstream("fetch preferences", inner)

	wrapped := fmt.Errorf("build digest: %w", original)
	doubleWrapped := fmt.Errorf("batch run: %w", wrapped)

	var ue *apperr.UpstreamError
	if !errors.As(doubleWrapped, &ue) {
		t.Fatal("errors.As should find UpstreamError through double wrapping")
	}
	if ue.Op != "fetch preferences" {
		t.Errorf("expected 'fetch preferences', got %q", ue.Op)
	}
	if !errors.Is(doubleWrapped, inner) {
		t.Error("expected chain to reach the inner error")
	}
}

func TestUpstreamError_NotFoundForPlainErrors(t *testing.T) {
	plain := fmt.Errorf("database connection failed")
	wrapped := fmt.Errorf("storage error: %w", plain)

	var ue *apperr.UpstreamError
	if errors.As(wrapped, &ue) {
		t.Fatal("errors.As should NOT find UpstreamError in plain error chain")
	}
}
