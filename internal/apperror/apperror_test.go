package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindOfAndStatusCode(t *testing.T) {
	cause := errors.New("connection reset")
	tests := []struct {
		name       string
		err        error
		wantKind   Kind
		wantStatus int
	}{
		{"validation", Validation("bad"), KindValidation, http.StatusBadRequest},
		{"unauthorized", Unauthorized("no"), KindUnauthorized, http.StatusUnauthorized},
		{"not found", NotFound("gone"), KindNotFound, http.StatusNotFound},
		{"upstream", Upstream("llm", cause), KindUpstream, http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("handler: %w", NotFound("gone")), KindNotFound, http.StatusNotFound},
		{"plain error", cause, KindInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind := KindOf(tt.err)
			if kind != tt.wantKind {
				t.Fatalf("KindOf = %v, want %v", kind, tt.wantKind)
			}
			if status := StatusCode(kind); status != tt.wantStatus {
				t.Fatalf("StatusCode = %d, want %d", status, tt.wantStatus)
			}
		})
	}
}

func TestErrorUnwrapsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Internal("failed to save", cause)
	if !errors.Is(err, cause) {
		t.Fatal("cause not reachable through errors.Is")
	}
	if err.Error() == "failed to save" {
		t.Fatalf("Error() should include the cause, got %q", err.Error())
	}
}
