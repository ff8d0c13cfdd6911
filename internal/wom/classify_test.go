package wom

import (
	"errors"
	"fmt"
	"testing"

	"github.com/sh0bas/osrs-advisor/internal/model"
)

func TestClassifyStatus(t *testing.T) {
	cases := []struct {
		code int
		want model.ErrorCategory
	}{
		{404, model.CategoryNotFound},
		{400, model.CategoryInvalidInput},
		{500, model.CategoryUnavailable},
		{503, model.CategoryUnavailable},
		{200, model.CategoryUnavailable},
	}
	for _, tc := range cases {
		if got := ClassifyStatus(tc.code); got != tc.want {
			t.Fatalf("ClassifyStatus(%d) = %v, want %v", tc.code, got, tc.want)
		}
	}
}

func TestClassifyStatusError(t *testing.T) {
	err := Classify(fmt.Errorf("wrapped: %w", &StatusError{StatusCode: 404}))
	if err.Category != model.CategoryNotFound {
		t.Fatalf("unexpected category: %v", err.Category)
	}
	if err.Message != MsgNotFound {
		t.Fatalf("unexpected message: %q", err.Message)
	}

	err = Classify(&StatusError{StatusCode: 400})
	if err.Category != model.CategoryInvalidInput {
		t.Fatalf("unexpected category: %v", err.Category)
	}
}

func TestClassifyTransportError(t *testing.T) {
	err := Classify(errors.New("dial tcp: connection refused"))
	if err.Category != model.CategoryUnavailable {
		t.Fatalf("unexpected category: %v", err.Category)
	}
	if err.Message != MsgUnavailable {
		t.Fatalf("unexpected message: %q", err.Message)
	}
}
