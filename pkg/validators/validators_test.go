package validators

import (
	"testing"

	pkgerrors "github.com/archiveshq/storefront/pkg/errors"
)

type sampleRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

func TestStructPassesValidInput(t *testing.T) {
	if err := Struct(sampleRequest{Email: "a@b.c", Password: "secret1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStructReportsFieldMessages(t *testing.T) {
	err := Struct(sampleRequest{Password: "abc"})
	if err == nil {
		t.Fatal("expected validation failure")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}

	msgs := Messages(err)
	if msgs["email"] != "is required" {
		t.Fatalf("unexpected email message: %q", msgs["email"])
	}
	if msgs["password"] != "must be at least 6" {
		t.Fatalf("unexpected password message: %q", msgs["password"])
	}
}

func TestMessagesNilForForeignError(t *testing.T) {
	if msgs := Messages(nil); msgs != nil {
		t.Fatalf("expected nil messages, got %v", msgs)
	}
}
