package http

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestHex32Validation(t *testing.T) {
	type P struct {
		LoanID string `json:"loan_id" validate:"hex32"`
	}
	cv := NewValidator()

	if err := cv.Validate(P{LoanID: strings.Repeat("a", 32)}); err != nil {
		t.Fatalf("expected valid hex32, got err: %v", err)
	}

	for _, s := range []string{
		"",                                  // empty
		strings.Repeat("A", 32),             // uppercase
		"deadbeef",                          // too short
		strings.Repeat("g", 32),             // non-hex char
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c8",   // 31 chars
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c88x", // 33 with extra
	} {
		err := cv.Validate(P{LoanID: s})
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		if fe := ToFieldErrors(err); !containsFieldMsg(fe, "loan_id", "32-char lowercase hex") {
			t.Fatalf("expected hex32 message for %q, got: %+v", s, fe)
		}
	}
}

func TestDecimalFields(t *testing.T) {
	type P struct {
		Amount decimal.Decimal `json:"loan_amount" validate:"gt=0,dec2"`
		Rate   decimal.Decimal `json:"interest_rate" validate:"gte=0,lte=100"`
	}
	cv := NewValidator()

	for _, v := range []string{"1", "500000", "1234.5", "0.01"} {
		if err := cv.Validate(P{Amount: decimal.RequireFromString(v), Rate: decimal.NewFromInt(10)}); err != nil {
			t.Fatalf("expected OK for %s, got %v", v, err)
		}
	}

	cases := []struct {
		p     P
		field string
		msg   string
	}{
		{P{Amount: decimal.Zero, Rate: decimal.NewFromInt(1)}, "loan_amount", "greater than 0"},
		{P{Amount: decimal.RequireFromString("-5"), Rate: decimal.NewFromInt(1)}, "loan_amount", "greater than 0"},
		{P{Amount: decimal.RequireFromString("10.123"), Rate: decimal.NewFromInt(1)}, "loan_amount", "2 decimal places"},
		{P{Amount: decimal.NewFromInt(10), Rate: decimal.NewFromInt(101)}, "interest_rate", "less than or equal to 100"},
		{P{Amount: decimal.NewFromInt(10), Rate: decimal.NewFromInt(-1)}, "interest_rate", "greater than or equal to 0"},
	}
	for _, tc := range cases {
		err := cv.Validate(tc.p)
		if err == nil {
			t.Fatalf("expected error for %+v", tc.p)
		}
		if fe := ToFieldErrors(err); !containsFieldMsg(fe, tc.field, tc.msg) {
			t.Fatalf("expected %q on %s, got %+v", tc.msg, tc.field, fe)
		}
	}
}

func TestStringRules(t *testing.T) {
	type P struct {
		Email  string `json:"email" validate:"required,email"`
		DOB    string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
		Status string `json:"employment_status" validate:"omitempty,oneof=Employed Student"`
		Pass   string `json:"password" validate:"omitempty,min=8"`
	}
	cv := NewValidator()

	if err := cv.Validate(P{Email: "ana@example.com", DOB: "1990-05-01", Status: "Student"}); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}

	fe := ToFieldErrors(cv.Validate(P{Email: "nope", DOB: "01/05/1990", Status: "Retired", Pass: "short"}))
	for _, want := range []struct{ field, msg string }{
		{"email", "valid email"},
		{"date_of_birth", "2006-01-02"},
		{"employment_status", "Employed, Student"},
		{"password", "at least 8 characters"},
	} {
		if !containsFieldMsg(fe, want.field, want.msg) {
			t.Fatalf("missing %s/%q in %+v", want.field, want.msg, fe)
		}
	}

	if fe := ToFieldErrors(cv.Validate(P{})); !containsFieldMsg(fe, "email", "is required") {
		t.Fatalf("expected required email, got %+v", fe)
	}
}

func TestToFieldErrors_NonValidatorError(t *testing.T) {
	fe := ToFieldErrors(errors.New("boom"))
	if len(fe) != 1 || fe[0].Field != "_" || fe[0].Message != "boom" {
		t.Fatalf("unexpected mapping: %+v", fe)
	}
}
