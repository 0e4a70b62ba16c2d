package validator

import "testing"

func TestValidatorKeepsFirstMessage(t *testing.T) {
	v := New()
	v.Check(false, "page", "must be an integer value")
	v.Check(false, "page", "must be a maximum of 10000000")

	if v.IsValid() {
		t.Fatal("expected validator to be invalid")
	}
	if got := v.Errors["page"]; got != "must be an integer value" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestCheckEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"alice@example.com", true},
		{"alice.smith+blog@mail.example.org", true},
		{"alice", false},
		{"alice@", false},
		{"", false},
	}

	for _, tt := range tests {
		v := New()
		v.CheckEmail(tt.email, "must be a valid email address")
		if v.IsValid() != tt.valid {
			t.Errorf("CheckEmail(%q) valid = %v, want %v", tt.email, v.IsValid(), tt.valid)
		}
	}
}

func TestFirstErrorIsDeterministic(t *testing.T) {
	v := New()
	v.AddError("title", "must be provided")
	v.AddError("caption", "must be provided")

	if got := v.FirstError(); got != "caption must be provided" {
		t.Fatalf("FirstError() = %q", got)
	}
	if New().FirstError() != "" {
		t.Fatal("expected empty message for a valid validator")
	}
}
