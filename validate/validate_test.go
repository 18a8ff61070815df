package validate

import "testing"

func TestEmail(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"user@example.com", true},
		{"first.last@sub.example.co", true},
		{"  padded@example.com  ", true},
		{"", false},
		{"plainword", false},
		{"missing@tld", false},
		{"spaces in@example.com", false},
		{"@example.com", false},
	}
	for _, tt := range tests {
		err := Email(tt.input)
		if (err == nil) != tt.valid {
			t.Errorf("Email(%q) = %v, want valid=%v", tt.input, err, tt.valid)
		}
	}
}

func TestRequired(t *testing.T) {
	if err := Required("email", "value"); err != nil {
		t.Errorf("Required with value failed: %v", err)
	}
	if err := Required("email", "   "); err == nil {
		t.Error("Required accepted whitespace-only value")
	}
	if got := Required("email", "").Error(); got != "email is required" {
		t.Errorf("message = %q, want %q", got, "email is required")
	}
}

func TestPassword(t *testing.T) {
	if err := Password("secret"); err != nil {
		t.Errorf("Password(6 chars) failed: %v", err)
	}
	if err := Password("short"); err == nil {
		t.Error("Password accepted 5 characters")
	}
}

func TestMatch(t *testing.T) {
	if err := Match("abc", "abc"); err != nil {
		t.Errorf("Match on equal values failed: %v", err)
	}
	if err := Match("abc", "abd"); err == nil {
		t.Error("Match accepted differing values")
	}
}

func TestFirstReturnsEarliestFailure(t *testing.T) {
	err := First(
		Required("username", "u"),
		Email("not-an-email"),
		Password("short"),
	)
	if err == nil {
		t.Fatal("First returned nil with failing rules")
	}
	if err.Error() != "enter a valid email address" {
		t.Errorf("First = %q, want the email failure first", err.Error())
	}

	if err := First(Required("username", "u"), Email("u@example.com")); err != nil {
		t.Errorf("First with passing rules = %v, want nil", err)
	}
}
