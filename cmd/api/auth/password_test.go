package auth

import "testing"

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "correct horse battery" {
		t.Fatalf("hash must not equal the plain password")
	}

	if !VerifyPassword(hash, "correct horse battery") {
		t.Fatalf("expected password to verify against its own hash")
	}
	if VerifyPassword(hash, "wrong password!") {
		t.Fatalf("expected verification to fail for a wrong password")
	}
}

func TestHashPasswordRejectsShortPassword(t *testing.T) {
	if _, err := HashPassword("short"); err == nil {
		t.Fatalf("expected error for password shorter than %d characters", minPasswordLength)
	}
}

func TestHashPasswordIsSalted(t *testing.T) {
	first, err := HashPassword("repeatable-password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := HashPassword("repeatable-password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == second {
		t.Fatalf("expected different hashes for the same password")
	}
}
