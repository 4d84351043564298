package auth

import (
	"testing"
	"time"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "correct horse" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !CheckPassword(hash, "correct horse") {
		t.Fatal("right password rejected")
	}
	if CheckPassword(hash, "wrong horse") {
		t.Fatal("wrong password accepted")
	}
}

func TestHashesAreSalted(t *testing.T) {
	a, _ := HashPassword("secret123")
	b, _ := HashPassword("secret123")
	if a == b {
		t.Fatal("two hashes of the same password must differ")
	}
}

func TestResumeTokenRoundTrip(t *testing.T) {
	fp := Fingerprint("stored-hash")
	tok, err := MakeResumeToken(42, "clinician", fp, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("make: %v", err)
	}

	claims, err := ParseResumeToken(tok, "test-secret")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("user id = %d, want 42", claims.UserID)
	}
	if claims.Role != "clinician" {
		t.Fatalf("role = %q", claims.Role)
	}
	if claims.Fingerprint != fp {
		t.Fatalf("fingerprint = %q, want %q", claims.Fingerprint, fp)
	}
	if claims.ID == "" {
		t.Fatal("token id should be set")
	}
}

func TestResumeTokenWrongSecret(t *testing.T) {
	tok, _ := MakeResumeToken(1, "administrator", Fingerprint("h"), "secret-a", time.Hour)
	if _, err := ParseResumeToken(tok, "secret-b"); err == nil {
		t.Fatal("token signed with another secret must be rejected")
	}
}

func TestResumeTokenExpired(t *testing.T) {
	tok, _ := MakeResumeToken(1, "administrator", Fingerprint("h"), "test-secret", -time.Minute)
	if _, err := ParseResumeToken(tok, "test-secret"); err == nil {
		t.Fatal("expired token must be rejected")
	}
}

func TestFingerprintTracksHash(t *testing.T) {
	if Fingerprint("hash-a") == Fingerprint("hash-b") {
		t.Fatal("different hashes must fingerprint differently")
	}
	if Fingerprint("hash-a") != Fingerprint("hash-a") {
		t.Fatal("fingerprint must be deterministic")
	}
	if Fingerprint("hash-a") == "hash-a" {
		t.Fatal("fingerprint must not expose the hash")
	}
}

func TestResumeTokenGarbage(t *testing.T) {
	if _, err := ParseResumeToken("not.a.token", "test-secret"); err == nil {
		t.Fatal("garbage must be rejected")
	}
}
