package security

import (
	"testing"
	"time"
)

const testSecret = "test-secret"

func TestIssueAndParseToken(t *testing.T) {
	sessionID := GenerateSessionID()
	expiresAt := time.Now().Add(time.Hour)

	token, err := IssueToken(testSecret, sessionID, 42, expiresAt)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	gotSession, gotUser, err := ParseToken(testSecret, token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if gotSession != sessionID {
		t.Errorf("session = %q, want %q", gotSession, sessionID)
	}
	if gotUser != 42 {
		t.Errorf("user = %d, want 42", gotUser)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := IssueToken(testSecret, GenerateSessionID(), 1, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	if _, _, err := ParseToken("other-secret", token); err == nil {
		t.Error("expected error for token signed with a different secret")
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token, err := IssueToken(testSecret, GenerateSessionID(), 1, time.Now().Add(-time.Minute))
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	if _, _, err := ParseToken(testSecret, token); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	if _, _, err := ParseToken(testSecret, "not.a.token"); err == nil {
		t.Error("expected error for malformed token")
	}
}
