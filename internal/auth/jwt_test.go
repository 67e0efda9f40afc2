package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestInitJWTRejectsEmptySecret(t *testing.T) {
	if err := InitJWT("", time.Hour); err == nil {
		t.Error("Expected an error for an empty secret")
	}
}

func TestGenerateAndVerifyJWT(t *testing.T) {
	if err := InitJWT("test-secret", time.Hour); err != nil {
		t.Fatalf("InitJWT failed: %v", err)
	}

	token, err := GenerateJWT(42)

	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}

	userID, err := VerifyJWT(token)

	if err != nil {
		t.Fatalf("VerifyJWT failed: %v", err)
	}

	if userID != 42 {
		t.Errorf("Expected user ID 42, got %d", userID)
	}
}

func TestVerifyJWTRejectsGarbage(t *testing.T) {
	if err := InitJWT("test-secret", time.Hour); err != nil {
		t.Fatalf("InitJWT failed: %v", err)
	}

	if _, err := VerifyJWT("not-a-token"); err == nil {
		t.Error("Expected an error for a malformed token")
	}
}

func TestVerifyJWTRejectsWrongSecret(t *testing.T) {
	if err := InitJWT("test-secret", time.Hour); err != nil {
		t.Fatalf("InitJWT failed: %v", err)
	}

	claims := jwt.MapClaims{
		"user_id": float64(42),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))

	if err != nil {
		t.Fatalf("Signing failed: %v", err)
	}

	if _, err := VerifyJWT(forged); err == nil {
		t.Error("Expected an error for a token signed with another secret")
	}
}

func TestVerifyJWTRejectsExpiredToken(t *testing.T) {
	if err := InitJWT("test-secret", time.Hour); err != nil {
		t.Fatalf("InitJWT failed: %v", err)
	}

	claims := jwt.MapClaims{
		"user_id": float64(42),
		"exp":     time.Now().Add(-time.Minute).Unix(),
	}

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtSecret))

	if err != nil {
		t.Fatalf("Signing failed: %v", err)
	}

	if _, err := VerifyJWT(expired); err == nil {
		t.Error("Expected an error for an expired token")
	}
}

func TestVerifyJWTRejectsNoneAlgorithm(t *testing.T) {
	if err := InitJWT("test-secret", time.Hour); err != nil {
		t.Fatalf("InitJWT failed: %v", err)
	}

	claims := jwt.MapClaims{
		"user_id": float64(42),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)

	if err != nil {
		t.Fatalf("Signing failed: %v", err)
	}

	if _, err := VerifyJWT(unsigned); err == nil {
		t.Error("Expected an error for an unsigned token")
	}
}

func TestVerifyJWTRejectsMissingUserID(t *testing.T) {
	if err := InitJWT("test-secret", time.Hour); err != nil {
		t.Fatalf("InitJWT failed: %v", err)
	}

	claims := jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtSecret))

	if err != nil {
		t.Fatalf("Signing failed: %v", err)
	}

	if _, err := VerifyJWT(token); err == nil {
		t.Error("Expected an error for a token without a user ID")
	}
}
