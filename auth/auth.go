// Copyright (c) 2026 Amara Diallo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidToken       = errors.New("invalid session token")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateSessionToken creates an HMAC-based session token for a username.
// Deterministic, so it can be validated without storing sessions.
func GenerateSessionToken(username, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(username))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner tokens
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateSessionToken checks that the provided token belongs to the username
func ValidateSessionToken(username, token, salt string) error {
	expected := GenerateSessionToken(username, salt)
	if !hmac.Equal([]byte(token), []byte(expected)) {
		return ErrInvalidToken
	}
	return nil
}

// HashPassword derives a bcrypt hash for the configured admin password
func HashPassword(password string) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return hash, nil
}

// CheckLogin compares submitted credentials against the configured admin
// account. The password comparison goes through bcrypt so the plaintext
// never needs to be held past startup.
func CheckLogin(username, password, wantUsername string, passwordHash []byte) error {
	if subtleEqual(username, wantUsername) != nil {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(passwordHash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

func subtleEqual(a, b string) error {
	if !hmac.Equal([]byte(a), []byte(b)) {
		return ErrInvalidCredentials
	}
	return nil
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits) - enough for deduplication
	return hex.EncodeToString(sum[:8])
}
