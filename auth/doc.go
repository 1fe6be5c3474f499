// Copyright (c) 2026 Amara Diallo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides authentication and token utilities.

# Session Tokens

Session tokens use HMAC-SHA256 to create deterministic, verifiable
tokens for the single admin account:

	token := auth.GenerateSessionToken(username, salt)
	err := auth.ValidateSessionToken(username, token, salt)

The token is URL-safe base64 encoded without padding. Since it is
deterministic, the same username and salt always produce the same token,
so validation needs no token storage.

# Password Hashing

The admin password is checked with bcrypt:

	hash, err := auth.HashPassword(password)
	err = auth.CheckLogin(username, password, wantUsername, hash)

CheckLogin compares the username in constant time and the password via
bcrypt, and returns ErrInvalidCredentials on any mismatch.

# ID Generation

Random hex IDs:

	id, err := auth.GenerateID(16)  // 32 hex characters

# IP Hashing

For privacy-preserving duplicate detection on upload submissions:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256. The raw address is
never stored.
*/
package auth
