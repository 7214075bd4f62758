// Copyright (c) 2026 CampusFM. All rights reserved.
// Author: platform@campusfm.dev

package sec

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher names accepted by [NewHasher].
const (
	HasherSHA256 = "sha256"
	HasherBcrypt = "bcrypt"
)

// Hasher turns a credential into a stored digest and checks candidates against it.
type Hasher interface {
	Hash(input string) (string, error)
	Compare(input, digest string) bool
}

// NewHasher returns the [Hasher] registered under name.
func NewHasher(name string) (Hasher, error) {
	switch name {
	case HasherSHA256, "":
		return SHA256Hasher{}, nil
	case HasherBcrypt:
		return BcryptHasher{Cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("sec: unknown password hasher %q", name)
	}
}

// SHA256Hasher is a deterministic, unsalted hex SHA-256 digest.
//
// # Security
//
// Existing accounts were provisioned with this digest, so it stays the default.
// It is not a password KDF; moving to [BcryptHasher] requires re-hashing every
// stored credential and is tracked as a separate security decision.
type SHA256Hasher struct{}

// Hash returns the lowercase hex SHA-256 of input. It never fails.
func (SHA256Hasher) Hash(input string) (string, error) {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:]), nil
}

// Compare recomputes the digest of input and compares it in constant time.
func (hasher SHA256Hasher) Compare(input, digest string) bool {
	computed, _ := hasher.Hash(input)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}

// BcryptHasher hashes with bcrypt at the configured cost.
type BcryptHasher struct {
	Cost int
}

// Hash hashes a plain-text password using the bcrypt algorithm.
func (hasher BcryptHasher) Hash(input string) (string, error) {
	cost := hasher.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(input), cost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// Compare compares a plain-text password with its bcrypt hash.
func (BcryptHasher) Compare(input, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(input)) == nil
}
