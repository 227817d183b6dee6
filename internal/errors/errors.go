// Package errors provides typed errors for cclink operations.
// This enables callers to use errors.Is() and errors.As() for specific error handling.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the taxonomy in spec §7.
// Use errors.Is(err, errors.ErrRecordNotFound) to check for a specific condition.
var (
	// Identity / keystore errors
	ErrNoKeypairFound      = errors.New("no keypair found: run \"cclink init\" first")
	ErrInsecurePermissions = errors.New("key file has insecure permissions")
	ErrKeyAlreadyExists    = errors.New("a keypair already exists")
	ErrPassphraseMismatch  = errors.New("passphrases do not match")
	ErrWrongPassphrase     = errors.New("wrong passphrase")
	ErrInvalidHexKey       = errors.New("key must be exactly 64 hex characters")

	// Record / crypto errors
	ErrSignatureVerificationFailed = errors.New("signature verification failed")
	ErrInvalidEnvelope             = errors.New("invalid key envelope")
	ErrDecryptionFailed            = errors.New("decryption failed")
	ErrWeakPIN                     = errors.New("PIN is too weak")
	ErrWeakPassphrase              = errors.New("passphrase is too weak")

	// Transport errors
	ErrRecordNotFound     = errors.New("no active handoff record")
	ErrTransportTransient = errors.New("transient transport error")
	ErrStaleCAS           = errors.New("compare-and-swap rejected: record was republished concurrently")

	// Orchestration errors
	ErrHandoffExpired        = errors.New("handoff record has expired")
	ErrSessionNotFound       = errors.New("no matching agent session found")
	ErrCancelled             = errors.New("operation cancelled")
	ErrNotATerminal          = errors.New("this operation requires an interactive terminal")
	ErrMutuallyExclusive     = errors.New("mutually exclusive flags supplied")
	ErrCannotDecryptOwnShare = errors.New("cannot decrypt a record you shared with someone else")
)

// CryptoError represents an error during cryptographic operations.
// It wraps the underlying error with operation context.
type CryptoError struct {
	Op  string // Operation name: "rand", "argon2", "hkdf", "age-encrypt", "age-decrypt", "sign", "verify"
	Err error  // Underlying error
}

func (e *CryptoError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("crypto %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("crypto %s failed", e.Op)
}

func (e *CryptoError) Unwrap() error {
	return e.Err
}

// NewCryptoError creates a new CryptoError.
func NewCryptoError(op string, err error) *CryptoError {
	return &CryptoError{Op: op, Err: err}
}

// FileError represents an error during file operations.
type FileError struct {
	Op   string // Operation: "open", "read", "write", "stat", "rename"
	Path string // File path
	Err  error  // Underlying error
}

func (e *FileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s failed", e.Op, e.Path)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// NewFileError creates a new FileError.
func NewFileError(op, path string, err error) *FileError {
	return &FileError{Op: op, Path: path, Err: err}
}

// ValidationError represents an input validation error.
type ValidationError struct {
	Field   string // Field name that failed validation
	Message string // Human-readable error message
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// EnvelopeError represents an error parsing or validating a KeyEnvelope
// (the on-disk CCLINKEK-prefixed encrypted key container).
type EnvelopeError struct {
	Field string // Envelope field that caused the error: "magic", "version", "length"
	Err   error  // Underlying error, if any
}

func (e *EnvelopeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("envelope %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("envelope %s invalid", e.Field)
}

func (e *EnvelopeError) Unwrap() error {
	return e.Err
}

// NewEnvelopeError creates a new EnvelopeError.
func NewEnvelopeError(field string, err error) *EnvelopeError {
	return &EnvelopeError{Field: field, Err: err}
}

// TransportError represents an error from the DHT transport layer for a
// specific identity. Op is one of "publish", "resolve", "revoke".
type TransportError struct {
	Op     string
	Pubkey string // z32 public key of the identity involved
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Pubkey, e.Err)
	}
	return fmt.Sprintf("%s %s failed", e.Op, e.Pubkey)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError creates a new TransportError.
func NewTransportError(op, pubkey string, err error) *TransportError {
	return &TransportError{Op: op, Pubkey: pubkey, Err: err}
}

// Is checks if target matches any of our sentinel errors.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// IsCancelled checks if the error indicates a cancelled operation.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}

// IsRecordNotFound checks if the error indicates a missing DHT record.
// The retry layer classifies this as permanent (never retried).
func IsRecordNotFound(err error) bool {
	return errors.Is(err, ErrRecordNotFound)
}

// IsTransient checks if the error indicates a retryable transport error.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransportTransient)
}
