package issuer

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/AbsaOSS/CertMe/pkg/errcode"
)

// ErrorKind classifies the failure of an issuance run.
type ErrorKind string

const (
	// ConfigurationError is a missing or invalid configuration value or argument.
	ConfigurationError ErrorKind = "ConfigurationError"

	// CredentialRetrievalError is a failure to read the AppRole credentials from the parameter store.
	CredentialRetrievalError ErrorKind = "CredentialRetrievalError"

	// AuthenticationError is a rejected or malformed Vault login.
	AuthenticationError ErrorKind = "AuthenticationError"

	// KeyGenerationError is a local failure to build the key pair or the certificate request.
	KeyGenerationError ErrorKind = "KeyGenerationError"

	// SigningError is a certificate authority failure to sign the request.
	SigningError ErrorKind = "SigningError"

	// ImportError is a certificate manager failure to import the certificate.
	ImportError ErrorKind = "ImportError"

	// PersistenceError is a failure to write the certificate material to the parameter store.
	PersistenceError ErrorKind = "PersistenceError"

	// ImportedButNotPersisted is returned when the certificate is live in the certificate
	// manager but its material was not persisted. The error carries the ARN.
	ImportedButNotPersisted ErrorKind = "ImportedButNotPersisted"
)

var kindErrCodes = map[ErrorKind]errcode.ErrCode{
	ConfigurationError:       errcode.ErrInvalidConfig,
	CredentialRetrievalError: errcode.ErrFetchingCredentials,
	AuthenticationError:      errcode.ErrVaultLogin,
	KeyGenerationError:       errcode.ErrGeneratingPrivateKey,
	SigningError:             errcode.ErrSigningCert,
	ImportError:              errcode.ErrImportingCert,
	PersistenceError:         errcode.ErrPersistingCert,
	ImportedButNotPersisted:  errcode.ErrImportedNotPersisted,
}

// Error is the error returned by a failed issuance run.
type Error struct {
	// Kind is the failure class.
	Kind ErrorKind

	// State is the last state the run reached before failing.
	State State

	// Code is the error code logged for the failure.
	Code errcode.ErrCode

	// ARN is the imported certificate ARN, only set for ImportedButNotPersisted.
	ARN string

	// Err is the underlying error.
	Err error
}

func newError(kind ErrorKind, state State, err error) *Error {
	return &Error{
		Kind:  kind,
		State: state,
		Code:  kindErrCodes[kind],
		Err:   err,
	}
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s after %s", e.Kind, e.State)
	if e.ARN != "" {
		msg = fmt.Sprintf("%s (certificate %s)", msg, e.ARN)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind returns true if err, or any error it wraps, is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Kind == kind {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// ImportedARN returns the ARN of a certificate that was imported by a run that failed
// afterwards, so that the parameter store can be reconciled manually.
func ImportedARN(err error) (string, bool) {
	var e *Error
	if !errors.As(err, &e) || e.ARN == "" {
		return "", false
	}
	return e.ARN, true
}
