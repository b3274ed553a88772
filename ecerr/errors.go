// Package ecerr defines the error taxonomy shared by every package in this
// module. All errors returned across package boundaries are a Kind wrapped
// in an Error, following the established decred ErrorKind/Error split so
// that callers can either compare sentinel kinds with errors.Is or read the
// human-readable description.
package ecerr

// Kind identifies a specific class of failure. Kind implements error so a
// bare Kind can be used as a sentinel with errors.Is.
type Kind string

// Error implements the error interface for Kind.
func (k Kind) Error() string {
	return string(k)
}

const (
	// InvalidFieldElement is returned when a field element encoding is
	// non-canonical or decodes to a value >= the field prime.
	InvalidFieldElement = Kind("InvalidFieldElement")

	// InvalidScalar is returned when a scalar is zero where forbidden, or
	// decodes to a value >= the group order.
	InvalidScalar = Kind("InvalidScalar")

	// InvalidPoint is returned when a point encoding is malformed, the
	// point is not on the curve, or it is the identity where forbidden.
	InvalidPoint = Kind("InvalidPoint")

	// InvalidSignature covers both parse failures and verification
	// failures; callers are not meant to distinguish between them.
	InvalidSignature = Kind("InvalidSignature")

	// InvalidRecoveryId is returned when a recovery id is out of range or
	// recovery yields the point at infinity.
	InvalidRecoveryId = Kind("InvalidRecoveryId")

	// InvalidPrivateKey is returned when a private key scalar is zero or
	// out of range.
	InvalidPrivateKey = Kind("InvalidPrivateKey")

	// NotASquare is an internal condition raised by field square roots;
	// every caller-facing path remaps it to InvalidPoint before it leaves
	// this module.
	NotASquare = Kind("NotASquare")

	// EntropyFailure is returned when caller-supplied entropy is rejected,
	// e.g. a length mismatch on a blinding seed.
	EntropyFailure = Kind("EntropyFailure")
)

// Error pairs a Kind with a human-readable description. Error never embeds
// secret material; Description is always safe to log.
type Error struct {
	Err         Kind
	Description string
}

// Error implements the error interface.
func (e Error) Error() string {
	return e.Description
}

// Unwrap allows errors.Is(err, ecerr.InvalidPoint) to succeed against a
// wrapped Error.
func (e Error) Unwrap() error {
	return e.Err
}

// New constructs an Error with the given kind and description.
func New(kind Kind, description string) Error {
	return Error{Err: kind, Description: description}
}
