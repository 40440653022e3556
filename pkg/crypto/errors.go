package crypto

import "github.com/pkg/errors"

var (
	// ErrInvalidKey is returned for public keys with a bad length, an
	// unsupported format byte, or a point that is not on the curve.
	ErrInvalidKey = errors.New("invalid public key")

	// ErrInvalidPrivateKey is returned for private scalars that are not
	// 32 bytes or fall outside [1, n-1].
	ErrInvalidPrivateKey = errors.New("invalid private key")

	// ErrInvalidSignature is returned when a signature is not 65 bytes.
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrRecovery is returned when no public key can be recovered from a
	// digest, signature and recovery parameter.
	ErrRecovery = errors.New("public key recovery failed")
)
