package jwt

import (
	"crypto/rand"

	"github.com/mr-tron/base58"

	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/iotaledger/hive.go/ierrors"
)

// GenerateIdentitySeed creates a random base58 encoded seed for the key that signs the tokens.
func GenerateIdentitySeed() (string, error) {
	seed := make([]byte, ed25519.SeedSize)
	if _, err := rand.Read(seed); err != nil {
		return "", ierrors.Wrap(err, "unable to generate identity seed")
	}

	return base58.Encode(seed), nil
}

// IdentityFromSeed derives the key that signs the tokens from a base58 encoded seed.
// An empty seed yields a random identity.
func IdentityFromSeed(encodedSeed string) (ed25519.PrivateKey, error) {
	if encodedSeed == "" {
		var err error
		if encodedSeed, err = GenerateIdentitySeed(); err != nil {
			return ed25519.PrivateKey{}, err
		}
	}

	seed, err := base58.Decode(encodedSeed)
	if err != nil {
		return ed25519.PrivateKey{}, ierrors.Wrap(err, "invalid identity seed")
	}

	if l := len(seed); l != ed25519.SeedSize {
		return ed25519.PrivateKey{}, ierrors.Errorf("invalid identity seed length: %d, need %d", l, ed25519.SeedSize)
	}

	return ed25519.PrivateKeyFromSeed(seed), nil
}

// NodeID returns the base58 encoded public key of the identity.
func NodeID(privateKey ed25519.PrivateKey) string {
	publicKey := privateKey.Public()

	return base58.Encode(publicKey[:])
}
