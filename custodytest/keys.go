package custodytest

import (
	"github.com/custodylabs/custody"
	"github.com/custodylabs/custody/crypto"
)

// NewKey returns a freshly generated ed25519 signer.
func NewKey() crypto.Signer {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the condition of a freshly generated key.
func NewCondition() custody.Condition {
	return NewKey().PublicKey().Condition()
}
