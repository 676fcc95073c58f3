package crypto

import (
	"github.com/custodylabs/custody"
)

// ExtensionName is used for the Conditions we get from signatures
const ExtensionName = "sigs"

// PubKey represents a crypto public key we use
type PubKey interface {
	Verify(message []byte, sig *Signature) bool
	Condition() custody.Condition
}

// Signer is the functionality we use from a private key
// No serializing to support hardware devices as well.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}

// Address is a helper to get the address of the public key condition,
// or nil if the key is empty.
func (p *PublicKey) Address() custody.Address {
	c := p.Condition()
	if c == nil {
		return nil
	}
	return c.Address()
}
