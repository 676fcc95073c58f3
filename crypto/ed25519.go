package crypto

import (
	"github.com/custodylabs/custody"
	"golang.org/x/crypto/ed25519"
)

var _ PubKey = (*PublicKey)(nil)

// Verify verifies the signature was created with this message and public key
func (p *PublicKey) Verify(message []byte, sig *Signature) bool {
	if len(p.GetEd25519()) != ed25519.PublicKeySize {
		return false
	}
	raw := sig.GetEd25519()
	if len(raw) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p.Ed25519), message, raw)
}

// Condition encodes the public key into a custody condition.
// Returns nil for an empty key.
func (p *PublicKey) Condition() custody.Condition {
	if len(p.GetEd25519()) == 0 {
		return nil
	}
	return custody.NewCondition(ExtensionName, "ed25519", p.Ed25519)
}

var _ Signer = (*PrivateKey)(nil)

// Sign returns a matching signature for this private key
func (p *PrivateKey) Sign(message []byte) (*Signature, error) {
	privateKey := ed25519.PrivateKey(p.Ed25519)
	bz := ed25519.Sign(privateKey, message)
	return &Signature{Ed25519: bz}, nil
}

// PublicKey returns the corresponding PublicKey
func (p *PrivateKey) PublicKey() *PublicKey {
	privateKey := ed25519.PrivateKey(p.Ed25519)
	pub := privateKey.Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: pub}
}

// GenPrivKeyEd25519 returns a random new private key
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: priv}
}

// PrivKeyEd25519FromSeed will deterministically generate a private key from
// a given seed. Use if you have a strong source of external randomness,
// or for deterministic keys in test cases.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	priv := ed25519.NewKeyFromSeed(seed)
	return &PrivateKey{Ed25519: priv}
}
