package sigs

import (
	"github.com/custodylabs/custody/errors"
)

// SignedTx represents a transaction that contains signatures,
// which can be verified by the auth.Decorator
type SignedTx interface {
	// GetSignBytes returns the canonical byte representation of the
	// transaction without the signatures. This is what every signer
	// signs.
	GetSignBytes() ([]byte, error)

	// GetSignatures returns the signature of signers who signed the Msg.
	GetSignatures() []*StdSignature
}

// Validate ensures the StdSignature meets basic standards
func (s *StdSignature) Validate() error {
	seq := s.GetSequence()
	if seq < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	if s.Pubkey == nil || len(s.Pubkey.GetEd25519()) == 0 {
		return errors.Wrap(errors.ErrUnauthorized, "missing public key")
	}
	if s.Signature == nil || len(s.Signature.GetEd25519()) == 0 {
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}
