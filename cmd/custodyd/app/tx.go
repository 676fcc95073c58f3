package app

import (
	"github.com/custodylabs/custody"
	"github.com/custodylabs/custody/errors"
	"github.com/custodylabs/custody/x/cash"
	"github.com/custodylabs/custody/x/escrow"
	"github.com/custodylabs/custody/x/sigs"
	"github.com/custodylabs/custody/x/vault"
	"github.com/gogo/protobuf/proto"
)

// Tx carries exactly one message together with the signatures authorizing
// it.
type Tx struct {
	Signatures         []*sigs.StdSignature `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`
	SendMsg            *cash.SendMsg        `protobuf:"bytes,2,opt,name=send_msg,json=sendMsg,proto3" json:"send_msg,omitempty"`
	VaultInitializeMsg *vault.InitializeMsg `protobuf:"bytes,3,opt,name=vault_initialize_msg,json=vaultInitializeMsg,proto3" json:"vault_initialize_msg,omitempty"`
	VaultDepositMsg    *vault.DepositMsg    `protobuf:"bytes,4,opt,name=vault_deposit_msg,json=vaultDepositMsg,proto3" json:"vault_deposit_msg,omitempty"`
	VaultWithdrawMsg   *vault.WithdrawMsg   `protobuf:"bytes,5,opt,name=vault_withdraw_msg,json=vaultWithdrawMsg,proto3" json:"vault_withdraw_msg,omitempty"`
	VaultCloseMsg      *vault.CloseMsg      `protobuf:"bytes,6,opt,name=vault_close_msg,json=vaultCloseMsg,proto3" json:"vault_close_msg,omitempty"`
	EscrowMakeMsg      *escrow.MakeMsg      `protobuf:"bytes,7,opt,name=escrow_make_msg,json=escrowMakeMsg,proto3" json:"escrow_make_msg,omitempty"`
	EscrowTakeMsg      *escrow.TakeMsg      `protobuf:"bytes,8,opt,name=escrow_take_msg,json=escrowTakeMsg,proto3" json:"escrow_take_msg,omitempty"`
	EscrowCloseMsg     *escrow.CloseMsg     `protobuf:"bytes,9,opt,name=escrow_close_msg,json=escrowCloseMsg,proto3" json:"escrow_close_msg,omitempty"`
}

func (m *Tx) Reset()         { *m = Tx{} }
func (m *Tx) String() string { return proto.CompactTextString(m) }
func (*Tx) ProtoMessage()    {}

// make sure tx fulfills all interfaces
var _ custody.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (custody.Tx, error) {
	tx := new(Tx)
	if err := tx.UnmarshalBinary(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

// MarshalBinary serializes the transaction.
func (m *Tx) MarshalBinary() ([]byte, error) {
	bz, err := proto.Marshal(m)
	return bz, errors.Wrap(err, "marshal tx")
}

// UnmarshalBinary deserializes the transaction.
func (m *Tx) UnmarshalBinary(bz []byte) error {
	if err := proto.Unmarshal(bz, m); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

// GetMsg returns the single message set on the transaction.
func (m *Tx) GetMsg() (custody.Msg, error) {
	var msgs []custody.Msg
	add := func(set bool, msg custody.Msg) {
		if set {
			msgs = append(msgs, msg)
		}
	}
	add(m.SendMsg != nil, m.SendMsg)
	add(m.VaultInitializeMsg != nil, m.VaultInitializeMsg)
	add(m.VaultDepositMsg != nil, m.VaultDepositMsg)
	add(m.VaultWithdrawMsg != nil, m.VaultWithdrawMsg)
	add(m.VaultCloseMsg != nil, m.VaultCloseMsg)
	add(m.EscrowMakeMsg != nil, m.EscrowMakeMsg)
	add(m.EscrowTakeMsg != nil, m.EscrowTakeMsg)
	add(m.EscrowCloseMsg != nil, m.EscrowCloseMsg)

	switch len(msgs) {
	case 0:
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	case 1:
		return msgs[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrMsg, "%d messages, only one allowed", len(msgs))
	}
}

// SetMsg puts msg into the matching field, clearing any other message.
func (m *Tx) SetMsg(msg custody.Msg) error {
	sigs := m.Signatures
	m.Reset()
	m.Signatures = sigs

	switch msg := msg.(type) {
	case *cash.SendMsg:
		m.SendMsg = msg
	case *vault.InitializeMsg:
		m.VaultInitializeMsg = msg
	case *vault.DepositMsg:
		m.VaultDepositMsg = msg
	case *vault.WithdrawMsg:
		m.VaultWithdrawMsg = msg
	case *vault.CloseMsg:
		m.VaultCloseMsg = msg
	case *escrow.MakeMsg:
		m.EscrowMakeMsg = msg
	case *escrow.TakeMsg:
		m.EscrowTakeMsg = msg
	case *escrow.CloseMsg:
		m.EscrowCloseMsg = msg
	default:
		return errors.Wrapf(errors.ErrType, "unsupported message %T", msg)
	}
	return nil
}

// GetSignatures returns the signatures attached to the transaction.
func (m *Tx) GetSignatures() []*sigs.StdSignature {
	return m.Signatures
}

// GetSignBytes returns the bytes to sign...
func (m *Tx) GetSignBytes() ([]byte, error) {
	// temporarily unset the signatures, as the sign bytes
	// should only come from the data itself, not previous signatures
	sigs := m.Signatures
	m.Signatures = nil

	bz, err := m.MarshalBinary()

	// reset the signatures after calculating the bytes
	m.Signatures = sigs
	return bz, err
}
