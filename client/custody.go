package client

import (
	"github.com/custodylabs/custody"
	"github.com/custodylabs/custody/coin"
	"github.com/custodylabs/custody/errors"
	"github.com/custodylabs/custody/x/cash"
	"github.com/custodylabs/custody/x/escrow"
	"github.com/custodylabs/custody/x/sigs"
	"github.com/custodylabs/custody/x/vault"
)

// NextNonce returns the sequence the next signature of addr must use.
func (c *Client) NextNonce(addr custody.Address) (int64, error) {
	models, err := c.Query("/auth", addr)
	if err != nil {
		return 0, err
	}
	if len(models) == 0 {
		return 0, nil
	}
	var user sigs.UserData
	if err := user.UnmarshalBinary(models[0].Value); err != nil {
		return 0, errors.Wrap(err, "parse user")
	}
	return user.Sequence, nil
}

// Balance returns all coins held by addr.
func (c *Client) Balance(addr custody.Address) (coin.Coins, error) {
	models, err := c.Query("/wallets", addr)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, nil
	}
	var set cash.Set
	if err := set.UnmarshalBinary(models[0].Value); err != nil {
		return nil, errors.Wrap(err, "parse wallet")
	}
	return coin.Coins(set.Coins), nil
}

// Vault returns the state of the vault of owner together with its state
// address.
func (c *Client) Vault(owner custody.Address) (custody.Address, *vault.VaultState, error) {
	models, err := c.Query("/vaults/owner", owner)
	if err != nil {
		return nil, nil, err
	}
	if len(models) == 0 {
		return nil, nil, errors.Wrapf(errors.ErrNotFound, "no vault for %s", owner)
	}
	var state vault.VaultState
	if err := state.UnmarshalBinary(models[0].Value); err != nil {
		return nil, nil, err
	}
	return models[0].Key, &state, nil
}

// Escrow returns the open escrow of maker with seed.
func (c *Client) Escrow(maker custody.Address, seed uint64) (*escrow.Escrow, error) {
	addr, _, err := escrow.EscrowAddress(maker, seed)
	if err != nil {
		return nil, err
	}
	models, err := c.Query("/escrows", addr)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, errors.Wrapf(errors.ErrNotFound, "no escrow %d for %s", seed, maker)
	}
	var e escrow.Escrow
	if err := e.UnmarshalBinary(models[0].Value); err != nil {
		return nil, err
	}
	return &e, nil
}

// Escrows returns all open escrows of maker.
func (c *Client) Escrows(maker custody.Address) ([]*escrow.Escrow, error) {
	models, err := c.Query("/escrows/maker", maker)
	if err != nil {
		return nil, err
	}
	res := make([]*escrow.Escrow, 0, len(models))
	for _, m := range models {
		var e escrow.Escrow
		if err := e.UnmarshalBinary(m.Value); err != nil {
			return nil, err
		}
		res = append(res, &e)
	}
	return res, nil
}
