package cash

import (
	"github.com/custodylabs/custody"
	"github.com/custodylabs/custody/coin"
	"github.com/custodylabs/custody/errors"
	"github.com/custodylabs/custody/x"
)

// Balancer reads the coins held by an address.
type Balancer interface {
	Balance(custody.ReadOnlyKVStore, custody.Address) (coin.Coins, error)
}

// CoinMover moves coins between addresses without any authorization check.
type CoinMover interface {
	MoveCoins(custody.KVStore, custody.Address, custody.Address, coin.Coin) error
}

// CoinMinter creates coins out of nothing. Only genesis and tests use it.
type CoinMinter interface {
	IssueCoins(custody.KVStore, custody.Address, coin.Coin) error
}

// Controller is the functionality needed by
// cash.Handler and the custody extensions. BaseController
// should work plenty fine, but you can add other logic
// if so desired
type Controller interface {
	Balancer
	CoinMover
	CoinMinter
}

// BaseController is a simple implementation of controller
// wallet must return something that supports AsSet
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a basic controller implementation
func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the coins held by the address. An address that holds
// nothing returns ErrNotFound.
func (c BaseController) Balance(db custody.ReadOnlyKVStore, addr custody.Address) (coin.Coins, error) {
	w, err := c.bucket.Get(db, addr)
	if err != nil {
		return nil, errors.Wrap(err, "cannot get wallet")
	}
	if w == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "wallet %s", addr)
	}
	return w.Coins(), nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// coins, it fails.
func (c BaseController) MoveCoins(db custody.KVStore, src, dest custody.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount %s", amount)
	}
	if err := amount.Validate(); err != nil {
		return err
	}

	sender, err := c.bucket.Get(db, src)
	if err != nil {
		return errors.Wrap(err, "cannot get sender")
	}
	if sender == nil {
		return errors.Wrapf(errors.ErrInsufficientAmount, "empty account %s", src)
	}
	if !sender.Coins().Contains(amount) {
		return errors.Wrapf(errors.ErrInsufficientAmount, "%s holds less than %s", src, amount)
	}
	if src.Equals(dest) {
		return nil
	}

	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return errors.Wrap(err, "cannot get recipient")
	}
	if err := sender.Subtract(amount); err != nil {
		return err
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}

	// save them and return
	if err := c.bucket.Save(db, sender); err != nil {
		return errors.Wrap(err, "cannot save sender")
	}
	return c.bucket.Save(db, recipient)
}

// IssueCoins attempts to add the given amount of coins to
// the destination address. Fails if it overflows the wallet.
func (c BaseController) IssueCoins(db custody.KVStore, dest custody.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount %s", amount)
	}
	if err := amount.Validate(); err != nil {
		return err
	}
	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}
	return c.bucket.Save(db, recipient)
}

// Transfer moves amount from src to dst on behalf of the current context.
// It fails with ErrUnauthorized unless auth grants the context authority
// over src, either because src signed the transaction or because an
// extension put the derived condition of src into the context.
func Transfer(ctx custody.Context, auth x.Authenticator, mover CoinMover, db custody.KVStore, src, dst custody.Address, amount coin.Coin) error {
	if !auth.HasAddress(ctx, src) {
		return errors.Wrapf(errors.ErrUnauthorized, "no authority over %s", src)
	}
	return mover.MoveCoins(db, src, dst, amount)
}

// Drain moves everything src holds of the ticker to dst, under the same
// authorization as Transfer. It returns the amount moved, which is zero
// when src holds none of the ticker.
func Drain(ctx custody.Context, auth x.Authenticator, ctrl Controller, db custody.KVStore, src, dst custody.Address, ticker string) (coin.Coin, error) {
	if !auth.HasAddress(ctx, src) {
		return coin.Coin{}, errors.Wrapf(errors.ErrUnauthorized, "no authority over %s", src)
	}
	coins, err := ctrl.Balance(db, src)
	switch {
	case errors.ErrNotFound.Is(err):
		return coin.NewCoin(0, ticker), nil
	case err != nil:
		return coin.Coin{}, err
	}
	held := coins.Balance(ticker)
	if held.IsZero() {
		return held, nil
	}
	if err := ctrl.MoveCoins(db, src, dst, held); err != nil {
		return coin.Coin{}, err
	}
	return held, nil
}

// DrainAll moves every coin src holds to dst, under the same authorization
// as Transfer. It returns the coins moved, nil when src holds nothing.
func DrainAll(ctx custody.Context, auth x.Authenticator, ctrl Controller, db custody.KVStore, src, dst custody.Address) (coin.Coins, error) {
	if !auth.HasAddress(ctx, src) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "no authority over %s", src)
	}
	coins, err := ctrl.Balance(db, src)
	switch {
	case errors.ErrNotFound.Is(err):
		return nil, nil
	case err != nil:
		return nil, err
	}
	moved := coins.Clone()
	for _, c := range moved {
		if err := ctrl.MoveCoins(db, src, dst, *c); err != nil {
			return nil, err
		}
	}
	return moved, nil
}
