package cash

import (
	"github.com/custodylabs/custody"
	"github.com/custodylabs/custody/coin"
	"github.com/custodylabs/custody/errors"
	"github.com/custodylabs/custody/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

//---- Set

var _ orm.CloneableData = (*Set)(nil)

// Validate requires that all coins are in alphabetical order
func (s *Set) Validate() error {
	return coin.Coins(s.GetCoins()).Validate()
}

// Copy makes a new set with the same coins
func (s *Set) Copy() orm.CloneableData {
	return &Set{
		Coins: coin.Coins(s.GetCoins()).Clone(),
	}
}

//--- Wallet (Set object, wallet + key)

// Wallet is the actual object that we want to pass around
// in our code. It contains a set of coins, as well as the
// address. It is connected to the Bucket to easily manipulate
// state.
//
// Wallet is a type-safe wrapper around orm.SimpleObj
type Wallet struct {
	key   []byte
	value *Set
}

var _ orm.Object = (*Wallet)(nil)

// NewWallet creates an empty wallet with this address
func NewWallet(key custody.Address) *Wallet {
	return &Wallet{key: key, value: new(Set)}
}

// WalletWith creates a wallet holding the given coins.
func WalletWith(key custody.Address, coins ...*coin.Coin) (*Wallet, error) {
	w := NewWallet(key)
	if err := w.Concat(coins); err != nil {
		return nil, err
	}
	return w, nil
}

// Value gets the value stored in the object
func (w Wallet) Value() custody.Persistent {
	return w.value
}

// Key returns the key to store the object under
func (w Wallet) Key() []byte {
	return w.key
}

// Validate makes sure the fields aren't empty.
// And delegates to the value validator if present
func (w Wallet) Validate() error {
	if len(w.key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "missing key")
	}
	return w.value.Validate()
}

// SetKey may be used to update a simple obj key
func (w *Wallet) SetKey(key []byte) {
	w.key = key
}

// Clone will make a copy of this object
func (w *Wallet) Clone() orm.Object {
	res := &Wallet{
		value: w.value.Copy().(*Set),
	}
	// only copy key if non-nil
	if len(w.key) > 0 {
		res.key = append([]byte(nil), w.key...)
	}
	return res
}

// Coins returns the coins stored in the wallet
func (w Wallet) Coins() coin.Coins {
	return coin.Coins(w.value.GetCoins())
}

// Add modifies the wallet to add Coin c
func (w *Wallet) Add(c coin.Coin) error {
	cs, err := w.Coins().Add(c)
	if err != nil {
		return err
	}
	w.value.Coins = cs
	return nil
}

// Subtract modifies the wallet to remove Coin c
func (w *Wallet) Subtract(c coin.Coin) error {
	cs, err := w.Coins().Subtract(c)
	if err != nil {
		return err
	}
	w.value.Coins = cs
	return nil
}

// Concat combines the coins to make sure they are sorted
// with no duplicates or 0 values.
func (w *Wallet) Concat(coins coin.Coins) error {
	joint, err := w.Coins().Combine(coins)
	if err != nil {
		return err
	}
	w.value.Coins = joint
	return nil
}

//--- cash.Bucket - type-safe bucket

// Bucket is a type-safe wrapper around orm.Bucket
type Bucket struct {
	orm.Bucket
}

// NewBucket initializes a cash.Bucket with default name
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, NewWallet(nil)),
	}
}

// Get returns the wallet stored under the address or nil.
func (b Bucket) Get(db custody.ReadOnlyKVStore, key custody.Address) (*Wallet, error) {
	obj, err := b.Bucket.Get(db, key)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}
	return obj.(*Wallet), nil
}

// Save stores the wallet. An empty wallet is removed instead, so an
// address that was drained no longer exists.
func (b Bucket) Save(db custody.KVStore, w *Wallet) error {
	if w.Coins().IsEmpty() {
		return b.Bucket.Delete(db, w.Key())
	}
	return b.Bucket.Save(db, w)
}

// GetOrCreate returns the stored wallet or a new empty one.
func (b Bucket) GetOrCreate(db custody.ReadOnlyKVStore, key custody.Address) (*Wallet, error) {
	wallet, err := b.Get(db, key)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		wallet = NewWallet(key)
	}
	return wallet, nil
}
