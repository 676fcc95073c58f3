package coin

import (
	"sort"
	"strings"

	"github.com/custodylabs/custody/errors"
)

// Coins represents a set of coins, sorted by ticker with no duplicates and
// no zero entries. Most operations on the coin set require this normalized
// form.
type Coins []*Coin

// CombineCoins creates a Coins containing all given coins.
// It will sort them and combine duplicates to produce
// a normalized form regardless of input.
func CombineCoins(cs ...Coin) (Coins, error) {
	var err error
	coins := make(Coins, 0, len(cs))
	for _, c := range cs {
		coins, err = coins.Add(c)
		if err != nil {
			return nil, err
		}
	}
	if err := coins.Validate(); err != nil {
		return nil, err
	}
	return coins, nil
}

// Clone returns a copy that can be safely modified
func (cs Coins) Clone() Coins {
	if cs == nil {
		return nil
	}
	res := make([]*Coin, len(cs))
	for i, c := range cs {
		res[i] = c.Clone()
	}
	return Coins(res)
}

// Add returns the Coins with the holdings increased by c.
// The receiver may be modified.
func (cs Coins) Add(c Coin) (Coins, error) {
	// We ignore zero values
	if c.IsZero() {
		return cs, nil
	}

	has, i := cs.findCoin(c.ID())
	if has != nil {
		sum, err := has.Add(c)
		if err != nil {
			return nil, err
		}
		cs[i] = &sum
		return cs, nil
	}
	// special case append to end
	if i == len(cs) {
		return append(cs, &c), nil
	}
	// insert in beginning or middle (with one alloc)
	res := append(cs, nil)
	copy(res[i+1:], res[i:])
	res[i] = &c
	return res, nil
}

// Subtract returns the Coins with the holdings decreased by c. A ticker
// whose balance reaches zero is removed. Fails with ErrInsufficientAmount
// if the set does not contain c. The receiver may be modified.
func (cs Coins) Subtract(c Coin) (Coins, error) {
	if c.IsZero() {
		return cs, nil
	}
	has, i := cs.findCoin(c.ID())
	if has == nil {
		return nil, errors.Wrapf(errors.ErrInsufficientAmount, "no %s", c.Ticker)
	}
	left, err := has.Subtract(c)
	if err != nil {
		return nil, err
	}
	if left.IsZero() {
		return append(cs[:i], cs[i+1:]...), nil
	}
	cs[i] = &left
	return cs, nil
}

// Combine will create a new Coins adding all the coins
// of s and o together.
func (cs Coins) Combine(o Coins) (Coins, error) {
	var err error
	res := cs.Clone()
	for _, c := range o {
		res, err = res.Add(*c)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Contains returns true if there is at least that much
// coin in the Coins.
func (cs Coins) Contains(c Coin) bool {
	if c.IsZero() {
		return true
	}
	has, _ := cs.findCoin(c.ID())
	if has == nil {
		return false
	}
	return has.IsGTE(c)
}

// Balance returns the amount held of the ticker, zero if none.
func (cs Coins) Balance(ticker string) Coin {
	has, _ := cs.findCoin(ticker)
	if has == nil {
		return Coin{Ticker: ticker}
	}
	return *has
}

// IsEmpty returns if nothing is in the set
func (cs Coins) IsEmpty() bool {
	return len(cs) == 0
}

// Equals returns true if both sets hold the same amounts
func (cs Coins) Equals(o Coins) bool {
	if len(cs) != len(o) {
		return false
	}
	for i := range cs {
		if !cs[i].Equals(*o[i]) {
			return false
		}
	}
	return true
}

// Validate requires that all coins are in alphabetical
// order, no duplicates and no zero amounts.
func (cs Coins) Validate() error {
	var last string
	for _, c := range cs {
		if c == nil {
			return errors.Wrap(errors.ErrState, "nil coin")
		}
		if err := c.Validate(); err != nil {
			return err
		}
		if c.Ticker <= last {
			return errors.Wrap(errors.ErrCurrency, "not sorted or not unique")
		}
		if c.IsZero() {
			return errors.Wrap(errors.ErrAmount, "zero coins")
		}
		last = c.Ticker
	}
	return nil
}

func (cs Coins) String() string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}

// findCoin returns a coin and index that have this
// currency code.
//
// If there was a match, then result is non-nil, and the
// index is where it was. If there was no match, then
// result is nil, and index is where it should be
// (which may be between 0 and len(cs)).
func (cs Coins) findCoin(ticker string) (*Coin, int) {
	i := sort.Search(len(cs), func(i int) bool {
		return cs[i].Ticker >= ticker
	})
	if i < len(cs) && cs[i].Ticker == ticker {
		return cs[i], i
	}
	return nil, i
}
