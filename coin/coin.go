package coin

import (
	"encoding/json"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/custodylabs/custody/errors"
	"github.com/gogo/protobuf/proto"
	"github.com/shopspring/decimal"
)

//-------------- Coin -----------------------

// IsCC is the RegExp to ensure valid tickers. A ticker must fit the fixed
// 8 byte mint field of the escrow record.
var IsCC = regexp.MustCompile(`^[A-Z][A-Z0-9]{2,7}$`).MatchString

// Coin is an amount of a single ticker, counted in its smallest unit
// (lamports for the native ticker).
type Coin struct {
	Ticker string `protobuf:"bytes,1,opt,name=ticker,proto3" json:"ticker,omitempty"`
	Amount uint64 `protobuf:"varint,2,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (*Coin) ProtoMessage() {}

// Reset implements proto.Message
func (c *Coin) Reset() { *c = Coin{} }

// NewCoin creates a new coin object
func NewCoin(amount uint64, ticker string) Coin {
	return Coin{
		Ticker: ticker,
		Amount: amount,
	}
}

// NewCoinp returns a pointer to a new coin.
func NewCoinp(amount uint64, ticker string) *Coin {
	c := NewCoin(amount, ticker)
	return &c
}

// ID returns a coin ticker name.
func (c Coin) ID() string {
	return c.Ticker
}

// Add combines two coins.
// Returns error if they are of different
// currencies, or if the combination would cause
// an overflow
func (c Coin) Add(o Coin) (Coin, error) {
	// If any of the coins represents no value and does not have a ticker
	// set then it has no influence on the addition result.
	if c.Ticker == "" && c.IsZero() {
		return o, nil
	}
	if o.Ticker == "" && o.IsZero() {
		return c, nil
	}
	if !c.SameType(o) {
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "adding %s to %s", c.Ticker, o.Ticker)
	}
	if c.Amount > math.MaxUint64-o.Amount {
		return Coin{}, errors.Wrapf(errors.ErrOverflow, "%s + %s", c, o)
	}
	c.Amount += o.Amount
	return c, nil
}

// Subtract given amount. Fails with ErrInsufficientAmount if the result
// would be negative.
func (c Coin) Subtract(o Coin) (Coin, error) {
	if o.IsZero() {
		return c, nil
	}
	if !c.SameType(o) {
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "subtracting %s from %s", o.Ticker, c.Ticker)
	}
	if c.Amount < o.Amount {
		return Coin{}, errors.Wrapf(errors.ErrInsufficientAmount, "have %s, need %s", c, o)
	}
	c.Amount -= o.Amount
	return c, nil
}

// Compare will check values of two coins, without
// inspecting the currency code. It is up to the caller
// to determine if they want to check this.
//
// Returns 1 if c is larger, -1 if o is larger, 0 if equal
func (c Coin) Compare(o Coin) int {
	switch {
	case c.Amount > o.Amount:
		return 1
	case c.Amount < o.Amount:
		return -1
	default:
		return 0
	}
}

// Equals returns true if all fields are identical
func (c Coin) Equals(o Coin) bool {
	return c.Ticker == o.Ticker && c.Amount == o.Amount
}

// IsEmpty returns true on null or zero amount
func IsEmpty(c *Coin) bool {
	return c == nil || c.IsZero()
}

// IsZero returns true amounts are 0
func (c Coin) IsZero() bool {
	return c.Amount == 0
}

// IsPositive returns true if the value is greater than 0
func (c Coin) IsPositive() bool {
	return c.Amount > 0
}

// IsGTE returns true if c is same type and at least
// as large as o.
func (c Coin) IsGTE(o Coin) bool {
	return c.SameType(o) && c.Amount >= o.Amount
}

// SameType returns true if they have the same currency
func (c Coin) SameType(o Coin) bool {
	return c.Ticker == o.Ticker
}

// Clone provides an independent copy of a coin pointer
func (c *Coin) Clone() *Coin {
	if c == nil {
		return nil
	}
	return &Coin{
		Ticker: c.Ticker,
		Amount: c.Amount,
	}
}

// Validate ensures the ticker is well formed.
func (c Coin) Validate() error {
	if !IsCC(c.Ticker) {
		return errors.Wrapf(errors.ErrCurrency, "invalid currency: %s", c.Ticker)
	}
	return nil
}

// String provides a human readable representation of the coin,
// in smallest units: "<amount> <ticker>".
func (c Coin) String() string {
	s := strconv.FormatUint(c.Amount, 10)
	if c.Ticker != "" {
		s += " " + c.Ticker
	}
	return s
}

// MarshalBinary serializes the coin with protobuf.
func (c *Coin) MarshalBinary() ([]byte, error) {
	return proto.Marshal(c)
}

// UnmarshalBinary loads the coin from its protobuf form.
func (c *Coin) UnmarshalBinary(bz []byte) error {
	return proto.Unmarshal(bz, c)
}

// UnmarshalJSON accepts both the human readable "<amount> <ticker>" string
// and the struct form.
func (c *Coin) UnmarshalJSON(raw []byte) error {
	var human string
	if err := json.Unmarshal(raw, &human); err == nil {
		parsed, err := ParseHumanFormat(human)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	}

	// Because UnmarshalJSON method is provided, we can no longer
	// use Coin type for this.
	var coin struct {
		Ticker string `json:"ticker"`
		Amount uint64 `json:"amount"`
	}
	if err := json.Unmarshal(raw, &coin); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	c.Ticker = coin.Ticker
	c.Amount = coin.Amount
	return nil
}

var humanCoinFormatRx = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)\s*([A-Z][A-Z0-9]{2,7})\s*$`)

// ParseHumanFormat parses "<amount> <ticker>" where amount is an integer
// count of the smallest unit.
func ParseHumanFormat(h string) (Coin, error) {
	return ParseHuman(h, 0)
}

// ParseHuman parses "<amount> <ticker>" where amount may carry up to
// decimals fractional digits. The result is in smallest units, so
// ParseHuman("1.5 SOL", 9) is 1500000000 SOL.
func ParseHuman(h string, decimals int32) (Coin, error) {
	m := humanCoinFormatRx.FindStringSubmatch(h)
	if m == nil {
		return Coin{}, errors.Wrapf(errors.ErrInput, "invalid coin format: %q", h)
	}
	d, err := decimal.NewFromString(m[1])
	if err != nil {
		return Coin{}, errors.Wrapf(errors.ErrInput, "invalid amount: %s", err)
	}
	scaled := d.Shift(decimals)
	if !scaled.Equal(scaled.Truncate(0)) {
		return Coin{}, errors.Wrapf(errors.ErrAmount, "%s has more than %d decimals", m[1], decimals)
	}
	if scaled.GreaterThan(decimal.NewFromBigInt(new(big.Int).SetUint64(math.MaxUint64), 0)) {
		return Coin{}, errors.Wrapf(errors.ErrOverflow, "amount %s", m[1])
	}
	amount, err := strconv.ParseUint(scaled.String(), 10, 64)
	if err != nil {
		return Coin{}, errors.Wrapf(errors.ErrOverflow, "amount %s", m[1])
	}
	return Coin{Ticker: m[2], Amount: amount}, nil
}

// FormatHuman is the inverse of ParseHuman, trailing zeros are dropped.
func (c Coin) FormatHuman(decimals int32) string {
	d := decimal.NewFromBigInt(new(big.Int).SetUint64(c.Amount), -decimals)
	s := d.String()
	if c.Ticker != "" {
		s += " " + strings.TrimSpace(c.Ticker)
	}
	return s
}

// Set updates this coin value to what is provided. This method implements
// flag.Value interface.
func (c *Coin) Set(raw string) error {
	val, err := ParseHumanFormat(raw)
	if err != nil {
		return err
	}
	*c = val
	return nil
}
