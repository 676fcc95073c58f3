package coin

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/custodylabs/custody/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoinArithmetic(t *testing.T) {
	cases := map[string]struct {
		a, b    Coin
		add     Coin
		addErr  *errors.Error
		sub     Coin
		subErr  *errors.Error
		compare int
	}{
		"same ticker": {
			a: NewCoin(1000, "SOL"), b: NewCoin(400, "SOL"),
			add: NewCoin(1400, "SOL"), sub: NewCoin(600, "SOL"), compare: 1,
		},
		"subtract everything": {
			a: NewCoin(500, "TOKA"), b: NewCoin(500, "TOKA"),
			add: NewCoin(1000, "TOKA"), sub: NewCoin(0, "TOKA"), compare: 0,
		},
		"insufficient": {
			a: NewCoin(5, "SOL"), b: NewCoin(6, "SOL"),
			add: NewCoin(11, "SOL"), subErr: errors.ErrInsufficientAmount, compare: -1,
		},
		"different tickers": {
			a: NewCoin(5, "SOL"), b: NewCoin(1, "TOKB"),
			addErr: errors.ErrCurrency, subErr: errors.ErrCurrency, compare: 1,
		},
		"overflow": {
			a: NewCoin(math.MaxUint64, "SOL"), b: NewCoin(1, "SOL"),
			addErr: errors.ErrOverflow, sub: NewCoin(math.MaxUint64-1, "SOL"), compare: 1,
		},
		"zero without ticker is neutral": {
			a: Coin{}, b: NewCoin(7, "SOL"),
			add: NewCoin(7, "SOL"), subErr: errors.ErrCurrency, compare: -1,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			sum, err := tc.a.Add(tc.b)
			if tc.addErr != nil {
				require.True(t, tc.addErr.Is(err), "got %v", err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.add, sum)
			}

			diff, err := tc.a.Subtract(tc.b)
			if tc.subErr != nil {
				require.True(t, tc.subErr.Is(err), "got %v", err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.sub, diff)
			}

			assert.Equal(t, tc.compare, tc.a.Compare(tc.b))
		})
	}
}

func TestCoinValidate(t *testing.T) {
	cases := map[string]struct {
		coin    Coin
		wantErr bool
	}{
		"native":           {coin: NewCoin(1, "SOL")},
		"eight characters": {coin: NewCoin(1, "TOKEN123")},
		"zero is valid":    {coin: NewCoin(0, "SOL")},
		"lowercase":        {coin: NewCoin(1, "sol"), wantErr: true},
		"too long":         {coin: NewCoin(1, "TOKEN1234"), wantErr: true},
		"too short":        {coin: NewCoin(1, "SO"), wantErr: true},
		"no ticker":        {coin: NewCoin(1, ""), wantErr: true},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.coin.Validate()
			if tc.wantErr {
				assert.True(t, errors.ErrCurrency.Is(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseHuman(t *testing.T) {
	cases := map[string]struct {
		input    string
		decimals int32
		want     Coin
		wantErr  *errors.Error
	}{
		"integer":              {input: "1000 SOL", want: NewCoin(1000, "SOL")},
		"no space":             {input: "42TOKA", want: NewCoin(42, "TOKA")},
		"fraction with scale":  {input: "1.5 SOL", decimals: 9, want: NewCoin(1500000000, "SOL")},
		"trailing zeros":       {input: "0.100 SOL", decimals: 3, want: NewCoin(100, "SOL")},
		"too many decimals":    {input: "1.0001 SOL", decimals: 3, wantErr: errors.ErrAmount},
		"fraction unscaled":    {input: "1.5 SOL", wantErr: errors.ErrAmount},
		"max":                  {input: "18446744073709551615 SOL", want: NewCoin(math.MaxUint64, "SOL")},
		"overflow":             {input: "18446744073709551616 SOL", wantErr: errors.ErrOverflow},
		"negative":             {input: "-1 SOL", wantErr: errors.ErrInput},
		"missing ticker":       {input: "12", wantErr: errors.ErrInput},
		"lowercase ticker":     {input: "12 sol", wantErr: errors.ErrInput},
		"garbage":              {input: "one SOL", wantErr: errors.ErrInput},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := ParseHuman(tc.input, tc.decimals)
			if tc.wantErr != nil {
				require.True(t, tc.wantErr.Is(err), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFormatHuman(t *testing.T) {
	assert.Equal(t, "1.5 SOL", NewCoin(1500000000, "SOL").FormatHuman(9))
	assert.Equal(t, "600 SOL", NewCoin(600, "SOL").FormatHuman(0))
	assert.Equal(t, "0 TOKA", NewCoin(0, "TOKA").FormatHuman(6))
}

func TestCoinJSON(t *testing.T) {
	var human Coin
	require.NoError(t, json.Unmarshal([]byte(`"250 TOKB"`), &human))
	assert.Equal(t, NewCoin(250, "TOKB"), human)

	var object Coin
	require.NoError(t, json.Unmarshal([]byte(`{"ticker":"SOL","amount":9}`), &object))
	assert.Equal(t, NewCoin(9, "SOL"), object)

	var bad Coin
	assert.Error(t, json.Unmarshal([]byte(`"many SOL"`), &bad))
}

func TestCoinBinary(t *testing.T) {
	c := NewCoin(123456789, "TOKA")
	bz, err := c.MarshalBinary()
	require.NoError(t, err)

	var read Coin
	require.NoError(t, read.UnmarshalBinary(bz))
	assert.Equal(t, c, read)
}
