package cash

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/custodylabs/custody"
	"github.com/custodylabs/custody/coin"
	"github.com/custodylabs/custody/errors"
	"github.com/custodylabs/custody/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenesis(t *testing.T) {
	addr := custody.NewAddress([]byte("genesis-holder"))

	cases := map[string]struct {
		opts       string
		wantErr    *errors.Error
		wantNative string
		wantCoins  coin.Coins
	}{
		"defaults": {
			opts:       `{}`,
			wantNative: DefaultNative,
		},
		"accounts with human coins": {
			opts: `{
				"cash": [{"address": "` + addr.String() + `", "coins": ["1000 SOL", {"ticker": "TOKA", "amount": 5}]}],
				"cash_conf": {"native": "LAM"}
			}`,
			wantNative: "LAM",
			wantCoins:  coin.Coins{coin.NewCoinp(1000, "SOL"), coin.NewCoinp(5, "TOKA")},
		},
		"invalid native": {
			opts:    `{"cash_conf": {"native": "x"}}`,
			wantErr: errors.ErrCurrency,
		},
		"invalid address": {
			opts:    `{"cash": [{"address": "", "coins": ["1 SOL"]}]}`,
			wantErr: errors.ErrEmpty,
		},
		"address hex encoded twice": {
			opts:    `{"cash": [{"address": "` + fmt.Sprintf("%X", addr) + `", "coins": ["1 SOL"]}]}`,
			wantErr: errors.ErrInput,
		},
		"invalid coin": {
			opts:    `{"cash": [{"address": "` + addr.String() + `", "coins": ["1 so"]}]}`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts custody.Options
			require.NoError(t, json.Unmarshal([]byte(tc.opts), &opts))

			db := store.MemStore()
			err := Initializer{}.FromGenesis(opts, db)
			if tc.wantErr != nil {
				require.True(t, tc.wantErr.Is(err), "got %+v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantNative, NativeTicker(db))

			if tc.wantCoins != nil {
				ctrl := NewController(NewBucket())
				assertBalance(t, ctrl, db, addr, tc.wantCoins)
			}
		})
	}
}

func TestNativeTickerPanicsWithoutGenesis(t *testing.T) {
	assert.Panics(t, func() { NativeTicker(store.MemStore()) })
}
