package gconf

import (
	"encoding/json"
	"testing"

	"github.com/custodylabs/custody"
	"github.com/custodylabs/custody/errors"
	"github.com/custodylabs/custody/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testConf stores a single ticker as raw bytes.
type testConf struct {
	Value string `json:"value"`
}

func (c *testConf) MarshalBinary() ([]byte, error) { return []byte(c.Value), nil }

func (c *testConf) UnmarshalBinary(raw []byte) error {
	c.Value = string(raw)
	return nil
}

func (c *testConf) Validate() error {
	if c.Value == "" {
		return errors.Wrap(errors.ErrEmpty, "value")
	}
	return nil
}

func TestSaveLoad(t *testing.T) {
	db := store.MemStore()

	var missing testConf
	err := Load(db, "test", &missing)
	assert.True(t, errors.ErrNotFound.Is(err))

	err = Save(db, "test", &testConf{})
	assert.True(t, errors.ErrEmpty.Is(err))

	require.NoError(t, Save(db, "test", &testConf{Value: "SOL"}))
	var got testConf
	require.NoError(t, Load(db, "test", &got))
	assert.Equal(t, "SOL", got.Value)
}

func TestInitConfig(t *testing.T) {
	cases := map[string]struct {
		opts    custody.Options
		want    string
		wantErr *errors.Error
	}{
		"default kept": {
			opts: custody.Options{},
			want: "SOL",
		},
		"from genesis": {
			opts: custody.Options{"test_conf": json.RawMessage(`{"value": "TOKA"}`)},
			want: "TOKA",
		},
		"invalid json": {
			opts:    custody.Options{"test_conf": json.RawMessage(`[1, 2]`)},
			wantErr: errors.ErrInput,
		},
		"invalid value": {
			opts:    custody.Options{"test_conf": json.RawMessage(`{"value": ""}`)},
			wantErr: errors.ErrEmpty,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			conf := &testConf{Value: "SOL"}
			err := InitConfig(db, tc.opts, "test", conf)
			if tc.wantErr != nil {
				require.True(t, tc.wantErr.Is(err), "got %+v", err)
				return
			}
			require.NoError(t, err)

			var got testConf
			require.NoError(t, Load(db, "test", &got))
			assert.Equal(t, tc.want, got.Value)
		})
	}
}
