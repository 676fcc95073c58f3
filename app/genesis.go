package app

import (
	"encoding/json"
	"io/ioutil"

	"github.com/custodylabs/custody"
	"github.com/custodylabs/custody/errors"
)

// Genesis is the part of the tendermint genesis file this application
// reads. Every other field is kept untouched by UpdateGenesisFile.
type Genesis struct {
	ChainID  string          `json:"chain_id"`
	AppState custody.Options `json:"app_state"`
}

// LoadGenesis reads the chain id and application state from a genesis file.
func LoadGenesis(path string) (Genesis, error) {
	var gen Genesis
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return gen, errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := json.Unmarshal(raw, &gen); err != nil {
		return gen, errors.Wrapf(errors.ErrInput, "genesis file: %s", err)
	}
	return gen, nil
}

// UpdateGenesisFile writes the application state into an existing genesis
// file. It refuses to overwrite a non-empty state.
func UpdateGenesisFile(path string, appState json.RawMessage) error {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return errors.Wrapf(errors.ErrInput, "genesis file: %s", err)
	}
	if s, ok := doc["app_state"]; ok && len(s) > 0 && string(s) != "null" && string(s) != "{}" {
		return errors.Wrap(errors.ErrDuplicate, "app_state already set in genesis file")
	}
	doc["app_state"] = appState

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := ioutil.WriteFile(path, out, 0600); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}
