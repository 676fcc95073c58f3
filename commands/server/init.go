package server

import (
	"encoding/json"
	"path/filepath"

	"github.com/custodylabs/custody/app"
	"github.com/custodylabs/custody/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// GenOptions can parse command-line and flag to
// generate default app_state for the genesis file.
// This is application-specific
type GenOptions func(args []string) (json.RawMessage, error)

// GenesisPath returns where tendermint keeps the genesis file for home.
func GenesisPath(home string) string {
	return filepath.Join(home, "config", "genesis.json")
}

// InitCmd adds the application state to a genesis file created by
// tendermint init, and writes a default node configuration if none
// exists yet.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	state, err := gen(args)
	if err != nil {
		return err
	}
	genFile := GenesisPath(home)
	if err := app.UpdateGenesisFile(genFile, state); err != nil {
		return errors.Wrapf(err, "genesis %s", genFile)
	}
	logger.Info("App state written to genesis", "path", genFile)

	written, err := WriteConfig(home, DefaultConfig())
	if err != nil {
		return err
	}
	if written {
		logger.Info("Default configuration written", "path", ConfigPath(home))
	}
	return nil
}
