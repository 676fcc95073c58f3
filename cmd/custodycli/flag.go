package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/custodylabs/custody"
	"github.com/custodylabs/custody/coin"
)

// flAddress returns a value that is being initialized with given default value
// and optionally overwritten by a command line argument if provided. This
// function follows Go's flag package convention.
// If given value cannot be deserialized to required type, process is
// terminated.
func flAddress(fl *flag.FlagSet, name, defaultVal, usage string) *custody.Address {
	var a custody.Address
	if defaultVal != "" {
		var err error
		a, err = custody.ParseAddress(defaultVal)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot parse %q custody.Address flag value. %s", name, err)
			os.Exit(2)
		}
	}
	fl.Var((*addressValue)(&a), name, usage)
	return &a
}

type addressValue custody.Address

func (a addressValue) String() string {
	return custody.Address(a).String()
}

func (a *addressValue) Set(raw string) error {
	val, err := custody.ParseAddress(raw)
	if err != nil {
		return err
	}
	*a = addressValue(val)
	return nil
}

// flCoin returns a value that is being initialized with given default value
// and optionally overwritten by a command line argument if provided. This
// function follows Go's flag package convention.
// If given value cannot be deserialized to required type, process is
// terminated.
func flCoin(fl *flag.FlagSet, name, defaultVal, usage string) *coin.Coin {
	var c coin.Coin
	if defaultVal != "" {
		var err error
		c, err = coin.ParseHumanFormat(defaultVal)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot parse %q coin.Coin flag value. %s", name, err)
			os.Exit(2)
		}
	}
	fl.Var(&c, name, usage)
	return &c
}
