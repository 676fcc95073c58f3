package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/custodylabs/custody/x/escrow"
	"github.com/custodylabs/custody/x/vault"
)

func cmdDerive(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the program owned addresses of a vault or an escrow, together with the
canonical bump of each. No node is contacted.

For a vault provide -owner, for an escrow provide -maker and -seed.
`)
		fl.PrintDefaults()
	}
	var (
		ownerFl = flAddress(fl, "owner", "", "Owner of the vault.")
		makerFl = flAddress(fl, "maker", "", "Maker of the escrow.")
		seedFl  = fl.Uint64("seed", 0, "Seed chosen by the maker of the escrow.")
	)
	fl.Parse(args)

	switch {
	case len(*ownerFl) != 0 && len(*makerFl) != 0:
		return fmt.Errorf("-owner and -maker cannot be used together")
	case len(*ownerFl) != 0:
		state, stateBump, err := vault.StateAddress(*ownerFl)
		if err != nil {
			return err
		}
		holding, holdingBump, err := vault.HoldingAddress(state)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(output, "%-8s %s bump %d\n%-8s %s bump %d\n", "state", state, stateBump, "holding", holding, holdingBump)
		return err
	case len(*makerFl) != 0:
		addr, bump, err := escrow.EscrowAddress(*makerFl, *seedFl)
		if err != nil {
			return err
		}
		holder, err := escrow.CustodyAddress(addr)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(output, "%-8s %s bump %d\n%-8s %s\n", "escrow", addr, bump, "custody", holder)
		return err
	default:
		return fmt.Errorf("either -owner or -maker is required")
	}
}
