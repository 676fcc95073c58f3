package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/custodylabs/custody/x/vault"
)

func cmdBalance(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print all coins held by an account.
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl = fl.String("tm", defaultNodeAddr(),
			"Tendermint node address. You can use CUSTODY_TM_ADDR environment variable to set it.")
		addrFl = flAddress(fl, "addr", "", "Account address. Required.")
	)
	fl.Parse(args)

	coins, err := dial(*tmAddrFl).Balance(*addrFl)
	if err != nil {
		return fmt.Errorf("cannot query balance: %s", err)
	}
	if len(coins) == 0 {
		_, err = fmt.Fprintln(output, "empty")
		return err
	}
	for _, c := range coins {
		if _, err := fmt.Fprintln(output, c); err != nil {
			return err
		}
	}
	return nil
}

func cmdVaultShow(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the vault of an owner together with the balance of its holding account.
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl = fl.String("tm", defaultNodeAddr(),
			"Tendermint node address. You can use CUSTODY_TM_ADDR environment variable to set it.")
		ownerFl = flAddress(fl, "owner", "", "Owner of the vault. Required.")
	)
	fl.Parse(args)

	c := dial(*tmAddrFl)
	stateAddr, state, err := c.Vault(*ownerFl)
	if err != nil {
		return fmt.Errorf("cannot query vault: %s", err)
	}
	holding, _, err := vault.HoldingAddress(stateAddr)
	if err != nil {
		return err
	}
	coins, err := c.Balance(holding)
	if err != nil {
		return fmt.Errorf("cannot query holding balance: %s", err)
	}
	held := make([]string, len(coins))
	for i, cn := range coins {
		held[i] = cn.String()
	}
	_, err = fmt.Fprintf(output, "state    %s bump %d\nholding  %s bump %d\nbalance  %s\n",
		stateAddr, state.StateBump, holding, state.VaultBump, strings.Join(held, ", "))
	return err
}

func cmdEscrowShow(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print open escrows of a maker. With -seed only that escrow is printed.
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl = fl.String("tm", defaultNodeAddr(),
			"Tendermint node address. You can use CUSTODY_TM_ADDR environment variable to set it.")
		makerFl = flAddress(fl, "maker", "", "Maker of the escrows. Required.")
		seedFl  = fl.Int64("seed", -1, "Seed of a single escrow.")
	)
	fl.Parse(args)

	c := dial(*tmAddrFl)
	if *seedFl >= 0 {
		e, err := c.Escrow(*makerFl, uint64(*seedFl))
		if err != nil {
			return fmt.Errorf("cannot query escrow: %s", err)
		}
		_, err = fmt.Fprintf(output, "seed %d: offers %s for %d %s\n", e.Seed, e.MintA, e.Receive, e.MintB)
		return err
	}

	all, err := c.Escrows(*makerFl)
	if err != nil {
		return fmt.Errorf("cannot query escrows: %s", err)
	}
	for _, e := range all {
		if _, err := fmt.Fprintf(output, "seed %d: offers %s for %d %s\n", e.Seed, e.MintA, e.Receive, e.MintB); err != nil {
			return err
		}
	}
	return nil
}
