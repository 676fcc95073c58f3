package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/custodylabs/custody/x/escrow"
)

func cmdEscrowMake(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction that opens an escrow. The deposit of mint A is moved into
custody at once and anyone paying the receive amount of mint B can take it.
`)
		fl.PrintDefaults()
	}
	var (
		makerFl   = flAddress(fl, "maker", "", "Maker of the escrow. Required.")
		seedFl    = fl.Uint64("seed", 0, "Seed distinguishing escrows of one maker.")
		depositFl = fl.Uint64("deposit", 0, "Amount of mint A placed in custody.")
		receiveFl = fl.Uint64("receive", 0, "Amount of mint B the maker asks for.")
		mintAFl   = fl.String("mint-a", "", "Ticker offered by the maker.")
		mintBFl   = fl.String("mint-b", "", "Ticker requested by the maker.")
	)
	fl.Parse(args)

	msg := &escrow.MakeMsg{
		Maker:   *makerFl,
		Seed:    *seedFl,
		Deposit: *depositFl,
		Receive: *receiveFl,
		MintA:   *mintAFl,
		MintB:   *mintBFl,
	}
	return writeMsg(output, msg)
}

func cmdEscrowTake(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction that settles an escrow. The taker pays the requested
amount to the maker and receives everything held in custody. Both tickers must
match the escrow.
`)
		fl.PrintDefaults()
	}
	var (
		takerFl = flAddress(fl, "taker", "", "Taker paying for the escrow. Required.")
		makerFl = flAddress(fl, "maker", "", "Maker of the escrow. Required.")
		seedFl  = fl.Uint64("seed", 0, "Seed of the escrow.")
		mintAFl = fl.String("mint-a", "", "Ticker held in custody.")
		mintBFl = fl.String("mint-b", "", "Ticker paid to the maker.")
	)
	fl.Parse(args)

	msg := &escrow.TakeMsg{
		Taker: *takerFl,
		Maker: *makerFl,
		Seed:  *seedFl,
		MintA: *mintAFl,
		MintB: *mintBFl,
	}
	return writeMsg(output, msg)
}

func cmdEscrowClose(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction that refunds an open escrow to its maker.
`)
		fl.PrintDefaults()
	}
	var (
		makerFl = flAddress(fl, "maker", "", "Maker of the escrow. Required.")
		seedFl  = fl.Uint64("seed", 0, "Seed of the escrow.")
	)
	fl.Parse(args)

	return writeMsg(output, &escrow.CloseMsg{Maker: *makerFl, Seed: *seedFl})
}
