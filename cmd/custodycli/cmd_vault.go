package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/custodylabs/custody"
	"github.com/custodylabs/custody/cmd/custodyd/app"
	"github.com/custodylabs/custody/x/vault"
)

func cmdVaultInit(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction that opens a vault for the owner. The transaction must be
signed by the owner.
`)
		fl.PrintDefaults()
	}
	var (
		ownerFl = flAddress(fl, "owner", "", "Owner of the vault. Required.")
	)
	fl.Parse(args)

	return writeMsg(output, &vault.InitializeMsg{Owner: *ownerFl})
}

func cmdVaultDeposit(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction that moves native coins from the owner into the holding
account of the vault. The amount is counted in the smallest unit.
`)
		fl.PrintDefaults()
	}
	var (
		ownerFl  = flAddress(fl, "owner", "", "Owner of the vault. Required.")
		amountFl = fl.Uint64("amount", 0, "Amount to deposit.")
	)
	fl.Parse(args)

	return writeMsg(output, &vault.DepositMsg{Owner: *ownerFl, Amount: *amountFl})
}

func cmdVaultWithdraw(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction that moves native coins from the holding account of the
vault back to the owner. The amount is counted in the smallest unit.
`)
		fl.PrintDefaults()
	}
	var (
		ownerFl  = flAddress(fl, "owner", "", "Owner of the vault. Required.")
		amountFl = fl.Uint64("amount", 0, "Amount to withdraw.")
	)
	fl.Parse(args)

	return writeMsg(output, &vault.WithdrawMsg{Owner: *ownerFl, Amount: *amountFl})
}

func cmdVaultClose(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction that pays out the whole holding account to the owner and
removes the vault.
`)
		fl.PrintDefaults()
	}
	var (
		ownerFl = flAddress(fl, "owner", "", "Owner of the vault. Required.")
	)
	fl.Parse(args)

	return writeMsg(output, &vault.CloseMsg{Owner: *ownerFl})
}

// writeMsg validates msg and writes an unsigned transaction carrying it.
func writeMsg(output io.Writer, msg custody.Msg) error {
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("invalid message: %s", err)
	}
	tx := &app.Tx{}
	if err := tx.SetMsg(msg); err != nil {
		return err
	}
	_, err := writeTx(output, tx)
	return err
}
