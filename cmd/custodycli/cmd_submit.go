package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/custodylabs/custody"
)

func cmdSubmitTransaction(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Read binary serialized transaction from standard input and submit it.

Make sure to collect enough signatures before submitting the transaction. The
command waits until the transaction is in a block.
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl = fl.String("tm", defaultNodeAddr(),
			"Tendermint node address. You can use CUSTODY_TM_ADDR environment variable to set it.")
	)
	fl.Parse(args)

	tx, _, err := readTx(input)
	if err != nil {
		return fmt.Errorf("cannot read transaction: %s", err)
	}

	res, err := dial(*tmAddrFl).CommitTx(tx)
	if err != nil {
		return fmt.Errorf("cannot submit transaction: %s", err)
	}
	if res.Err != nil {
		return fmt.Errorf("transaction %X failed in block %d: %s", res.ID, res.Height, res.Err)
	}

	fmt.Fprintf(output, "Transaction %X included in block %d\n", res.ID, res.Height)
	if len(res.Result.Data) != 0 {
		if msg, err := tx.GetMsg(); err == nil && hasAddressData(msg) {
			fmt.Fprintf(output, "Address: %s\n", custody.Address(res.Result.Data))
		} else {
			fmt.Fprintf(output, "Data: %X\n", res.Result.Data)
		}
	}
	if res.Result.Log != "" {
		fmt.Fprintf(output, "Log: %s\n", res.Result.Log)
	}
	return nil
}

// hasAddressData is true for messages that return the created account.
func hasAddressData(msg custody.Msg) bool {
	switch msg.Path() {
	case "vault/initialize", "escrow/make":
		return true
	}
	return false
}
