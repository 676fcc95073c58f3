package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/custodylabs/custody/x/cash"
)

func cmdSendTokens(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction for transferring funds from the source to the destination
account. The amount is given as "<amount> <ticker>".
`)
		fl.PrintDefaults()
	}
	var (
		srcFl    = flAddress(fl, "src", "", "A source account address that the founds are send from. Required.")
		dstFl    = flAddress(fl, "dst", "", "A destination account address that the founds are send to. Required.")
		amountFl = flCoin(fl, "amount", "", "An amount that is to be transferred, for example \"100 SOL\". Required.")
		memoFl   = fl.String("memo", "", "A short message attached to the transfer.")
	)
	fl.Parse(args)

	msg := &cash.SendMsg{
		Source:      *srcFl,
		Destination: *dstFl,
		Amount:      amountFl,
		Memo:        *memoFl,
	}
	return writeMsg(output, msg)
}
