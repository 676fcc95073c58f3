package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/custodylabs/custody/x/sigs"
)

func cmdSignTransaction(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Sign given transaction. This is decoding a transaction data from standard
input, adds a signature and writes back to standard output signed transaction
content. The chain id and the next sequence of the signer are read from the
node.
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl = fl.String("tm", defaultNodeAddr(),
			"Tendermint node address. You can use CUSTODY_TM_ADDR environment variable to set it.")
		keyPathFl = fl.String("key", defaultKeyPath(),
			"Path to the private key file that transaction should be signed with. You can use CUSTODYCLI_PRIV_KEY environment variable to set it.")
	)
	fl.Parse(args)

	if *keyPathFl == "" {
		return errors.New("private key is required")
	}
	key, err := decodePrivateKey(*keyPathFl)
	if err != nil {
		return fmt.Errorf("cannot load private key: %s", err)
	}

	tx, _, err := readTx(input)
	if err != nil {
		return fmt.Errorf("cannot read transaction: %s", err)
	}

	c := dial(*tmAddrFl)
	chainID, err := c.ChainID()
	if err != nil {
		return fmt.Errorf("cannot fetch chain id: %s", err)
	}
	seq, err := c.NextNonce(key.PublicKey().Address())
	if err != nil {
		return fmt.Errorf("cannot get the next sequence number: %s", err)
	}
	sig, err := sigs.SignTx(key, tx, chainID, seq)
	if err != nil {
		return fmt.Errorf("cannot sign transaction: %s", err)
	}
	tx.Signatures = append(tx.Signatures, sig)

	_, err = writeTx(output, tx)
	return err
}
