package main

import (
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/custodylabs/custody/crypto"
	"golang.org/x/crypto/ed25519"
)

func cmdKeygen(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Generate a new private key.

When successful a new file with binary content containing private key is
created. This command fails if the private key file already exists.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", defaultKeyPath(),
			"Path to the private key file. You can use CUSTODYCLI_PRIV_KEY environment variable to set it.")
	)
	fl.Parse(args)

	if _, err := os.Stat(*keyPathFl); !os.IsNotExist(err) {
		// Do not allow to overwrite already existing private key. User
		// must manually delete it first to ensure we do not delete
		// such crucial data by an accident (bad command usage).
		return fmt.Errorf("private key file %q already exists, delete this file and try again", *keyPathFl)
	}

	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		return fmt.Errorf("cannot generate ed25519 key: %s", err)
	}

	fd, err := os.OpenFile(*keyPathFl, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0600)
	if err != nil {
		return fmt.Errorf("cannot create private key file: %s", err)
	}
	defer fd.Close()

	if _, err := fd.Write(priv); err != nil {
		return fmt.Errorf("cannot write private key: %s", err)
	}
	if err := fd.Close(); err != nil {
		return fmt.Errorf("cannot close private key file: %s", err)
	}
	return nil
}

func cmdKeyaddr(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print out the hex and bech32 address associated with your private key.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", defaultKeyPath(),
			"Path to the private key file. You can use CUSTODYCLI_PRIV_KEY environment variable to set it.")
	)
	fl.Parse(args)

	key, err := decodePrivateKey(*keyPathFl)
	if err != nil {
		return err
	}
	addr := key.PublicKey().Address()
	b32, err := addr.Bech32()
	if err != nil {
		return fmt.Errorf("cannot encode address: %s", err)
	}
	_, err = fmt.Fprintf(output, "%s\n%s\n", addr, b32)
	return err
}

func decodePrivateKey(filepath string) (*crypto.PrivateKey, error) {
	data, err := ioutil.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("cannot read %q file: %s", filepath, err)
	}
	if len(data) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("invalid private key length: %d", len(data))
	}
	return &crypto.PrivateKey{Ed25519: data}, nil
}
