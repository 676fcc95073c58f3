package main

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/custodylabs/custody/client"
	"github.com/custodylabs/custody/cmd/custodyd/app"
	"github.com/custodylabs/custody/errors"
)

// writeTx serialize the transaction using a protocol buffer. First bytes
// written contain the information how much space the transaction takes.
// Size information is required to be able to stream the messages:
// https://developers.google.com/protocol-buffers/docs/techniques#streaming
func writeTx(w io.Writer, tx *app.Tx) (int, error) {
	b, err := tx.MarshalBinary()
	if err != nil {
		return 0, err
	}

	var size [txHeaderSize]byte
	binary.BigEndian.PutUint32(size[:], uint32(len(b)))

	if n, err := w.Write(size[:]); err != nil {
		return n, err
	}
	if n, err := w.Write(b); err != nil {
		return n + txHeaderSize, err
	}
	return txHeaderSize + len(b), nil
}

func readTx(r io.Reader) (*app.Tx, int, error) {
	// When serialized using writeTx function, first bytes contain
	// information about the actual size of the transaction message.
	var size [txHeaderSize]byte
	if n, err := io.ReadFull(r, size[:]); err != nil {
		if err == io.EOF {
			return nil, n, errors.Wrap(errors.ErrEmpty, "no input data")
		}
		return nil, n, errors.Wrap(errors.ErrInput, err.Error())
	}
	msgSize := binary.BigEndian.Uint32(size[:])
	if msgSize > maxTxSize {
		return nil, txHeaderSize, errors.Wrapf(errors.ErrInput, "transaction of %d bytes", msgSize)
	}
	raw := make([]byte, msgSize)
	if n, err := io.ReadFull(r, raw); err != nil {
		return nil, n + txHeaderSize, errors.Wrap(errors.ErrInput, err.Error())
	}

	var tx app.Tx
	if err := tx.UnmarshalBinary(raw); err != nil {
		return nil, int(msgSize + txHeaderSize), err
	}
	return &tx, int(msgSize + txHeaderSize), nil
}

const (
	txHeaderSize = 4
	maxTxSize    = 1 << 20
)

// dial returns a client connected to the node at addr. Tests replace it to
// run against an in process application.
var dial = func(addr string) *client.Client {
	return client.NewClient(client.NewHTTPConnection(addr))
}

// env returns the value of an environment variable if provided (even if empty)
// or a fallback value.
func env(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return fallback
}

func defaultKeyPath() string {
	return env("CUSTODYCLI_PRIV_KEY", os.Getenv("HOME")+"/.custody.priv.key")
}

func defaultNodeAddr() string {
	return env("CUSTODY_TM_ADDR", "http://localhost:26657")
}
