package client

import (
	cmn "github.com/tendermint/tendermint/libs/common"
	rpcclient "github.com/tendermint/tendermint/rpc/client"
	ctypes "github.com/tendermint/tendermint/rpc/core/types"
	tmtypes "github.com/tendermint/tendermint/types"
)

// Conn is the part of the tendermint rpc client this package relies on.
type Conn interface {
	Status() (*ctypes.ResultStatus, error)
	Genesis() (*ctypes.ResultGenesis, error)
	ABCIQuery(path string, data cmn.HexBytes) (*ctypes.ResultABCIQuery, error)
	BroadcastTxSync(tx tmtypes.Tx) (*ctypes.ResultBroadcastTx, error)
	BroadcastTxCommit(tx tmtypes.Tx) (*ctypes.ResultBroadcastTxCommit, error)
}

var _ Conn = (*rpcclient.HTTP)(nil)

// NewHTTPConnection takes a URL and sends all requests to the remote node
func NewHTTPConnection(remote string) Conn {
	return rpcclient.NewHTTP(remote, "/websocket")
}
