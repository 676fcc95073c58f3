package client

import (
	"sync"

	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	ctypes "github.com/tendermint/tendermint/rpc/core/types"
	tmtypes "github.com/tendermint/tendermint/types"
)

// AppConnection runs an application in process. Every committed
// transaction is placed in a block of its own. It is meant for tests and
// tooling that do not need a consensus engine.
type AppConnection struct {
	mu      sync.Mutex
	app     abci.Application
	chainID string
	height  int64
}

var _ Conn = (*AppConnection)(nil)

// NewAppConnection wraps app that was already initialized for chainID.
func NewAppConnection(app abci.Application, chainID string) *AppConnection {
	info := app.Info(abci.RequestInfo{})
	return &AppConnection{
		app:     app,
		chainID: chainID,
		height:  info.LastBlockHeight,
	}
}

// Status returns the height of the last committed block.
func (c *AppConnection) Status() (*ctypes.ResultStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return &ctypes.ResultStatus{
		SyncInfo: ctypes.SyncInfo{LatestBlockHeight: c.height},
	}, nil
}

// Genesis returns a document carrying only the chain id.
func (c *AppConnection) Genesis() (*ctypes.ResultGenesis, error) {
	return &ctypes.ResultGenesis{
		Genesis: &tmtypes.GenesisDoc{ChainID: c.chainID},
	}, nil
}

// ABCIQuery forwards the query to the application.
func (c *AppConnection) ABCIQuery(path string, data cmn.HexBytes) (*ctypes.ResultABCIQuery, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	res := c.app.Query(abci.RequestQuery{Path: path, Data: data})
	return &ctypes.ResultABCIQuery{Response: res}, nil
}

// BroadcastTxSync runs only the check step.
func (c *AppConnection) BroadcastTxSync(tx tmtypes.Tx) (*ctypes.ResultBroadcastTx, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	res := c.app.CheckTx(tx)
	return &ctypes.ResultBroadcastTx{
		Code: res.Code,
		Data: res.Data,
		Log:  res.Log,
		Hash: tx.Hash(),
	}, nil
}

// BroadcastTxCommit checks the transaction and, if it passes, delivers it
// in a new block.
func (c *AppConnection) BroadcastTxCommit(tx tmtypes.Tx) (*ctypes.ResultBroadcastTxCommit, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	res := &ctypes.ResultBroadcastTxCommit{Hash: tx.Hash()}
	res.CheckTx = c.app.CheckTx(tx)
	if res.CheckTx.IsErr() {
		return res, nil
	}

	c.height++
	c.app.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: c.height, ChainID: c.chainID}})
	res.DeliverTx = c.app.DeliverTx(tx)
	c.app.EndBlock(abci.RequestEndBlock{Height: c.height})
	c.app.Commit()
	res.Height = c.height
	return res, nil
}
