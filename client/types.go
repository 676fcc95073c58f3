package client

import (
	"github.com/custodylabs/custody"
	cmn "github.com/tendermint/tendermint/libs/common"
)

// TransactionID is the hash used to identify the transaction
type TransactionID = cmn.HexBytes

// CommitResult is returned from the block (DeliverTx)
// Result is only set on success codes, Err is set if it was a failure code
type CommitResult struct {
	ID     TransactionID
	Height int64
	Result *custody.DeliverResult
	Err    error
}

// Status is the current status of the node we connect to.
// Latest block height is a useful info
type Status struct {
	Height     int64
	CatchingUp bool
}
