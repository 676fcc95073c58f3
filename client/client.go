/*
Package client reads state from and submits transactions to a custody node
over the tendermint rpc.
*/
package client

import (
	"github.com/custodylabs/custody"
	"github.com/custodylabs/custody/app"
	"github.com/custodylabs/custody/errors"
)

// Client is a tendermint client wrapped to provide
// simple access to the basic data structures used in custody
//
// Basic accessors are declared here. Accessors for the custody
// programs are defined in custody.go
type Client struct {
	conn Conn
}

// NewClient wraps a Client around an existing tendermint client connection.
func NewClient(conn Conn) *Client {
	return &Client{conn: conn}
}

// Status returns current height and other (subjective) status info from this node
func (c *Client) Status() (*Status, error) {
	status, err := c.conn.Status()
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "status: %s", err)
	}
	return &Status{
		Height:     status.SyncInfo.LatestBlockHeight,
		CatchingUp: status.SyncInfo.CatchingUp,
	}, nil
}

// ChainID returns the chain id declared in the genesis of the node.
func (c *Client) ChainID() (string, error) {
	gen, err := c.conn.Genesis()
	if err != nil {
		return "", errors.Wrapf(errors.ErrNetwork, "genesis: %s", err)
	}
	if gen.Genesis == nil {
		return "", errors.Wrap(errors.ErrNetwork, "no genesis")
	}
	return gen.Genesis.ChainID, nil
}

// Query runs an abci query and returns all models found. A miss is an
// empty result, not an error.
func (c *Client) Query(path string, data []byte) ([]custody.Model, error) {
	res, err := c.conn.ABCIQuery(path, data)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "query %s: %s", path, err)
	}
	resp := res.Response
	if resp.IsErr() {
		return nil, errors.ABCIError(resp.Code, resp.Log)
	}
	if len(resp.Key) == 0 {
		return nil, nil
	}

	var keys, vals app.ResultSet
	if err := keys.UnmarshalBinary(resp.Key); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal keys")
	}
	if err := vals.UnmarshalBinary(resp.Value); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal values")
	}
	return app.JoinResults(&keys, &vals)
}

// SubmitTx will submit the tx to the mempool and then return with success
// or error. The transaction is not yet in a block when this returns.
func (c *Client) SubmitTx(tx custody.Tx) (TransactionID, error) {
	bz, err := tx.MarshalBinary()
	if err != nil {
		return nil, errors.Wrapf(errors.ErrMsg, "marshaling: %s", err)
	}
	res, err := c.conn.BroadcastTxSync(bz)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "submit tx: %s", err)
	}

	// a checktx error is handled like any other error... didn't make it into mempool... will not make it into block
	if res.Code != 0 {
		return nil, errors.ABCIError(res.Code, res.Log)
	}
	return res.Hash, nil
}

// CommitTx will block on both Check and Deliver, returning when it is in a block
func (c *Client) CommitTx(tx custody.Tx) (*CommitResult, error) {
	bz, err := tx.MarshalBinary()
	if err != nil {
		return nil, errors.Wrapf(errors.ErrMsg, "marshaling: %s", err)
	}
	res, err := c.conn.BroadcastTxCommit(bz)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "commit tx: %s", err)
	}
	if res.CheckTx.IsErr() {
		return nil, errors.ABCIError(res.CheckTx.Code, res.CheckTx.Log)
	}
	result, err := custody.ParseDeliverOrError(res.DeliverTx)
	return &CommitResult{
		ID:     res.Hash,
		Height: res.Height,
		Result: result,
		Err:    err,
	}, nil
}
