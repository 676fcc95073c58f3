package escrow

import (
	"github.com/custodylabs/custody"
	"github.com/custodylabs/custody/coin"
	"github.com/custodylabs/custody/errors"
	"github.com/custodylabs/custody/orm"
	"github.com/custodylabs/custody/x"
	"github.com/custodylabs/custody/x/cash"
)

const (
	// pay escrow cost up-front
	makeEscrowCost  int64 = 300
	takeEscrowCost  int64 = 200
	closeEscrowCost int64 = 100
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r custody.Registry, auth x.Authenticator, bank cash.Controller) {
	bucket := NewBucket()
	r.Handle(pathMakeMsg, MakeEscrowHandler{auth: auth, bucket: bucket, bank: bank})
	r.Handle(pathTakeMsg, TakeEscrowHandler{auth: auth, bucket: bucket, bank: bank})
	r.Handle(pathCloseMsg, CloseEscrowHandler{auth: auth, bucket: bucket, bank: bank})
}

// RegisterQuery will register this bucket as "/escrows", and the maker
// index as "/escrows/maker"
func RegisterQuery(qr custody.QueryRouter) {
	NewBucket().Register("escrows", qr)
}

// MakeEscrowHandler opens an escrow and funds its custody account.
type MakeEscrowHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	bank   cash.Controller
}

var _ custody.Handler = MakeEscrowHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h MakeEscrowHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{GasAllocated: makeEscrowCost}, nil
}

// Deliver moves the deposit into custody and stores the escrow. The escrow
// address is returned as data.
func (h MakeEscrowHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	addr, bump, err := EscrowAddress(msg.Maker, msg.Seed)
	if err != nil {
		return nil, errors.Wrap(err, "escrow account")
	}
	switch err := h.bucket.Has(db, addr); {
	case err == nil:
		return nil, errors.Wrapf(errors.ErrDuplicate, "escrow %d of %s", msg.Seed, msg.Maker)
	case !errors.ErrNotFound.Is(err):
		return nil, errors.Wrap(err, "cannot check escrow")
	}
	custodyAddr, err := CustodyAddress(addr)
	if err != nil {
		return nil, errors.Wrap(err, "custody account")
	}

	// Fund first, a failed transfer must not leave a record behind.
	deposit := coin.NewCoin(msg.Deposit, msg.MintA)
	if err := cash.Transfer(ctx, h.auth, h.bank, db, msg.Maker, custodyAddr, deposit); err != nil {
		return nil, errors.Wrap(err, "fund custody")
	}
	escrow := &Escrow{
		Seed:    msg.Seed,
		Maker:   msg.Maker,
		MintA:   msg.MintA,
		MintB:   msg.MintB,
		Receive: msg.Receive,
		Bump:    bump,
	}
	if err := h.bucket.Put(db, addr, escrow); err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}
	return &custody.DeliverResult{Data: addr}, nil
}

func (h MakeEscrowHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*MakeMsg, error) {
	var msg MakeMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Maker) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "maker signature missing")
	}
	return &msg, nil
}

// TakeEscrowHandler settles an escrow.
type TakeEscrowHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	bank   cash.Controller
}

var _ custody.Handler = TakeEscrowHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h TakeEscrowHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{GasAllocated: takeEscrowCost}, nil
}

// Deliver pays the maker from the taker, then pays the taker everything
// held in custody and removes the escrow.
func (h TakeEscrowHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, esc, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	held, err := custodyBalance(db, h.bank, esc)
	if err != nil {
		return nil, err
	}
	if held.IsZero() {
		return nil, errors.Wrap(errors.ErrState, "custody account is empty")
	}

	price := coin.NewCoin(esc.record.Receive, esc.record.MintB)
	if err := cash.Transfer(ctx, h.auth, h.bank, db, msg.Taker, esc.record.Maker, price); err != nil {
		return nil, errors.Wrap(err, "pay maker")
	}

	escrowCtx := withEscrowSigner(ctx, esc.cond)
	paid, err := cash.Drain(escrowCtx, Authenticate{}, h.bank, db, esc.custody, msg.Taker, esc.record.MintA)
	if err != nil {
		return nil, errors.Wrap(err, "pay taker")
	}
	if err := h.bucket.Delete(db, esc.addr); err != nil {
		return nil, errors.Wrap(err, "cannot delete escrow")
	}
	return &custody.DeliverResult{Log: "settled for " + paid.String()}, nil
}

func (h TakeEscrowHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*TakeMsg, *openEscrow, error) {
	var msg TakeMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Taker) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "taker signature missing")
	}
	esc, err := loadEscrow(db, h.bucket, msg.Maker, msg.Seed)
	if err != nil {
		return nil, nil, err
	}
	if msg.MintA != esc.record.MintA {
		return nil, nil, errors.Wrapf(errors.ErrMismatch, "escrow offers %s, not %s", esc.record.MintA, msg.MintA)
	}
	if msg.MintB != esc.record.MintB {
		return nil, nil, errors.Wrapf(errors.ErrMismatch, "escrow asks for %s, not %s", esc.record.MintB, msg.MintB)
	}
	return &msg, esc, nil
}

// CloseEscrowHandler refunds an escrow to its maker.
type CloseEscrowHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	bank   cash.Controller
}

var _ custody.Handler = CloseEscrowHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h CloseEscrowHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{GasAllocated: closeEscrowCost}, nil
}

// Deliver returns everything held in custody to the maker and removes the
// escrow.
func (h CloseEscrowHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, esc, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	escrowCtx := withEscrowSigner(ctx, esc.cond)
	refund, err := cash.Drain(escrowCtx, Authenticate{}, h.bank, db, esc.custody, msg.Maker, esc.record.MintA)
	if err != nil {
		return nil, errors.Wrap(err, "refund maker")
	}
	if err := h.bucket.Delete(db, esc.addr); err != nil {
		return nil, errors.Wrap(err, "cannot delete escrow")
	}
	return &custody.DeliverResult{Log: "refunded " + refund.String()}, nil
}

func (h CloseEscrowHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*CloseMsg, *openEscrow, error) {
	var msg CloseMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Maker) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "maker signature missing")
	}
	esc, err := loadEscrow(db, h.bucket, msg.Maker, msg.Seed)
	if err != nil {
		return nil, nil, err
	}
	return &msg, esc, nil
}

// openEscrow is a loaded escrow with its capability and custody account.
type openEscrow struct {
	addr    custody.Address
	custody custody.Address
	cond    custody.Condition
	record  Escrow
}

// loadEscrow finds the escrow of maker with seed and checks that the record
// stored there belongs to it.
func loadEscrow(db custody.ReadOnlyKVStore, bucket orm.ModelBucket, maker custody.Address, seed uint64) (*openEscrow, error) {
	addr, _, err := EscrowAddress(maker, seed)
	if err != nil {
		return nil, errors.Wrap(err, "escrow account")
	}
	var esc Escrow
	if err := bucket.One(db, addr, &esc); err != nil {
		return nil, errors.Wrapf(err, "escrow %d of %s", seed, maker)
	}
	if !esc.Maker.Equals(maker) || esc.Seed != seed {
		return nil, errors.Wrap(errors.ErrState, "escrow record does not match its account")
	}
	cond, err := escrowCondition(&esc)
	if err != nil {
		return nil, err
	}
	if !cond.Address().Equals(addr) {
		return nil, errors.Wrap(errors.ErrState, "stored bump does not derive the escrow account")
	}
	custodyAddr, err := CustodyAddress(addr)
	if err != nil {
		return nil, errors.Wrap(err, "custody account")
	}
	return &openEscrow{
		addr:    addr,
		custody: custodyAddr,
		cond:    cond,
		record:  esc,
	}, nil
}

func custodyBalance(db custody.ReadOnlyKVStore, bank cash.Balancer, esc *openEscrow) (coin.Coin, error) {
	coins, err := bank.Balance(db, esc.custody)
	switch {
	case errors.ErrNotFound.Is(err):
		return coin.NewCoin(0, esc.record.MintA), nil
	case err != nil:
		return coin.Coin{}, errors.Wrap(err, "custody balance")
	}
	return coins.Balance(esc.record.MintA), nil
}
