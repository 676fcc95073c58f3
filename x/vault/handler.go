package vault

import (
	"github.com/custodylabs/custody"
	"github.com/custodylabs/custody/coin"
	"github.com/custodylabs/custody/errors"
	"github.com/custodylabs/custody/orm"
	"github.com/custodylabs/custody/x"
	"github.com/custodylabs/custody/x/cash"
)

const (
	initializeCost int64 = 300
	depositCost    int64 = 100
	withdrawCost   int64 = 100
	closeCost      int64 = 200
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r custody.Registry, auth x.Authenticator, bank cash.Controller) {
	bucket := NewBucket()
	r.Handle(pathInitializeMsg, InitializeHandler{auth: auth, bucket: bucket})
	r.Handle(pathDepositMsg, DepositHandler{auth: auth, bucket: bucket, bank: bank})
	r.Handle(pathWithdrawMsg, WithdrawHandler{auth: auth, bucket: bucket, bank: bank})
	r.Handle(pathCloseMsg, CloseHandler{auth: auth, bucket: bucket, bank: bank})
}

// RegisterQuery registers vault states under "/vaults" keyed by the state
// address, and "/vaults/owner" keyed by the owner address.
func RegisterQuery(qr custody.QueryRouter) {
	b := NewBucket()
	b.Register("vaults", qr)
	qr.Register("/vaults/owner", ownerQuery{bucket: b})
}

// InitializeHandler opens a vault.
type InitializeHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
}

var _ custody.Handler = InitializeHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h InitializeHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{GasAllocated: initializeCost}, nil
}

// Deliver stores the vault state with both bumps. The holding address is
// returned as data.
func (h InitializeHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	state, stateBump, err := StateAddress(msg.Owner)
	if err != nil {
		return nil, errors.Wrap(err, "state account")
	}
	holding, vaultBump, err := HoldingAddress(state)
	if err != nil {
		return nil, errors.Wrap(err, "holding account")
	}
	switch err := h.bucket.Has(db, state); {
	case err == nil:
		return nil, errors.Wrapf(errors.ErrDuplicate, "vault of %s", msg.Owner)
	case !errors.ErrNotFound.Is(err):
		return nil, errors.Wrap(err, "cannot check vault")
	}
	vs := &VaultState{VaultBump: vaultBump, StateBump: stateBump}
	if err := h.bucket.Put(db, state, vs); err != nil {
		return nil, errors.Wrap(err, "cannot store vault")
	}
	custody.GetLogger(ctx).Debug("vault initialized", "owner", msg.Owner, "holding", holding)
	return &custody.DeliverResult{Data: holding}, nil
}

func (h InitializeHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*InitializeMsg, error) {
	var msg InitializeMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "owner signature missing")
	}
	return &msg, nil
}

// DepositHandler moves value from the owner into the holding account.
type DepositHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	bank   cash.Controller
}

var _ custody.Handler = DepositHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h DepositHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{GasAllocated: depositCost}, nil
}

// Deliver transfers the amount from the owner to the holding account.
func (h DepositHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, v, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	amount := coin.NewCoin(msg.Amount, cash.NativeTicker(db))
	if err := cash.Transfer(ctx, h.auth, h.bank, db, msg.Owner, v.holding, amount); err != nil {
		return nil, errors.Wrap(err, "deposit")
	}
	return &custody.DeliverResult{}, nil
}

func (h DepositHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*DepositMsg, *openVault, error) {
	var msg DepositMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Owner) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "owner signature missing")
	}
	v, err := loadVault(db, h.bucket, msg.Owner)
	if err != nil {
		return nil, nil, err
	}
	return &msg, v, nil
}

// WithdrawHandler moves value from the holding account back to the owner.
type WithdrawHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	bank   cash.Controller
}

var _ custody.Handler = WithdrawHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h WithdrawHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{GasAllocated: withdrawCost}, nil
}

// Deliver signs for the holding account and transfers the amount to the
// owner.
func (h WithdrawHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, v, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	amount := coin.NewCoin(msg.Amount, cash.NativeTicker(db))
	vaultCtx := withVaultSigner(ctx, v.holdingCond)
	if err := cash.Transfer(vaultCtx, Authenticate{}, h.bank, db, v.holding, msg.Owner, amount); err != nil {
		return nil, errors.Wrap(err, "withdraw")
	}
	return &custody.DeliverResult{}, nil
}

func (h WithdrawHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*WithdrawMsg, *openVault, error) {
	var msg WithdrawMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Owner) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "owner signature missing")
	}
	v, err := loadVault(db, h.bucket, msg.Owner)
	if err != nil {
		return nil, nil, err
	}
	return &msg, v, nil
}

// CloseHandler pays out the holding account and removes the vault state.
type CloseHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	bank   cash.Controller
}

var _ custody.Handler = CloseHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h CloseHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{GasAllocated: closeCost}, nil
}

// Deliver drains the holding account to the owner and deletes the vault
// state. Every ticker held is paid out, not only the native one, and the
// coins paid out are logged.
func (h CloseHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, v, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	vaultCtx := withVaultSigner(ctx, v.holdingCond)
	paid, err := cash.DrainAll(vaultCtx, Authenticate{}, h.bank, db, v.holding, msg.Owner)
	if err != nil {
		return nil, errors.Wrap(err, "close")
	}
	if err := h.bucket.Delete(db, v.state); err != nil {
		return nil, errors.Wrap(err, "cannot delete vault")
	}
	if len(paid) == 0 {
		paid = coin.Coins{coin.NewCoinp(0, cash.NativeTicker(db))}
	}
	return &custody.DeliverResult{Log: "paid out " + paid.String()}, nil
}

func (h CloseHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*CloseMsg, *openVault, error) {
	var msg CloseMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Owner) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "owner signature missing")
	}
	v, err := loadVault(db, h.bucket, msg.Owner)
	if err != nil {
		return nil, nil, err
	}
	return &msg, v, nil
}

// openVault is a loaded vault state with both addresses recomputed.
type openVault struct {
	state       custody.Address
	holding     custody.Address
	holdingCond custody.Condition
	record      VaultState
}

// loadVault finds the vault of the owner and checks that the stored state
// bump still derives the address it is stored under.
func loadVault(db custody.ReadOnlyKVStore, bucket orm.ModelBucket, owner custody.Address) (*openVault, error) {
	state, _, err := StateAddress(owner)
	if err != nil {
		return nil, errors.Wrap(err, "state account")
	}
	var vs VaultState
	if err := bucket.One(db, state, &vs); err != nil {
		return nil, errors.Wrapf(err, "vault of %s", owner)
	}
	stored, err := custody.Derive(ProgramName, vs.StateBump, seedState, owner)
	if err != nil {
		return nil, errors.Wrap(err, "state account")
	}
	if !stored.Equals(state) {
		return nil, errors.Wrap(errors.ErrState, "state bump does not derive the state account")
	}
	cond, err := holdingCondition(state, &vs)
	if err != nil {
		return nil, err
	}
	return &openVault{
		state:       state,
		holding:     cond.Address(),
		holdingCond: cond,
		record:      vs,
	}, nil
}

// ownerQuery resolves an owner address to its vault state.
type ownerQuery struct {
	bucket orm.ModelBucket
}

var _ custody.QueryHandler = ownerQuery{}

func (q ownerQuery) Query(db custody.ReadOnlyKVStore, mod string, data []byte) ([]custody.Model, error) {
	if mod != custody.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
	if err := custody.Address(data).Validate(); err != nil {
		return nil, errors.Wrap(err, "owner")
	}
	state, _, err := StateAddress(data)
	if err != nil {
		return nil, err
	}
	var vs VaultState
	switch err := q.bucket.One(db, state, &vs); {
	case errors.ErrNotFound.Is(err):
		return nil, nil
	case err != nil:
		return nil, err
	}
	raw, err := vs.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return []custody.Model{custody.Pair(state, raw)}, nil
}
