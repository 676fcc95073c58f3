package vault

import (
	"context"
	"math/rand"
	"testing"

	"github.com/custodylabs/custody"
	"github.com/custodylabs/custody/app"
	"github.com/custodylabs/custody/coin"
	"github.com/custodylabs/custody/custodytest"
	"github.com/custodylabs/custody/errors"
	"github.com/custodylabs/custody/orm"
	"github.com/custodylabs/custody/store"
	"github.com/custodylabs/custody/x/cash"
	"github.com/custodylabs/custody/x/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db     store.CacheableKVStore
	bank   cash.BaseController
	auth   *custodytest.CtxAuth
	router *app.Router
	owner  custody.Condition
	ctx    custody.Context
}

func newFixture(t testing.TB, funds uint64) *fixture {
	t.Helper()
	db := store.MemStore()
	require.NoError(t, cash.Initializer{}.FromGenesis(custody.Options{}, db))

	bank := cash.NewController(cash.NewBucket())
	owner := custodytest.NewCondition()
	if funds > 0 {
		require.NoError(t, bank.IssueCoins(db, owner.Address(), coin.NewCoin(funds, cash.DefaultNative)))
	}

	auth := &custodytest.CtxAuth{Key: "auth"}
	router := app.NewRouter()
	RegisterRoutes(router, auth, bank)

	return &fixture{
		db:     db,
		bank:   bank,
		auth:   auth,
		router: router,
		owner:  owner,
		ctx:    auth.SetConditions(context.Background(), owner),
	}
}

func (f *fixture) deliver(msg custody.Msg) (*custody.DeliverResult, error) {
	tx := &custodytest.Tx{Msg: msg}
	if _, err := f.router.Check(f.ctx, f.db, tx); err != nil {
		return nil, err
	}
	return f.router.Deliver(f.ctx, f.db, tx)
}

// deliverAtomic runs the message behind a savepoint, the way the
// application does, so a failed message leaves no changes.
func (f *fixture) deliverAtomic(msg custody.Msg) (*custody.DeliverResult, error) {
	h := custodytest.Decorate(f.router, utils.NewSavepoint().OnDeliver())
	tx := &custodytest.Tx{Msg: msg}
	if _, err := h.Check(f.ctx, f.db, tx); err != nil {
		return nil, err
	}
	return h.Deliver(f.ctx, f.db, tx)
}

func (f *fixture) balance(t testing.TB, addr custody.Address) uint64 {
	t.Helper()
	coins, err := f.bank.Balance(f.db, addr)
	if errors.ErrNotFound.Is(err) {
		return 0
	}
	require.NoError(t, err)
	return coins.Balance(cash.DefaultNative).Amount
}

func (f *fixture) holding(t testing.TB) custody.Address {
	t.Helper()
	state, _, err := StateAddress(f.owner.Address())
	require.NoError(t, err)
	holding, _, err := HoldingAddress(state)
	require.NoError(t, err)
	return holding
}

func TestVaultLifecycle(t *testing.T) {
	f := newFixture(t, 5000)
	owner := f.owner.Address()

	res, err := f.deliver(&InitializeMsg{Owner: owner})
	require.NoError(t, err)
	holding := f.holding(t)
	assert.Equal(t, []byte(holding), res.Data)

	_, err = f.deliver(&DepositMsg{Owner: owner, Amount: 1000})
	require.NoError(t, err)
	assert.EqualValues(t, 1000, f.balance(t, holding))
	assert.EqualValues(t, 4000, f.balance(t, owner))

	_, err = f.deliver(&WithdrawMsg{Owner: owner, Amount: 400})
	require.NoError(t, err)
	assert.EqualValues(t, 600, f.balance(t, holding))
	assert.EqualValues(t, 4400, f.balance(t, owner))

	res, err = f.deliver(&CloseMsg{Owner: owner})
	require.NoError(t, err)
	assert.Contains(t, res.Log, "600")
	assert.EqualValues(t, 0, f.balance(t, holding))
	assert.EqualValues(t, 5000, f.balance(t, owner))

	state, _, err := StateAddress(owner)
	require.NoError(t, err)
	err = NewBucket().Has(f.db, state)
	assert.True(t, errors.ErrNotFound.Is(err), "vault state must be gone, got %v", err)

	// A closed vault can be opened again.
	_, err = f.deliver(&InitializeMsg{Owner: owner})
	require.NoError(t, err)
}

func TestDepositWithdrawSequences(t *testing.T) {
	type step struct {
		deposit  uint64
		withdraw uint64
		wantErr  *errors.Error
	}
	cases := map[string][]step{
		"withdraw to exactly zero": {
			{deposit: 300},
			{withdraw: 300},
			{deposit: 50},
			{withdraw: 50},
		},
		"over withdraw in the middle": {
			{deposit: 500},
			{withdraw: 200},
			{withdraw: 301, wantErr: errors.ErrInsufficientAmount},
			{withdraw: 300},
			{withdraw: 1, wantErr: errors.ErrInsufficientAmount},
			{deposit: 10},
		},
		"deposit everything owned": {
			{deposit: 100},
			{deposit: 250},
			{withdraw: 50},
			{deposit: 700},
			{deposit: 1, wantErr: errors.ErrInsufficientAmount},
			{withdraw: 1000},
		},
		"withdraw from an empty vault": {
			{withdraw: 1, wantErr: errors.ErrInsufficientAmount},
			{deposit: 1},
			{withdraw: 1},
			{withdraw: 1, wantErr: errors.ErrInsufficientAmount},
		},
	}

	for testName, steps := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t, 1000)
			owner := f.owner.Address()
			_, err := f.deliver(&InitializeMsg{Owner: owner})
			require.NoError(t, err)
			holding := f.holding(t)

			var deposited, withdrawn uint64
			for i, s := range steps {
				var msg custody.Msg = &DepositMsg{Owner: owner, Amount: s.deposit}
				if s.withdraw > 0 {
					msg = &WithdrawMsg{Owner: owner, Amount: s.withdraw}
				}
				_, err := f.deliverAtomic(msg)
				if s.wantErr != nil {
					require.True(t, s.wantErr.Is(err), "step %d: got %+v", i, err)
				} else {
					require.NoError(t, err, "step %d", i)
					deposited += s.deposit
					withdrawn += s.withdraw
				}
				assert.EqualValues(t, deposited-withdrawn, f.balance(t, holding), "step %d", i)
				assert.EqualValues(t, 1000+withdrawn-deposited, f.balance(t, owner), "step %d", i)
			}
		})
	}
}

func TestRandomDepositWithdrawSequence(t *testing.T) {
	const funds = 5000
	f := newFixture(t, funds)
	owner := f.owner.Address()
	_, err := f.deliver(&InitializeMsg{Owner: owner})
	require.NoError(t, err)
	holding := f.holding(t)

	rnd := rand.New(rand.NewSource(42))
	var held uint64
	for i := 0; i < 300; i++ {
		amount := uint64(rnd.Intn(400) + 1)
		if rnd.Intn(2) == 0 {
			_, err := f.deliverAtomic(&DepositMsg{Owner: owner, Amount: amount})
			if amount > funds-held {
				require.True(t, errors.ErrInsufficientAmount.Is(err), "step %d: got %+v", i, err)
			} else {
				require.NoError(t, err, "step %d", i)
				held += amount
			}
		} else {
			_, err := f.deliverAtomic(&WithdrawMsg{Owner: owner, Amount: amount})
			if amount > held {
				require.True(t, errors.ErrInsufficientAmount.Is(err), "step %d: got %+v", i, err)
			} else {
				require.NoError(t, err, "step %d", i)
				held -= amount
			}
		}
		require.EqualValues(t, held, f.balance(t, holding), "step %d", i)
		require.EqualValues(t, funds-held, f.balance(t, owner), "step %d", i)
	}
}

func TestCloseDrainsEveryTicker(t *testing.T) {
	f := newFixture(t, 1000)
	owner := f.owner.Address()
	_, err := f.deliver(&InitializeMsg{Owner: owner})
	require.NoError(t, err)
	_, err = f.deliver(&DepositMsg{Owner: owner, Amount: 600})
	require.NoError(t, err)
	holding := f.holding(t)

	// Anyone can send other tokens to the holding account.
	require.NoError(t, f.bank.IssueCoins(f.db, holding, coin.NewCoin(7, "TOKA")))

	res, err := f.deliver(&CloseMsg{Owner: owner})
	require.NoError(t, err)
	assert.Equal(t, "paid out 600 SOL, 7 TOKA", res.Log)

	_, err = f.bank.Balance(f.db, holding)
	assert.True(t, errors.ErrNotFound.Is(err), "holding account must be empty, got %v", err)
	coins, err := f.bank.Balance(f.db, owner)
	require.NoError(t, err)
	assert.EqualValues(t, 7, coins.Balance("TOKA").Amount)
	assert.EqualValues(t, 1000, coins.Balance(cash.DefaultNative).Amount)
}

func TestCloseEmptyVault(t *testing.T) {
	f := newFixture(t, 0)
	owner := f.owner.Address()
	_, err := f.deliver(&InitializeMsg{Owner: owner})
	require.NoError(t, err)

	res, err := f.deliver(&CloseMsg{Owner: owner})
	require.NoError(t, err)
	assert.Equal(t, "paid out 0 "+cash.DefaultNative, res.Log)
}

func TestInitializeStoresCanonicalBumps(t *testing.T) {
	f := newFixture(t, 0)
	owner := f.owner.Address()
	_, err := f.deliver(&InitializeMsg{Owner: owner})
	require.NoError(t, err)

	state, stateBump, err := StateAddress(owner)
	require.NoError(t, err)
	_, vaultBump, err := HoldingAddress(state)
	require.NoError(t, err)

	var vs VaultState
	require.NoError(t, NewBucket().One(f.db, state, &vs))
	assert.Equal(t, stateBump, vs.StateBump)
	assert.Equal(t, vaultBump, vs.VaultBump)

	_, err = f.deliver(&InitializeMsg{Owner: owner})
	assert.True(t, errors.ErrDuplicate.Is(err), "got %+v", err)
}

func TestVaultErrors(t *testing.T) {
	stranger := custodytest.NewCondition().Address()

	cases := map[string]struct {
		initialize bool
		deposit    uint64
		msg        func(owner custody.Address) custody.Msg
		wantErr    *errors.Error
	}{
		"deposit without vault": {
			msg:     func(o custody.Address) custody.Msg { return &DepositMsg{Owner: o, Amount: 10} },
			wantErr: errors.ErrNotFound,
		},
		"withdraw without vault": {
			msg:     func(o custody.Address) custody.Msg { return &WithdrawMsg{Owner: o, Amount: 10} },
			wantErr: errors.ErrNotFound,
		},
		"close without vault": {
			msg:     func(o custody.Address) custody.Msg { return &CloseMsg{Owner: o} },
			wantErr: errors.ErrNotFound,
		},
		"zero deposit": {
			initialize: true,
			msg:        func(o custody.Address) custody.Msg { return &DepositMsg{Owner: o} },
			wantErr:    errors.ErrAmount,
		},
		"zero withdraw": {
			initialize: true,
			deposit:    10,
			msg:        func(o custody.Address) custody.Msg { return &WithdrawMsg{Owner: o} },
			wantErr:    errors.ErrAmount,
		},
		"deposit more than owned": {
			initialize: true,
			msg:        func(o custody.Address) custody.Msg { return &DepositMsg{Owner: o, Amount: 1001} },
			wantErr:    errors.ErrInsufficientAmount,
		},
		"withdraw more than held": {
			initialize: true,
			deposit:    100,
			msg:        func(o custody.Address) custody.Msg { return &WithdrawMsg{Owner: o, Amount: 101} },
			wantErr:    errors.ErrInsufficientAmount,
		},
		"withdraw from a stranger's vault": {
			msg:     func(custody.Address) custody.Msg { return &WithdrawMsg{Owner: stranger, Amount: 1} },
			wantErr: errors.ErrUnauthorized,
		},
		"initialize for a stranger": {
			msg:     func(custody.Address) custody.Msg { return &InitializeMsg{Owner: stranger} },
			wantErr: errors.ErrUnauthorized,
		},
		"missing owner": {
			msg:     func(custody.Address) custody.Msg { return &CloseMsg{} },
			wantErr: errors.ErrEmpty,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t, 1000)
			owner := f.owner.Address()
			if tc.initialize {
				_, err := f.deliver(&InitializeMsg{Owner: owner})
				require.NoError(t, err)
			}
			if tc.deposit > 0 {
				_, err := f.deliver(&DepositMsg{Owner: owner, Amount: tc.deposit})
				require.NoError(t, err)
			}

			_, err := f.deliver(tc.msg(owner))
			require.True(t, tc.wantErr.Is(err), "got %+v", err)
			assert.EqualValues(t, 1000-tc.deposit, f.balance(t, owner))
		})
	}
}

func TestHoldingAccountIsLocked(t *testing.T) {
	f := newFixture(t, 1000)
	owner := f.owner.Address()
	_, err := f.deliver(&InitializeMsg{Owner: owner})
	require.NoError(t, err)
	_, err = f.deliver(&DepositMsg{Owner: owner, Amount: 1000})
	require.NoError(t, err)
	holding := f.holding(t)

	// The owner signature alone does not allow spending the holding account.
	send := &cash.SendMsg{
		Source:      holding,
		Destination: owner,
		Amount:      coin.NewCoinp(1, cash.DefaultNative),
	}
	err = cash.Transfer(f.ctx, f.auth, f.bank, f.db, send.Source, send.Destination, *send.Amount)
	assert.True(t, errors.ErrUnauthorized.Is(err), "got %+v", err)

	// Neither does a condition derived with another bump.
	state, _, err := StateAddress(owner)
	require.NoError(t, err)
	var vs VaultState
	require.NoError(t, NewBucket().One(f.db, state, &vs))
	wrong := custody.DeriveCondition(ProgramName, vs.VaultBump-1, seedVault, state)
	ctx := withVaultSigner(f.ctx, wrong)
	err = cash.Transfer(ctx, Authenticate{}, f.bank, f.db, holding, owner, coin.NewCoin(1, cash.DefaultNative))
	assert.True(t, errors.ErrUnauthorized.Is(err), "got %+v", err)

	// The stored bump does.
	right := custody.DeriveCondition(ProgramName, vs.VaultBump, seedVault, state)
	ctx = withVaultSigner(f.ctx, right)
	err = cash.Transfer(ctx, Authenticate{}, f.bank, f.db, holding, owner, coin.NewCoin(1, cash.DefaultNative))
	assert.NoError(t, err)
}

func TestTamperedStateBump(t *testing.T) {
	f := newFixture(t, 1000)
	owner := f.owner.Address()
	state, stateBump, err := StateAddress(owner)
	require.NoError(t, err)
	_, vaultBump, err := HoldingAddress(state)
	require.NoError(t, err)

	// Find another bump that is a valid derivation but not the canonical one.
	var other uint8
	for b := int(stateBump) - 1; b >= 0; b-- {
		if _, err := custody.Derive(ProgramName, uint8(b), seedState, owner); err == nil {
			other = uint8(b)
			break
		}
	}
	require.NoError(t, NewBucket().Put(f.db, state, &VaultState{VaultBump: vaultBump, StateBump: other}))

	_, err = f.deliver(&DepositMsg{Owner: owner, Amount: 10})
	assert.True(t, errors.ErrState.Is(err), "got %+v", err)
}

func TestFailedCloseLeavesNoTrace(t *testing.T) {
	f := newFixture(t, 1000)
	owner := f.owner.Address()
	_, err := f.deliver(&InitializeMsg{Owner: owner})
	require.NoError(t, err)
	_, err = f.deliver(&DepositMsg{Owner: owner, Amount: 600})
	require.NoError(t, err)

	before := dumpStore(t, f.db)

	// The handler pays out and then fails deleting the state, so the
	// payout must be rolled back.
	failing := custodytest.Decorate(
		&failAfter{next: f.router, err: errors.ErrDatabase},
		utils.NewSavepoint().OnDeliver(),
	)
	_, err = failing.Deliver(f.ctx, f.db, &custodytest.Tx{Msg: &CloseMsg{Owner: owner}})
	require.True(t, errors.ErrDatabase.Is(err))

	assert.Equal(t, before, dumpStore(t, f.db))
	assert.EqualValues(t, 600, f.balance(t, f.holding(t)))
}

func TestOwnerQuery(t *testing.T) {
	f := newFixture(t, 0)
	owner := f.owner.Address()

	qr := custody.NewQueryRouter()
	RegisterQuery(qr)
	h := qr.Handler("/vaults/owner")
	require.NotNil(t, h)

	res, err := h.Query(f.db, "", owner)
	require.NoError(t, err)
	assert.Empty(t, res)

	_, err = f.deliver(&InitializeMsg{Owner: owner})
	require.NoError(t, err)

	res, err = h.Query(f.db, "", owner)
	require.NoError(t, err)
	require.Len(t, res, 1)
	var vs VaultState
	require.NoError(t, vs.UnmarshalBinary(res[0].Value))
	state, stateBump, err := StateAddress(owner)
	require.NoError(t, err)
	assert.Equal(t, []byte(state), res[0].Key)
	assert.Equal(t, stateBump, vs.StateBump)

	_, err = h.Query(f.db, "", []byte("short"))
	assert.Error(t, err)

	byState := qr.Handler("/vaults")
	require.NotNil(t, byState)
	res, err = byState.Query(f.db, "", state)
	require.NoError(t, err)
	assert.Len(t, res, 1)
}

// failAfter runs the next handler and then fails, as if something later in
// the same transaction broke.
type failAfter struct {
	next custody.Handler
	err  error
}

func (h *failAfter) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	return h.next.Check(ctx, db, tx)
}

func (h *failAfter) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	if _, err := h.next.Deliver(ctx, db, tx); err != nil {
		return nil, err
	}
	return nil, h.err
}

func dumpStore(t testing.TB, db custody.ReadOnlyKVStore) []custody.Model {
	t.Helper()
	itr, err := db.Iterator(nil, nil)
	require.NoError(t, err)
	all, err := orm.ConsumeIterator(itr)
	require.NoError(t, err)
	return all
}
