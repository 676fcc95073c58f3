package custodytest

import "github.com/custodylabs/custody"

// Handler is a mock implementation of the custody.Handler interface that
// returns preconfigured results and counts its calls.
type Handler struct {
	checkCall   int
	CheckResult custody.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult custody.DeliverResult
	DeliverErr    error
}

var _ custody.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// WriteHandler stores Key/Value in the store on every call and then returns
// Err. It is used to check that failed calls leave no trace in the store.
type WriteHandler struct {
	Key   []byte
	Value []byte
	Err   error
}

var _ custody.Handler = WriteHandler{}

func (h WriteHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	if h.Err != nil {
		return nil, h.Err
	}
	return &custody.CheckResult{}, nil
}

func (h WriteHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	if h.Err != nil {
		return nil, h.Err
	}
	return &custody.DeliverResult{}, nil
}

// PanicHandler always panics with the given value.
type PanicHandler struct {
	Msg interface{}
}

var _ custody.Handler = PanicHandler{}

func (h PanicHandler) Check(custody.Context, custody.KVStore, custody.Tx) (*custody.CheckResult, error) {
	panic(h.Msg)
}

func (h PanicHandler) Deliver(custody.Context, custody.KVStore, custody.Tx) (*custody.DeliverResult, error) {
	panic(h.Msg)
}
