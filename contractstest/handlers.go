package contractstest

import contracts "github.com/djrtwo/simple-contracts"

// Handler is a mock handler returning configured results and counting its
// calls.
type Handler struct {
	checkCall   int
	CheckResult contracts.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult contracts.DeliverResult
	DeliverErr    error

	// OnDeliver if set is called with the store before Deliver returns.
	// It allows to write to the store from within a transaction.
	OnDeliver func(contracts.Context, contracts.KVStore) error
	// Panic if set makes both methods panic with this value.
	Panic interface{}
}

var _ contracts.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx contracts.Context, db contracts.KVStore, tx contracts.Tx) (*contracts.CheckResult, error) {
	h.checkCall++
	if h.Panic != nil {
		panic(h.Panic)
	}
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx contracts.Context, db contracts.KVStore, tx contracts.Tx) (*contracts.DeliverResult, error) {
	h.deliverCall++
	if h.Panic != nil {
		panic(h.Panic)
	}
	if h.OnDeliver != nil {
		if err := h.OnDeliver(ctx, db); err != nil {
			return nil, err
		}
	}
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
