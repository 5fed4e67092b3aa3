package parallelisation

import (
	"context"
	"io"

	"github.com/RMF112018/Project-Controls-sub011/commonerrors"
)

// CloserStore keeps track of resources which must be released together e.g. on service shutdown.
type CloserStore struct {
	ExecutionGroup[io.Closer]
}

func (s *CloserStore) RegisterCloser(closerObj ...io.Closer) {
	s.RegisterFunction(closerObj...)
}

func (s *CloserStore) Close() error {
	return s.Execute(context.Background())
}

// NewCloserStore returns a store of io.Closer object which will all be closed concurrently on Close(). The first error received will be returned
func NewCloserStore(stopOnFirstError bool) *CloserStore {
	option := ExecuteAll
	if stopOnFirstError {
		option = StopOnFirstError
	}
	return NewCloserStoreWithOptions(option, Parallel)
}

// NewCloserStoreWithOptions returns a store of io.Closer object which will all be closed on Close(). The first error received if any will be returned
func NewCloserStoreWithOptions(opts ...StoreOption) *CloserStore {
	return &CloserStore{
		ExecutionGroup: *NewExecutionGroup[io.Closer](func(_ context.Context, closerObj io.Closer) error {
			if closerObj == nil {
				return commonerrors.UndefinedVariable("closer object")
			}
			return closerObj.Close()
		}, append(opts, RetainAfterExecution)...),
	}
}

// CloseAll calls concurrently Close on all io.Closer implementations passed as arguments and returns the first error encountered
func CloseAll(cs ...io.Closer) error {
	group := NewCloserStore(false)
	group.RegisterCloser(cs...)
	return group.Close()
}

// CloseAllAndCollateErrors calls concurrently Close on all io.Closer implementations passed as arguments and returns the errors encountered
func CloseAllAndCollateErrors(cs ...io.Closer) error {
	group := NewCloserStoreWithOptions(ExecuteAll, Parallel, JoinErrors)
	group.RegisterCloser(cs...)
	return group.Close()
}
