package signals

import (
	"github.com/hashicorp/go-multierror"

	"github.com/krew-solutions/ascetic-signals-go/asceticsignals/disposable"
)

type CompositeSignalImp[E any] struct {
	delegates []Signal[E]
}

func NewCompositeSignal[E any](delegates ...Signal[E]) *CompositeSignalImp[E] {
	return &CompositeSignalImp[E]{delegates: delegates}
}

func (s *CompositeSignalImp[E]) Attach(observer Observer[E], observerID ...any) disposable.Disposable {
	disposables := make([]disposable.Disposable, 0, len(s.delegates))
	for _, delegate := range s.delegates {
		disposables = append(disposables, delegate.Attach(observer, observerID...))
	}
	return disposable.NewCompositeDisposable(disposables...)
}

func (s *CompositeSignalImp[E]) Detach(observer Observer[E], observerID ...any) {
	for _, delegate := range s.delegates {
		delegate.Detach(observer, observerID...)
	}
}

// Notify notifies every delegate, even after one fails, and returns the
// collected errors.
func (s *CompositeSignalImp[E]) Notify(event E) error {
	var result *multierror.Error
	for _, delegate := range s.delegates {
		if err := delegate.Notify(event); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
