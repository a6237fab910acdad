package disposable

import "sync"

type DisposableImp struct {
	once     sync.Once
	callback func()
}

func NewDisposable(callback func()) *DisposableImp {
	return &DisposableImp{callback: callback}
}

func (d *DisposableImp) Dispose() {
	d.once.Do(func() {
		if d.callback != nil {
			d.callback()
		}
	})
}

type CompositeDisposableImp struct {
	mu        sync.Mutex
	delegates []Disposable
	disposed  bool
}

func NewCompositeDisposable(delegates ...Disposable) *CompositeDisposableImp {
	return &CompositeDisposableImp{delegates: delegates}
}

// Add appends a delegate. Delegates added after Dispose are disposed immediately.
func (d *CompositeDisposableImp) Add(delegate Disposable) {
	d.mu.Lock()
	if d.disposed {
		d.mu.Unlock()
		delegate.Dispose()
		return
	}
	d.delegates = append(d.delegates, delegate)
	d.mu.Unlock()
}

// Dispose disposes delegates in reverse order of addition.
func (d *CompositeDisposableImp) Dispose() {
	d.mu.Lock()
	delegates := d.delegates
	d.delegates = nil
	d.disposed = true
	d.mu.Unlock()
	for i := len(delegates) - 1; i >= 0; i-- {
		delegates[i].Dispose()
	}
}
