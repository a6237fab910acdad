package disposable

// Disposable releases whatever it stands for. Dispose must be idempotent.
type Disposable interface {
	Dispose()
}
