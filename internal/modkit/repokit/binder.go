package repokit

// Binder produces a repository bound to a specific Queryer, letting one
// implementation serve both the pool and an open transaction
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a function to the Binder interface
type BindFunc[T any] func(Queryer) T

// Bind calls f
func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// MustBind binds after rejecting a nil Queryer
func MustBind[T any](b Binder[T], q Queryer) T {
	if q == nil {
		panic("repokit: nil Queryer")
	}
	return b.Bind(q)
}
