package ast

// Inspect visits e depth first in evaluation order. Children are skipped
// when f returns false.
func Inspect(e Expr, f func(Expr) bool) {
	if e == nil || !f(e) {
		return
	}

	switch n := e.(type) {
	case *App:
		Inspect(n.Func, f)

		for _, arg := range n.Args {
			Inspect(arg, f)
		}
	case *Cond:
		Inspect(n.If, f)
		Inspect(n.Then, f)
		Inspect(n.Else, f)
	case *Lambda:
		Inspect(n.Body, f)
	}
}

// HasUnresolved reports whether any reference below e is still unresolved.
func HasUnresolved(e Expr) bool {
	found := false

	Inspect(e, func(n Expr) bool {
		if _, ok := n.(*Unresolved); ok {
			found = true
		}

		return !found
	})

	return found
}
