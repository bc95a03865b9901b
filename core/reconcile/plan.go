package reconcile

// Plan groups planned actions by type so they can be applied in bulk.
type Plan[T any] struct {
	Inserts []Action[T]
	Updates []Action[T]
	Skips   []Action[T]
}

// Add files an action under its type.
func (p *Plan[T]) Add(a Action[T]) {
	switch a.Type {
	case ActionInsert:
		p.Inserts = append(p.Inserts, a)
	case ActionUpdate:
		p.Updates = append(p.Updates, a)
	default:
		p.Skips = append(p.Skips, a)
	}
}

// Len returns the number of planned actions.
func (p *Plan[T]) Len() int {
	return len(p.Inserts) + len(p.Updates) + len(p.Skips)
}

// Records returns the records of the given actions in order.
func Records[T any](actions []Action[T]) []T {
	out := make([]T, 0, len(actions))
	for _, a := range actions {
		out = append(out, a.Record)
	}
	return out
}
