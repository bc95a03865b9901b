package reconcile

// CanOverwrite decides whether an incoming source may rewrite a record owned by the
// incumbent source. Lower priority values win; a tie keeps the incumbent. A source may
// always rewrite its own records.
func CanOverwrite(incoming, incumbent int, sameSource bool) bool {
	if sameSource {
		return true
	}
	return incoming < incumbent
}
