package reconcile

// Bookmark folds a bookmark toggle response into the prior local value.
// The server's reported state wins when present; otherwise the toggle is
// assumed to have flipped the prior value.
func Bookmark(prior bool, reported *bool) bool {
	if reported != nil {
		return *reported
	}
	return !prior
}
