package ui

// sessionUpdateMsg signals that the session published a new snapshot.
type sessionUpdateMsg struct{}

// fileChangedMsg reports a write to the watched source file.
type fileChangedMsg struct {
	path string
}

// watchErrMsg reports a watcher failure; watching stops but reading
// continues.
type watchErrMsg struct {
	err error
}

// noteExpiredMsg clears a transient status note.
type noteExpiredMsg struct {
	id int
}

// documentReloadedMsg carries freshly re-read source text.
type documentReloadedMsg struct {
	document string
}

// resubmitErrMsg reports a failed document reload.
type resubmitErrMsg struct {
	err error
}
