package guard

// UnsavedReporter is implemented by views that can hold unsaved edits. The
// deactivation guard depends on neither store; it is a generic capability
// any view may opt into.
type UnsavedReporter interface {
	HasUnsavedChanges() bool
}

// ConfirmLeave decides whether navigation may leave the given view. Views
// without unsaved state (or not implementing UnsavedReporter) leave freely;
// otherwise the user is prompted synchronously and must confirm explicitly.
func ConfirmLeave(view any, confirm func(message string) bool) bool {
	r, ok := view.(UnsavedReporter)
	if !ok || !r.HasUnsavedChanges() {
		return true
	}
	return confirm("You have unsaved changes. Discard?")
}
