package todo

// Links maps a task's text to the ID of its remote entry. Tasks sharing the
// same text share one link; the last write wins.
//
// Links is not safe for concurrent use; Service serializes access.
type Links struct {
	ids map[string]string
}

// NewLinks returns an empty link table.
func NewLinks() *Links {
	return &Links{ids: make(map[string]string)}
}

// Set records id as the remote entry for task.
func (l *Links) Set(task, id string) {
	l.ids[task] = id
}

// Get returns the remote ID linked to task.
func (l *Links) Get(task string) (string, bool) {
	id, ok := l.ids[task]
	return id, ok
}

// Delete unlinks task.
func (l *Links) Delete(task string) {
	delete(l.ids, task)
}

// Clear drops every link.
func (l *Links) Clear() {
	clear(l.ids)
}

// Snapshot returns a copy of the table.
func (l *Links) Snapshot() map[string]string {
	out := make(map[string]string, len(l.ids))
	for k, v := range l.ids {
		out[k] = v
	}
	return out
}

// Len returns the number of links.
func (l *Links) Len() int {
	return len(l.ids)
}
