package todo

// Registry is the ordered local task list. Tasks are identified by exact
// string equality and duplicates are kept.
//
// Registry is not safe for concurrent use; Service serializes access.
type Registry struct {
	tasks []string
}

// Add appends task to the end of the list.
func (r *Registry) Add(task string) {
	r.tasks = append(r.tasks, task)
}

// List returns a copy of the tasks in insertion order.
func (r *Registry) List() []string {
	out := make([]string, len(r.tasks))
	copy(out, r.tasks)
	return out
}

// Remove deletes the first occurrence of task and reports whether one was found.
func (r *Registry) Remove(task string) bool {
	for i, t := range r.tasks {
		if t == task {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of tasks, duplicates included.
func (r *Registry) Len() int {
	return len(r.tasks)
}
