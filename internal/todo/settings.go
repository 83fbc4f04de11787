package todo

// Settings holds the remote store credential and target collection.
type Settings struct {
	Credential   string
	CollectionID string
}

// Configured reports whether both the credential and the collection ID are
// set. Remote calls are only made when it returns true.
func (s Settings) Configured() bool {
	return s.Credential != "" && s.CollectionID != ""
}
