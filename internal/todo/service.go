package todo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/teemow/mcp-todo-server/internal/instrumentation"
	"github.com/teemow/mcp-todo-server/internal/logging"
	"github.com/teemow/mcp-todo-server/internal/store"
)

// Outcome classifies a Result so callers can branch without parsing the message.
type Outcome string

const (
	OutcomeOK            Outcome = "ok"
	OutcomeNotFound      Outcome = "not_found"
	OutcomeNotConfigured Outcome = "not_configured"
	OutcomeRemoteFailed  Outcome = "remote_failed"
)

// Result is the outcome of a Service operation. Remote failures are reported
// here, never as Go errors.
type Result struct {
	Message string  `json:"message"`
	Outcome Outcome `json:"-"`
}

// Stats is a point-in-time summary of the service state.
type Stats struct {
	Backend    string `json:"backend"`
	Tasks      int    `json:"tasks"`
	Links      int    `json:"links"`
	Configured bool   `json:"configured"`
}

// Service owns the task registry, the link table and the remote store
// settings. A single mutex is held for the whole of every operation,
// remote calls included, so a resync never interleaves with a removal.
type Service struct {
	mu       sync.Mutex
	registry Registry
	links    *Links
	settings Settings

	backend       store.Backend
	logger        logging.Logger
	metrics       *instrumentation.Metrics
	remoteTimeout time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. The default discards output.
func WithLogger(logger logging.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics records resync outcomes on m.
func WithMetrics(m *instrumentation.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithRemoteTimeout bounds every remote call, client creation included.
// Zero means no bound.
func WithRemoteTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.remoteTimeout = d
	}
}

// NewService creates a service backed by backend, starting from defaults.
func NewService(backend store.Backend, defaults Settings, opts ...Option) (*Service, error) {
	if err := backend.Validate(); err != nil {
		return nil, fmt.Errorf("invalid backend: %w", err)
	}

	s := &Service{
		links:    NewLinks(),
		settings: defaults,
		backend:  backend,
		logger:   logging.DiscardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Backend returns the remote store the service mirrors tasks to.
func (s *Service) Backend() store.Backend {
	return s.backend
}

// Add appends task to the registry.
func (s *Service) Add(task string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.registry.Add(task)
	s.logger.Debug("task added", logging.Task(task), logging.Count(s.registry.Len()))
	return Result{Message: "Task added: " + task, Outcome: OutcomeOK}
}

// List returns a copy of the registry.
func (s *Service) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.registry.List()
}

// Links returns a copy of the link table.
func (s *Service) Links() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.links.Snapshot()
}

// Stats summarizes the current state. The credential is not included.
func (s *Service) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stats()
}

// LinkState returns the summary and a copy of the link table taken under
// one lock, so the two always describe the same state.
func (s *Service) LinkState() (Stats, map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stats(), s.links.Snapshot()
}

func (s *Service) stats() Stats {
	return Stats{
		Backend:    s.backend.Key,
		Tasks:      s.registry.Len(),
		Links:      s.links.Len(),
		Configured: s.settings.Configured(),
	}
}

// Setup replaces both settings. It performs no validation: a bad credential
// or collection ID surfaces on the next remote call.
func (s *Service) Setup(credential, collectionID string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = Settings{Credential: credential, CollectionID: collectionID}
	s.logger.Info("remote store configured",
		logging.Store(s.backend.Key),
		logging.Token(credential),
		logging.Collection(collectionID))
	return Result{
		Message: s.backend.Name + " integration configured successfully",
		Outcome: OutcomeOK,
	}
}

// Remove deletes the first occurrence of task. When the task is linked and
// the store is configured, its remote entry is archived. The local removal
// stands whatever the remote outcome; on archive failure the link is kept.
func (s *Service) Remove(ctx context.Context, task string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.registry.Remove(task) {
		return Result{Message: "Task not found", Outcome: OutcomeNotFound}
	}

	id, linked := s.links.Get(task)
	if !linked || !s.settings.Configured() {
		s.logger.Debug("task removed", logging.Task(task))
		return Result{Message: "Task removed: " + task, Outcome: OutcomeOK}
	}

	if err := s.archive(ctx, id); err != nil {
		s.logger.Warn("remote archive failed, link kept",
			logging.Store(s.backend.Key), logging.Task(task), logging.PageID(id), logging.Err(err))
		return Result{
			Message: fmt.Sprintf("Task removed locally: %s (%s deletion failed: %s)", task, s.backend.Name, err),
			Outcome: OutcomeRemoteFailed,
		}
	}

	s.links.Delete(task)
	s.logger.Info("task removed and archived",
		logging.Store(s.backend.Key), logging.Task(task), logging.PageID(id))
	return Result{
		Message: fmt.Sprintf("Task removed: %s (also deleted from %s)", task, s.backend.Name),
		Outcome: OutcomeOK,
	}
}

// SyncAll discards every link and creates one remote entry per task in
// registry order. The first failure aborts the run; entries created before
// it stay in the remote store unlinked. Running it twice creates duplicates.
func (s *Service) SyncAll(ctx context.Context) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.settings.Configured() {
		s.metrics.RecordSync(ctx, instrumentation.SyncResultNotConfigured, 0)
		return Result{Message: s.notConfiguredMessage(), Outcome: OutcomeNotConfigured}
	}

	created, err := s.resync(ctx)
	if err != nil {
		s.metrics.RecordSync(ctx, instrumentation.SyncResultFailed, created)
		s.logger.Warn("resync aborted",
			logging.Store(s.backend.Key), logging.Count(created), logging.Err(err))
		return Result{
			Message: fmt.Sprintf("Error syncing to %s: %s", s.backend.Name, err),
			Outcome: OutcomeRemoteFailed,
		}
	}

	s.metrics.RecordSync(ctx, instrumentation.SyncResultSynced, created)
	s.logger.Info("resync completed",
		logging.Store(s.backend.Key), logging.Count(created), logging.Status(logging.StatusSuccess))
	return Result{
		Message: fmt.Sprintf("Successfully synced %d tasks to %s", created, s.backend.Name),
		Outcome: OutcomeOK,
	}
}

// resync returns the number of entries created, including those created
// before a failure.
func (s *Service) resync(ctx context.Context) (int, error) {
	ctx, cancel := s.remoteContext(ctx)
	defer cancel()

	// The client is opened before the links are cleared: a credential
	// rejected at open time leaves the table untouched.
	st, err := s.backend.Open(ctx, s.settings.Credential)
	if err != nil {
		return 0, err
	}

	s.links.Clear()

	// Links are recorded only once every create succeeded; entries created
	// before a failure are left in the remote store unlinked.
	tasks := s.registry.List()
	ids := make([]string, 0, len(tasks))
	for _, task := range tasks {
		id, err := st.Create(ctx, s.settings.CollectionID, store.Fields{Name: task})
		if err != nil {
			return len(ids), err
		}
		ids = append(ids, id)
	}
	for i, task := range tasks {
		s.links.Set(task, ids[i])
	}
	return len(ids), nil
}

func (s *Service) archive(ctx context.Context, id string) error {
	ctx, cancel := s.remoteContext(ctx)
	defer cancel()

	st, err := s.backend.Open(ctx, s.settings.Credential)
	if err != nil {
		return err
	}
	return st.Archive(ctx, id)
}

func (s *Service) remoteContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.remoteTimeout > 0 {
		return context.WithTimeout(ctx, s.remoteTimeout)
	}
	return context.WithCancel(ctx)
}

func (s *Service) notConfiguredMessage() string {
	return fmt.Sprintf("%s not configured. Set %s and %s environment variables.",
		s.backend.Name, s.backend.CredentialEnv, s.backend.CollectionEnv)
}
