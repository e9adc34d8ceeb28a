package status

import (
	"sync"
	"time"

	"cloud-sync/core/metadata"
	"cloud-sync/core/syncer"

	"go.uber.org/zap"
)

// maxEvents bounds the retained event ring.
const maxEvents = 256

// Event is one recorded engine state transition.
type Event struct {
	State  string    `json:"state"`
	ItemID string    `json:"item_id,omitempty"`
	Error  string    `json:"error,omitempty"`
	At     time.Time `json:"at"`
}

// Summary aggregates engine activity since startup.
type Summary struct {
	Phase         string     `json:"phase"`
	LastCompleted *time.Time `json:"last_completed,omitempty"`
	Uploaded      int        `json:"uploaded"`
	Downloaded    int        `json:"downloaded"`
	Errors        int        `json:"errors"`
	RejectedRuns  int        `json:"rejected_runs"`
}

// Service records the engine's progress emissions for the HTTP API.
type Service struct {
	logger *zap.Logger

	mu      sync.RWMutex
	events  []Event
	summary Summary
}

// NewService creates a new status service.
func NewService(logger *zap.Logger) *Service {
	return &Service{
		logger:  logger,
		summary: Summary{Phase: "idle"},
	}
}

// Progress returns the callback to pass to the engine.
func (s *Service) Progress() syncer.ProgressFunc {
	return s.Record
}

// Record folds a single engine state into the event ring and counters.
// Safe for concurrent use; the engine serializes emissions but manual
// triggers may race with the auto-sync timer.
func (s *Service) Record(state syncer.State) {
	ev := Describe(state)
	ev.At = time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	switch state.(type) {
	case syncer.InProgress:
		s.summary.RejectedRuns++
	case syncer.SyncCompleted:
		s.summary.Phase = "idle"
		done := ev.At
		s.summary.LastCompleted = &done
	case syncer.SyncCancelled:
		s.summary.Phase = "idle"
	case syncer.SyncError:
		s.summary.Errors++
	case syncer.SavedToCloud[metadata.Metadata]:
		s.summary.Phase = "running"
		s.summary.Uploaded++
	case syncer.SavedToLocal[metadata.Metadata]:
		s.summary.Phase = "running"
		s.summary.Downloaded++
	default:
		s.summary.Phase = "running"
	}

	s.events = append(s.events, ev)
	if len(s.events) > maxEvents {
		s.events = s.events[len(s.events)-maxEvents:]
	}
}

// Snapshot returns the current aggregate summary.
func (s *Service) Snapshot() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.summary
	if s.summary.LastCompleted != nil {
		done := *s.summary.LastCompleted
		out.LastCompleted = &done
	}
	return out
}

// Events returns a copy of the retained event ring, oldest first.
func (s *Service) Events() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// Describe flattens a state into its wire representation. The At field
// is left for the caller to fill.
func Describe(state syncer.State) Event {
	switch v := state.(type) {
	case syncer.InProgress:
		return Event{State: "in_progress"}
	case syncer.FetchingLocalMetadata:
		return Event{State: "fetching_local_metadata"}
	case syncer.FetchingCloudMetadata:
		return Event{State: "fetching_cloud_metadata"}
	case syncer.ScanningCloud:
		return Event{State: "scanning_cloud"}
	case syncer.ScanningLocal:
		return Event{State: "scanning_local"}
	case syncer.SavingToCloud[metadata.Metadata]:
		return Event{State: "saving_to_cloud", ItemID: v.Metadata.ID}
	case syncer.SavedToCloud[metadata.Metadata]:
		return Event{State: "saved_to_cloud", ItemID: v.Metadata.ID}
	case syncer.SavingToLocal[metadata.Metadata]:
		return Event{State: "saving_to_local", ItemID: v.Metadata.ID}
	case syncer.SavedToLocal[metadata.Metadata]:
		return Event{State: "saved_to_local", ItemID: v.Metadata.ID}
	case syncer.SyncError:
		return Event{State: "sync_error", Error: v.Err.Error()}
	case syncer.SyncCompleted:
		return Event{State: "sync_completed"}
	case syncer.SyncCancelled:
		return Event{State: "sync_cancelled"}
	default:
		return Event{State: "unknown"}
	}
}
