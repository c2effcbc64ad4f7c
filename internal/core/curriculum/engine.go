package curriculum

import (
	"context"

	"github.com/rs/zerolog"
)

// ProgressStore persists the completed set across sessions.
//
// The persistence medium is local and synchronous, so the contract is
// deliberately forgiving: Load substitutes the empty set for missing or
// malformed data, and Save is best effort. Neither surfaces a hard
// failure to the engine.
type ProgressStore interface {
	// Load returns the persisted completed set. Missing or malformed
	// data yields the empty set.
	Load(ctx context.Context) CompletedSet

	// Save persists the full completed set, replacing prior contents.
	Save(ctx context.Context, completed CompletedSet)
}

// LabelFunc resolves a course ID to a human-readable label.
// Returning false falls back to the raw ID.
type LabelFunc func(id string) (string, bool)

// CourseStatus pairs a course with its derived status.
type CourseStatus struct {
	Course Course `json:"course"`
	Status Status `json:"status"`
}

// Snapshot is the derived status of every catalog course, in catalog
// order. It is recomputed from scratch on demand and never cached.
type Snapshot []CourseStatus

// Get returns the entry for the given course ID.
func (s Snapshot) Get(id string) (CourseStatus, bool) {
	for _, cs := range s {
		if cs.Course.ID == id {
			return cs, true
		}
	}
	return CourseStatus{}, false
}

// Counts returns the number of courses per status.
func (s Snapshot) Counts() (completed, available, locked int) {
	for _, cs := range s {
		switch cs.Status {
		case StatusCompleted:
			completed++
		case StatusAvailable:
			available++
		case StatusLocked:
			locked++
		}
	}
	return completed, available, locked
}

// StatusOf derives a single course's status from the completed set.
//
// A course is locked when it is not completed and at least one
// requirement is not in the set. Requirement IDs missing from the
// catalog behave the same as any other unmet requirement: they are
// never implicitly completed, so the course stays locked.
func StatusOf(course Course, completed CompletedSet) Status {
	if completed.Has(course.ID) {
		return StatusCompleted
	}
	for _, req := range course.Requires {
		if !completed.Has(req) {
			return StatusLocked
		}
	}
	return StatusAvailable
}

// Missing returns the course's unsatisfied requirement IDs in
// declaration order.
func Missing(course Course, completed CompletedSet) []string {
	var missing []string
	for _, req := range course.Requires {
		if !completed.Has(req) {
			missing = append(missing, req)
		}
	}
	return missing
}

// ComputeStatuses derives the status of every catalog course from the
// completed set. It is a pure function of its inputs.
func ComputeStatuses(catalog *Catalog, completed CompletedSet) Snapshot {
	snapshot := make(Snapshot, 0, catalog.Len())
	for _, course := range catalog.Courses() {
		snapshot = append(snapshot, CourseStatus{
			Course: course,
			Status: StatusOf(course, completed),
		})
	}
	return snapshot
}

// MissingRequirement is one unsatisfied requirement of a rejected
// toggle, resolved to a display label where possible.
type MissingRequirement struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// ToggleResult reports the outcome of a toggle request.
//
// A rejected result carries the ordered list of unsatisfied
// requirements and leaves the completed set untouched. A successful
// result carries the course's new status and a fresh full snapshot.
type ToggleResult struct {
	Course   Course               `json:"course"`
	Rejected bool                 `json:"rejected"`
	Missing  []MissingRequirement `json:"missing,omitempty"`
	Status   Status               `json:"status"`
	Snapshot Snapshot             `json:"snapshot"`
}

// Engine validates and applies toggle requests against the catalog.
//
// The engine never retains a completed set across calls: every
// operation re-reads current state from the store, computes, and (on
// success) writes the full set back. There is exactly one logical
// actor, so no locking discipline is needed.
type Engine struct {
	catalog *Catalog
	store   ProgressStore
	labels  LabelFunc
	log     zerolog.Logger
}

// NewEngine creates an engine over the catalog and progress store.
// labels may be nil, in which case raw IDs are used in rejection
// messages.
func NewEngine(catalog *Catalog, store ProgressStore, labels LabelFunc, logger zerolog.Logger) *Engine {
	return &Engine{
		catalog: catalog,
		store:   store,
		labels:  labels,
		log:     logger,
	}
}

// Catalog returns the engine's course catalog.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// Snapshot loads the current completed set and derives every course's
// status.
func (e *Engine) Snapshot(ctx context.Context) Snapshot {
	return ComputeStatuses(e.catalog, e.store.Load(ctx))
}

// RequestToggle validates a toggle for the given course and applies it.
//
// Locked courses are rejected with the ordered list of unsatisfied
// requirements; no mutation occurs. Completed courses are demoted —
// deliberately without cascading: dependents simply evaluate as locked
// in the snapshot returned with the result. Available courses are
// promoted. Successful toggles persist the updated set before
// returning.
//
// Toggling an ID that is not in the catalog is a caller bug; the
// engine guards the completed-set invariant by refusing to mutate and
// returns the current snapshot unchanged.
func (e *Engine) RequestToggle(ctx context.Context, id string) ToggleResult {
	completed := e.store.Load(ctx)

	course, ok := e.catalog.Get(id)
	if !ok {
		e.log.Warn().Str("course", id).Msg("toggle requested for unknown course")
		return ToggleResult{
			Status:   StatusLocked,
			Snapshot: ComputeStatuses(e.catalog, completed),
		}
	}

	if StatusOf(course, completed) == StatusLocked {
		missing := Missing(course, completed)
		reqs := make([]MissingRequirement, 0, len(missing))
		for _, reqID := range missing {
			reqs = append(reqs, MissingRequirement{ID: reqID, Label: e.resolveLabel(reqID)})
		}

		// Expected in normal use, so informational only.
		e.log.Debug().Str("course", id).Strs("missing", missing).Msg("toggle rejected")

		return ToggleResult{
			Course:   course,
			Rejected: true,
			Missing:  reqs,
			Status:   StatusLocked,
			Snapshot: ComputeStatuses(e.catalog, completed),
		}
	}

	if completed.Has(id) {
		completed.Remove(id)
	} else {
		completed.Add(id)
	}

	e.store.Save(ctx, completed)

	snapshot := ComputeStatuses(e.catalog, completed)
	status := StatusOf(course, completed)
	e.log.Info().Str("course", id).Str("status", string(status)).Msg("toggle applied")

	return ToggleResult{
		Course:   course,
		Status:   status,
		Snapshot: snapshot,
	}
}

func (e *Engine) resolveLabel(id string) string {
	if e.labels != nil {
		if label, ok := e.labels(id); ok {
			return label
		}
	}
	return id
}
