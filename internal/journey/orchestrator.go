// Package journey runs the initialization pipeline and groups the resulting
// courses into display buckets.
package journey

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"journey-engine/internal/domain"
	"journey-engine/internal/gateway"
	"journey-engine/internal/mappers"
)

// Snapshot is the orchestrator's committed working state. Single-writer:
// only the orchestrator mutates it, readers get a copy via Orchestrator.Snapshot.
type Snapshot struct {
	Profile              map[string]any
	Enrolled             bool
	Courses              []domain.Course
	Notifications        []map[string]any
	CompletionPercentage float64
	Loading              bool
	Err                  error
}

// Orchestrator runs the fixed six-step initialization sequence.
//
// Step 1 (basic profile) is hard: its failure aborts the run and surfaces a
// visible error. Steps 2-6 are best effort: a failure is logged, the field
// stays at its default and the sequence continues. Step 6 only runs when
// step 2 reported enrollment. Steps run strictly sequentially.
//
// Each run takes a new generation token; a step result from a superseded run
// is discarded instead of overwriting newer state.
type Orchestrator struct {
	gw  gateway.Gateway
	log *zap.Logger

	mu   sync.Mutex
	gen  int64
	snap Snapshot
}

func NewOrchestrator(gw gateway.Gateway, log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{gw: gw, log: log}
}

// Snapshot returns a copy of the last committed state.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snap
}

// Run executes one initialization sequence. The returned error is non-nil
// only for the hard step-1 failure; soft step failures are absorbed.
func (o *Orchestrator) Run(ctx context.Context) error {
	gen := o.begin()
	defer o.finish(gen)

	// step 1: basic profile (hard)
	profile, err := o.gw.FetchBasicProfile(ctx)
	if err != nil {
		o.commit(gen, func(s *Snapshot) { s.Err = err })
		return fmt.Errorf("journey: init aborted: %w", err)
	}
	o.commit(gen, func(s *Snapshot) { s.Profile = profile })

	// step 2: enrollment check (soft, gates step 6)
	enrolled := false
	if enr, err := o.gw.CheckEnrollment(ctx); err != nil {
		o.soft(2, "enrollment check", err)
	} else {
		enrolled = enr.Enrolled
		o.commit(gen, func(s *Snapshot) { s.Enrolled = enr.Enrolled })
	}

	// step 3: profile details, shallow-merged onto step 1; details win on
	// key collision (soft)
	if details, err := o.gw.FetchProfileDetails(ctx); err != nil {
		o.soft(3, "profile details", err)
	} else {
		o.commit(gen, func(s *Snapshot) {
			s.Profile = mergeProfiles(s.Profile, details)
		})
	}

	// step 4: notifications (soft)
	if notes, err := o.gw.FetchNotifications(ctx); err != nil {
		o.soft(4, "notifications", err)
	} else {
		o.commit(gen, func(s *Snapshot) { s.Notifications = notes })
	}

	// step 5: completion percentage (soft)
	if pct, err := o.gw.FetchCompletionPercentage(ctx); err != nil {
		o.soft(5, "completion percentage", err)
	} else {
		o.commit(gen, func(s *Snapshot) { s.CompletionPercentage = pct })
	}

	// step 6: enrolled course list, only for enrolled users (soft)
	if enrolled {
		if recs, err := o.gw.FetchEnrolledCourses(ctx); err != nil {
			o.soft(6, "enrolled courses", err)
		} else {
			courses := mappers.FromRecords(recs)
			o.commit(gen, func(s *Snapshot) { s.Courses = courses })
		}
	}

	return nil
}

// begin starts a new generation and resets the snapshot to loading.
func (o *Orchestrator) begin() int64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.gen++
	o.snap = Snapshot{Loading: true}
	return o.gen
}

// finish clears the loading flag, once, unless a newer run took over.
func (o *Orchestrator) finish(gen int64) {
	o.commit(gen, func(s *Snapshot) { s.Loading = false })
}

// commit applies a mutation atomically, dropping it when the run is stale.
func (o *Orchestrator) commit(gen int64, apply func(*Snapshot)) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if gen != o.gen {
		return false
	}
	apply(&o.snap)
	return true
}

func (o *Orchestrator) soft(step int, name string, err error) {
	o.log.Warn("journey init step failed, continuing",
		zap.Int("step", step),
		zap.String("op", name),
		zap.Error(err),
	)
}

// mergeProfiles shallow-merges details onto base; details win on collision.
func mergeProfiles(base, details map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(details))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range details {
		out[k] = v
	}
	return out
}
