// Package classify turns a canonical Course into exactly one Classification.
// The precedence below is the single source of truth; call sites must not
// re-derive state from individual flags.
package classify

import (
	"time"

	"journey-engine/internal/domain"
)

// Result is the classification outcome for one course at one instant.
// DeadlineExceeded marks an overdue assessment that is presented as
// completed; the underlying result state is untouched.
type Result struct {
	State            domain.Classification
	DeadlineExceeded bool
}

// Classify is total and deterministic: for any course and fixed now it
// returns exactly one classification and never fails.
//
// Precedence, first match wins:
//  1. completion signal (explicit flag, completed/passed status, pass result)
//  2. failure signal (fail result, aborted/failed status)
//  3. unlocked and actively progressing or not yet started
//  4. unlocked at all
//  5. locked flag, or locked/coming-soon status
//  6. active status
//  7. coming soon (default)
//
// After that, the deadline override applies to assessment-like items that are
// neither completed nor aborted: an overdue deadline presents the item as
// completed, flagged deadline-exceeded.
func Classify(c domain.Course, now time.Time) Result {
	res := Result{State: base(c)}

	if c.ContentType.AssessmentLike() &&
		res.State != domain.ClassCompleted &&
		res.State != domain.ClassAborted {
		if t, ok := ParseDeadline(c.Deadline); ok && t.Before(now) {
			res.State = domain.ClassCompleted
			res.DeadlineExceeded = true
		}
	}
	return res
}

func base(c domain.Course) domain.Classification {
	ps := c.ProgressState

	switch {
	case c.Completed || ps == "completed" || ps == "passed" || c.Result == domain.ResultPass:
		return domain.ClassCompleted

	case c.Result == domain.ResultFail || ps == "aborted" || ps == "failed":
		return domain.ClassAborted

	case c.Lock == domain.LockUnlocked && progressing(ps):
		return domain.ClassActive

	// Looser fallback: unlocked and not explicitly locked still counts
	// as active even when the status string says nothing useful.
	case c.Lock == domain.LockUnlocked:
		return domain.ClassActive

	case c.Lock == domain.LockLocked || ps == "locked" || ps == "comingsoon" || ps == "coming_soon":
		return domain.ClassLocked

	case ps == "active" || ps == "inprogress" || ps == "in_progress":
		return domain.ClassActive
	}
	return domain.ClassComingSoon
}

func progressing(ps string) bool {
	switch ps {
	case "active", "inprogress", "in_progress", "notstarted", "not_started", "started":
		return true
	}
	return false
}
