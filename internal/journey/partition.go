package journey

import (
	"sort"
	"time"

	"journey-engine/internal/classify"
	"journey-engine/internal/domain"
)

// Buckets are the ordered display groups of a classified journey.
// Aborted courses are grouped with Locked for presentation.
type Buckets struct {
	Completed  domain.JourneyBucket
	Active     domain.JourneyBucket
	Locked     domain.JourneyBucket
	ComingSoon domain.JourneyBucket
}

// Partition classifies every course at now and groups the results. Overdue
// assessments reclassified by the deadline override are merged into the
// Completed bucket unless a course with the same id is already there. Every
// bucket ends up sorted ascending by Order, ties broken by original record
// position.
func Partition(courses []domain.Course, now time.Time) Buckets {
	b := Buckets{
		Completed:  domain.JourneyBucket{State: domain.ClassCompleted},
		Active:     domain.JourneyBucket{State: domain.ClassActive},
		Locked:     domain.JourneyBucket{State: domain.ClassLocked},
		ComingSoon: domain.JourneyBucket{State: domain.ClassComingSoon},
	}

	var overdue []domain.Course
	for _, c := range courses {
		res := classify.Classify(c, now)
		if res.DeadlineExceeded {
			c.DeadlineExceeded = true
			overdue = append(overdue, c)
			continue
		}
		switch res.State {
		case domain.ClassCompleted:
			b.Completed.Courses = append(b.Completed.Courses, c)
		case domain.ClassActive:
			b.Active.Courses = append(b.Active.Courses, c)
		case domain.ClassLocked, domain.ClassAborted:
			b.Locked.Courses = append(b.Locked.Courses, c)
		default:
			b.ComingSoon.Courses = append(b.ComingSoon.Courses, c)
		}
	}

	// merge overdue assessments into Completed, deduped by id
	seen := make(map[string]bool, len(b.Completed.Courses))
	for _, c := range b.Completed.Courses {
		if c.ID != "" {
			seen[c.ID] = true
		}
	}
	for _, c := range overdue {
		if c.ID != "" && seen[c.ID] {
			continue
		}
		b.Completed.Courses = append(b.Completed.Courses, c)
	}

	for _, bucket := range []*domain.JourneyBucket{&b.Completed, &b.Active, &b.Locked, &b.ComingSoon} {
		sortCourses(bucket.Courses)
		bucket.Count = len(bucket.Courses)
	}
	return b
}

// All returns the buckets in display order.
func (b Buckets) All() []domain.JourneyBucket {
	return []domain.JourneyBucket{b.Completed, b.Active, b.Locked, b.ComingSoon}
}

func sortCourses(cs []domain.Course) {
	sort.SliceStable(cs, func(i, j int) bool {
		if cs[i].Order != cs[j].Order {
			return cs[i].Order < cs[j].Order
		}
		return cs[i].Index < cs[j].Index
	})
}
