// Package gateway is the remote data gateway the journey engine reads from.
package gateway

import (
	"context"

	"journey-engine/internal/domain"
)

// Enrollment is the backend's answer to the enrollment check.
type Enrollment struct {
	Enrolled bool `json:"enrolled"`
}

// AttemptSummary describes the latest attempt on a lesson-level item.
type AttemptSummary struct {
	AttemptID string `json:"attemptId"`
	State     string `json:"state"` // "inprogress", "finished", ...
	Score     int    `json:"score"`
}

// InProgress reports whether the attempt can be resumed.
func (a AttemptSummary) InProgress() bool {
	return a.AttemptID != "" && a.State == "inprogress"
}

// Gateway exposes the backend operations the engine consumes. The first six
// feed the initialization pipeline; the lesson-level calls are made on
// demand by navigation-adjacent handlers.
type Gateway interface {
	FetchBasicProfile(ctx context.Context) (map[string]any, error)
	CheckEnrollment(ctx context.Context) (Enrollment, error)
	FetchProfileDetails(ctx context.Context) (map[string]any, error)
	FetchNotifications(ctx context.Context) ([]map[string]any, error)
	FetchCompletionPercentage(ctx context.Context) (float64, error)
	FetchEnrolledCourses(ctx context.Context) ([]domain.RawEnrollmentRecord, error)

	FetchLessonContents(ctx context.Context, lessonID string) (map[string]any, error)
	FetchAttemptSummary(ctx context.Context, lessonID string) (AttemptSummary, error)
	FetchQuizReport(ctx context.Context, lessonID string, page int) (map[string]any, error)
}
