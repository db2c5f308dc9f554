package navigate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"journey-engine/internal/domain"
)

type stubAttempts struct {
	id string
	ok bool
}

func (s stubAttempts) InProgressAttempt(ctx context.Context, lessonID string) (string, bool) {
	return s.id, s.ok
}

func resolve(t *testing.T, req Request) (Resolution, bool) {
	t.Helper()
	return NewResolver(zap.NewNop(), nil).Resolve(context.Background(), req)
}

func TestAutomotiveAwarenessWithCourseID(t *testing.T) {
	res, ok := resolve(t, Request{Course: &domain.Course{
		Title:    "Automotive Awareness Basics",
		CourseID: "C-12",
		LessonID: "M-99", // must be ignored: wrong namespace for this rule
	}})

	require.True(t, ok)
	assert.Equal(t, DestAutomotiveAwareness, res.Destination)
	assert.Equal(t, "C-12", res.Params["courseId"])
	assert.NotContains(t, res.Params, "lessonId")
}

func TestAutomotiveAwarenessFallsBackWithoutCourseID(t *testing.T) {
	// title-only match, no URL, no resolvable courseId
	res, ok := resolve(t, Request{Course: &domain.Course{Title: "Automotive Awareness"}})

	require.True(t, ok, "the automotive rule still fires on a title-only match")
	assert.Equal(t, DestJourneyHome, res.Destination)
	assert.Empty(t, res.Params)
}

func TestAutomotiveMatchesSubtitleToo(t *testing.T) {
	res, ok := resolve(t, Request{Course: &domain.Course{
		Title:    "Automotive",
		SubTitle: "awareness module",
		CourseID: "C-1",
	}})
	require.True(t, ok)
	assert.Equal(t, DestAutomotiveAwareness, res.Destination)
}

func TestRoleRecommendation(t *testing.T) {
	byType, ok := resolve(t, Request{Course: &domain.Course{
		ContentType: domain.ContentRoleRecommendation,
		LessonID:    "M-1",
	}})
	require.True(t, ok)
	assert.Equal(t, DestRoleRecommendation, byType.Destination)
	assert.Empty(t, byType.Params, "informational screen takes no identifiers")

	byText, ok := resolve(t, Request{Course: &domain.Course{
		ContentType: domain.ContentCourse,
		ButtonText:  "See your role recommendation",
	}})
	require.True(t, ok)
	assert.Equal(t, DestRoleRecommendation, byText.Destination)
}

func TestAssignmentUsesLessonNamespace(t *testing.T) {
	res, ok := resolve(t, Request{
		Course: &domain.Course{
			ContentType: domain.ContentAssignment,
			CourseID:    "C-55", // wrong namespace, must not leak in
			LessonID:    "LID-9",
		},
		URL: "https://lms.example.com/mod/assignment/123",
	})

	require.True(t, ok)
	assert.Equal(t, DestAssignment, res.Destination)
	assert.Equal(t, "LID-9", res.Params["lessonId"])
	assert.Equal(t, "LID-9", res.Params["moodleCourseId"])
	assert.NotContains(t, res.Params, "courseId")
}

func TestAssignmentDerivesIDFromURL(t *testing.T) {
	res, ok := resolve(t, Request{URL: "https://lms.example.com/mod/assignment/123"})

	require.True(t, ok)
	assert.Equal(t, DestAssignment, res.Destination)
	assert.Equal(t, "123", res.Params["lessonId"])
	assert.Equal(t, "123", res.Params["moodleCourseId"])
}

func TestSurveyCarriesResumableAttempt(t *testing.T) {
	r := NewResolver(zap.NewNop(), stubAttempts{id: "att-7", ok: true})
	res, ok := r.Resolve(context.Background(), Request{Course: &domain.Course{
		ContentType: domain.ContentSurvey,
		LessonID:    "M-3",
	}})

	require.True(t, ok)
	assert.Equal(t, DestSurvey, res.Destination)
	assert.Equal(t, "M-3", res.Params["lessonId"])
	assert.Equal(t, "att-7", res.Params["attemptId"])
}

func TestSurveyWithoutAttemptSource(t *testing.T) {
	res, ok := resolve(t, Request{Course: &domain.Course{
		Title:    "Career survey",
		LessonID: "M-3",
	}})

	require.True(t, ok)
	assert.Equal(t, DestSurvey, res.Destination)
	assert.NotContains(t, res.Params, "attemptId")
}

func TestCourseUsesRootCourseID(t *testing.T) {
	res, ok := resolve(t, Request{Course: &domain.Course{
		ContentType: domain.ContentCourse,
		CourseID:    "C-88",
		LessonID:    "M-88", // both present: resolver must still pick courseId
	}})

	require.True(t, ok)
	assert.Equal(t, DestCourseDetail, res.Destination)
	assert.Equal(t, "C-88", res.Params["courseId"])
	assert.NotContains(t, res.Params, "lessonId")
}

func TestCourseWithoutCourseIDIsUnresolved(t *testing.T) {
	// lessonId must never be substituted for the missing courseId
	_, ok := resolve(t, Request{Course: &domain.Course{
		ContentType: domain.ContentCourse,
		LessonID:    "M-88",
	}})
	assert.False(t, ok)
}

func TestAssessmentGeneric(t *testing.T) {
	res, ok := resolve(t, Request{Course: &domain.Course{
		ContentType: domain.ContentAssessment,
		LessonID:    "M-21",
	}})

	require.True(t, ok)
	assert.Equal(t, DestAssessmentInstructions, res.Destination)
	assert.Equal(t, "M-21", res.Params["lessonId"])
}

func TestAssessmentFinalVariant(t *testing.T) {
	byTitle, ok := resolve(t, Request{Course: &domain.Course{
		ContentType: domain.ContentTest,
		Title:       "Final Assessment",
		LessonID:    "M-30",
	}})
	require.True(t, ok)
	assert.Equal(t, DestFinalAssessment, byTitle.Destination)

	byID, ok := resolve(t, Request{Course: &domain.Course{
		ContentType: domain.ContentAssessment,
		ID:          "FINAL-ASSESSMENT",
		LessonID:    "M-31",
	}})
	require.True(t, ok)
	assert.Equal(t, DestFinalAssessment, byID.Destination)
}

func TestAssessmentByURL(t *testing.T) {
	res, ok := resolve(t, Request{URL: "/mod/quiz/555"})

	require.True(t, ok)
	assert.Equal(t, DestAssessmentInstructions, res.Destination)
	assert.Equal(t, "555", res.Params["lessonId"])
}

func TestExternalLink(t *testing.T) {
	res, ok := resolve(t, Request{URL: "https://docs.example.com/handbook"})

	require.True(t, ok)
	assert.Equal(t, DestExternal, res.Destination)
	assert.True(t, res.External)
	assert.Equal(t, "https://docs.example.com/handbook", res.Params["url"])
}

func TestUnresolvedRoute(t *testing.T) {
	_, ok := resolve(t, Request{URL: "/somewhere/odd"})
	assert.False(t, ok)

	_, ok = resolve(t, Request{})
	assert.False(t, ok)
}

func TestResolveFallsBackToCourseURL(t *testing.T) {
	res, ok := resolve(t, Request{Course: &domain.Course{
		Title:     "Weekly reading",
		MoodleURL: "https://library.example.com/article/9",
	}})

	require.True(t, ok)
	assert.Equal(t, DestExternal, res.Destination)
}

func TestRuleOrderAutomotiveBeatsCourse(t *testing.T) {
	// an automotive awareness COURSE is claimed by rule 1, not rule 5
	res, ok := resolve(t, Request{Course: &domain.Course{
		ContentType: domain.ContentCourse,
		Title:       "Automotive Awareness",
		CourseID:    "C-2",
	}})

	require.True(t, ok)
	assert.Equal(t, DestAutomotiveAwareness, res.Destination)
}
