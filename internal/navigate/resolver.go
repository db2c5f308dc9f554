// Package navigate picks the destination screen for a user action on a
// journey item. Routing is an ordered list of (predicate, builder) rules,
// evaluated top to bottom; the first predicate that claims the request wins.
package navigate

import (
	"context"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"journey-engine/internal/domain"
)

type Destination string

const (
	DestAutomotiveAwareness    Destination = "automotive-awareness"
	DestJourneyHome            Destination = "journey-home"
	DestRoleRecommendation     Destination = "role-recommendation-info"
	DestAssignment             Destination = "assignment"
	DestSurvey                 Destination = "survey"
	DestCourseDetail           Destination = "course-detail"
	DestFinalAssessment        Destination = "final-assessment"
	DestAssessmentInstructions Destination = "assessment-instructions"
	DestExternal               Destination = "external-link"
)

type Params map[string]string

// Resolution is where a claimed request should go and with which identifier
// payload. External marks absolute links handed to the system browser.
type Resolution struct {
	Destination Destination
	Params      Params
	External    bool
}

// Request is one user interaction: a canonical course, a raw URL, or both.
// When URL is empty the course's moodle URL is used.
type Request struct {
	Course *domain.Course
	URL    string
}

// AttemptSource answers whether a lesson-level item has a resumable attempt.
// Backed by the gateway's attempt-summary call in production.
type AttemptSource interface {
	InProgressAttempt(ctx context.Context, lessonID string) (string, bool)
}

type Resolver struct {
	log      *zap.Logger
	attempts AttemptSource // optional
}

func NewResolver(log *zap.Logger, attempts AttemptSource) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{log: log, attempts: attempts}
}

type rule struct {
	name  string
	match func(Request) bool
	build func(context.Context, *Resolver, Request) (Resolution, bool)
}

// The order of this table is the routing contract. courseId and lessonId are
// separate identifier namespaces: course-level rules read Course.CourseID,
// lesson-level rules read Course.LessonID, and neither ever substitutes the
// other.
var rules = []rule{
	{name: "automotive-awareness", match: matchAutomotive, build: buildAutomotive},
	{name: "role-recommendation", match: matchRoleRecommendation, build: buildRoleRecommendation},
	{name: "assignment", match: matchAssignment, build: buildAssignment},
	{name: "survey", match: matchSurvey, build: buildSurvey},
	{name: "course", match: matchCourse, build: buildCourse},
	{name: "assessment", match: matchAssessment, build: buildAssessment},
	{name: "external", match: matchExternal, build: buildExternal},
}

// Resolve runs the rule table. The second return is false when no rule
// matched or the matching rule could not produce its required identifiers;
// either way it is logged and no navigation happens.
func (r *Resolver) Resolve(ctx context.Context, req Request) (Resolution, bool) {
	if req.URL == "" && req.Course != nil {
		req.URL = req.Course.MoodleURL
	}

	for _, rl := range rules {
		if !rl.match(req) {
			continue
		}
		res, ok := rl.build(ctx, r, req)
		if !ok {
			r.log.Warn("navigation rule matched but could not resolve",
				zap.String("rule", rl.name),
				zap.String("url", req.URL),
				zap.String("title", title(req)),
			)
			return Resolution{}, false
		}
		return res, true
	}

	r.log.Warn("unresolved route",
		zap.String("url", req.URL),
		zap.String("title", title(req)),
		zap.String("contentType", string(contentType(req))),
	)
	return Resolution{}, false
}

/* -------- rule 1: automotive awareness -------- */

func matchAutomotive(req Request) bool {
	t := strings.ToLower(title(req) + " " + subTitle(req))
	return strings.Contains(t, "automotive") && strings.Contains(t, "awareness")
}

func buildAutomotive(_ context.Context, _ *Resolver, req Request) (Resolution, bool) {
	if id := courseID(req); id != "" {
		return Resolution{Destination: DestAutomotiveAwareness, Params: Params{"courseId": id}}, true
	}
	// no resolvable course id: static default destination
	return Resolution{Destination: DestJourneyHome}, true
}

/* -------- rule 2: role recommendation -------- */

func matchRoleRecommendation(req Request) bool {
	if contentType(req) == domain.ContentRoleRecommendation {
		return true
	}
	t := strings.ToLower(title(req) + " " + buttonText(req))
	return strings.Contains(t, "role recommendation") || strings.Contains(t, "recommended role")
}

func buildRoleRecommendation(_ context.Context, _ *Resolver, _ Request) (Resolution, bool) {
	// fixed informational screen, no identifier payload
	return Resolution{Destination: DestRoleRecommendation}, true
}

/* -------- rule 3: assignment -------- */

func matchAssignment(req Request) bool {
	return pathContains(req, "assignment") || contentType(req) == domain.ContentAssignment
}

func buildAssignment(_ context.Context, _ *Resolver, req Request) (Resolution, bool) {
	id := lessonID(req)
	if id == "" {
		id = trailingSegment(req.URL)
	}
	if id == "" {
		return Resolution{}, false
	}
	return Resolution{
		Destination: DestAssignment,
		Params:      Params{"lessonId": id, "moodleCourseId": id},
	}, true
}

/* -------- rule 4: survey / career -------- */

func matchSurvey(req Request) bool {
	if contentType(req) == domain.ContentSurvey {
		return true
	}
	if pathContains(req, "survey") || pathContains(req, "career") {
		return true
	}
	t := strings.ToLower(title(req) + " " + subTitle(req))
	return strings.Contains(t, "survey") || strings.Contains(t, "career")
}

func buildSurvey(ctx context.Context, r *Resolver, req Request) (Resolution, bool) {
	id := lessonID(req)
	if id == "" {
		id = trailingSegment(req.URL)
	}
	if id == "" {
		return Resolution{}, false
	}
	params := Params{"lessonId": id}
	if r.attempts != nil && req.Course != nil {
		if attemptID, ok := r.attempts.InProgressAttempt(ctx, id); ok {
			params["attemptId"] = attemptID
		}
	}
	return Resolution{Destination: DestSurvey, Params: params}, true
}

/* -------- rule 5: plain course -------- */

func matchCourse(req Request) bool {
	return contentType(req) == domain.ContentCourse
}

func buildCourse(_ context.Context, _ *Resolver, req Request) (Resolution, bool) {
	// course-level endpoint: root courseId, never the lesson namespace
	id := courseID(req)
	if id == "" {
		return Resolution{}, false
	}
	return Resolution{Destination: DestCourseDetail, Params: Params{"courseId": id}}, true
}

/* -------- rule 6: assessment / test / quiz -------- */

func matchAssessment(req Request) bool {
	if contentType(req).AssessmentLike() {
		return true
	}
	return pathContains(req, "assessment") || pathContains(req, "test") || pathContains(req, "quiz")
}

func buildAssessment(_ context.Context, _ *Resolver, req Request) (Resolution, bool) {
	id := lessonID(req)
	if id == "" {
		id = trailingSegment(req.URL)
	}
	if id == "" {
		return Resolution{}, false
	}
	dest := DestAssessmentInstructions
	if finalAssessment(req) {
		dest = DestFinalAssessment
	}
	return Resolution{Destination: dest, Params: Params{"lessonId": id}}, true
}

// finalAssessment special-cases the end-of-journey assessment variant.
func finalAssessment(req Request) bool {
	if req.Course != nil && strings.EqualFold(req.Course.ID, "final-assessment") {
		return true
	}
	return strings.Contains(strings.ToLower(title(req)), "final assessment")
}

/* -------- rule 7: absolute external link -------- */

func matchExternal(req Request) bool {
	u, err := url.Parse(strings.TrimSpace(req.URL))
	return err == nil && u.Scheme != "" && u.Host != ""
}

func buildExternal(_ context.Context, _ *Resolver, req Request) (Resolution, bool) {
	return Resolution{
		Destination: DestExternal,
		Params:      Params{"url": strings.TrimSpace(req.URL)},
		External:    true,
	}, true
}

/* -------- accessors -------- */

func title(req Request) string {
	if req.Course == nil {
		return ""
	}
	return req.Course.Title
}

func subTitle(req Request) string {
	if req.Course == nil {
		return ""
	}
	return req.Course.SubTitle
}

func buttonText(req Request) string {
	if req.Course == nil {
		return ""
	}
	return req.Course.ButtonText
}

func contentType(req Request) domain.ContentType {
	if req.Course == nil {
		return ""
	}
	return req.Course.ContentType
}

func courseID(req Request) string {
	if req.Course == nil {
		return ""
	}
	return strings.TrimSpace(req.Course.CourseID)
}

func lessonID(req Request) string {
	if req.Course == nil {
		return ""
	}
	return strings.TrimSpace(req.Course.LessonID)
}

func pathContains(req Request, marker string) bool {
	raw := strings.TrimSpace(req.URL)
	if raw == "" {
		return false
	}
	p := raw
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		p = u.Path
	}
	return strings.Contains(strings.ToLower(p), marker)
}

// trailingSegment pulls the last non-empty path segment out of a URL; the
// last-resort identifier source for lesson-level rules.
func trailingSegment(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	p := raw
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		p = u.Path
	}
	parts := strings.Split(strings.Trim(p, "/"), "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if s := strings.TrimSpace(parts[i]); s != "" {
			return s
		}
	}
	return ""
}
