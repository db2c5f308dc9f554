package domain

// RawEnrollmentRecord is one enrollment/course/assessment item exactly as the
// backend returns it. No field is guaranteed present and nesting varies:
// fields may sit at the top level or inside a nested "course"/"metadata"
// object. Only the mappers package should read it field by field.
type RawEnrollmentRecord map[string]any

// ContentType tags what kind of journey item a record describes.
type ContentType string

const (
	ContentCourse             ContentType = "COURSE"
	ContentAssessment         ContentType = "ASSESSMENT"
	ContentTest               ContentType = "TEST"
	ContentAssignment         ContentType = "ASSIGNMENT"
	ContentSurvey             ContentType = "SURVEY"
	ContentRoleRecommendation ContentType = "ROLE_RECOMMENDATION"
)

// AssessmentLike reports whether deadline handling applies to this content type.
func (c ContentType) AssessmentLike() bool {
	return c == ContentAssessment || c == ContentTest
}

// LockState is the backend gating flag, independent of completion.
// Empty means the backend did not say either way.
type LockState string

const (
	LockLocked   LockState = "locked"
	LockUnlocked LockState = "unlocked"
)

// ResultState is the recorded outcome of an attempt, if any.
type ResultState string

const (
	ResultPass ResultState = "pass"
	ResultFail ResultState = "fail"
	ResultNone ResultState = "none"
)

// Course is the canonical representation of one journey item. All raw records
// map into this model (see internal/mappers) and classification and
// navigation only ever read this model, never the raw record.
//
// CourseID and LessonID are two separate identifier namespaces routed to
// different backend endpoints: CourseID drives course-level calls
// (module/lesson lists), LessonID drives lesson-level calls (assessments,
// assignments, attempts, quiz reports). They are never interchangeable.
type Course struct {
	ID       string
	CourseID string // course-level namespace
	LessonID string // lesson-level (moodleCourseId) namespace

	Order int // ascending sort key
	Index int // original record position, tie-break for Order

	ContentType ContentType
	Title       string
	Description string
	Duration    string
	SubTitle    string
	MoodleURL   string
	ButtonText  string
	Reason      string
	IconURL     string

	ProgressPercentage float64 // 0..100
	CompletedModules   int
	TotalModules       int

	// Deadline is kept as the raw backend string ("" = no deadline) and
	// parsed tolerantly at classification time.
	Deadline string

	Lock          LockState
	ProgressState string // lowercased status/progress string from the backend
	Completed     bool   // explicit completed flag, when the backend sends one
	Result        ResultState

	RetakeDays  *int
	RetakeExact *string

	// DeadlineExceeded marks an overdue assessment presented in the
	// Completed bucket. Display only; Result is untouched.
	DeadlineExceeded bool

	// Raw is a non-owning back-reference to the originating record, for
	// diagnostics only. Downstream stages must not read fields from it.
	Raw RawEnrollmentRecord
}

// Classification is derived from a Course and an evaluation time. It is never
// stored; callers recompute it whenever they need it.
type Classification int

const (
	ClassCompleted Classification = iota
	ClassActive
	ClassLocked
	ClassComingSoon
	ClassAborted
)

func (c Classification) String() string {
	switch c {
	case ClassCompleted:
		return "completed"
	case ClassActive:
		return "active"
	case ClassLocked:
		return "locked"
	case ClassComingSoon:
		return "coming-soon"
	case ClassAborted:
		return "aborted"
	}
	return "unknown"
}

// JourneyBucket is an ordered group of courses sharing a classification.
type JourneyBucket struct {
	State   Classification
	Courses []Course
	Count   int
}
