package mappers

import (
	"strconv"
	"strings"

	"journey-engine/internal/domain"
)

// Each canonical Course field resolves through an ordered list of candidate
// locations inside the raw record: nested paths first, then root-level
// aliases, then a literal default. The first non-empty match wins. Keeping
// the chains as literal tables (instead of ad hoc conditionals) makes each
// one testable on its own.
//
// A path is dot-separated; "course.title" means rec["course"]["title"].
var (
	chainID = []string{"course.id", "metadata.id", "id", "_id", "courseId"}

	// Root-level identifier for course-level API calls.
	chainCourseID = []string{"courseId", "course.courseId", "course.id", "id"}

	// Lesson-level identifier. Feeds every assessment/assignment/lesson
	// call, so the chain order here is a correctness concern: nested
	// moodleCourseId wins over root, root over the looser aliases.
	chainLessonID = []string{
		"course.moodleCourseId",
		"metadata.moodleCourseId",
		"moodleCourseId",
		"course.moodleId",
		"course.lessonId",
		"lessonId",
	}

	chainOrder       = []string{"course.order", "order", "sequence", "position"}
	chainContentType = []string{"course.contentType", "metadata.contentType", "contentType", "type"}
	chainTitle       = []string{"course.title", "title", "course.name", "name", "courseName"}
	chainDescription = []string{"course.description", "description", "course.summary", "summary"}
	chainDuration    = []string{"course.duration", "duration", "course.durationText"}
	chainSubTitle    = []string{"course.subTitle", "course.subtitle", "subTitle", "subtitle"}
	chainMoodleURL   = []string{"course.moodleUrl", "moodleUrl", "course.url", "url", "link"}
	chainButtonText  = []string{"course.buttonText", "buttonText", "ctaText"}
	chainReason      = []string{"course.reason", "reason"}
	chainIconURL     = []string{"course.iconUrl", "iconUrl", "course.icon", "icon", "imageUrl"}

	chainProgressPct      = []string{"course.progressPercentage", "progressPercentage", "progress", "percentageCompleted"}
	chainCompletedModules = []string{"course.completedModules", "completedModules", "modulesCompleted"}
	chainTotalModules     = []string{"course.totalModules", "totalModules", "moduleCount"}

	chainDeadline = []string{"course.deadline", "deadline", "course.dueDate", "dueDate"}

	chainLock          = []string{"course.lockedOrUnlocked", "lockedOrUnlocked", "lockState"}
	chainProgressState = []string{"course.progressState", "progressState", "course.status", "status", "state"}
	chainCompleted     = []string{"course.completed", "completed", "isCompleted"}
	chainResult        = []string{"course.result", "result", "resultState"}

	chainRetakeDays  = []string{"course.retakeDays", "retakeDays"}
	chainRetakeExact = []string{"course.retakeExact", "retakeExact", "retakeDate"}
)

// FromRecord maps one raw enrollment record into the canonical Course.
// It never fails: any field it cannot resolve gets its documented default,
// and the returned Course is always complete. index is the record's position
// in the backend list, kept as the sort tie-break.
func FromRecord(rec domain.RawEnrollmentRecord, index int) domain.Course {
	c := domain.Course{
		Index: index,
		Raw:   rec,
	}

	c.ID = str(rec, chainID)
	c.CourseID = str(rec, chainCourseID)
	c.LessonID = str(rec, chainLessonID)
	c.Order = intval(rec, chainOrder, index)

	c.ContentType = domain.ContentType(strings.ToUpper(strDefault(rec, chainContentType, string(domain.ContentCourse))))
	c.Title = strDefault(rec, chainTitle, "Untitled")
	c.Description = str(rec, chainDescription)
	c.Duration = str(rec, chainDuration)
	c.SubTitle = str(rec, chainSubTitle)
	c.MoodleURL = str(rec, chainMoodleURL)
	c.ButtonText = str(rec, chainButtonText)
	c.Reason = str(rec, chainReason)
	c.IconURL = str(rec, chainIconURL)

	c.ProgressPercentage = clampPct(floatval(rec, chainProgressPct, 0))
	c.CompletedModules = intval(rec, chainCompletedModules, 0)
	c.TotalModules = intval(rec, chainTotalModules, 0)

	c.Deadline = str(rec, chainDeadline)

	// State-ish strings are lowercased before comparison; the backend is
	// not consistent about casing.
	c.Lock = lockState(strings.ToLower(str(rec, chainLock)))
	c.ProgressState = strings.ToLower(str(rec, chainProgressState))
	c.Completed = boolval(rec, chainCompleted)
	c.Result = resultState(strings.ToLower(str(rec, chainResult)))

	if v, ok := lookup(rec, chainRetakeDays); ok {
		if n, ok := toInt(v); ok {
			c.RetakeDays = &n
		}
	}
	if s := str(rec, chainRetakeExact); s != "" {
		c.RetakeExact = &s
	}

	return c
}

// FromRecords maps a full backend list, keeping original positions.
func FromRecords(recs []domain.RawEnrollmentRecord) []domain.Course {
	out := make([]domain.Course, 0, len(recs))
	for i, r := range recs {
		out = append(out, FromRecord(r, i))
	}
	return out
}

func lockState(s string) domain.LockState {
	switch s {
	case "locked":
		return domain.LockLocked
	case "unlocked":
		return domain.LockUnlocked
	}
	return ""
}

func resultState(s string) domain.ResultState {
	switch s {
	case "pass", "passed":
		return domain.ResultPass
	case "fail", "failed":
		return domain.ResultFail
	}
	return domain.ResultNone
}

// lookup walks the chain and returns the first non-empty value.
func lookup(rec domain.RawEnrollmentRecord, chain []string) (any, bool) {
	for _, path := range chain {
		if v, ok := at(rec, path); ok {
			return v, true
		}
	}
	return nil, false
}

func at(rec map[string]any, path string) (any, bool) {
	cur := any(rec)
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	if empty(cur) {
		return nil, false
	}
	return cur, true
}

func empty(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

func str(rec domain.RawEnrollmentRecord, chain []string) string {
	return strDefault(rec, chain, "")
}

func strDefault(rec domain.RawEnrollmentRecord, chain []string, def string) string {
	v, ok := lookup(rec, chain)
	if !ok {
		return def
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	}
	return def
}

func floatval(rec domain.RawEnrollmentRecord, chain []string, def float64) float64 {
	v, ok := lookup(rec, chain)
	if !ok {
		return def
	}
	if f, ok := toFloat(v); ok {
		return f
	}
	return def
}

func intval(rec domain.RawEnrollmentRecord, chain []string, def int) int {
	v, ok := lookup(rec, chain)
	if !ok {
		return def
	}
	if n, ok := toInt(v); ok {
		return n
	}
	return def
}

func boolval(rec domain.RawEnrollmentRecord, chain []string) bool {
	v, ok := lookup(rec, chain)
	if !ok {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		return err == nil && b
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func toInt(v any) (int, bool) {
	f, ok := toFloat(v)
	if !ok {
		return 0, false
	}
	return int(f), true
}

func clampPct(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 100 {
		return 100
	}
	return f
}
