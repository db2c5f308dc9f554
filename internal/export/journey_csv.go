package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"journey-engine/internal/domain"
)

// Partner feed for journey progress reports. Keep header order EXACT.
var journeyHeader = []string{
	"ITEM_ID",
	"COURSE_ID",
	"LESSON_ID",
	"TITLE",
	"CONTENT_TYPE",
	"STATE",
	"SORT_ORDER",
	"PROGRESS_PCT",
	"COMPLETED_MODULES",
	"TOTAL_MODULES",
	"DEADLINE",
	"DEADLINE_EXCEEDED",
	"RESULT",
	"LAST_ATTEMPT_STATE",
	"QUIZ_SCORE",
}

// Row is one report line: a classified course plus the optional lesson-level
// enrichment fetched on demand.
type Row struct {
	Course domain.Course
	State  domain.Classification

	// best-effort enrichment; empty when the lookup failed or did not apply
	AttemptState string
	QuizScore    string
}

// WriteJourneyCSV writes the journey report in the partner import format.
func WriteJourneyCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	// match the partner's template files
	cw.UseCRLF = true

	if err := cw.Write(journeyHeader); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(toRow(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func toRow(r Row) []string {
	c := r.Course

	progress := ""
	if c.ProgressPercentage > 0 {
		progress = strconv.FormatFloat(c.ProgressPercentage, 'f', -1, 64)
	}

	exceeded := ""
	if c.DeadlineExceeded {
		exceeded = "true"
	}

	result := ""
	if c.Result != domain.ResultNone {
		result = string(c.Result)
	}

	return []string{
		c.ID,
		c.CourseID,
		c.LessonID,
		clean(c.Title),
		string(c.ContentType),
		r.State.String(),
		strconv.Itoa(c.Order),
		progress,
		strconv.Itoa(c.CompletedModules),
		strconv.Itoa(c.TotalModules),
		clean(c.Deadline),
		exceeded,
		result,
		r.AttemptState,
		r.QuizScore,
	}
}

func clean(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}
