package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"journey-engine/internal/userstore"
)

func newTestServer(t *testing.T, handler func(path string, body map[string]any, w http.ResponseWriter)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if r.Header.Get("X-Request-Id") == "" {
			t.Error("Expected a correlation id header")
		}
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			t.Errorf("Expected bearer token, got %q", r.Header.Get("Authorization"))
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("Expected JSON body, got error %v", err)
		}
		if body["userId"] != "user-1" {
			t.Errorf("Expected stored user id in body, got %v", body["userId"])
		}

		w.Header().Set("Content-Type", "application/json")
		handler(r.URL.Path, body, w)
	}))
}

func newTestClient(srv *httptest.Server) *Client {
	c := New(srv.URL, "tok-1", userstore.NewMemory("user-1"))
	c.HTTP = srv.Client()
	return c
}

func TestCheckEnrollment(t *testing.T) {
	srv := newTestServer(t, func(path string, body map[string]any, w http.ResponseWriter) {
		if path != "/api/v1/enrollment/check" {
			t.Errorf("Unexpected path %s", path)
		}
		w.Write([]byte(`{"enrolled": true}`))
	})
	defer srv.Close()

	enr, err := newTestClient(srv).CheckEnrollment(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !enr.Enrolled {
		t.Error("Expected enrolled=true")
	}
}

func TestFetchEnrolledCourses(t *testing.T) {
	srv := newTestServer(t, func(path string, body map[string]any, w http.ResponseWriter) {
		if path != "/api/v1/journey/courses" {
			t.Errorf("Unexpected path %s", path)
		}
		w.Write([]byte(`{"courses": [{"title": "Intro"}, {"course": {"title": "Nested"}}]}`))
	})
	defer srv.Close()

	recs, err := newTestClient(srv).FetchEnrolledCourses(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(recs))
	}
	if recs[0]["title"] != "Intro" {
		t.Errorf("Expected raw record passthrough, got %v", recs[0])
	}
}

func TestLessonCallsCarryLessonID(t *testing.T) {
	srv := newTestServer(t, func(path string, body map[string]any, w http.ResponseWriter) {
		if body["moodleCourseId"] != "M-9" {
			t.Errorf("Expected moodleCourseId M-9, got %v", body["moodleCourseId"])
		}
		switch path {
		case "/api/v1/lesson/attempt-summary":
			w.Write([]byte(`{"attemptId": "att-1", "state": "inprogress"}`))
		case "/api/v1/lesson/quiz-report":
			if body["page"] != float64(2) {
				t.Errorf("Expected page 2, got %v", body["page"])
			}
			w.Write([]byte(`{"score": 88}`))
		case "/api/v1/lesson/contents":
			w.Write([]byte(`{"sections": []}`))
		default:
			t.Errorf("Unexpected path %s", path)
		}
	})
	defer srv.Close()

	c := newTestClient(srv)
	ctx := context.Background()

	sum, err := c.FetchAttemptSummary(ctx, "M-9")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !sum.InProgress() {
		t.Error("Expected an in-progress attempt")
	}

	report, err := c.FetchQuizReport(ctx, "M-9", 2)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if report["score"] != float64(88) {
		t.Errorf("Expected score 88, got %v", report["score"])
	}

	if _, err := c.FetchLessonContents(ctx, "M-9"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
}

func TestMissingUserIDFailsFast(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	c := New(srv.URL, "tok-1", userstore.NewMemory(""))
	c.HTTP = srv.Client()

	if _, err := c.FetchBasicProfile(context.Background()); err == nil {
		t.Fatal("Expected an error when no user id is stored")
	}
	if calls != 0 {
		t.Errorf("Expected no request without a user id, got %d", calls)
	}
}

func TestAttemptSummaryInProgress(t *testing.T) {
	testCases := []struct {
		sum      AttemptSummary
		expected bool
	}{
		{AttemptSummary{AttemptID: "a", State: "inprogress"}, true},
		{AttemptSummary{AttemptID: "a", State: "finished"}, false},
		{AttemptSummary{State: "inprogress"}, false},
		{AttemptSummary{}, false},
	}

	for _, tc := range testCases {
		if got := tc.sum.InProgress(); got != tc.expected {
			t.Errorf("InProgress(%+v) = %v, want %v", tc.sum, got, tc.expected)
		}
	}
}
