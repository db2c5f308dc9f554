package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"journey-engine/internal/domain"
	"journey-engine/internal/httpx"
	"journey-engine/internal/userstore"
)

const contentTypeJSON = "application/json"

// Client is the HTTP implementation of Gateway. Request bodies carry the
// user id read from the local store; every request gets a fresh correlation
// id so backend logs can be matched to a single client call.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
	Users   userstore.Store
	Retry   httpx.RetryConfig
}

func New(baseURL, token string, users userstore.Store) *Client {
	tr := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		HTTP: &http.Client{
			Timeout:   time.Minute,
			Transport: tr,
		},
		Users: users,
		Retry: httpx.DefaultRetryConfig(),
	}
}

func (c *Client) FetchBasicProfile(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := c.post(ctx, "/api/v1/profile/basic", nil, &out); err != nil {
		return nil, fmt.Errorf("gateway: basic profile: %w", err)
	}
	return out, nil
}

func (c *Client) CheckEnrollment(ctx context.Context) (Enrollment, error) {
	var out Enrollment
	if err := c.post(ctx, "/api/v1/enrollment/check", nil, &out); err != nil {
		return Enrollment{}, fmt.Errorf("gateway: enrollment check: %w", err)
	}
	return out, nil
}

func (c *Client) FetchProfileDetails(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := c.post(ctx, "/api/v1/profile/details", nil, &out); err != nil {
		return nil, fmt.Errorf("gateway: profile details: %w", err)
	}
	return out, nil
}

func (c *Client) FetchNotifications(ctx context.Context) ([]map[string]any, error) {
	var out struct {
		Notifications []map[string]any `json:"notifications"`
	}
	if err := c.post(ctx, "/api/v1/notifications", nil, &out); err != nil {
		return nil, fmt.Errorf("gateway: notifications: %w", err)
	}
	return out.Notifications, nil
}

func (c *Client) FetchCompletionPercentage(ctx context.Context) (float64, error) {
	var out struct {
		Percentage float64 `json:"percentage"`
	}
	if err := c.post(ctx, "/api/v1/journey/completion", nil, &out); err != nil {
		return 0, fmt.Errorf("gateway: completion percentage: %w", err)
	}
	return out.Percentage, nil
}

func (c *Client) FetchEnrolledCourses(ctx context.Context) ([]domain.RawEnrollmentRecord, error) {
	var out struct {
		Courses []domain.RawEnrollmentRecord `json:"courses"`
	}
	if err := c.post(ctx, "/api/v1/journey/courses", nil, &out); err != nil {
		return nil, fmt.Errorf("gateway: enrolled courses: %w", err)
	}
	return out.Courses, nil
}

func (c *Client) FetchLessonContents(ctx context.Context, lessonID string) (map[string]any, error) {
	var out map[string]any
	extra := map[string]any{"moodleCourseId": lessonID}
	if err := c.post(ctx, "/api/v1/lesson/contents", extra, &out); err != nil {
		return nil, fmt.Errorf("gateway: lesson contents %s: %w", lessonID, err)
	}
	return out, nil
}

func (c *Client) FetchAttemptSummary(ctx context.Context, lessonID string) (AttemptSummary, error) {
	var out AttemptSummary
	extra := map[string]any{"moodleCourseId": lessonID}
	if err := c.post(ctx, "/api/v1/lesson/attempt-summary", extra, &out); err != nil {
		return AttemptSummary{}, fmt.Errorf("gateway: attempt summary %s: %w", lessonID, err)
	}
	return out, nil
}

func (c *Client) FetchQuizReport(ctx context.Context, lessonID string, page int) (map[string]any, error) {
	var out map[string]any
	extra := map[string]any{"moodleCourseId": lessonID, "page": page}
	if err := c.post(ctx, "/api/v1/lesson/quiz-report", extra, &out); err != nil {
		return nil, fmt.Errorf("gateway: quiz report %s page %d: %w", lessonID, page, err)
	}
	return out, nil
}

// post sends the standard request body (stored user id plus any extra
// fields) and decodes the JSON response into out.
func (c *Client) post(ctx context.Context, p string, extra map[string]any, out any) error {
	userID, err := c.Users.UserID(ctx)
	if err != nil {
		return fmt.Errorf("user id: %w", err)
	}

	payload := map[string]any{"userId": userID}
	for k, v := range extra {
		payload[k] = v
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	u, err := url.JoinPath(c.BaseURL, p)
	if err != nil {
		return fmt.Errorf("invalid base url: %w", err)
	}

	return httpx.DoJSON(
		ctx,
		c.HTTP,
		func(ctx context.Context) (*http.Request, error) {
			r, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(b))
			if err != nil {
				return nil, err
			}
			r.Header.Set("Content-Type", contentTypeJSON)
			r.Header.Set("Accept", contentTypeJSON)
			r.Header.Set("X-Request-Id", uuid.NewString())
			if c.Token != "" {
				r.Header.Set("Authorization", "Bearer "+c.Token)
			}
			return r, nil
		},
		out,
		c.Retry,
	)
}
