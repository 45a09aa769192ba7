package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"workspace.busmate.lk/internal/models"
)

// Client implements Directory over the directory service's JSON API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a directory client. timeout bounds every call end to
// end, on top of whatever deadline the caller's context carries.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (c *Client) ListStops(ctx context.Context, query StopQuery) ([]models.Stop, error) {
	q := url.Values{}
	if query.Name != "" {
		q.Set("name", query.Name)
	}
	if query.City != "" {
		q.Set("city", query.City)
	}
	path := "/stops"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var stops []models.Stop
	if err := c.do(ctx, http.MethodGet, path, nil, &stops); err != nil {
		return nil, fmt.Errorf("listing stops: %w", err)
	}
	return stops, nil
}

func (c *Client) CreateStop(ctx context.Context, stop models.Stop) (models.Stop, error) {
	var created models.Stop
	if err := c.do(ctx, http.MethodPost, "/stops", stop, &created); err != nil {
		return models.Stop{}, fmt.Errorf("creating stop %q: %w", stop.Name, err)
	}
	return created, nil
}

func (c *Client) UpdateStop(ctx context.Context, id string, stop models.Stop) (models.Stop, error) {
	var updated models.Stop
	if err := c.do(ctx, http.MethodPut, "/stops/"+url.PathEscape(id), stop, &updated); err != nil {
		return models.Stop{}, fmt.Errorf("updating stop %s: %w", id, err)
	}
	return updated, nil
}

func (c *Client) ListRoutesByGroup(ctx context.Context, groupID string) ([]models.Route, error) {
	var routes []models.Route
	path := "/route-groups/" + url.PathEscape(groupID) + "/routes"
	if err := c.do(ctx, http.MethodGet, path, nil, &routes); err != nil {
		return nil, fmt.Errorf("listing routes for group %s: %w", groupID, err)
	}
	return routes, nil
}

func (c *Client) SaveRouteGroup(ctx context.Context, group models.RouteGroup) (models.RouteGroup, error) {
	method, path := http.MethodPost, "/route-groups"
	if group.ID != "" {
		method, path = http.MethodPut, "/route-groups/"+url.PathEscape(group.ID)
	}
	var saved models.RouteGroup
	if err := c.do(ctx, method, path, group, &saved); err != nil {
		return models.RouteGroup{}, fmt.Errorf("saving route group %q: %w", group.Name, err)
	}
	return saved, nil
}

// SaveSchedule creates or updates depending on whether the schedule
// carries a directory id.
func (c *Client) SaveSchedule(ctx context.Context, routeID string, schedule models.Schedule) (models.Schedule, error) {
	method := http.MethodPost
	path := "/routes/" + url.PathEscape(routeID) + "/schedules"
	if schedule.ID != "" {
		method = http.MethodPut
		path += "/" + url.PathEscape(schedule.ID)
	}
	var saved models.Schedule
	if err := c.do(ctx, method, path, schedule, &saved); err != nil {
		return models.Schedule{}, fmt.Errorf("saving schedule %q: %w", schedule.Name, err)
	}
	return saved, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close() // nolint

	if c.logger != nil {
		c.logger.Debug("directory call",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"duration_ms", float64(time.Since(start).Microseconds())/1000)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("directory returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
