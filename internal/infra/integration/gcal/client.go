// Package gcal is the calendar provider integration. It speaks a Google
// Calendar compatible REST surface: freeBusy queries, event listing and event
// insertion. Token refresh is handled upstream of this client; it only ever
// sees a live bearer token.
package gcal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/obaturn/Property-Managment-Backend/internal/scheduling"
)

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// IsSlotFree runs a freeBusy query for the exact window. Any busy entry
// intersecting it means the slot is taken.
func (c *Client) IsSlotFree(ctx context.Context, calendarID string, start, end time.Time) (bool, error) {
	reqBody := freeBusyRequest{
		TimeMin: start.Format(time.RFC3339),
		TimeMax: end.Format(time.RFC3339),
		Items:   []freeBusyItemID{{ID: calendarID}},
	}

	var resp freeBusyResponse
	if err := c.do(ctx, http.MethodPost, "/freeBusy", reqBody, &resp); err != nil {
		return false, err
	}

	cal, ok := resp.Calendars[calendarID]
	if !ok {
		return false, fmt.Errorf("calendar %s missing from freeBusy response", calendarID)
	}

	for _, busy := range cal.Busy {
		if busy.Start.Before(end) && busy.End.After(start) {
			return false, nil
		}
	}
	return true, nil
}

func (c *Client) ReserveEvent(ctx context.Context, calendarID string, details scheduling.EventDetails) (*scheduling.EventRef, error) {
	reqBody := eventResource{
		Summary:     details.Title,
		Description: details.Description,
		Start:       eventDateTime{DateTime: details.Start.Format(time.RFC3339)},
		End:         eventDateTime{DateTime: details.End.Format(time.RFC3339)},
	}
	if details.AttendeeEmail != "" {
		reqBody.Attendees = []eventAttendee{{
			Email:       details.AttendeeEmail,
			DisplayName: details.AttendeeName,
		}}
	}

	var created eventResource
	path := fmt.Sprintf("/calendars/%s/events", calendarID)
	if err := c.do(ctx, http.MethodPost, path, reqBody, &created); err != nil {
		return nil, err
	}

	return &scheduling.EventRef{EventID: created.ID, Link: created.HTMLLink}, nil
}

func (c *Client) ListUpcoming(ctx context.Context, calendarID string, max int) ([]scheduling.Event, error) {
	if max <= 0 {
		max = 10
	}
	path := fmt.Sprintf("/calendars/%s/events?orderBy=startTime&singleEvents=true&maxResults=%d&timeMin=%s",
		calendarID, max, time.Now().UTC().Format(time.RFC3339))

	var resp eventListResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	events := make([]scheduling.Event, 0, len(resp.Items))
	for _, item := range resp.Items {
		start, _ := time.Parse(time.RFC3339, item.Start.DateTime)
		end, _ := time.Parse(time.RFC3339, item.End.DateTime)
		events = append(events, scheduling.Event{
			ID:      item.ID,
			Summary: item.Summary,
			Start:   start,
			End:     end,
		})
	}
	return events, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal calendar request: %w", err)
		}
		reader = bytes.NewBuffer(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calendar request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("calendar API returned %d: %s", resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode calendar response: %w", err)
		}
	}
	return nil
}
