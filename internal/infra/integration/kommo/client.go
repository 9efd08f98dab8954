// Package kommo mirrors booked leads into the external Kommo CRM so the
// sales pipeline stays in sync with the booking engine. Consumed by the
// queue worker, never by the request path.
package kommo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

type Client struct {
	apiToken   string
	baseURL    string
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		apiToken: os.Getenv("KOMMO_API_TOKEN"),
		baseURL:  envOr("KOMMO_BASE_URL", "https://example.kommo.com/api/v4"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// SyncLead creates (or finds) the contact and attaches a tagged lead to it.
func (c *Client) SyncLead(input SyncLeadInput) (int, error) {
	if c.apiToken == "" {
		log.Println("⚠️ Kommo: API_TOKEN not configured")
		return 0, fmt.Errorf("kommo not configured")
	}

	contactID, err := c.findOrCreateContact(input)
	if err != nil {
		return 0, fmt.Errorf("contact sync failed: %w", err)
	}

	leadData := []map[string]interface{}{
		{
			"name": fmt.Sprintf("%s - %s", input.Name, input.PropertyAddress),
			"_embedded": map[string]interface{}{
				"tags": []map[string]interface{}{
					{"name": "viewing_booked"},
				},
				"contacts": []map[string]interface{}{
					{"id": contactID},
				},
			},
		},
	}

	var result struct {
		Embedded struct {
			Leads []struct {
				ID int `json:"id"`
			} `json:"leads"`
		} `json:"_embedded"`
	}

	if err := c.post("/leads", leadData, &result); err != nil {
		return 0, err
	}
	if len(result.Embedded.Leads) == 0 {
		return 0, fmt.Errorf("kommo returned no lead")
	}
	return result.Embedded.Leads[0].ID, nil
}

func (c *Client) findOrCreateContact(input SyncLeadInput) (int, error) {
	// Lookup by email first; Kommo dedupes poorly on its own.
	query := "/contacts?query=" + input.Email

	var found struct {
		Embedded struct {
			Contacts []struct {
				ID int `json:"id"`
			} `json:"contacts"`
		} `json:"_embedded"`
	}

	req, err := http.NewRequest(http.MethodGet, c.baseURL+query, nil)
	if err != nil {
		return 0, err
	}
	c.addAuthHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		if err := json.Unmarshal(body, &found); err == nil && len(found.Embedded.Contacts) > 0 {
			return found.Embedded.Contacts[0].ID, nil
		}
	}

	contactData := []map[string]interface{}{
		{
			"name": input.Name,
			"custom_fields_values": []map[string]interface{}{
				{
					"field_code": "EMAIL",
					"values":     []map[string]string{{"value": input.Email}},
				},
				{
					"field_code": "PHONE",
					"values":     []map[string]string{{"value": input.Phone}},
				},
			},
		},
	}

	var created struct {
		Embedded struct {
			Contacts []struct {
				ID int `json:"id"`
			} `json:"contacts"`
		} `json:"_embedded"`
	}

	if err := c.post("/contacts", contactData, &created); err != nil {
		return 0, err
	}
	if len(created.Embedded.Contacts) == 0 {
		return 0, fmt.Errorf("kommo returned no contact")
	}
	return created.Embedded.Contacts[0].ID, nil
}

func (c *Client) post(path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	c.addAuthHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("kommo returned %d: %s", resp.StatusCode, string(respBody))
	}

	if out != nil {
		return json.Unmarshal(respBody, out)
	}
	return nil
}

func (c *Client) addAuthHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
