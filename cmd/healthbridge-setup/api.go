package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const defaultAPIURL = "http://127.0.0.1:8000"

type apiClient struct {
	baseURL string
	http    *http.Client
}

func newAPIClient(baseURL string) apiClient {
	if baseURL == "" {
		baseURL = defaultAPIURL
	}
	return apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type userCreatedMsg struct {
	userID string
}

type profileCreatedMsg struct {
	message string
}

type errMsg struct {
	err  error
	back step
}

func (e errMsg) Error() string { return e.err.Error() }

// post sends payload as JSON and decodes a 200 response into out. Other
// statuses are reported using the API's "detail" message.
func (c apiClient) post(path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("HealthBridge API not reachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Detail string   `json:"detail"`
			Errors []string `json:"errors"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Detail == "" {
			apiErr.Detail = resp.Status
		}
		if len(apiErr.Errors) > 0 {
			return fmt.Errorf("%s: %s", apiErr.Detail, strings.Join(apiErr.Errors, "; "))
		}
		return fmt.Errorf("%s", apiErr.Detail)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c apiClient) createUser(name, email string) tea.Cmd {
	return func() tea.Msg {
		payload := map[string]interface{}{"email": email}
		if name != "" {
			payload["name"] = name
		}

		var user struct {
			ID string `json:"id"`
		}
		if err := c.post("/users", payload, &user); err != nil {
			return errMsg{err: err, back: stepEnteringEmail}
		}
		return userCreatedMsg{userID: user.ID}
	}
}

func (c apiClient) createProfile(p profileInput) tea.Cmd {
	return func() tea.Msg {
		var out struct {
			Message string `json:"message"`
		}
		if err := c.post("/profiles", p, &out); err != nil {
			return errMsg{err: err, back: stepSelectingGender}
		}
		return profileCreatedMsg{message: out.Message}
	}
}
