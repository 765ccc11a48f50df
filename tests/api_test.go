package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"
)

const apiBase = "http://localhost:8080/api"

var serverUp bool

type authResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type funnelResponse struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Pages []string `json:"pages"`
}

type pageResponse struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
}

type summaryResponse struct {
	PageViews       int     `json:"page_views"`
	FormSubmissions int     `json:"form_submissions"`
	ConversionRate  float64 `json:"conversion_rate"`
}

func doJSON(t *testing.T, method, url, token string, payload interface{}) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		jsonPayload, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("Failed to marshal payload: %v", err)
		}
		body = bytes.NewBuffer(jsonPayload)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := (&http.Client{}).Do(req)
	if err != nil {
		t.Fatalf("Failed to send request: %v", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response: %v", err)
	}
	return resp, bodyBytes
}

// TestAPIEndpoints runs tests against a running API server
func TestAPIEndpoints(t *testing.T) {
	if !serverUp {
		t.Skipf("API server is not running at %s, skipping end-to-end tests", apiBase)
	}

	email := fmt.Sprintf("e2e-%d@example.com", time.Now().UnixNano())
	password := "password123"

	// Register a new user
	var token string
	t.Run("Register User", func(t *testing.T) {
		resp, body := doJSON(t, "POST", apiBase+"/auth/register", "", map[string]string{
			"email":    email,
			"password": password,
			"name":     "E2E User",
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Failed to register user. Status: %d, Response: %s", resp.StatusCode, body)
		}

		var authResp authResponse
		if err := json.Unmarshal(body, &authResp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if authResp.AccessToken == "" {
			t.Fatal("No token received")
		}
	})

	t.Run("Duplicate Registration Rejected", func(t *testing.T) {
		resp, _ := doJSON(t, "POST", apiBase+"/auth/register", "", map[string]string{
			"email":    email,
			"password": password,
			"name":     "E2E User",
		})
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected 400 for duplicate email, got %d", resp.StatusCode)
		}
	})

	// Login and get token
	t.Run("Login", func(t *testing.T) {
		resp, body := doJSON(t, "POST", apiBase+"/auth/login", "", map[string]string{
			"email":    email,
			"password": password,
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Failed to login. Status: %d, Response: %s", resp.StatusCode, body)
		}

		var authResp authResponse
		if err := json.Unmarshal(body, &authResp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		token = authResp.AccessToken
		if token == "" {
			t.Fatal("No token received")
		}
	})

	// Create a funnel
	var funnelID string
	t.Run("Create Funnel", func(t *testing.T) {
		if token == "" {
			t.Skip("Skipping test due to no auth token")
		}

		resp, body := doJSON(t, "POST", apiBase+"/funnels", token, map[string]string{
			"name":        "E2E Funnel",
			"description": "end to end",
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Failed to create funnel. Status: %d, Response: %s", resp.StatusCode, body)
		}

		var funnel funnelResponse
		if err := json.Unmarshal(body, &funnel); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		funnelID = funnel.ID
		if funnelID == "" {
			t.Fatal("No funnel ID received")
		}
		if len(funnel.Pages) != 0 {
			t.Errorf("New funnel should have no pages, got %d", len(funnel.Pages))
		}
	})

	// Create a page and verify the funnel's pages array tracks it
	var pageID string
	t.Run("Create Page", func(t *testing.T) {
		if token == "" || funnelID == "" {
			t.Skip("Skipping test due to no auth token or funnel ID")
		}

		resp, body := doJSON(t, "POST", apiBase+"/pages", token, map[string]string{
			"funnel_id": funnelID,
			"name":      "Landing Page",
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Failed to create page. Status: %d, Response: %s", resp.StatusCode, body)
		}

		var page pageResponse
		if err := json.Unmarshal(body, &page); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		pageID = page.ID
		if pageID == "" {
			t.Fatal("No page ID received")
		}
		if page.Slug != "landing-page" {
			t.Errorf("Expected default slug landing-page, got %s", page.Slug)
		}

		resp, body = doJSON(t, "GET", apiBase+"/funnels/"+funnelID, token, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Failed to get funnel. Status: %d, Response: %s", resp.StatusCode, body)
		}
		var funnel funnelResponse
		if err := json.Unmarshal(body, &funnel); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(funnel.Pages) != 1 || funnel.Pages[0] != pageID {
			t.Errorf("Expected funnel pages [%s], got %v", pageID, funnel.Pages)
		}
	})

	// Track events and read the summary back
	t.Run("Analytics Summary", func(t *testing.T) {
		if token == "" || funnelID == "" {
			t.Skip("Skipping test due to no auth token or funnel ID")
		}

		for i := 0; i < 10; i++ {
			resp, body := doJSON(t, "POST", apiBase+"/analytics/track", "", map[string]string{
				"funnel_id":  funnelID,
				"page_id":    pageID,
				"event_type": "page_view",
			})
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("Failed to track event. Status: %d, Response: %s", resp.StatusCode, body)
			}
		}
		for i := 0; i < 2; i++ {
			resp, body := doJSON(t, "POST", apiBase+"/analytics/track", "", map[string]string{
				"funnel_id":  funnelID,
				"event_type": "form_submit",
			})
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("Failed to track event. Status: %d, Response: %s", resp.StatusCode, body)
			}
		}

		resp, body := doJSON(t, "GET", apiBase+"/analytics/funnel/"+funnelID, token, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Failed to get summary. Status: %d, Response: %s", resp.StatusCode, body)
		}

		var summary summaryResponse
		if err := json.Unmarshal(body, &summary); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if summary.PageViews != 10 || summary.FormSubmissions != 2 {
			t.Errorf("Expected 10 views / 2 submissions, got %d / %d", summary.PageViews, summary.FormSubmissions)
		}
		if summary.ConversionRate != 20.0 {
			t.Errorf("Expected conversion rate 20.0, got %f", summary.ConversionRate)
		}
	})

	// A second user must not be able to see the funnel
	t.Run("Foreign Funnel Hidden", func(t *testing.T) {
		if funnelID == "" {
			t.Skip("Skipping test due to no funnel ID")
		}

		otherEmail := fmt.Sprintf("e2e-other-%d@example.com", time.Now().UnixNano())
		resp, body := doJSON(t, "POST", apiBase+"/auth/register", "", map[string]string{
			"email":    otherEmail,
			"password": password,
			"name":     "Other User",
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Failed to register second user. Status: %d, Response: %s", resp.StatusCode, body)
		}
		var authResp authResponse
		if err := json.Unmarshal(body, &authResp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}

		resp, _ = doJSON(t, "GET", apiBase+"/funnels/"+funnelID, authResp.AccessToken, nil)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("Expected 404 for foreign funnel, got %d", resp.StatusCode)
		}
	})

	// Delete the funnel and verify its pages are gone too
	t.Run("Delete Funnel Cascades", func(t *testing.T) {
		if token == "" || funnelID == "" {
			t.Skip("Skipping test due to no auth token or funnel ID")
		}

		resp, body := doJSON(t, "DELETE", apiBase+"/funnels/"+funnelID, token, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Failed to delete funnel. Status: %d, Response: %s", resp.StatusCode, body)
		}

		resp, _ = doJSON(t, "GET", apiBase+"/pages/"+pageID, token, nil)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("Expected 404 for cascaded page, got %d", resp.StatusCode)
		}
	})
}

func TestMain(m *testing.M) {
	// Wait for API server to be ready
	for tries := 0; tries < 5; tries++ {
		resp, err := http.Get(apiBase + "/health")
		if err == nil {
			resp.Body.Close()
			serverUp = true
			break
		}
		fmt.Printf("Waiting for API server to be ready (attempt %d/5)...\n", tries+1)
		time.Sleep(2 * time.Second)
	}

	// Run tests
	os.Exit(m.Run())
}
