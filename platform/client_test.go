package platform

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-faker/faker/v4"
	"github.com/go-http-utils/headers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RMF112018/Project-Controls-sub011/commonerrors"
	"github.com/RMF112018/Project-Controls-sub011/commonerrors/errortest"
	httpclient "github.com/RMF112018/Project-Controls-sub011/http"
	"github.com/RMF112018/Project-Controls-sub011/logs/logstest"
	"github.com/RMF112018/Project-Controls-sub011/provisioning"
)

const (
	testToken   = "secret-token"
	testSiteURL = "https://tenant.example.com/sites/P-1001"
	testHubURL  = "https://tenant.example.com/sites/projects"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  map[string][]string
	Body   map[string]any
}

// fakePlatform records the requests it receives and answers them with canned responses.
type fakePlatform struct {
	mu       sync.Mutex
	requests []recordedRequest
	router   chi.Router
}

func newFakePlatform(t *testing.T) *fakePlatform {
	t.Helper()
	f := &fakePlatform{router: chi.NewRouter()}
	f.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get(headers.Authorization) != "Bearer "+testToken {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			record := recordedRequest{Method: r.Method, Path: r.URL.Path, Query: r.URL.Query()}
			if r.Body != nil && r.ContentLength != 0 {
				_ = json.NewDecoder(r.Body).Decode(&record.Body)
			}
			f.mu.Lock()
			f.requests = append(f.requests, record)
			f.mu.Unlock()
			next.ServeHTTP(w, r)
		})
	})
	return f
}

func (f *fakePlatform) recorded() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedRequest(nil), f.requests...)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set(headers.ContentType, contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func newTestClient(t *testing.T, f *fakePlatform, hubSiteURL string) *Client {
	t.Helper()
	server := httptest.NewServer(f.router)
	t.Cleanup(server.Close)
	cfg := &provisioning.PlatformConfiguration{
		BaseURL:     server.URL,
		AccessToken: testToken,
		HubSiteURL:  hubSiteURL,
		HTTP:        *httpclient.DefaultHTTPClientConfiguration(),
	}
	client, err := NewClient(cfg, logstest.NewTestLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestNewClient(t *testing.T) {
	_, err := NewClient(nil, logstest.NewNullTestLogger())
	errortest.AssertError(t, err, commonerrors.ErrUndefined)
	_, err = NewClient(&provisioning.PlatformConfiguration{BaseURL: "https://tenant.example.com", HTTP: *httpclient.DefaultHTTPClientConfiguration()}, logstest.NewNullTestLogger())
	errortest.AssertError(t, err, commonerrors.ErrInvalid)
	_, err = NewClientWithHTTPClient(&provisioning.PlatformConfiguration{BaseURL: "https://tenant.example.com"}, nil, logstest.NewNullTestLogger())
	errortest.AssertError(t, err, commonerrors.ErrUndefined)
	_, err = NewClientWithHTTPClient(&provisioning.PlatformConfiguration{BaseURL: "/relative"}, httpclient.NewRetryableClient(), logstest.NewNullTestLogger())
	errortest.AssertError(t, err, commonerrors.ErrInvalid)
}

func TestClient_GetHubSiteURL(t *testing.T) {
	f := newFakePlatform(t)
	f.router.Get("/api/hub", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"url": testHubURL})
	})
	client := newTestClient(t, f, "")
	hub, err := client.GetHubSiteURL(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testHubURL, hub)

	overridden := newTestClient(t, f, "https://tenant.example.com/sites/other-hub")
	hub, err = overridden.GetHubSiteURL(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://tenant.example.com/sites/other-hub", hub)
	assert.Len(t, f.recorded(), 1)
}

func TestClient_GetHubSiteURL_Empty(t *testing.T) {
	f := newFakePlatform(t)
	f.router.Get("/api/hub", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{})
	})
	_, err := newTestClient(t, f, "").GetHubSiteURL(context.Background())
	errortest.AssertError(t, err, commonerrors.ErrUnexpected)
}

func TestClient_CreateSite(t *testing.T) {
	f := newFakePlatform(t)
	f.router.Post("/api/sites", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]string{"url": testSiteURL})
	})
	owner := faker.Email()
	siteURL, err := newTestClient(t, f, "").CreateSite(context.Background(), provisioning.SiteRequest{
		Alias: "P-1001", Title: "P-1001 - Harbour Bridge", Owner: owner,
	})
	require.NoError(t, err)
	assert.Equal(t, testSiteURL, siteURL)
	requests := f.recorded()
	require.Len(t, requests, 1)
	assert.Equal(t, "P-1001", requests[0].Body["alias"])
	assert.Equal(t, "P-1001 - Harbour Bridge", requests[0].Body["title"])
	assert.Equal(t, owner, requests[0].Body["owner"])
	assert.NotContains(t, requests[0].Body, "description")
}

func TestClient_SiteResources(t *testing.T) {
	f := newFakePlatform(t)
	noContent := func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) }
	f.router.Post("/api/lists", noContent)
	f.router.Delete("/api/lists", noContent)
	f.router.Post("/api/groups", noContent)
	f.router.Delete("/api/groups", noContent)
	f.router.Post("/api/templates", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"version": "3.2", "type": "construction"})
	})
	f.router.Delete("/api/templates", noContent)
	f.router.Post("/api/hub/associations", noContent)
	f.router.Delete("/api/hub/associations", noContent)
	f.router.Post("/api/hub/navigation", noContent)
	f.router.Delete("/api/hub/navigation", noContent)
	f.router.Put("/api/leads/{leadID}", noContent)
	f.router.Delete("/api/leads/{leadID}", noContent)
	f.router.Delete("/api/sites", noContent)
	client := newTestClient(t, f, "")
	ctx := context.Background()
	lists := []string{"RFIs", "Change Orders"}

	require.NoError(t, client.CreateLists(ctx, testSiteURL, lists))
	require.NoError(t, client.CreateSecurityGroups(ctx, testSiteURL, []string{"P-1001 Owners"}))
	info, err := client.ApplyTemplate(ctx, testSiteURL, "project-standard")
	require.NoError(t, err)
	assert.Equal(t, provisioning.TemplateInfo{Version: "3.2", Type: "construction"}, info)
	require.NoError(t, client.AssociateHub(ctx, testSiteURL, testHubURL))
	require.NoError(t, client.AddHubNavigationLink(ctx, testHubURL, provisioning.NavigationLink{Title: "P-1001", URL: testSiteURL}))
	require.NoError(t, client.LinkLeadRecord(ctx, "lead 42", "P-1001", testSiteURL))
	require.NoError(t, client.UnlinkLeadRecord(ctx, "lead 42", "P-1001"))
	require.NoError(t, client.RemoveHubNavigationLink(ctx, testHubURL, testSiteURL))
	require.NoError(t, client.DisassociateHub(ctx, testSiteURL))
	require.NoError(t, client.RemoveTemplate(ctx, testSiteURL, "project-standard"))
	require.NoError(t, client.DeleteSecurityGroups(ctx, testSiteURL, []string{"P-1001 Owners"}))
	require.NoError(t, client.DeleteLists(ctx, testSiteURL, lists))
	require.NoError(t, client.DeleteSite(ctx, testSiteURL))

	requests := f.recorded()
	require.Len(t, requests, 13)
	assert.Equal(t, []string{testSiteURL}, requests[0].Query["site"])
	assert.Equal(t, []any{"RFIs", "Change Orders"}, requests[0].Body["names"])
	assert.Equal(t, "project-standard", requests[2].Body["name"])
	assert.Equal(t, testHubURL, requests[3].Body["hubSiteUrl"])
	assert.Equal(t, []string{testHubURL}, requests[4].Query["hub"])
	assert.Equal(t, "/api/leads/lead 42", requests[5].Path)
	assert.Equal(t, http.MethodPut, requests[5].Method)
	assert.Equal(t, "P-1001", requests[5].Body["projectCode"])
	assert.Equal(t, []string{"P-1001"}, requests[6].Query["project"])
	assert.Equal(t, []string{testSiteURL}, requests[7].Query["url"])
	assert.Equal(t, lists, requests[11].Query["name"])
	assert.Equal(t, http.MethodDelete, requests[12].Method)
	assert.Equal(t, "/api/sites", requests[12].Path)
}

func TestClient_RemovalIsIdempotent(t *testing.T) {
	f := newFakePlatform(t)
	f.router.Delete("/api/sites", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": map[string]string{"message": "site does not exist"}})
	})
	f.router.Post("/api/lists", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": map[string]string{"message": "site does not exist"}})
	})
	client := newTestClient(t, f, "")
	require.NoError(t, client.DeleteSite(context.Background(), testSiteURL))
	err := client.CreateLists(context.Background(), testSiteURL, []string{"RFIs"})
	errortest.AssertError(t, err, commonerrors.ErrNotFound)
}

func TestClient_Errors(t *testing.T) {
	f := newFakePlatform(t)
	f.router.Post("/api/groups", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusForbidden, map[string]any{"error": map[string]string{"code": "accessDenied", "message": "insufficient privileges"}})
	})
	f.router.Post("/api/templates", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusConflict, map[string]string{"message": "template already applied"})
	})
	f.router.Post("/api/hub/associations", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("database exploded"))
	})
	client := newTestClient(t, f, "")
	ctx := context.Background()

	err := client.CreateSecurityGroups(ctx, testSiteURL, []string{"P-1001 Owners"})
	errortest.AssertError(t, err, commonerrors.ErrForbidden)
	errortest.AssertErrorDescription(t, err, "insufficient privileges")
	errortest.AssertErrorDescription(t, err, "could not create security groups")

	_, err = client.ApplyTemplate(ctx, testSiteURL, "standard")
	errortest.AssertError(t, err, commonerrors.ErrConflict)
	errortest.AssertErrorDescription(t, err, "template already applied")

	err = client.AssociateHub(ctx, testSiteURL, testHubURL)
	errortest.AssertError(t, err, commonerrors.ErrUnexpected)
	errortest.AssertErrorDescription(t, err, "database exploded")

	unauthorised := newFakePlatform(t)
	unauthorised.router.Get("/api/hub", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"url": testHubURL})
	})
	server := httptest.NewServer(unauthorised.router)
	defer server.Close()
	cfg := &provisioning.PlatformConfiguration{BaseURL: server.URL, AccessToken: "wrong", HTTP: *httpclient.DefaultHTTPClientConfiguration()}
	other, err := NewClient(cfg, logstest.NewNullTestLogger())
	require.NoError(t, err)
	_, err = other.GetHubSiteURL(ctx)
	errortest.AssertError(t, err, commonerrors.ErrUnauthorised)
	assert.Empty(t, unauthorised.recorded())
}

func TestClient_CountListItems(t *testing.T) {
	f := newFakePlatform(t)
	f.router.Get("/api/lists/count", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("list") != "Leads" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"count": 4321})
	})
	client := newTestClient(t, f, "")
	count, err := client.CountListItems(context.Background(), testHubURL, "Leads")
	require.NoError(t, err)
	assert.Equal(t, 4321, count)
	_, err = client.CountListItems(context.Background(), testHubURL, "Unknown")
	errortest.AssertError(t, err, commonerrors.ErrNotFound)
}

func TestClient_CancelledContext(t *testing.T) {
	f := newFakePlatform(t)
	f.router.Post("/api/sites", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]string{"url": testSiteURL})
	})
	client := newTestClient(t, f, "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.CreateSite(ctx, provisioning.SiteRequest{Alias: "P-1001"})
	errortest.AssertError(t, err, commonerrors.ErrCancelled)
	assert.Empty(t, f.recorded())
}
