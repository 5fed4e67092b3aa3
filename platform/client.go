// Package platform is the REST client of the collaboration platform hosting project sites.
//
// Every call goes through the retryable HTTP client of the http package, authenticated with a bearer token. Error
// responses are converted into common errors so that callers can react to them e.g. commonerrors.ErrNotFound.
// Removals are idempotent: removing something which no longer exists succeeds.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-http-utils/headers"
	"github.com/go-logr/logr"

	"github.com/RMF112018/Project-Controls-sub011/commonerrors"
	httpclient "github.com/RMF112018/Project-Controls-sub011/http"
	httperrors "github.com/RMF112018/Project-Controls-sub011/http/errors"
	"github.com/RMF112018/Project-Controls-sub011/provisioning"
	"github.com/RMF112018/Project-Controls-sub011/throttle"
	"github.com/RMF112018/Project-Controls-sub011/transaction/saga"
)

const (
	contentTypeJSON = "application/json"
	maxErrorBody    = 4096
)

var (
	_ provisioning.IPlatformOperations = &Client{}
	_ throttle.IListCounter            = &Client{}
	_ saga.IPlatform                   = &Client{}
)

// Client calls the platform API.
type Client struct {
	baseURL    *url.URL
	hubSiteURL string
	client     httpclient.IClient
	logger     logr.Logger
}

// NewClient returns a client of the platform described by cfg.
func NewClient(cfg *provisioning.PlatformConfiguration, logger logr.Logger) (*Client, error) {
	if cfg == nil {
		return nil, commonerrors.UndefinedVariable("platform configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return NewClientWithHTTPClient(cfg, httpclient.NewConfigurableRetryableOauthClientWithLogger(&cfg.HTTP, logger, cfg.AccessToken), logger)
}

// NewClientWithHTTPClient is similar to NewClient but uses the HTTP client provided. The client is expected to
// authenticate requests.
func NewClientWithHTTPClient(cfg *provisioning.PlatformConfiguration, client httpclient.IClient, logger logr.Logger) (*Client, error) {
	if cfg == nil {
		return nil, commonerrors.UndefinedVariable("platform configuration")
	}
	if client == nil {
		return nil, commonerrors.UndefinedVariable("HTTP client")
	}
	base, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, commonerrors.WrapErrorf(commonerrors.ErrInvalid, err, "invalid platform URL %q", cfg.BaseURL)
	}
	return &Client{
		baseURL:    base,
		hubSiteURL: strings.TrimSpace(cfg.HubSiteURL),
		client:     client,
		logger:     logger,
	}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// GetHubSiteURL returns the hub site configured if any; otherwise the platform is asked.
func (c *Client) GetHubSiteURL(ctx context.Context) (string, error) {
	if c.hubSiteURL != "" {
		return c.hubSiteURL, nil
	}
	var resp siteResponse
	if err := c.call(ctx, http.MethodGet, "hub", nil, nil, &resp, "could not get the hub site"); err != nil {
		return "", err
	}
	if resp.URL == "" {
		return "", commonerrors.New(commonerrors.ErrUnexpected, "the platform did not return the URL of the hub site")
	}
	return resp.URL, nil
}

func (c *Client) CreateSite(ctx context.Context, site provisioning.SiteRequest) (string, error) {
	var resp siteResponse
	err := c.call(ctx, http.MethodPost, "sites", nil, siteRequest{
		Alias:       site.Alias,
		Title:       site.Title,
		Description: site.Description,
		Owner:       site.Owner,
	}, &resp, fmt.Sprintf("could not create site %v", site.Alias))
	return resp.URL, err
}

func (c *Client) DeleteSite(ctx context.Context, siteURL string) error {
	return c.remove(ctx, "sites", url.Values{"site": {siteURL}}, fmt.Sprintf("could not delete site %v", siteURL))
}

func (c *Client) CreateLists(ctx context.Context, siteURL string, lists []string) error {
	return c.call(ctx, http.MethodPost, "lists", url.Values{"site": {siteURL}}, namesRequest{Names: lists}, nil,
		fmt.Sprintf("could not create lists of %v", siteURL))
}

func (c *Client) DeleteLists(ctx context.Context, siteURL string, lists []string) error {
	return c.remove(ctx, "lists", url.Values{"site": {siteURL}, "name": lists}, fmt.Sprintf("could not delete lists of %v", siteURL))
}

func (c *Client) CreateSecurityGroups(ctx context.Context, siteURL string, groups []string) error {
	return c.call(ctx, http.MethodPost, "groups", url.Values{"site": {siteURL}}, namesRequest{Names: groups}, nil,
		fmt.Sprintf("could not create security groups of %v", siteURL))
}

func (c *Client) DeleteSecurityGroups(ctx context.Context, siteURL string, groups []string) error {
	return c.remove(ctx, "groups", url.Values{"site": {siteURL}, "name": groups}, fmt.Sprintf("could not delete security groups of %v", siteURL))
}

func (c *Client) ApplyTemplate(ctx context.Context, siteURL, templateName string) (provisioning.TemplateInfo, error) {
	var resp templateResponse
	err := c.call(ctx, http.MethodPost, "templates", url.Values{"site": {siteURL}}, templateRequest{Name: templateName}, &resp,
		fmt.Sprintf("could not apply template %v to %v", templateName, siteURL))
	return provisioning.TemplateInfo{Version: resp.Version, Type: resp.Type}, err
}

func (c *Client) RemoveTemplate(ctx context.Context, siteURL, templateName string) error {
	return c.remove(ctx, "templates", url.Values{"site": {siteURL}, "name": {templateName}},
		fmt.Sprintf("could not remove template %v from %v", templateName, siteURL))
}

func (c *Client) AssociateHub(ctx context.Context, siteURL, hubSiteURL string) error {
	return c.call(ctx, http.MethodPost, "hub/associations", nil, associationRequest{SiteURL: siteURL, HubSiteURL: hubSiteURL}, nil,
		fmt.Sprintf("could not associate %v with hub %v", siteURL, hubSiteURL))
}

func (c *Client) DisassociateHub(ctx context.Context, siteURL string) error {
	return c.remove(ctx, "hub/associations", url.Values{"site": {siteURL}}, fmt.Sprintf("could not dissociate %v from its hub", siteURL))
}

func (c *Client) AddHubNavigationLink(ctx context.Context, hubSiteURL string, link provisioning.NavigationLink) error {
	return c.call(ctx, http.MethodPost, "hub/navigation", url.Values{"hub": {hubSiteURL}}, navigationLinkRequest{Title: link.Title, URL: link.URL}, nil,
		fmt.Sprintf("could not add navigation link to %v", link.URL))
}

func (c *Client) RemoveHubNavigationLink(ctx context.Context, hubSiteURL, linkURL string) error {
	return c.remove(ctx, "hub/navigation", url.Values{"hub": {hubSiteURL}, "url": {linkURL}},
		fmt.Sprintf("could not remove navigation link to %v", linkURL))
}

func (c *Client) LinkLeadRecord(ctx context.Context, leadID, projectCode, siteURL string) error {
	return c.call(ctx, http.MethodPut, "leads/"+url.PathEscape(leadID), nil, leadLinkRequest{ProjectCode: projectCode, SiteURL: siteURL}, nil,
		fmt.Sprintf("could not link lead %v to project %v", leadID, projectCode))
}

func (c *Client) UnlinkLeadRecord(ctx context.Context, leadID, projectCode string) error {
	return c.remove(ctx, "leads/"+url.PathEscape(leadID), url.Values{"project": {projectCode}},
		fmt.Sprintf("could not unlink lead %v from project %v", leadID, projectCode))
}

func (c *Client) CountListItems(ctx context.Context, siteURL, list string) (int, error) {
	var resp countResponse
	err := c.call(ctx, http.MethodGet, "lists/count", url.Values{"site": {siteURL}, "list": {list}}, nil, &resp,
		fmt.Sprintf("could not count the items of list %v", list))
	return resp.Count, err
}

// remove performs a deletion which succeeds if the resource is already gone.
func (c *Client) remove(ctx context.Context, path string, query url.Values, errorContext string) error {
	err := c.call(ctx, http.MethodDelete, path, query, nil, nil, errorContext)
	if commonerrors.Any(err, commonerrors.ErrNotFound) {
		c.logger.V(1).Info("resource already removed", "path", path, "query", query.Encode())
		return nil
	}
	return err
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL.JoinPath("api", path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) call(ctx context.Context, method, path string, query url.Values, body, result any, errorContext string) (err error) {
	var reader io.Reader
	if body != nil {
		payload, subErr := json.Marshal(body)
		if subErr != nil {
			err = commonerrors.WrapError(commonerrors.ErrMarshalling, subErr, errorContext)
			return
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reader)
	if err != nil {
		err = commonerrors.WrapError(commonerrors.ErrInvalid, err, errorContext)
		return
	}
	req.Header.Set(headers.Accept, contentTypeJSON)
	if body != nil {
		req.Header.Set(headers.ContentType, contentTypeJSON)
	}
	resp, clientErr := c.client.Do(req)
	if resp != nil && resp.Body != nil {
		defer func() { _ = resp.Body.Close() }()
	}
	err = httperrors.FormatAPIErrorToGo(ctx, errorContext, resp, clientErr, extractErrorMessage)
	if err != nil {
		return
	}
	if result == nil || resp == nil || resp.StatusCode == http.StatusNoContent {
		return
	}
	if subErr := json.NewDecoder(resp.Body).Decode(result); subErr != nil && subErr != io.EOF {
		err = commonerrors.WrapError(commonerrors.ErrMarshalling, subErr, errorContext)
	}
	return
}

// extractErrorMessage reads the message of an error response. The body is returned as is if it is not an error document.
func extractErrorMessage(_ context.Context, resp *http.Response) (message string, err error) {
	if resp == nil || resp.Body == nil {
		return
	}
	content, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		err = commonerrors.WrapError(commonerrors.ErrMarshalling, err, "could not read error response")
		return
	}
	var document errorResponse
	if json.Unmarshal(content, &document) == nil {
		if document.Error.Message != "" {
			message = document.Error.Message
			return
		}
		if document.Message != "" {
			message = document.Message
			return
		}
	}
	message = strings.TrimSpace(string(content))
	return
}
