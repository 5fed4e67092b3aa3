// Package provisioning defines the steps provisioning a project workspace on the collaboration platform: the site,
// its lists, its security groups and its template, then the links to the hub site and to the originating lead record.
package provisioning

//go:generate go tool mockgen -destination=mock_test.go -package=$GOPACKAGE github.com/RMF112018/Project-Controls-sub011/$GOPACKAGE IPlatformOperations

import (
	"context"
)

// SiteRequest describes the site to create for a project.
type SiteRequest struct {
	Alias       string `json:"alias"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Owner       string `json:"owner,omitempty"`
}

// TemplateInfo describes the template applied to a site.
type TemplateInfo struct {
	Version string `json:"version"`
	Type    string `json:"type"`
}

// NavigationLink is an entry of the navigation of the hub site.
type NavigationLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// IPlatformOperations lists the operations the provisioning performs on the collaboration platform. Every
// operation creating a resource has an inverse operation removing it.
type IPlatformOperations interface {
	// GetHubSiteURL returns the URL of the hub site project sites are associated with.
	GetHubSiteURL(ctx context.Context) (string, error)
	// CreateSite creates a site and returns its URL.
	CreateSite(ctx context.Context, request SiteRequest) (string, error)
	DeleteSite(ctx context.Context, siteURL string) error
	CreateLists(ctx context.Context, siteURL string, lists []string) error
	DeleteLists(ctx context.Context, siteURL string, lists []string) error
	CreateSecurityGroups(ctx context.Context, siteURL string, groups []string) error
	DeleteSecurityGroups(ctx context.Context, siteURL string, groups []string) error
	// ApplyTemplate applies a content template to a site and returns the provenance of the template applied.
	ApplyTemplate(ctx context.Context, siteURL, templateName string) (TemplateInfo, error)
	RemoveTemplate(ctx context.Context, siteURL, templateName string) error
	AssociateHub(ctx context.Context, siteURL, hubSiteURL string) error
	DisassociateHub(ctx context.Context, siteURL string) error
	AddHubNavigationLink(ctx context.Context, hubSiteURL string, link NavigationLink) error
	RemoveHubNavigationLink(ctx context.Context, hubSiteURL, linkURL string) error
	// LinkLeadRecord records on the lead the project and the site it was converted into.
	LinkLeadRecord(ctx context.Context, leadID, projectCode, siteURL string) error
	UnlinkLeadRecord(ctx context.Context, leadID, projectCode string) error
}
