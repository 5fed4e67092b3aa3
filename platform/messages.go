package platform

type siteRequest struct {
	Alias       string `json:"alias"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Owner       string `json:"owner,omitempty"`
}

type siteResponse struct {
	URL string `json:"url"`
}

type namesRequest struct {
	Names []string `json:"names"`
}

type templateRequest struct {
	Name string `json:"name"`
}

type templateResponse struct {
	Version string `json:"version"`
	Type    string `json:"type"`
}

type associationRequest struct {
	SiteURL    string `json:"siteUrl"`
	HubSiteURL string `json:"hubSiteUrl"`
}

type navigationLinkRequest struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type leadLinkRequest struct {
	ProjectCode string `json:"projectCode"`
	SiteURL     string `json:"siteUrl"`
}

type countResponse struct {
	Count int `json:"count"`
}

type errorResponse struct {
	Message string `json:"message"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
