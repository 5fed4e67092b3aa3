package saga

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/RMF112018/Project-Controls-sub011/config"
	"github.com/RMF112018/Project-Controls-sub011/idempotency"
)

// ProvisioningInput describes the project workspace to provision. IdempotencyToken is optional: when set, the run
// adopts it instead of minting a new token.
type ProvisioningInput struct {
	ProjectCode      string `json:"projectCode" mapstructure:"project_code"`
	ProjectName      string `json:"projectName" mapstructure:"project_name"`
	ClientName       string `json:"clientName" mapstructure:"client_name"`
	Division         string `json:"division" mapstructure:"division"`
	Region           string `json:"region" mapstructure:"region"`
	LeadID           string `json:"leadId" mapstructure:"lead_id"`
	RequestedBy      string `json:"requestedBy" mapstructure:"requested_by"`
	SiteNameOverride string `json:"siteNameOverride,omitempty" mapstructure:"site_name_override"`
	TemplateName     string `json:"templateName,omitempty" mapstructure:"template_name"`
	IdempotencyToken string `json:"idempotencyToken,omitempty" mapstructure:"idempotency_token"`
}

func (i *ProvisioningInput) Validate() error {
	return config.WrapValidationError(validation.ValidateStruct(i,
		validation.Field(&i.ProjectCode, validation.Required, validation.By(withoutTokenDelimiter), validation.By(withAliasCharacters)),
	))
}

func withoutTokenDelimiter(value interface{}) error {
	s, _ := value.(string)
	if strings.Contains(s, idempotency.Delimiter) {
		return errors.New("must not contain " + idempotency.Delimiter)
	}
	return nil
}

func withAliasCharacters(value interface{}) error {
	s, _ := value.(string)
	if s != "" && SanitiseSiteAlias(s) == "" {
		return errors.New("must contain at least one letter, digit or hyphen")
	}
	return nil
}

// SanitiseSiteAlias removes any character which is not allowed in a site alias i.e. anything other than ASCII letters, digits and hyphens.
func SanitiseSiteAlias(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			return r
		default:
			return -1
		}
	}, s)
}

// ResolveSiteAlias determines the alias of the site to create: the sanitised override if any, the sanitised project code otherwise.
func ResolveSiteAlias(input ProvisioningInput) string {
	if alias := SanitiseSiteAlias(input.SiteNameOverride); alias != "" {
		return alias
	}
	return SanitiseSiteAlias(input.ProjectCode)
}
