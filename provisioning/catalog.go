package provisioning

import (
	"context"
	"fmt"
	"strings"

	"github.com/RMF112018/Project-Controls-sub011/commonerrors"
	"github.com/RMF112018/Project-Controls-sub011/transaction/saga"
)

const (
	StepCreateSite = iota + 1
	StepCreateLists
	StepCreateSecurityGroups
	StepApplyTemplate
	StepAssociateHub
	StepAddHubNavigationLink
	StepLinkLeadRecord
)

// NumberOfSteps is the number of steps of the provisioning.
const NumberOfSteps = StepLinkLeadRecord

type steps struct {
	ops IPlatformOperations
	cfg CatalogConfiguration
}

// NewCatalog returns the catalog of the steps provisioning a project workspace using ops.
func NewCatalog(ops IPlatformOperations, cfg *CatalogConfiguration) (*saga.StepCatalog, error) {
	if ops == nil {
		return nil, commonerrors.UndefinedVariable("platform operations")
	}
	if cfg == nil {
		cfg = DefaultCatalogConfiguration()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &steps{ops: ops, cfg: *cfg}
	return saga.NewStepCatalog(
		saga.StepDefinition{Step: StepCreateSite, Label: "Create project site", IsCritical: true, Execute: s.createSite, Compensate: s.deleteSite},
		saga.StepDefinition{Step: StepCreateLists, Label: "Create project lists", Execute: s.createLists, Compensate: s.deleteLists},
		saga.StepDefinition{Step: StepCreateSecurityGroups, Label: "Create security groups", IsCritical: true, Execute: s.createSecurityGroups, Compensate: s.deleteSecurityGroups},
		saga.StepDefinition{Step: StepApplyTemplate, Label: "Apply site template", Execute: s.applyTemplate, Compensate: s.removeTemplate},
		saga.StepDefinition{Step: StepAssociateHub, Label: "Associate hub site", Execute: s.associateHub, Compensate: s.disassociateHub},
		saga.StepDefinition{Step: StepAddHubNavigationLink, Label: "Add hub navigation link", Execute: s.addNavigationLink, Compensate: s.removeNavigationLink},
		saga.StepDefinition{Step: StepLinkLeadRecord, Label: "Link lead record", IsCritical: true, Execute: s.linkLead, Compensate: s.unlinkLead},
	)
}

// SiteTitle returns the title of the site of a project.
func SiteTitle(input saga.ProvisioningInput) string {
	name := strings.TrimSpace(input.ProjectName)
	if name == "" {
		return input.ProjectCode
	}
	return fmt.Sprintf("%v - %v", input.ProjectCode, name)
}

// SecurityGroupNames returns the names of the security groups of a project.
func (cfg *CatalogConfiguration) SecurityGroupNames(projectCode string) []string {
	names := make([]string, 0, len(cfg.SecurityGroupSuffixes))
	for i := range cfg.SecurityGroupSuffixes {
		names = append(names, fmt.Sprintf("%v %v", projectCode, cfg.SecurityGroupSuffixes[i]))
	}
	return names
}

// TemplateName returns the template to apply: the one requested if any, the default one otherwise.
func (cfg *CatalogConfiguration) TemplateName(input saga.ProvisioningInput) string {
	if name := strings.TrimSpace(input.TemplateName); name != "" {
		return name
	}
	return cfg.DefaultTemplate
}

func siteDescription(input saga.ProvisioningInput) string {
	var parts []string
	for _, p := range []string{input.ClientName, input.Division, input.Region} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " | ")
}

func requireSiteURL(rc *saga.RunContext) error {
	if rc.SiteURL == "" {
		return commonerrors.UndefinedVariable("site URL")
	}
	return nil
}

func (s *steps) createSite(ctx context.Context, rc *saga.RunContext) (*saga.StepOutput, error) {
	siteURL, err := s.ops.CreateSite(ctx, SiteRequest{
		Alias:       rc.SiteAlias,
		Title:       SiteTitle(rc.Input),
		Description: siteDescription(rc.Input),
		Owner:       rc.Input.RequestedBy,
	})
	if err != nil {
		return nil, err
	}
	if siteURL == "" {
		return nil, commonerrors.New(commonerrors.ErrUnexpected, "the platform did not return the URL of the site created")
	}
	return &saga.StepOutput{SiteURL: siteURL}, nil
}

func (s *steps) deleteSite(ctx context.Context, rc *saga.RunContext) error {
	if err := requireSiteURL(rc); err != nil {
		return err
	}
	return s.ops.DeleteSite(ctx, rc.SiteURL)
}

func (s *steps) createLists(ctx context.Context, rc *saga.RunContext) (*saga.StepOutput, error) {
	if err := requireSiteURL(rc); err != nil {
		return nil, err
	}
	return nil, s.ops.CreateLists(ctx, rc.SiteURL, s.cfg.Lists)
}

func (s *steps) deleteLists(ctx context.Context, rc *saga.RunContext) error {
	if err := requireSiteURL(rc); err != nil {
		return err
	}
	return s.ops.DeleteLists(ctx, rc.SiteURL, s.cfg.Lists)
}

func (s *steps) createSecurityGroups(ctx context.Context, rc *saga.RunContext) (*saga.StepOutput, error) {
	if err := requireSiteURL(rc); err != nil {
		return nil, err
	}
	return nil, s.ops.CreateSecurityGroups(ctx, rc.SiteURL, s.cfg.SecurityGroupNames(rc.Input.ProjectCode))
}

func (s *steps) deleteSecurityGroups(ctx context.Context, rc *saga.RunContext) error {
	if err := requireSiteURL(rc); err != nil {
		return err
	}
	return s.ops.DeleteSecurityGroups(ctx, rc.SiteURL, s.cfg.SecurityGroupNames(rc.Input.ProjectCode))
}

func (s *steps) applyTemplate(ctx context.Context, rc *saga.RunContext) (*saga.StepOutput, error) {
	if err := requireSiteURL(rc); err != nil {
		return nil, err
	}
	info, err := s.ops.ApplyTemplate(ctx, rc.SiteURL, s.cfg.TemplateName(rc.Input))
	if err != nil {
		return nil, err
	}
	return &saga.StepOutput{TemplateVersion: info.Version, TemplateType: info.Type}, nil
}

func (s *steps) removeTemplate(ctx context.Context, rc *saga.RunContext) error {
	if err := requireSiteURL(rc); err != nil {
		return err
	}
	return s.ops.RemoveTemplate(ctx, rc.SiteURL, s.cfg.TemplateName(rc.Input))
}

func (s *steps) associateHub(ctx context.Context, rc *saga.RunContext) (*saga.StepOutput, error) {
	if err := requireSiteURL(rc); err != nil {
		return nil, err
	}
	return nil, s.ops.AssociateHub(ctx, rc.SiteURL, rc.HubSiteURL)
}

func (s *steps) disassociateHub(ctx context.Context, rc *saga.RunContext) error {
	if err := requireSiteURL(rc); err != nil {
		return err
	}
	return s.ops.DisassociateHub(ctx, rc.SiteURL)
}

func (s *steps) addNavigationLink(ctx context.Context, rc *saga.RunContext) (*saga.StepOutput, error) {
	if err := requireSiteURL(rc); err != nil {
		return nil, err
	}
	return nil, s.ops.AddHubNavigationLink(ctx, rc.HubSiteURL, NavigationLink{Title: SiteTitle(rc.Input), URL: rc.SiteURL})
}

func (s *steps) removeNavigationLink(ctx context.Context, rc *saga.RunContext) error {
	if err := requireSiteURL(rc); err != nil {
		return err
	}
	return s.ops.RemoveHubNavigationLink(ctx, rc.HubSiteURL, rc.SiteURL)
}

// linkLead does nothing for projects which do not originate from a lead.
func (s *steps) linkLead(ctx context.Context, rc *saga.RunContext) (*saga.StepOutput, error) {
	if strings.TrimSpace(rc.Input.LeadID) == "" {
		return nil, nil
	}
	if err := requireSiteURL(rc); err != nil {
		return nil, err
	}
	return nil, s.ops.LinkLeadRecord(ctx, rc.Input.LeadID, rc.Input.ProjectCode, rc.SiteURL)
}

func (s *steps) unlinkLead(ctx context.Context, rc *saga.RunContext) error {
	if strings.TrimSpace(rc.Input.LeadID) == "" {
		return nil
	}
	return s.ops.UnlinkLeadRecord(ctx, rc.Input.LeadID, rc.Input.ProjectCode)
}
