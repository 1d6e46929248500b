// internal/deploy/plan.go
//
// Stack props derived from the resolved configuration.
//
/*
Context
--------
The CDK stacks only declare resources; every name, id, and value they use
is computed here from `config.Settings`, the mode, the target account,
and the forwarded build variables.  Keeping the derivation free of the
CDK runtime lets it be tested without node or jsii.

Naming
------
  base     = <base_id>-<mode>
  website  = <base>-web      bucket <website>-s3
  pipeline = <base>-cicd     role <pipeline>-codebuild-role,
                             projects <pipeline>-codebuild and
                             <pipeline>-invalidate-codebuild,
                             pipeline <pipeline>-pipeline
*/
package deploy

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/samber/lo"

	"github.com/yanizio/webstack/internal/config"
)

// WebsiteProps parametrizes the bucket, distribution, and DNS stack.
type WebsiteProps struct {
	StackID        string
	Account        string
	Region         string
	BucketName     string
	OriginID       string
	DomainName     string
	HostedZoneName string
	CertDomainName string
	CertificateARN string
}

// PipelineProps parametrizes the CI/CD stack.
type PipelineProps struct {
	StackID                 string
	Account                 string
	Region                  string
	Owner                   string
	Repo                    string
	Branch                  string
	ConnectionARN           string
	Buildspec               string
	BuildVariables          map[string]string
	RoleName                string
	ProjectName             string
	InvalidationProjectName string
	PipelineName            string
}

// Plan is everything cmd/cdk needs to declare both stacks.
type Plan struct {
	Mode     config.Mode
	BaseID   string
	Website  WebsiteProps
	Pipeline PipelineProps
}

// bucketName follows the S3 naming rules for the characters we generate.
var bucketName = regexp.MustCompile(`^[a-z0-9][a-z0-9.-]{1,61}[a-z0-9]$`)

// NewPlan derives stack props.  buildVars is copied.
func NewPlan(s *config.Settings, mode config.Mode, account string, buildVars map[string]string) (*Plan, error) {
	base := s.StackBaseID(mode)
	web := base + "-web"
	cicd := base + "-cicd"

	p := &Plan{
		Mode:   mode,
		BaseID: base,
		Website: WebsiteProps{
			StackID:        web,
			Account:        account,
			Region:         s.Region,
			BucketName:     web + "-s3",
			OriginID:       web + "-origin",
			DomainName:     s.Route53.DomainName,
			HostedZoneName: s.Route53.HostedZoneName,
			CertDomainName: s.ACM.DomainName,
			CertificateARN: s.ACM.CertificateARN,
		},
		Pipeline: PipelineProps{
			StackID:                 cicd,
			Account:                 account,
			Region:                  s.Region,
			Owner:                   s.GitHub.Owner,
			Repo:                    s.GitHub.Repo,
			Branch:                  s.GitHub.Branch,
			ConnectionARN:           s.ConnectionARN,
			Buildspec:               s.Build.Buildspec,
			BuildVariables:          lo.Assign(buildVars),
			RoleName:                cicd + "-codebuild-role",
			ProjectName:             cicd + "-codebuild",
			InvalidationProjectName: cicd + "-invalidate-codebuild",
			PipelineName:            cicd + "-pipeline",
		},
	}

	if !bucketName.MatchString(p.Website.BucketName) {
		return nil, fmt.Errorf("base_id %q yields invalid bucket name %q", s.BaseID, p.Website.BucketName)
	}
	return p, nil
}

// BuildVariableNames returns the forwarded variable names in order.
func (p PipelineProps) BuildVariableNames() []string {
	names := lo.Keys(p.BuildVariables)
	sort.Strings(names)
	return names
}
