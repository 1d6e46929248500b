// internal/config/model.go
//
// Typed view of the merged configuration.
//
// Context
// -------
// The loader keeps the merged tree schema-free; stack declarations need
// named fields.  `Document.Settings()` unmarshals the tree into these
// structs, resolves `vault:` references, and validates the result, so a
// missing key surfaces as MissingKeyError before any stack is declared.
//
// Notes
// -----
//   - Struct tags use `koanf:"…"`, not `yaml:"…"`.  Key names follow the
//     documents (`githubInfo`, `connectionARN`) rather than Go casing.
//   - `Build` is optional; defaults are filled after unmarshal.
package config

//
// Source control
//

// GitHub holds the repository the pipeline builds from.
type GitHub struct {
	Owner  string `koanf:"owner"  validate:"required"`
	Repo   string `koanf:"repo"   validate:"required"`
	Branch string `koanf:"branch" validate:"required"`
}

//
// DNS and TLS
//

// Route53 names the record to create and the zone it lives in.
type Route53 struct {
	DomainName     string `koanf:"domainName"     validate:"required,fqdn"`
	HostedZoneName string `koanf:"hostedZoneName" validate:"required,fqdn"`
}

// ACM names an existing certificate.  CloudFront requires it in us-east-1.
type ACM struct {
	DomainName     string `koanf:"domainName"     validate:"required,fqdn"`
	CertificateARN string `koanf:"certificateARN" validate:"required,startswith=arn:"`
}

//
// Build
//

// Build tunes the CodeBuild project.
type Build struct {
	// EnvPrefix selects the process variables forwarded to the build.
	EnvPrefix string `koanf:"envPrefix"`
	// Buildspec is the path of the buildspec inside the source repository.
	Buildspec string `koanf:"buildspec"`
}

const (
	DefaultBuildEnvPrefix = "VUE_APP_"
	DefaultBuildspec      = "buildspec.yml"
)

//
// Root aggregate
//

// Settings is everything the stacks read from the merged configuration.
type Settings struct {
	BaseID        string  `koanf:"base_id"       validate:"required"`
	Region        string  `koanf:"region"        validate:"required"`
	GitHub        GitHub  `koanf:"githubInfo"`
	ConnectionARN string  `koanf:"connectionARN" validate:"required,startswith=arn:"`
	Route53       Route53 `koanf:"route53"`
	ACM           ACM     `koanf:"acm"`
	Build         Build   `koanf:"build"`
}

// StackBaseID is the prefix of every stack id: `<base_id>-<mode>`.
func (s *Settings) StackBaseID(m Mode) string {
	return s.BaseID + "-" + m.String()
}

func (s *Settings) applyDefaults() {
	if s.Build.EnvPrefix == "" {
		s.Build.EnvPrefix = DefaultBuildEnvPrefix
	}
	if s.Build.Buildspec == "" {
		s.Build.Buildspec = DefaultBuildspec
	}
}
