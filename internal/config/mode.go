// internal/config/mode.go
//
// Deployment mode selector.
//
// Context
// -------
// Exactly two modes exist.  The mode picks the overlay document
// (`.dev.yaml` or `.prod.yaml`), the secrets file (`.dev.env` or
// `.prod.env`), and suffixes the base identifier of every stack.  The
// external signal is the `MODE` variable; anything other than `dev` or
// `prod` selects development.
package config

import "strings"

// Mode is the deployment target.  The zero value is Development.
type Mode int

const (
	Development Mode = iota
	Production
)

// ParseMode maps the external signal to a Mode.  Unknown and empty values
// fall back to Development.
func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prod":
		return Production
	default:
		return Development
	}
}

// String returns the short name used in file names and stack ids.
func (m Mode) String() string {
	if m == Production {
		return "prod"
	}
	return "dev"
}

// DocumentFile is the file name of the mode overlay document.
func (m Mode) DocumentFile() string { return "." + m.String() + ".yaml" }

// SecretsFile is the file name of the mode secrets file.
func (m Mode) SecretsFile() string { return "." + m.String() + ".env" }
