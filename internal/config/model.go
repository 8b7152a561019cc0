// internal/config/model.go
//
// Typed configuration model for Vitrine.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `.env`                           – dotenv values,
//   • `conf/global.yaml`                        – primary static file,
//   • `VITRINE_`-prefixed environment overrides – highest precedence.
//
// Any value whose string begins with the prefix `vault:` is resolved
// through the Vault client after unmarshalling (ResolveSecrets), so
// secrets never sit in flat files or git history.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`—Koanf ignores `yaml` tags
//     unless configured otherwise.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.

package config

import "strings"

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS bool   `koanf:"force_https"`
}

//
// Platform section
//

// Platform identifies the SaaS itself: the base domain under which
// tenant subdomains live, and the salt folded into preview tokens.
// Rotating the salt invalidates every outstanding preview link at once.
type Platform struct {
	BaseDomain  string `koanf:"base_domain"  validate:"required,hostname"`
	PreviewSalt string `koanf:"preview_salt" validate:"required"`
	GeoDBPath   string `koanf:"geo_db_path"` // optional GeoLite2-City path
}

//
// Database section
//

// Database holds the control-plane DSN.  The DSN template stays in YAML
// so operators can tweak host or flags without touching Vault; the
// password is a `vault:` reference resolved at boot.
type Database struct {
	DSN      string `koanf:"dsn"      validate:"required"`
	Password string `koanf:"password" validate:"required"`
}

// FullDSN splices the resolved password into the DSN template.  The
// template marks the spot with `__PASSWORD__` so plain YAML never
// carries a secret.
func (d Database) FullDSN() string {
	return strings.ReplaceAll(d.DSN, "__PASSWORD__", d.Password)
}

//
// Stock-photo section
//

// Stock configures the external image-search API used by the enrichment
// pipeline.
type Stock struct {
	Endpoint string `koanf:"endpoint" validate:"required,url"`
	APIKey   string `koanf:"api_key"  validate:"required"`
	PerPage  int    `koanf:"per_page" validate:"min=1,max=80"`
}

//
// Media-store section
//

// Media configures the hosted blob store that receives imported photos.
// MaxUploadBytes is the store's hard ceiling; larger images are resized
// before upload.
type Media struct {
	Endpoint       string `koanf:"endpoint"         validate:"required,url"`
	APIKey         string `koanf:"api_key"          validate:"required"`
	MaxUploadBytes int64  `koanf:"max_upload_bytes" validate:"min=1"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime—never set in YAML or env.
type Paths struct {
	Root string // VITRINE_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	Platform Platform `koanf:"platform"`
	Database Database `koanf:"database"`
	Stock    Stock    `koanf:"stock"`
	Media    Media    `koanf:"media"`
	Paths    Paths    `koanf:"-"` // not loaded from config files
}

// ResolveSecrets replaces every `vault:<path>#<key>` value with the
// secret it names.  The resolver is injected so this package never
// imports the Vault client.
func (c *Config) ResolveSecrets(resolve func(ref string) (string, error)) error {
	for _, field := range []*string{
		&c.Database.Password,
		&c.Stock.APIKey,
		&c.Media.APIKey,
	} {
		ref, ok := strings.CutPrefix(*field, "vault:")
		if !ok {
			continue
		}
		val, err := resolve(ref)
		if err != nil {
			return err
		}
		*field = val
	}
	return nil
}
