// internal/config/model.go
//
// Typed configuration model.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `conf/.env`                   – dotenv values,
//   • `conf/global.yaml`                     – primary static file,
//   • `ASSOC_`-prefixed environment overrides – highest precedence.
//
// The database password may be a literal or a `vault:mount/path#key`
// indirection; the loader resolves the latter before the DSN is built, so
// the model only ever stores plain strings.
//
// Validation happens immediately after unmarshal; the process fails fast
// if required fields are missing.
//
// Notes
// -----
// • Struct tags use `koanf:"…"`—Koanf ignores `yaml` tags unless
//   configured otherwise.
// • The `Paths` block is filled at runtime; YAML must not try to set it.
package config

// HTTP holds the operational listener tunables (/healthz and /metrics).
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
}

// Database holds the DSN template and its secret.  The template keeps one
// `%s` verb where the password goes, so operators can tweak host, port, or
// flags without touching the secret store.
type Database struct {
	DSN      string `koanf:"dsn"      validate:"required"`
	Password string `koanf:"password" validate:"required"`
	MaxOpen  int    `koanf:"max_open"`
	MaxIdle  int    `koanf:"max_idle"`
}

// Paths is resolved at runtime, never set in YAML or env.
type Paths struct {
	Root string // ASSOC_ROOT or discovered parent
}

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads.
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	Database Database `koanf:"database"`
	Paths    Paths    `koanf:"-"`
}
