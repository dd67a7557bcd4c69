package sumfile

import (
	"github.com/charmbracelet/log"

	"github.com/meigma/sumfile/compress"
)

// Option configures Register, Verify, VerifyAll, and RegisterTree.
type Option func(*config)

type config struct {
	algorithm         string
	strategy          Strategy
	manifestFormat    compress.Format
	manifestFormatSet bool
	overwrite         bool
	requireManifest   bool
	exclusiveManifest bool
	exclusiveEntry    bool
	preflight         bool
	logger            *log.Logger
}

func newConfig(opts []Option) config {
	cfg := config{
		algorithm: DefaultAlgorithm,
		strategy:  StrategyDirectory,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithAlgorithm selects the digest algorithm (default sha256).
func WithAlgorithm(name string) Option {
	return func(c *config) {
		c.algorithm = name
	}
}

// WithStrategy selects the manifest layout (default StrategyDirectory).
func WithStrategy(s Strategy) Option {
	return func(c *config) {
		c.strategy = s
	}
}

// WithManifestCompression stores manifests compressed with the given
// format, appending its suffix to the manifest filename.
func WithManifestCompression(f compress.Format) Option {
	return func(c *config) {
		c.manifestFormat = f
		c.manifestFormatSet = true
	}
}

// WithOverwrite re-asserts an identical existing entry by rewriting the
// manifest. It never overrides a divergent digest; that is always
// ErrContradiction.
func WithOverwrite() Option {
	return func(c *config) {
		c.overwrite = true
	}
}

// WithRequireManifest makes Register fail with ErrManifestMissing instead
// of lazily creating a manifest that does not exist yet.
func WithRequireManifest() Option {
	return func(c *config) {
		c.requireManifest = true
	}
}

// WithExclusiveManifest makes Register fail with ErrManifestExists when
// the governing manifest already exists.
func WithExclusiveManifest() Option {
	return func(c *config) {
		c.exclusiveManifest = true
	}
}

// WithExclusiveEntry makes Register fail with ErrEntryExists when the
// name is already listed, even with an identical digest.
func WithExclusiveEntry() Option {
	return func(c *config) {
		c.exclusiveEntry = true
	}
}

// WithPreflight checks read/write permissions on the paths involved
// before any mutation starts.
func WithPreflight() Option {
	return func(c *config) {
		c.preflight = true
	}
}

// WithLogger emits debug logs for each operation step. Operations are
// silent without it.
func WithLogger(logger *log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// manifestLocation resolves the manifest path for target, including the
// optional compression suffix.
func (c *config) manifestLocation(root, target string) string {
	p := ManifestPath(root, target, c.strategy, c.algorithm)
	if c.manifestFormatSet && c.manifestFormat.Compressed() {
		p += c.manifestFormat.Suffix()
	}
	return p
}

func (c *config) debug(msg string, keyvals ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, keyvals...)
	}
}
