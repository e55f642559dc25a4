package settings

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/hookhub/pkg/errors"
	"github.com/arthur-debert/hookhub/pkg/logging"
	"github.com/arthur-debert/hookhub/pkg/registry"
)

// EnvPrefix selects environment variables holding setting values.
// HOOKHUB_SETTINGS_TRACE__STYLE sets scope "trace", key "style".
const EnvPrefix = "HOOKHUB_SETTINGS_"

// Store is the contract plugins use
type Store interface {
	Get(scope, key string) (any, error)
	RegisterDescriptor(scope, key string, d Descriptor) error
}

// KoanfStore keeps setting values in a koanf tree keyed scope.key
type KoanfStore struct {
	mu          sync.RWMutex
	values      *koanf.Koanf
	descriptors registry.Registry[Descriptor]
	logger      zerolog.Logger
}

// New creates an empty store
func New() *KoanfStore {
	return &KoanfStore{
		values:      koanf.New("."),
		descriptors: registry.New[Descriptor](),
		logger:      logging.GetLogger("settings"),
	}
}

// Load creates a store from a settings file and the environment. An empty
// path loads only the environment.
func Load(path string) (*KoanfStore, error) {
	s := New()
	if path != "" {
		if err := s.LoadFile(path); err != nil {
			return nil, err
		}
	}
	if err := s.LoadEnv(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadFile merges values from a .toml, .yaml or .yml file
func (s *KoanfStore) LoadFile(path string) error {
	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		parser = toml.Parser()
	case ".yaml", ".yml":
		parser = yaml.Parser()
	default:
		return errors.Newf(errors.ErrConfigParse, "unsupported settings file %q", path).
			WithDetail("path", path)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.values.Load(file.Provider(path), parser); err != nil {
		return errors.Wrapf(err, errors.ErrConfigLoad, "failed to load settings from %s", path).
			WithDetail("path", path)
	}
	s.logger.Debug().Str("path", path).Msg("Settings file loaded")
	return nil
}

// LoadEnv merges HOOKHUB_SETTINGS_ environment variables
func (s *KoanfStore) LoadEnv() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.values.Load(env.Provider(EnvPrefix, ".", func(name string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(name, EnvPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigLoad, "failed to load settings from environment")
	}
	return nil
}

// RegisterDescriptor declares a setting under scope.key. A descriptor
// without a Scope defaults to ScopeWorld.
func (s *KoanfStore) RegisterDescriptor(scope, key string, d Descriptor) error {
	if scope == "" || key == "" {
		return errors.New(errors.ErrInvalidInput, "setting scope and key are required")
	}
	if d.Scope == "" {
		d.Scope = ScopeWorld
	}
	if err := d.validate(); err != nil {
		return errors.Wrapf(err, errors.ErrSettingsInvalid, "invalid descriptor %s.%s", scope, key)
	}
	if err := s.descriptors.Register(path(scope, key), d); err != nil {
		return err
	}
	s.logger.Debug().
		Str("scope", scope).
		Str("key", key).
		Str("type", string(d.Type)).
		Msg("Setting registered")
	return nil
}

// Descriptor returns the descriptor registered for scope.key
func (s *KoanfStore) Descriptor(scope, key string) (Descriptor, error) {
	return s.descriptors.Get(path(scope, key))
}

// Keys returns every registered scope.key, sorted
func (s *KoanfStore) Keys() []string {
	return s.descriptors.List()
}

// Get returns the current value of a registered setting. A value that cannot
// be converted to the setting's type, or is not among its choices, yields
// the default.
func (s *KoanfStore) Get(scope, key string) (any, error) {
	d, err := s.descriptors.Get(path(scope, key))
	if err != nil {
		return nil, errors.Newf(errors.ErrNotFound, "setting %s.%s is not registered", scope, key).
			WithDetail("scope", scope).
			WithDetail("key", key)
	}

	s.mu.RLock()
	raw := s.values.Get(path(scope, key))
	if raw == nil {
		// environment names carry no case
		raw = s.values.Get(strings.ToLower(path(scope, key)))
	}
	s.mu.RUnlock()

	if raw == nil {
		return s.fallback(d)
	}
	v, err := d.coerce(raw)
	if err != nil || !d.allows(v) {
		s.logger.Warn().
			Str("scope", scope).
			Str("key", key).
			Interface("value", raw).
			Msg("Stored setting is invalid, using default")
		return s.fallback(d)
	}
	return v, nil
}

// Set stores a value after checking it against the descriptor
func (s *KoanfStore) Set(scope, key string, value any) error {
	d, err := s.descriptors.Get(path(scope, key))
	if err != nil {
		return errors.Newf(errors.ErrNotFound, "setting %s.%s is not registered", scope, key)
	}
	v, err := d.coerce(value)
	if err != nil {
		return err
	}
	if !d.allows(v) {
		return errors.Newf(errors.ErrSettingsInvalid, "%v is not a valid choice for %s.%s", v, scope, key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values.Load(confmap.Provider(map[string]interface{}{path(scope, key): v}, "."), nil)
}

func (s *KoanfStore) fallback(d Descriptor) (any, error) {
	if d.Default == nil {
		return nil, nil
	}
	return d.coerce(d.Default)
}

func path(scope, key string) string {
	return scope + "." + key
}
