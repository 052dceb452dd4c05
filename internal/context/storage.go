package context

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

const contextsFileName = "contexts.yaml"

// Storage provides thread-safe access to contexts.yaml.
type Storage struct {
	mu         sync.RWMutex
	configPath string
}

// NewStorage creates a Storage rooted at ~/.config/jansctl.
func NewStorage() (*Storage, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return nil, err
	}
	return &Storage{configPath: dir}, nil
}

// NewStorageWithPath creates a Storage rooted at configPath.
func NewStorageWithPath(configPath string) *Storage {
	return &Storage{configPath: configPath}
}

// DefaultConfigDir returns ~/.config/jansctl.
func DefaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "jansctl"), nil
}

func (s *Storage) path() string {
	return filepath.Join(s.configPath, contextsFileName)
}

// Load reads contexts.yaml. A missing file yields an empty config.
func (s *Storage) Load() (*ContextConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadLocked()
}

func (s *Storage) loadLocked() (*ContextConfig, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &ContextConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read contexts file: %w", err)
	}

	var config ContextConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse contexts file: %w", err)
	}
	return &config, nil
}

// Save writes config, creating the directory if needed.
func (s *Storage) Save(config *ContextConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(config)
}

func (s *Storage) saveLocked(config *ContextConfig) error {
	if err := os.MkdirAll(s.configPath, 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal contexts config: %w", err)
	}
	if err := os.WriteFile(s.path(), data, 0o600); err != nil {
		return fmt.Errorf("failed to write contexts file: %w", err)
	}
	return nil
}

// update loads the config, applies fn and saves the result under one lock.
func (s *Storage) update(fn func(*ContextConfig) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	config, err := s.loadLocked()
	if err != nil {
		return err
	}
	if err := fn(config); err != nil {
		return err
	}
	return s.saveLocked(config)
}

// GetCurrentContext returns the selected context, or nil when none is
// selected or the selection no longer exists.
func (s *Storage) GetCurrentContext() (*Context, error) {
	config, err := s.Load()
	if err != nil {
		return nil, err
	}
	if config.CurrentContext == "" {
		return nil, nil
	}
	return config.GetContext(config.CurrentContext), nil
}

// GetCurrentContextName returns the selected context name, or "".
func (s *Storage) GetCurrentContextName() (string, error) {
	config, err := s.Load()
	if err != nil {
		return "", err
	}
	return config.CurrentContext, nil
}

// SetCurrentContext selects the named context.
func (s *Storage) SetCurrentContext(name string) error {
	return s.update(func(config *ContextConfig) error {
		if !config.HasContext(name) {
			return &ContextNotFoundError{Name: name}
		}
		config.CurrentContext = name
		return nil
	})
}

// AddContext adds a new context. The first context added becomes current.
func (s *Storage) AddContext(ctx Context) error {
	if err := ValidateContextName(ctx.Name); err != nil {
		return err
	}
	if err := ValidateServerURL(ctx.Server); err != nil {
		return err
	}
	if ctx.Issuer != "" {
		if err := ValidateServerURL(ctx.Issuer); err != nil {
			return fmt.Errorf("issuer: %w", err)
		}
	}

	return s.update(func(config *ContextConfig) error {
		if config.HasContext(ctx.Name) {
			return fmt.Errorf("context %q already exists", ctx.Name)
		}
		config.AddOrUpdateContext(ctx)
		if config.CurrentContext == "" {
			config.CurrentContext = ctx.Name
		}
		return nil
	})
}

// UpdateContext replaces an existing context.
func (s *Storage) UpdateContext(ctx Context) error {
	if err := ValidateContextName(ctx.Name); err != nil {
		return err
	}
	if err := ValidateServerURL(ctx.Server); err != nil {
		return err
	}
	return s.update(func(config *ContextConfig) error {
		if !config.HasContext(ctx.Name) {
			return &ContextNotFoundError{Name: ctx.Name}
		}
		config.AddOrUpdateContext(ctx)
		return nil
	})
}

// DeleteContext removes a context by name.
func (s *Storage) DeleteContext(name string) error {
	return s.update(func(config *ContextConfig) error {
		if !config.RemoveContext(name) {
			return &ContextNotFoundError{Name: name}
		}
		return nil
	})
}

// RenameContext renames a context, following it with current-context.
func (s *Storage) RenameContext(oldName, newName string) error {
	if err := ValidateContextName(newName); err != nil {
		return err
	}
	return s.update(func(config *ContextConfig) error {
		ctx := config.GetContext(oldName)
		if ctx == nil {
			return &ContextNotFoundError{Name: oldName}
		}
		if oldName != newName && config.HasContext(newName) {
			return fmt.Errorf("context %q already exists", newName)
		}
		ctx.Name = newName
		if config.CurrentContext == oldName {
			config.CurrentContext = newName
		}
		return nil
	})
}

// ListContexts returns all defined contexts.
func (s *Storage) ListContexts() ([]Context, error) {
	config, err := s.Load()
	if err != nil {
		return nil, err
	}
	return config.Contexts, nil
}

// GetContext returns the named context, or nil if it does not exist.
func (s *Storage) GetContext(name string) (*Context, error) {
	config, err := s.Load()
	if err != nil {
		return nil, err
	}
	return config.GetContext(name), nil
}

// GetContextNames returns all context names for shell completion.
func (s *Storage) GetContextNames() ([]string, error) {
	config, err := s.Load()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(config.Contexts))
	for i, ctx := range config.Contexts {
		names[i] = ctx.Name
	}
	return names, nil
}

// Resolve returns the active context: explicit name, then JANSCTL_CONTEXT,
// then current-context. It returns nil, nil when nothing is selected.
func (s *Storage) Resolve(explicit string) (*Context, error) {
	name := explicit
	if name == "" {
		name = os.Getenv(ContextEnvVar)
	}
	if name == "" {
		return s.GetCurrentContext()
	}

	ctx, err := s.GetContext(name)
	if err != nil {
		return nil, err
	}
	if ctx == nil {
		return nil, &ContextNotFoundError{Name: name}
	}
	return ctx, nil
}
