// Package env reads assertion settings from .env files and the
// process environment.
package env

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

// DefaultPrefix namespaces every setting read through Setting.
const DefaultPrefix = "ASSERTIONS_"

// Loader defines the interface for environment variable management.
type Loader interface {
	// Load reads environment variables from a .env file.
	Load(filepath string) error
	// Get retrieves an environment variable value.
	Get(key string) string
	// GetRequired retrieves a required environment variable or returns error.
	GetRequired(key string) (string, error)
	// GetWithDefault retrieves an environment variable with a default fallback.
	GetWithDefault(key, defaultValue string) string
	// Setting retrieves a prefixed setting, e.g. "max_string" reads
	// ASSERTIONS_MAX_STRING.
	Setting(name string) (string, bool)
	// Set sets an environment variable.
	Set(key, value string) error
	// All returns all loaded environment variables.
	All() map[string]string
}

// DefaultLoader implements Loader with .env file support.
type DefaultLoader struct {
	mu     sync.RWMutex
	vars   map[string]string
	loaded bool
	prefix string
}

// NewLoader creates a DefaultLoader using DefaultPrefix.
func NewLoader() *DefaultLoader {
	return NewLoaderWithPrefix(DefaultPrefix)
}

// NewLoaderWithPrefix creates a loader whose Setting lookups use
// the given prefix.
func NewLoaderWithPrefix(prefix string) *DefaultLoader {
	return &DefaultLoader{
		vars:   make(map[string]string),
		prefix: strings.ToUpper(prefix),
	}
}

func (l *DefaultLoader) Load(filepath string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	file, err := os.Open(filepath)
	if err != nil {
		return fmt.Errorf("open env file %s: %w", filepath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		// Remove surrounding quotes
		value = strings.Trim(value, `"'`)
		l.vars[key] = value
	}

	l.loaded = true
	return scanner.Err()
}

func (l *DefaultLoader) Get(key string) string {
	// OS env takes precedence
	if v := os.Getenv(key); v != "" {
		return v
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.vars[key]
}

func (l *DefaultLoader) GetRequired(key string) (string, error) {
	v := l.Get(key)
	if v == "" {
		return "", fmt.Errorf("required environment variable %s is not set", key)
	}
	return v, nil
}

func (l *DefaultLoader) GetWithDefault(key, defaultValue string) string {
	if v := l.Get(key); v != "" {
		return v
	}
	return defaultValue
}

func (l *DefaultLoader) Setting(name string) (string, bool) {
	v := l.Get(l.prefix + strings.ToUpper(name))
	return v, v != ""
}

// SettingInt parses a prefixed setting as an integer. The boolean
// result reports whether the setting was present at all.
func SettingInt(l Loader, name string) (int, bool, error) {
	raw, ok := l.Setting(name)
	if !ok {
		return 0, false, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, true, fmt.Errorf("setting %s: %w", name, err)
	}
	return n, true, nil
}

func (l *DefaultLoader) Set(key, value string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.vars[key] = value
	return os.Setenv(key, value)
}

func (l *DefaultLoader) All() map[string]string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	result := make(map[string]string, len(l.vars))
	for k, v := range l.vars {
		result[k] = v
	}
	return result
}
