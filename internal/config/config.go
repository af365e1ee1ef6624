package config

import (
    "errors"
    "fmt"
    "os"
    "strconv"
    "strings"

    yaml "gopkg.in/yaml.v3"
)

// DefaultMaxConcurrent caps in-flight async dispatches when the host does not
// set a limit of its own.
const DefaultMaxConcurrent = 4

// Config holds runtime configuration for a backend. It is read once by the
// host and injected at construction; nothing in this module reads globals at
// call time.
type Config struct {
    // Server is the OpenAI-compatible base URL, e.g. "http://localhost:4000".
    // An empty server means the backend is not configured.
    Server string `yaml:"server"`
    // APIKey may be empty for servers that do not authenticate.
    APIKey string `yaml:"key"`
    // Model is the default model identifier for hosts that do not pick one
    // from the discovery list.
    Model string `yaml:"model"`
    // MaxConcurrent bounds concurrently running async dispatches.
    MaxConcurrent int `yaml:"maxConcurrent"`
    Verbose       bool `yaml:"verbose"`
}

// FromEnv reads configuration from LLM_* environment variables. Unset
// variables leave zero values so the result overlays cleanly onto a file
// config.
func FromEnv() Config {
    cfg := Config{
        Server: os.Getenv("LLM_SERVER"),
        APIKey: os.Getenv("LLM_API_KEY"),
        Model:  os.Getenv("LLM_MODEL"),
    }
    if s := strings.TrimSpace(os.Getenv("LLM_MAX_CONCURRENT")); s != "" {
        if n, err := strconv.Atoi(s); err == nil {
            cfg.MaxConcurrent = n
        }
    }
    if s := strings.TrimSpace(os.Getenv("LLM_VERBOSE")); s != "" {
        if b, err := strconv.ParseBool(s); err == nil {
            cfg.Verbose = b
        }
    }
    return cfg
}

// Load reads a YAML config file. A missing path is not an error so hosts can
// treat the file as optional.
func Load(path string) (Config, error) {
    var cfg Config
    if strings.TrimSpace(path) == "" {
        return cfg, nil
    }
    b, err := os.ReadFile(path)
    if err != nil {
        if errors.Is(err, os.ErrNotExist) {
            return cfg, nil
        }
        return cfg, fmt.Errorf("read config %s: %w", path, err)
    }
    if err := yaml.Unmarshal(b, &cfg); err != nil {
        return cfg, fmt.Errorf("parse config %s: %w", path, err)
    }
    return cfg, nil
}

// Overlay returns c with non-zero fields from o taking precedence. Used to
// merge file < env < flags in that order.
func (c Config) Overlay(o Config) Config {
    if strings.TrimSpace(o.Server) != "" {
        c.Server = o.Server
    }
    if strings.TrimSpace(o.APIKey) != "" {
        c.APIKey = o.APIKey
    }
    if strings.TrimSpace(o.Model) != "" {
        c.Model = o.Model
    }
    if o.MaxConcurrent > 0 {
        c.MaxConcurrent = o.MaxConcurrent
    }
    if o.Verbose {
        c.Verbose = true
    }
    return c
}

// EffectiveMaxConcurrent resolves the async dispatch cap.
func (c Config) EffectiveMaxConcurrent() int {
    if c.MaxConcurrent > 0 {
        return c.MaxConcurrent
    }
    return DefaultMaxConcurrent
}
