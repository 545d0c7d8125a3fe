package crewmatch

import (
	"context"
	"fmt"
	"time"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"

	"github.com/crewmatch/crewmatch/service/messaging/memory"
)

// Config is a serialisable representation of the engine configuration. It can
// be populated from JSON or YAML. The zero-value is useful – all nested
// fields inherit their package defaults. Durations are expressed in
// milliseconds so the struct round-trips through plain YAML/JSON numbers.

type Config struct {
	Gateway GatewayConfig `json:"gateway" yaml:"gateway"`
	Events  EventConfig   `json:"events" yaml:"events"`
	// ProjectDescription seeds the shared context sent with every task
	// analysis request; SetProjectDescription overrides it at runtime.
	ProjectDescription string `json:"projectDescription" yaml:"projectDescription"`
}

type GatewayConfig struct {
	BaseURL   string `json:"baseURL" yaml:"baseURL"`
	TimeoutMs int    `json:"timeoutMs" yaml:"timeoutMs"`
}

// Timeout returns the gateway timeout as a duration.
func (g GatewayConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutMs) * time.Millisecond
}

type EventConfig struct {
	QueueBuffer  int `json:"queueBuffer" yaml:"queueBuffer"`
	MaxRetries   int `json:"maxRetries" yaml:"maxRetries"`
	RetryDelayMs int `json:"retryDelayMs" yaml:"retryDelayMs"`
}

// DefaultConfig returns a Config populated with the same defaults the
// constructors apply. Callers may modify the returned struct before passing
// it to New via WithConfig.
func DefaultConfig() *Config {
	queue := memory.DefaultConfig()
	return &Config{
		Gateway: GatewayConfig{
			TimeoutMs: int((60 * time.Second).Milliseconds()),
		},
		Events: EventConfig{
			QueueBuffer:  queue.QueueBuffer,
			MaxRetries:   queue.MaxRetries,
			RetryDelayMs: int(queue.RetryDelay.Milliseconds()),
		},
	}
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.Gateway.BaseURL == "" {
		return fmt.Errorf("gateway.baseURL is required")
	}
	if c.Gateway.TimeoutMs < 0 {
		return fmt.Errorf("gateway.timeoutMs must be >= 0")
	}
	if c.Events.QueueBuffer < 0 {
		return fmt.Errorf("events.queueBuffer must be >= 0")
	}
	return nil
}

func (c *Config) queueConfig() memory.Config {
	cfg := memory.DefaultConfig()
	if c.Events.QueueBuffer > 0 {
		cfg.QueueBuffer = c.Events.QueueBuffer
	}
	if c.Events.MaxRetries > 0 {
		cfg.MaxRetries = c.Events.MaxRetries
	}
	if c.Events.RetryDelayMs > 0 {
		cfg.RetryDelay = time.Duration(c.Events.RetryDelayMs) * time.Millisecond
	}
	return cfg
}

// LoadConfig reads a YAML config from any URL/path supported by the abstract
// file system (file, relative path, embed, cloud storage) on top of the
// defaults.
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %v: %w", URL, err)
	}
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %v: %w", URL, err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}
