package config

import (
	"errors"
	"fmt"
	"net/url"
)

var validFormats = map[string]bool{"table": true, "json": true, "yaml": true}

func (c *Config) Validate() error {
	// Gateway config
	if err := validateBaseURL("alchemy.base_url", c.Alchemy.BaseURL); err != nil {
		return err
	}
	if c.Alchemy.APIKey == "" {
		return errors.New("alchemy.api_key is required (or set ALCHEMY_API_KEY)")
	}
	if err := validateBaseURL("translation.base_url", c.Translation.BaseURL); err != nil {
		return err
	}

	if c.HTTP.Timeout < 0 {
		return errors.New("http.timeout must not be negative")
	}

	// Worker config only matters when Redis is configured.
	if c.Redis.Address != "" {
		if c.Worker.Concurrency <= 0 {
			return errors.New("worker.concurrency must be a positive integer")
		}
		if len(c.Worker.Queues) == 0 {
			return errors.New("worker.queues must define at least one queue")
		}
		for name, priority := range c.Worker.Queues {
			if name == "" {
				return errors.New("worker.queues contains an empty queue name")
			}
			if priority <= 0 {
				return fmt.Errorf("worker.queues priority for queue '%s' must be positive", name)
			}
		}
	}

	if c.Server.Port == "" {
		return errors.New("server.port is required")
	}

	if !validFormats[c.Output.Format] {
		return fmt.Errorf("output.format must be one of table, json, yaml (got %q)", c.Output.Format)
	}

	return nil
}

func validateBaseURL(key, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", key)
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s must be an absolute URL (got %q)", key, raw)
	}
	return nil
}
