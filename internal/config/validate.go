package config

import (
	"errors"
	"fmt"
)

/*
Configuration validation covers:
- Database DSN
- Redis
- Worker
- Classifier engine selection and provider credentials
*/

func (c *Config) Validate() error {
	// Database config
	if c.Database.Primary.DSN == "" {
		return errors.New("database.primary.DSN is required")
	}

	// Redis config
	if c.Redis.Address == "" {
		return errors.New("redis.address is required")
	}

	// Worker config
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

	// Classifier config
	switch c.Classifier.Engine {
	case "", "rules":
		// Rule engine needs no credentials.
	case "llm":
		switch c.Classifier.Provider {
		case "openai":
			if c.Classifier.OpenaiApiKey == "" {
				return errors.New("classifier.openai_api_key is required when classifier.provider is 'openai'")
			}
		case "gemini":
			if c.Classifier.GoogleApiKey == "" {
				return errors.New("classifier.google_api_key is required when classifier.provider is 'gemini'")
			}
		default:
			return fmt.Errorf("unknown classifier.provider '%s' (expected 'openai' or 'gemini')", c.Classifier.Provider)
		}
		if c.Classifier.Model == "" {
			return errors.New("classifier.model is required when classifier.engine is 'llm'")
		}
	default:
		return fmt.Errorf("unknown classifier.engine '%s' (expected 'rules' or 'llm')", c.Classifier.Engine)
	}

	return nil
}
