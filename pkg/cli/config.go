package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"tool-directory/pkg/config"
)

// ShowConfig displays the current configuration
func (a *App) ShowConfig() error {
	data, err := toml.Marshal(a.cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}
	fmt.Fprintln(a.out, string(data))
	return nil
}

// SetConfig sets a configuration value
// Format: section.key=value (e.g., "database.url=postgres://...")
func (a *App) SetConfig(setStr string) error {
	parts := strings.SplitN(setStr, "=", 2)
	if len(parts) != 2 {
		return fmt.Errorf("invalid format: expected 'section.key=value'")
	}

	keyPath := strings.Split(parts[0], ".")
	value := parts[1]

	if len(keyPath) != 2 {
		return fmt.Errorf("invalid key format: expected 'section.key'")
	}

	section := keyPath[0]
	key := keyPath[1]

	// Apply to a copy so a rejected value leaves the live config untouched.
	next := *a.cfg
	cfg := &next

	switch section {
	case "database":
		switch key {
		case "url":
			cfg.Database.URL = value
		default:
			return fmt.Errorf("unknown database key: %s", key)
		}
	case "api":
		switch key {
		case "host":
			cfg.API.Host = value
		case "port":
			port, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid port value: %s", value)
			}
			cfg.API.Port = port
		case "api_key":
			cfg.API.APIKey = value
		default:
			return fmt.Errorf("unknown api key: %s", key)
		}
	case "cli":
		switch key {
		case "base_url":
			cfg.CLI.BaseURL = value
		case "api_key":
			cfg.CLI.APIKey = value
		case "mode":
			cfg.CLI.Mode = value
		case "validator":
			cfg.CLI.Validator = value
		case "submit_timeout":
			timeout, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid submit_timeout value: %s", value)
			}
			cfg.CLI.SubmitTimeout = timeout
		default:
			return fmt.Errorf("unknown cli key: %s", key)
		}
	case "simulator":
		switch key {
		case "delay_ms":
			delay, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid delay_ms value: %s", value)
			}
			cfg.Simulator.DelayMS = delay
		case "policy":
			cfg.Simulator.Policy = value
		case "seed":
			seed, err := strconv.ParseUint(value, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid seed value: %s", value)
			}
			cfg.Simulator.Seed = seed
		default:
			return fmt.Errorf("unknown simulator key: %s", key)
		}
	case "notify":
		switch key {
		case "toast_seconds":
			secs, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid toast_seconds value: %s", value)
			}
			cfg.Notify.ToastSeconds = secs
		default:
			return fmt.Errorf("unknown notify key: %s", key)
		}
	case "log":
		switch key {
		case "dir":
			cfg.Log.Dir = value
		case "debug":
			debug, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("invalid debug value: %s", value)
			}
			cfg.Log.Debug = debug
		default:
			return fmt.Errorf("unknown log key: %s", key)
		}
	default:
		return fmt.Errorf("unknown section: %s", section)
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}
	*a.cfg = next
	a.client = nil
	return config.SaveTo(a.cfg, a.cfgPath)
}
