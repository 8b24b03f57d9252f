// Package config provides functionality for managing configuration options
// for the application using command-line flags and environment variables.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
)

// Options holds the configuration values for the application.
type Options struct {
	// Addr is the address the local web UI listens on (ip:port).
	Addr string

	// DataDir is the directory holding the badger key-value store.
	DataDir string

	// Model is the OpenAI model used for prescription extraction and
	// interaction checks. The API key itself comes from OPENAI_API_KEY.
	Model string

	// Config is the path to the Config file.
	Config string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Addr, "a", "localhost:8080", "run on ip:port")
	flag.StringVar(&options.DataDir, "d", "pillpal-data", "data directory")
	flag.StringVar(&options.Model, "m", "gpt-4o-mini", "extraction model name")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the Options struct containing
// the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if addr := os.Getenv("PILLPAL_ADDR"); addr != "" {
		options.Addr = addr
	}
	if dataDir := os.Getenv("PILLPAL_DATA_DIR"); dataDir != "" {
		options.DataDir = dataDir
	}
	if model := os.Getenv("PILLPAL_MODEL"); model != "" {
		options.Model = model
	}

	return options
}
