// Package config handles loading the tool's configuration.
// Values come from these sources, highest priority first:
//  1. Command-line flags:    -input_file=data.txt
//  2. Environment variables: INPUT_FILE=data.txt
//  3. A YAML file named by   CONFIG_PATH=/path/to/config.yaml or -config
//  4. Built-in defaults (env-default tags below)
package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden by the
// corresponding environment variable (env:"...").
type Config struct {
	// Env controls log format and verbosity: "dev", "staging" or "prod".
	Env string `yaml:"env" env:"ENV" env-default:"dev"`

	// InputFile is the JSON array of raw user records to validate.
	InputFile string `yaml:"input_file" env:"INPUT_FILE" env-default:"4.txt"`

	// OutputFile receives the error summary. Empty means stdout.
	OutputFile string `yaml:"output_file" env:"OUTPUT_FILE" env-default:"result.txt"`

	// ValidFile receives the records that passed every rule.
	ValidFile string `yaml:"valid_file" env:"VALID_FILE" env-default:"correct_data.txt"`

	// Encoding is the charset of InputFile and ValidFile.
	Encoding string `yaml:"encoding" env:"FILE_ENCODING" env-default:"windows-1251"`

	// Quiet hides the progress bar on stderr.
	Quiet bool `yaml:"quiet" env:"QUIET"`
}

// Load parses args (without the program name) and returns the merged
// configuration.
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("userinfo-validator", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to the configuration YAML file")
	inputFile := fs.String("input_file", "", "JSON file with user records")
	outputFile := fs.String("output_file", "", "File to write the error summary to")
	validFile := fs.String("valid_file", "", "File to write valid records to")
	encoding := fs.String("encoding", "", "Charset of the input and valid-records files")
	quiet := fs.Bool("quiet", false, "Hide the progress bar")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("config.Load: parse flags: %w", err)
	}

	path := *configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	var cfg Config
	if path != "" {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config.Load: config file does not exist: %s", path)
		}
		// ReadConfig also applies env overrides and defaults.
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config.Load: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config.Load: read env: %w", err)
	}

	// Only flags that were actually given override the lower sources.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input_file":
			cfg.InputFile = *inputFile
		case "output_file":
			cfg.OutputFile = *outputFile
		case "valid_file":
			cfg.ValidFile = *validFile
		case "encoding":
			cfg.Encoding = *encoding
		case "quiet":
			cfg.Quiet = *quiet
		}
	})

	if cfg.InputFile == "" {
		return nil, errors.New("config.Load: input file is not set")
	}

	return &cfg, nil
}

// MustLoad reads the configuration from os.Args and exits the process if
// it is unusable.
func MustLoad() *Config {
	cfg, err := Load(os.Args[1:])
	if err != nil {
		log.Fatalf("cannot load config: %s", err.Error())
	}
	return cfg
}
