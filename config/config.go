// Package config loads saidoc settings from .saidoc/config.yaml and
// SAIDOC_* environment variables.
package config

// Config is the complete saidoc configuration.
type Config struct {
	// Notation of documentation comments: auto, block, line or plain.
	Notation string       `yaml:"notation" mapstructure:"notation" validate:"oneof=auto block line plain"`
	Jobs     int          `yaml:"jobs" mapstructure:"jobs" validate:"gte=0,lte=256"`
	Output   OutputConfig `yaml:"output" mapstructure:"output"`
	Paths    PathsConfig  `yaml:"paths" mapstructure:"paths"`
	Links    LinksConfig  `yaml:"links" mapstructure:"links"`
	Log      LogConfig    `yaml:"log" mapstructure:"log"`
}

type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format" validate:"oneof=json yaml text"`
}

// PathsConfig selects the Java sources below the project root.
type PathsConfig struct {
	Include []string `yaml:"include" mapstructure:"include" validate:"min=1,dive,required"`
	Exclude []string `yaml:"exclude" mapstructure:"exclude" validate:"dive,required"`
}

type LinksConfig struct {
	// BaseURL, when set, turns resolved symbol links into URLs below it.
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"omitempty,url"`
}

type LogConfig struct {
	// Verbosity follows commonlog: -4 silences everything, 0 logs notices,
	// 2 and above log debug messages.
	Verbosity int    `yaml:"verbosity" mapstructure:"verbosity" validate:"gte=-4,lte=4"`
	File      string `yaml:"file" mapstructure:"file"`
}

func Default() *Config {
	return &Config{
		Notation: "auto",
		Jobs:     4,
		Output:   OutputConfig{Format: "text"},
		Paths: PathsConfig{
			Include: []string{"**/*.java"},
			Exclude: []string{"**/build/**", "**/target/**"},
		},
		Log: LogConfig{Verbosity: -1},
	}
}
