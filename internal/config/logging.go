package config

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// logging contains all logging-related configuration options available to the user via the application config.
type logging struct {
	Structured   bool         `yaml:"structured" json:"structured" mapstructure:"structured"` // show all log entries as JSON formatted strings
	LevelOpt     logrus.Level `yaml:"-" json:"-"`                                             // the native log level object used by the logger
	Level        string       `yaml:"level" json:"level" mapstructure:"level"`                // the log level string hint
	FileLocation string       `yaml:"file" json:"file" mapstructure:"file"`                   // the file path to write logs to
}

func (cfg logging) loadDefaultValues(v *viper.Viper) {
	v.SetDefault("log.level", "")
	v.SetDefault("log.file", "")
	v.SetDefault("log.structured", false)
}

func levelFromVerbosity(verbosity int) logrus.Level {
	switch v := verbosity; {
	case v == 1:
		return logrus.InfoLevel
	case v == 2:
		return logrus.DebugLevel
	case v >= 3:
		return logrus.TraceLevel
	default:
		return logrus.WarnLevel
	}
}

func parseLevel(level string) (logrus.Level, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.PanicLevel, fmt.Errorf("bad log level value %q: %w", level, err)
	}
	return lvl, nil
}
