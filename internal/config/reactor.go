package config

import (
	"strings"

	"github.com/spf13/viper"
)

// reactor controls which projects of a multi-module build take part in the session.
type reactor struct {
	NonRecursive bool     `yaml:"non-recursive" json:"non-recursive" mapstructure:"non-recursive"` // only the project in the given directory, not its modules
	Projects     []string `yaml:"projects" json:"projects" mapstructure:"projects"`                // artifactId or groupId:artifactId selection
}

func (cfg reactor) loadDefaultValues(v *viper.Viper) {
	v.SetDefault("reactor.non-recursive", false)
	v.SetDefault("reactor.projects", []string{})
}

func (cfg *reactor) parseConfigValues() error {
	cfg.Projects = splitAll(cfg.Projects)
	return nil
}

// splitAll flattens comma separated values, so "a,b" on the command line selects the same projects as ["a", "b"].
func splitAll(values []string) []string {
	var out []string
	for _, v := range values {
		for _, field := range strings.Split(v, ",") {
			if field = strings.TrimSpace(field); field != "" {
				out = append(out, field)
			}
		}
	}
	return out
}
