package config

// CliOnlyOptions are options that can only be set on the command line (never from a config file or environment).
type CliOnlyOptions struct {
	ConfigPath string
	Verbosity  int
}
