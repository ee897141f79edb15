package config

import (
	"github.com/spf13/viper"

	"github.com/anchore/srcjar/srcjar/archiver"
	"github.com/anchore/srcjar/srcjar/source"
)

// sourcePackaging holds the base packager options. Plugin configuration found in a project's pom takes precedence
// over these values for that project.
type sourcePackaging struct {
	Skip                   bool                   `yaml:"skip" json:"skip" mapstructure:"skip"`
	ForceCreation          bool                   `yaml:"force-creation" json:"force-creation" mapstructure:"force-creation"`
	IncludePom             bool                   `yaml:"include-pom" json:"include-pom" mapstructure:"include-pom"`
	ExcludeResources       bool                   `yaml:"exclude-resources" json:"exclude-resources" mapstructure:"exclude-resources"`
	Attach                 bool                   `yaml:"attach" json:"attach" mapstructure:"attach"`
	UseDefaultExcludes     bool                   `yaml:"use-default-excludes" json:"use-default-excludes" mapstructure:"use-default-excludes"`
	UseDefaultManifestFile bool                   `yaml:"use-default-manifest-file" json:"use-default-manifest-file" mapstructure:"use-default-manifest-file"`
	DefaultManifestFile    string                 `yaml:"default-manifest-file" json:"default-manifest-file" mapstructure:"default-manifest-file"`
	Classifier             string                 `yaml:"classifier" json:"classifier" mapstructure:"classifier"`
	TestClassifier         string                 `yaml:"test-classifier" json:"test-classifier" mapstructure:"test-classifier"`
	OutputDirectory        string                 `yaml:"output-directory" json:"output-directory" mapstructure:"output-directory"`
	FinalName              string                 `yaml:"final-name" json:"final-name" mapstructure:"final-name"`
	OutputTimestamp        string                 `yaml:"output-timestamp" json:"output-timestamp" mapstructure:"output-timestamp"`
	Includes               []string               `yaml:"includes" json:"includes" mapstructure:"includes"`
	Excludes               []string               `yaml:"excludes" json:"excludes" mapstructure:"excludes"`
	Archive                archiver.Configuration `yaml:"archive" json:"archive" mapstructure:"archive"`
}

func (cfg sourcePackaging) loadDefaultValues(v *viper.Viper) {
	d := source.DefaultOptions()
	v.SetDefault("source.skip", d.Skip)
	v.SetDefault("source.force-creation", d.ForceCreation)
	v.SetDefault("source.include-pom", d.IncludePom)
	v.SetDefault("source.exclude-resources", d.ExcludeResources)
	v.SetDefault("source.attach", d.Attach)
	v.SetDefault("source.use-default-excludes", d.UseDefaultExcludes)
	v.SetDefault("source.use-default-manifest-file", d.UseDefaultManifestFile)
	v.SetDefault("source.default-manifest-file", d.DefaultManifestFile)
	v.SetDefault("source.classifier", d.Classifier)
	v.SetDefault("source.test-classifier", d.TestClassifier)
	v.SetDefault("source.output-directory", d.OutputDirectory)
	v.SetDefault("source.final-name", d.FinalName)
	v.SetDefault("source.output-timestamp", d.OutputTimestamp)
	v.SetDefault("source.includes", []string{})
	v.SetDefault("source.excludes", []string{})
	v.SetDefault("source.archive.add-maven-descriptor", d.Archive.AddMavenDescriptor)
	v.SetDefault("source.archive.manifest-file", d.Archive.ManifestFile)
	v.SetDefault("source.archive.manifest.add-default-entries", d.Archive.Manifest.AddDefaultEntries)
	v.SetDefault("source.archive.manifest.add-default-implementation-entries", d.Archive.Manifest.AddDefaultImplementationEntries)
	v.SetDefault("source.archive.manifest.add-default-specification-entries", d.Archive.Manifest.AddDefaultSpecificationEntries)
}

func (cfg *sourcePackaging) parseConfigValues() error {
	cfg.Includes = splitAll(cfg.Includes)
	cfg.Excludes = splitAll(cfg.Excludes)
	return nil
}

// ToOptions converts the configuration into the base options of a packaging run.
func (cfg sourcePackaging) ToOptions() source.Options {
	return source.Options{
		Includes:               cfg.Includes,
		Excludes:               cfg.Excludes,
		UseDefaultExcludes:     cfg.UseDefaultExcludes,
		Attach:                 cfg.Attach,
		ExcludeResources:       cfg.ExcludeResources,
		IncludePom:             cfg.IncludePom,
		OutputDirectory:        cfg.OutputDirectory,
		FinalName:              cfg.FinalName,
		ForceCreation:          cfg.ForceCreation,
		Skip:                   cfg.Skip,
		Classifier:             cfg.Classifier,
		TestClassifier:         cfg.TestClassifier,
		OutputTimestamp:        cfg.OutputTimestamp,
		UseDefaultManifestFile: cfg.UseDefaultManifestFile,
		DefaultManifestFile:    cfg.DefaultManifestFile,
		Archive:                cfg.Archive,
	}
}
