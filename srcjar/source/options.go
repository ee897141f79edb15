package source

import (
	"fmt"
	"strconv"

	"github.com/anchore/srcjar/srcjar/archiver"
	"github.com/anchore/srcjar/srcjar/project"
)

// Options configure a packaging run. String values may hold ${...} expressions, resolved against the project.
type Options struct {
	Includes               []string
	Excludes               []string
	UseDefaultExcludes     bool
	Attach                 bool
	ExcludeResources       bool
	IncludePom             bool
	OutputDirectory        string
	FinalName              string
	ForceCreation          bool
	Skip                   bool
	Classifier             string
	TestClassifier         string
	OutputTimestamp        string
	UseDefaultManifestFile bool
	DefaultManifestFile    string
	Archive                archiver.Configuration
}

func DefaultOptions() Options {
	return Options{
		UseDefaultExcludes:  true,
		Attach:              true,
		OutputDirectory:     "${project.build.directory}",
		FinalName:           "${project.build.finalName}",
		Classifier:          "sources",
		TestClassifier:      "test-sources",
		OutputTimestamp:     "${project.build.outputTimestamp}",
		DefaultManifestFile: "${project.build.outputDirectory}/META-INF/MANIFEST.MF",
		Archive:             archiver.DefaultConfiguration(),
	}
}

// ClassifierFor returns the classifier used by the given goal.
func (o Options) ClassifierFor(g Goal) string {
	if g.Scope() == project.TestScope {
		return o.TestClassifier
	}
	return o.Classifier
}

// propertyOptions are the project (user) properties that preset options.
var propertyOptions = map[string]string{
	"maven.source.useDefaultExcludes":     "useDefaultExcludes",
	"maven.source.useDefaultManifestFile": "useDefaultManifestFile",
	"maven.source.attach":                 "attach",
	"maven.source.excludeResources":       "excludeResources",
	"maven.source.includePom":             "includePom",
	"maven.source.forceCreation":          "forceCreation",
	"maven.source.skip":                   "skipSource",
}

// ForProject layers the project properties, the plugin configuration and the configuration of the given execution
// (in that order, later wins) on top of the options.
func (o Options) ForProject(p *project.Project, goal Goal, executionID string) (Options, error) {
	result := o.clone()

	for property, name := range propertyOptions {
		value, ok := p.Properties[property]
		if !ok {
			continue
		}
		if err := result.set(p, goal, name, &project.ConfigNode{Value: value}); err != nil {
			return o, fmt.Errorf("invalid property %s of %s: %w", property, p, err)
		}
	}
	if v, ok := p.Properties["maven.source.classifier"]; ok {
		result.Classifier = p.Interpolate(v)
	}
	if v, ok := p.Properties["maven.source.test.classifier"]; ok {
		result.TestClassifier = p.Interpolate(v)
	}

	if p.Plugin == nil {
		return result, nil
	}
	if err := result.apply(p, goal, p.Plugin.Configuration); err != nil {
		return o, fmt.Errorf("invalid plugin configuration of %s: %w", p, err)
	}
	for _, e := range p.Plugin.Executions {
		if e.ID != executionID {
			continue
		}
		if err := result.apply(p, goal, e.Configuration); err != nil {
			return o, fmt.Errorf("invalid configuration of execution %q of %s: %w", e.ID, p, err)
		}
	}
	return result, nil
}

func (o Options) clone() Options {
	c := o
	c.Includes = append([]string(nil), o.Includes...)
	c.Excludes = append([]string(nil), o.Excludes...)
	if o.Archive.ManifestEntries != nil {
		c.Archive.ManifestEntries = make(map[string]string, len(o.Archive.ManifestEntries))
		for k, v := range o.Archive.ManifestEntries {
			c.Archive.ManifestEntries[k] = v
		}
	}
	return c
}

func (o *Options) apply(p *project.Project, goal Goal, node *project.ConfigNode) error {
	if node == nil {
		return nil
	}
	for i := range node.Children {
		child := &node.Children[i]
		if err := o.set(p, goal, child.Name(), child); err != nil {
			return err
		}
	}
	return nil
}

// set applies a single configuration element. Unknown elements are ignored, as they may belong to another version
// of the plugin.
func (o *Options) set(p *project.Project, goal Goal, name string, node *project.ConfigNode) error {
	text := p.Interpolate(node.Text())
	var err error
	switch name {
	case "includes":
		o.Includes = interpolateAll(p, node.Values())
	case "excludes":
		o.Excludes = interpolateAll(p, node.Values())
	case "useDefaultExcludes":
		o.UseDefaultExcludes, err = parseBool(name, text)
	case "attach":
		o.Attach, err = parseBool(name, text)
	case "excludeResources":
		o.ExcludeResources, err = parseBool(name, text)
	case "includePom":
		o.IncludePom, err = parseBool(name, text)
	case "forceCreation":
		o.ForceCreation, err = parseBool(name, text)
	case "skipSource":
		o.Skip, err = parseBool(name, text)
	case "useDefaultManifestFile":
		o.UseDefaultManifestFile, err = parseBool(name, text)
	case "outputDirectory":
		o.OutputDirectory = text
	case "finalName":
		o.FinalName = text
	case "outputTimestamp":
		o.OutputTimestamp = text
	case "defaultManifestFile":
		o.DefaultManifestFile = text
	case "classifier":
		// every goal has its own classifier parameter
		if goal.Scope() == project.TestScope {
			o.TestClassifier = text
		} else {
			o.Classifier = text
		}
	case "testClassifier":
		o.TestClassifier = text
	case "archive":
		err = o.setArchive(p, node)
	}
	return err
}

func (o *Options) setArchive(p *project.Project, node *project.ConfigNode) error {
	var err error
	for i := range node.Children {
		child := &node.Children[i]
		text := p.Interpolate(child.Text())
		switch child.Name() {
		case "addMavenDescriptor":
			o.Archive.AddMavenDescriptor, err = parseBool("archive.addMavenDescriptor", text)
		case "manifestFile":
			o.Archive.ManifestFile = text
		case "manifest":
			err = o.setManifest(p, child)
		case "manifestEntries":
			if o.Archive.ManifestEntries == nil {
				o.Archive.ManifestEntries = make(map[string]string)
			}
			for _, entry := range child.Children {
				o.Archive.ManifestEntries[entry.Name()] = p.Interpolate(entry.Text())
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (o *Options) setManifest(p *project.Project, node *project.ConfigNode) error {
	var err error
	for _, child := range node.Children {
		text := p.Interpolate(child.Text())
		switch child.Name() {
		case "addDefaultEntries":
			o.Archive.Manifest.AddDefaultEntries, err = parseBool("archive.manifest.addDefaultEntries", text)
		case "addDefaultImplementationEntries":
			o.Archive.Manifest.AddDefaultImplementationEntries, err = parseBool("archive.manifest.addDefaultImplementationEntries", text)
		case "addDefaultSpecificationEntries":
			o.Archive.Manifest.AddDefaultSpecificationEntries, err = parseBool("archive.manifest.addDefaultSpecificationEntries", text)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func parseBool(name, value string) (bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s: expected a boolean, got %q", name, value)
	}
	return b, nil
}

func interpolateAll(p *project.Project, values []string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		result = append(result, p.Interpolate(v))
	}
	return result
}
