package project

import (
	"encoding/xml"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/anchore/srcjar/internal"
	"github.com/anchore/srcjar/internal/log"
)

const (
	pluginGroupID     = "org.apache.maven.plugins"
	jarPluginArtifact = "maven-jar-plugin"
	defaultPomName    = "pom.xml"
)

type pomXML struct {
	XMLName    xml.Name      `xml:"project"`
	Parent     *parentXML    `xml:"parent"`
	GroupID    string        `xml:"groupId"`
	ArtifactID string        `xml:"artifactId"`
	Version    string        `xml:"version"`
	Name       string        `xml:"name"`
	Packaging  string        `xml:"packaging"`
	Properties propertiesXML `xml:"properties"`
	Modules    []string      `xml:"modules>module"`
	Build      *buildXML     `xml:"build"`
}

type parentXML struct {
	GroupID      string  `xml:"groupId"`
	ArtifactID   string  `xml:"artifactId"`
	Version      string  `xml:"version"`
	RelativePath *string `xml:"relativePath"`
}

type propertiesXML struct {
	Entries []ConfigNode `xml:",any"`
}

type buildXML struct {
	Directory           string        `xml:"directory"`
	FinalName           string        `xml:"finalName"`
	OutputDirectory     string        `xml:"outputDirectory"`
	TestOutputDirectory string        `xml:"testOutputDirectory"`
	SourceDirectory     string        `xml:"sourceDirectory"`
	TestSourceDirectory string        `xml:"testSourceDirectory"`
	Resources           []resourceXML `xml:"resources>resource"`
	TestResources       []resourceXML `xml:"testResources>testResource"`
	Plugins             []pluginXML   `xml:"plugins>plugin"`
	PluginManagement    []pluginXML   `xml:"pluginManagement>plugins>plugin"`
}

type resourceXML struct {
	Directory  string   `xml:"directory"`
	TargetPath string   `xml:"targetPath"`
	Filtering  string   `xml:"filtering"`
	Includes   []string `xml:"includes>include"`
	Excludes   []string `xml:"excludes>exclude"`
}

type pluginXML struct {
	GroupID       string         `xml:"groupId"`
	ArtifactID    string         `xml:"artifactId"`
	Version       string         `xml:"version"`
	Inherited     string         `xml:"inherited"`
	Configuration *ConfigNode    `xml:"configuration"`
	Executions    []executionXML `xml:"executions>execution"`
}

type executionXML struct {
	ID            string      `xml:"id"`
	Phase         string      `xml:"phase"`
	Inherited     string      `xml:"inherited"`
	Goals         []string    `xml:"goals>goal"`
	Configuration *ConfigNode `xml:"configuration"`
}

func isInherited(value string) bool {
	return !strings.EqualFold(strings.TrimSpace(value), "false")
}

func (p pluginXML) is(artifactID string) bool {
	groupID := strings.TrimSpace(p.GroupID)
	return strings.TrimSpace(p.ArtifactID) == artifactID && (groupID == "" || groupID == pluginGroupID)
}

func (p pluginXML) toPlugin() *Plugin {
	plugin := &Plugin{
		GroupID:       strings.TrimSpace(p.GroupID),
		ArtifactID:    strings.TrimSpace(p.ArtifactID),
		Version:       strings.TrimSpace(p.Version),
		Inherited:     isInherited(p.Inherited),
		Configuration: p.Configuration,
	}
	if plugin.GroupID == "" {
		plugin.GroupID = pluginGroupID
	}
	for i, e := range p.Executions {
		id := strings.TrimSpace(e.ID)
		if id == "" {
			id = "default"
			if i > 0 {
				id = fmt.Sprintf("default-%d", i)
			}
		}
		var goals []string
		for _, g := range e.Goals {
			if g = strings.TrimSpace(g); g != "" {
				goals = append(goals, g)
			}
		}
		plugin.Executions = append(plugin.Executions, Execution{
			ID:            id,
			Phase:         strings.TrimSpace(e.Phase),
			Inherited:     isInherited(e.Inherited),
			Goals:         goals,
			Configuration: e.Configuration,
		})
	}
	return plugin
}

// sourcePlugin finds the plugin declaration in <plugins>, falling back onto (and merging with) <pluginManagement>.
func (b *buildXML) sourcePlugin() *Plugin {
	return b.plugin(internal.PluginArtifactID)
}

// mainArtifactClassifier is the classifier the jar plugin gives the main artifact, if configured.
func (b *buildXML) mainArtifactClassifier() string {
	p := b.plugin(jarPluginArtifact)
	if p == nil {
		return ""
	}
	return p.Configuration.Child("classifier").Text()
}

func (b *buildXML) plugin(artifactID string) *Plugin {
	if b == nil {
		return nil
	}
	var declared, managed *Plugin
	for _, p := range b.Plugins {
		if p.is(artifactID) {
			declared = p.toPlugin()
			break
		}
	}
	for _, p := range b.PluginManagement {
		if p.is(artifactID) {
			managed = p.toPlugin()
			break
		}
	}
	return mergePlugin(declared, managed)
}

func readPom(fs afero.Fs, path string) (*pomXML, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open pom (%s): %w", path, err)
	}
	defer log.CloseAndLogError(f, path)

	var pom pomXML
	if err := xml.NewDecoder(f).Decode(&pom); err != nil {
		return nil, fmt.Errorf("unable to parse pom (%s): %w", path, err)
	}
	return &pom, nil
}

// parentPomPath resolves the location of the parent pom as declared by relativePath (default ../pom.xml).
func parentPomPath(fs afero.Fs, pomPath string, parent *parentXML) (string, bool) {
	rel := "../" + defaultPomName
	if parent.RelativePath != nil {
		rel = strings.TrimSpace(*parent.RelativePath)
	}
	if rel == "" {
		return "", false
	}
	candidate := filepath.Join(filepath.Dir(pomPath), filepath.FromSlash(rel))
	if info, err := fs.Stat(candidate); err == nil && info.IsDir() {
		candidate = filepath.Join(candidate, defaultPomName)
	}
	if _, err := fs.Stat(candidate); err != nil {
		return "", false
	}
	return candidate, true
}
