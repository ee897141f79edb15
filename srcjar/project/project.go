package project

import (
	"fmt"
	"path/filepath"
)

// Packaging is the packaging type declared by a project (e.g. jar, pom, bom).
type Packaging string

const (
	JarPackaging Packaging = "jar"
	PomPackaging Packaging = "pom"
	BomPackaging Packaging = "bom"
)

// IsAggregator indicates packagings that only describe other projects and never hold sources of their own.
func (p Packaging) IsAggregator() bool {
	return p == PomPackaging || p == BomPackaging
}

// Scope selects between the main and the test half of a project.
type Scope string

const (
	MainScope Scope = "main"
	TestScope Scope = "test"
)

// Resource describes a resource directory and the patterns selecting its content.
type Resource struct {
	Directory  string   `json:"directory"`
	TargetPath string   `json:"targetPath,omitempty"`
	Includes   []string `json:"includes,omitempty"`
	Excludes   []string `json:"excludes,omitempty"`
	Filtering  bool     `json:"filtering,omitempty"`
}

// Build holds the (interpolated, absolute) build layout of a project.
type Build struct {
	Directory           string
	FinalName           string
	OutputDirectory     string
	TestOutputDirectory string
	SourceDirectory     string
	TestSourceDirectory string
	Resources           []Resource
	TestResources       []Resource
	OutputTimestamp     string
}

// Project is the in-memory model of a single pom.xml.
type Project struct {
	GroupID      string
	ArtifactID   string
	Version      string
	Name         string
	Packaging    Packaging
	Basedir      string
	PomPath      string
	Properties   map[string]string
	Build        Build
	Modules      []string
	Plugin       *Plugin
	MainArtifact Artifact

	values map[string]string
}

// Key is the groupId:artifactId:version coordinate of the project.
func (p *Project) Key() string {
	return fmt.Sprintf("%s:%s:%s", p.GroupID, p.ArtifactID, p.Version)
}

func (p *Project) String() string {
	return p.Key()
}

// Interpolate resolves ${...} expressions against the project model and its properties. Unknown expressions are
// left untouched.
func (p *Project) Interpolate(s string) string {
	return interpolate(s, p.values)
}

// ResolvePath interpolates the given value and makes it absolute relative to the project basedir.
func (p *Project) ResolvePath(s string) string {
	s = p.Interpolate(s)
	if s == "" {
		return s
	}
	s = filepath.FromSlash(s)
	if filepath.IsAbs(s) {
		return filepath.Clean(s)
	}
	return filepath.Join(p.Basedir, s)
}

// Relativize expresses the given path relative to the project basedir when possible.
func (p *Project) Relativize(path string) string {
	rel, err := filepath.Rel(p.Basedir, path)
	if err != nil {
		return path
	}
	return rel
}
