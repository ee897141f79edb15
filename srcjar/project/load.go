package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/anchore/srcjar/internal/log"
)

// maxParentDepth bounds the parent chain walk.
const maxParentDepth = 32

// inherited is what a project takes from the parent poms resolvable on disk.
type inherited struct {
	groupID    string
	version    string
	properties map[string]string
	plugin     *Plugin
}

// LoadProject reads the given pom.xml (or the pom.xml within the given directory) into an interpolated project model.
func LoadProject(fs afero.Fs, path string) (*Project, error) {
	pomPath, err := resolvePomPath(fs, path)
	if err != nil {
		return nil, err
	}

	pom, err := readPom(fs, pomPath)
	if err != nil {
		return nil, err
	}

	parent := loadInherited(fs, pomPath, pom, 0)

	p := &Project{
		GroupID:    strings.TrimSpace(pom.GroupID),
		ArtifactID: strings.TrimSpace(pom.ArtifactID),
		Version:    strings.TrimSpace(pom.Version),
		Name:       strings.TrimSpace(pom.Name),
		Packaging:  Packaging(strings.TrimSpace(pom.Packaging)),
		Basedir:    filepath.Dir(pomPath),
		PomPath:    pomPath,
		Properties: make(map[string]string),
	}

	if p.GroupID == "" {
		p.GroupID = parent.groupID
	}
	if p.Version == "" {
		p.Version = parent.version
	}
	if p.Packaging == "" {
		p.Packaging = JarPackaging
	}
	if p.ArtifactID == "" {
		return nil, fmt.Errorf("pom is missing an artifactId: %s", pomPath)
	}

	for k, v := range parent.properties {
		p.Properties[k] = v
	}
	for k, v := range properties(pom) {
		p.Properties[k] = v
	}

	for _, m := range pom.Modules {
		if m = strings.TrimSpace(m); m != "" {
			p.Modules = append(p.Modules, m)
		}
	}

	p.values = p.modelValues()
	p.Build = p.resolveBuild(pom.Build)
	p.values = p.modelValues()

	p.Plugin = mergePlugin(pom.Build.sourcePlugin(), parent.plugin)
	classifier := p.Interpolate(pom.Build.mainArtifactClassifier())
	p.MainArtifact = NewArtifact(p.GroupID, p.ArtifactID, p.Version, classifier, string(p.Packaging))

	log.Debugf("loaded project %s (packaging=%s) from %s", p, p.Packaging, pomPath)
	return p, nil
}

func resolvePomPath(fs afero.Fs, path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("unable to resolve path (%s): %w", path, err)
	}
	info, err := fs.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("unable to find pom (%s): %w", path, err)
	}
	if info.IsDir() {
		abs = filepath.Join(abs, defaultPomName)
		if _, err := fs.Stat(abs); err != nil {
			return "", fmt.Errorf("no %s found in %s: %w", defaultPomName, path, err)
		}
	}
	return abs, nil
}

func properties(pom *pomXML) map[string]string {
	props := make(map[string]string)
	for _, e := range pom.Properties.Entries {
		props[e.Name()] = e.Text()
	}
	return props
}

// loadInherited walks the parent chain. Parents that cannot be read only contribute their declared coordinates.
func loadInherited(fs afero.Fs, pomPath string, pom *pomXML, depth int) inherited {
	var result inherited
	if pom.Parent == nil {
		return result
	}
	result.groupID = strings.TrimSpace(pom.Parent.GroupID)
	result.version = strings.TrimSpace(pom.Parent.Version)

	if depth >= maxParentDepth {
		log.Warnf("parent chain of %s is too deep, ignoring further parents", pomPath)
		return result
	}

	parentPath, ok := parentPomPath(fs, pomPath, pom.Parent)
	if !ok {
		return result
	}
	parentPom, err := readPom(fs, parentPath)
	if err != nil {
		log.Debugf("unable to read parent pom of %s: %+v", pomPath, err)
		return result
	}
	if strings.TrimSpace(parentPom.ArtifactID) != strings.TrimSpace(pom.Parent.ArtifactID) {
		log.Debugf("pom at %s is not the declared parent of %s", parentPath, pomPath)
		return result
	}

	grand := loadInherited(fs, parentPath, parentPom, depth+1)
	result.properties = make(map[string]string)
	for k, v := range grand.properties {
		result.properties[k] = v
	}
	for k, v := range properties(parentPom) {
		result.properties[k] = v
	}
	result.plugin = inheritable(mergePlugin(parentPom.Build.sourcePlugin(), grand.plugin))
	return result
}

// modelValues is the expression lookup table: user properties first, then the model (the model wins).
func (p *Project) modelValues() map[string]string {
	values := make(map[string]string, len(p.Properties)+16)
	for k, v := range p.Properties {
		values[k] = v
	}
	model := map[string]string{
		"project.groupId":    p.GroupID,
		"project.artifactId": p.ArtifactID,
		"project.version":    p.Version,
		"project.name":       p.Name,
		"project.packaging":  string(p.Packaging),
		"project.basedir":    p.Basedir,
		"basedir":            p.Basedir,
	}
	if p.Build.Directory != "" {
		model["project.build.directory"] = p.Build.Directory
		model["project.build.finalName"] = p.Build.FinalName
		model["project.build.outputDirectory"] = p.Build.OutputDirectory
		model["project.build.testOutputDirectory"] = p.Build.TestOutputDirectory
		model["project.build.sourceDirectory"] = p.Build.SourceDirectory
		model["project.build.testSourceDirectory"] = p.Build.TestSourceDirectory
	}
	// an unset timestamp resolves to "" (not reproducible)
	model["project.build.outputTimestamp"] = p.Properties["project.build.outputTimestamp"]
	for k, v := range model {
		values[k] = v
	}
	return values
}

func orDefault(value, fallback string) string {
	if value = strings.TrimSpace(value); value != "" {
		return value
	}
	return fallback
}

func (p *Project) resolveBuild(b *buildXML) Build {
	if b == nil {
		b = &buildXML{}
	}
	build := Build{
		Directory: p.ResolvePath(orDefault(b.Directory, "${project.basedir}/target")),
		FinalName: p.Interpolate(orDefault(b.FinalName, "${project.artifactId}-${project.version}")),
	}
	// output directories may reference the build directory
	p.values["project.build.directory"] = build.Directory
	build.OutputDirectory = p.ResolvePath(orDefault(b.OutputDirectory, "${project.build.directory}/classes"))
	build.TestOutputDirectory = p.ResolvePath(orDefault(b.TestOutputDirectory, "${project.build.directory}/test-classes"))
	build.SourceDirectory = p.ResolvePath(orDefault(b.SourceDirectory, "src/main/java"))
	build.TestSourceDirectory = p.ResolvePath(orDefault(b.TestSourceDirectory, "src/test/java"))
	build.Resources = p.resolveResources(b.Resources, "src/main/resources")
	build.TestResources = p.resolveResources(b.TestResources, "src/test/resources")
	build.OutputTimestamp = p.Interpolate(p.Properties["project.build.outputTimestamp"])
	return build
}

func (p *Project) resolveResources(declared []resourceXML, fallback string) []Resource {
	if len(declared) == 0 {
		return []Resource{{Directory: p.ResolvePath(fallback)}}
	}
	var resources []Resource
	for _, r := range declared {
		resources = append(resources, Resource{
			Directory:  p.ResolvePath(orDefault(r.Directory, fallback)),
			TargetPath: p.Interpolate(strings.TrimSpace(r.TargetPath)),
			Includes:   p.interpolateAll(r.Includes),
			Excludes:   p.interpolateAll(r.Excludes),
			Filtering:  strings.EqualFold(strings.TrimSpace(r.Filtering), "true"),
		})
	}
	return resources
}

func (p *Project) interpolateAll(values []string) []string {
	var result []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, p.Interpolate(v))
		}
	}
	return result
}
