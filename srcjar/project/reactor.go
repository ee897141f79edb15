package project

import (
	"fmt"
	"path/filepath"

	"github.com/scylladb/go-set/strset"
	"github.com/spf13/afero"

	"github.com/anchore/srcjar/internal/log"
)

// LoadReactor loads the project found at the given path and, when recursive, every module it aggregates (depth
// first, in declaration order). The root project is always first.
func LoadReactor(fs afero.Fs, path string, recursive bool) ([]*Project, error) {
	root, err := LoadProject(fs, path)
	if err != nil {
		return nil, err
	}
	projects := []*Project{root}
	if !recursive {
		return projects, nil
	}

	seen := strset.New(root.PomPath)
	modules, err := loadModules(fs, root, seen)
	if err != nil {
		return nil, err
	}
	return append(projects, modules...), nil
}

func loadModules(fs afero.Fs, parent *Project, seen *strset.Set) ([]*Project, error) {
	var projects []*Project
	for _, module := range parent.Modules {
		modulePath := filepath.Join(parent.Basedir, filepath.FromSlash(module))
		pomPath, err := resolvePomPath(fs, modulePath)
		if err != nil {
			return nil, fmt.Errorf("unable to resolve module %q of %s: %w", module, parent, err)
		}
		if seen.Has(pomPath) {
			log.Warnf("module %q of %s was already loaded, skipping", module, parent)
			continue
		}
		seen.Add(pomPath)

		p, err := LoadProject(fs, pomPath)
		if err != nil {
			return nil, fmt.Errorf("unable to load module %q of %s: %w", module, parent, err)
		}
		projects = append(projects, p)

		children, err := loadModules(fs, p, seen)
		if err != nil {
			return nil, err
		}
		projects = append(projects, children...)
	}
	return projects, nil
}

// Filter keeps the projects whose artifactId (or groupId:artifactId) is in the given selection. An empty selection
// keeps every project.
func Filter(projects []*Project, selection []string) []*Project {
	if len(selection) == 0 {
		return projects
	}
	selected := strset.New(selection...)
	var result []*Project
	for _, p := range projects {
		if selected.Has(p.ArtifactID) || selected.Has(p.GroupID+":"+p.ArtifactID) {
			result = append(result, p)
		}
	}
	return result
}
