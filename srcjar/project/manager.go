package project

import (
	"fmt"
	"sync"
)

// Attachment is an artifact attached to a project together with the file backing it.
type Attachment struct {
	Artifact Artifact
	Path     string
}

// Manager answers questions about projects within a session and keeps track of the artifacts attached to them.
type Manager struct {
	lock        sync.RWMutex
	attachments map[string][]Attachment
	paths       map[Artifact]string
}

func NewManager() *Manager {
	return &Manager{
		attachments: make(map[string][]Attachment),
		paths:       make(map[Artifact]string),
	}
}

// CompileSourceRoots returns the source roots of the project for the given scope.
func (m *Manager) CompileSourceRoots(p *Project, scope Scope) []string {
	var root string
	switch scope {
	case TestScope:
		root = p.Build.TestSourceDirectory
	default:
		root = p.Build.SourceDirectory
	}
	if root == "" {
		return nil
	}
	return []string{root}
}

// Resources returns the resources of the project for the given scope.
func (m *Manager) Resources(p *Project, scope Scope) []Resource {
	var resources []Resource
	switch scope {
	case TestScope:
		resources = p.Build.TestResources
	default:
		resources = p.Build.Resources
	}
	return append([]Resource(nil), resources...)
}

// AttachedArtifacts returns the artifacts attached to the project, in attachment order.
func (m *Manager) AttachedArtifacts(p *Project) []Attachment {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return append([]Attachment(nil), m.attachments[p.Key()]...)
}

// AttachArtifact attaches the artifact backed by the given file to the project. Attaching an artifact with the
// key of an already attached one replaces it.
func (m *Manager) AttachArtifact(p *Project, artifact Artifact, path string) error {
	if artifact.GroupID == "" || artifact.ArtifactID == "" || artifact.Version == "" {
		return fmt.Errorf("incomplete artifact coordinates: %q", artifact.Key())
	}
	if path == "" {
		return fmt.Errorf("no file given for artifact %q", artifact.Key())
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	attached := m.attachments[p.Key()]
	for i, a := range attached {
		if a.Artifact.Key() == artifact.Key() {
			delete(m.paths, a.Artifact)
			attached[i] = Attachment{Artifact: artifact, Path: path}
			m.attachments[p.Key()] = attached
			m.paths[artifact] = path
			return nil
		}
	}
	m.attachments[p.Key()] = append(attached, Attachment{Artifact: artifact, Path: path})
	m.paths[artifact] = path
	return nil
}

// ArtifactPath returns the file backing the given artifact, if it was attached within the session.
func (m *Manager) ArtifactPath(artifact Artifact) (string, bool) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	path, ok := m.paths[artifact]
	return path, ok
}
