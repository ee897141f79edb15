package project

import (
	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// Session is a single build invocation over a reactor of projects.
type Session struct {
	ID              string
	TopLevelProject *Project
	Projects        []*Project
	Fs              afero.Fs

	manager *Manager
}

// NewSession creates a session over the given reactor projects; the first project is the top level project.
func NewSession(fs afero.Fs, projects []*Project) *Session {
	s := &Session{
		ID:       uuid.NewString(),
		Projects: projects,
		Fs:       fs,
		manager:  NewManager(),
	}
	if len(projects) > 0 {
		s.TopLevelProject = projects[0]
	}
	return s
}

// ProjectManager returns the session project manager.
func (s *Session) ProjectManager() *Manager {
	return s.manager
}
