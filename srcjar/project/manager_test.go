package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_SourceRootsAndResources(t *testing.T) {
	p := &Project{
		Build: Build{
			SourceDirectory:     "/p/src/main/java",
			TestSourceDirectory: "/p/src/test/java",
			Resources:           []Resource{{Directory: "/p/src/main/resources"}},
			TestResources:       []Resource{{Directory: "/p/src/test/resources"}},
		},
	}
	m := NewManager()

	assert.Equal(t, []string{"/p/src/main/java"}, m.CompileSourceRoots(p, MainScope))
	assert.Equal(t, []string{"/p/src/test/java"}, m.CompileSourceRoots(p, TestScope))
	assert.Equal(t, p.Build.Resources, m.Resources(p, MainScope))
	assert.Equal(t, p.Build.TestResources, m.Resources(p, TestScope))

	resources := m.Resources(p, MainScope)
	resources[0].Directory = "/changed"
	assert.Equal(t, "/p/src/main/resources", p.Build.Resources[0].Directory)
}

func TestManager_AttachArtifact(t *testing.T) {
	p := &Project{GroupID: "g", ArtifactID: "a", Version: "1"}
	other := &Project{GroupID: "g", ArtifactID: "b", Version: "1"}
	m := NewManager()

	sources := NewArtifact("g", "a", "1", "sources", JavaSourceType)
	tests := NewArtifact("g", "a", "1", "test-sources", JavaSourceType)

	require.NoError(t, m.AttachArtifact(p, sources, "/p/target/a-1-sources.jar"))
	require.NoError(t, m.AttachArtifact(p, tests, "/p/target/a-1-test-sources.jar"))
	assert.Len(t, m.AttachedArtifacts(p), 2)
	assert.Empty(t, m.AttachedArtifacts(other))

	// same key replaces the previous attachment
	require.NoError(t, m.AttachArtifact(p, sources, "/p/target/elsewhere.jar"))
	attached := m.AttachedArtifacts(p)
	require.Len(t, attached, 2)
	assert.Equal(t, Attachment{Artifact: sources, Path: "/p/target/elsewhere.jar"}, attached[0])

	path, ok := m.ArtifactPath(sources)
	assert.True(t, ok)
	assert.Equal(t, "/p/target/elsewhere.jar", path)

	_, ok = m.ArtifactPath(NewArtifact("g", "a", "1", "javadoc", "javadoc"))
	assert.False(t, ok)

	assert.Error(t, m.AttachArtifact(p, NewArtifact("", "a", "1", "", "jar"), "/x.jar"))
	assert.Error(t, m.AttachArtifact(p, sources, ""))
}

func TestNewSession(t *testing.T) {
	root := &Project{GroupID: "g", ArtifactID: "root", Version: "1"}
	s := NewSession(nil, []*Project{root, {GroupID: "g", ArtifactID: "child", Version: "1"}})

	assert.NotEmpty(t, s.ID)
	assert.Same(t, root, s.TopLevelProject)
	assert.Len(t, s.Projects, 2)
	assert.NotNil(t, s.ProjectManager())
}
