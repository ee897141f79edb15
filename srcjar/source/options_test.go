package source

import (
	"encoding/xml"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anchore/srcjar/srcjar/archiver"
	"github.com/anchore/srcjar/srcjar/project"
)

func configNode(t *testing.T, raw string) *project.ConfigNode {
	t.Helper()
	var n project.ConfigNode
	require.NoError(t, xml.Unmarshal([]byte(raw), &n))
	return &n
}

func TestOptions_ForProject(t *testing.T) {
	tests := []struct {
		name       string
		properties map[string]string
		plugin     func(t *testing.T) *project.Plugin
		goal       Goal
		execution  string
		expected   func(o *Options)
	}{
		{
			name:     "no configuration",
			goal:     JarGoal,
			expected: func(o *Options) {},
		},
		{
			name: "user properties",
			properties: map[string]string{
				"maven.source.skip":            "true",
				"maven.source.includePom":      "true",
				"maven.source.classifier":      "src",
				"maven.source.test.classifier": "test-src",
				"unrelated":                    "value",
			},
			goal: JarGoal,
			expected: func(o *Options) {
				o.Skip = true
				o.IncludePom = true
				o.Classifier = "src"
				o.TestClassifier = "test-src"
			},
		},
		{
			name: "plugin configuration",
			plugin: func(t *testing.T) *project.Plugin {
				return &project.Plugin{Configuration: configNode(t, `<configuration>
  <includes><include>**/*.java</include></includes>
  <excludes><exclude>**/${excluded}/**</exclude></excludes>
  <useDefaultExcludes>false</useDefaultExcludes>
  <attach>false</attach>
  <excludeResources>true</excludeResources>
  <forceCreation>true</forceCreation>
  <finalName>${project.artifactId}</finalName>
  <outputDirectory>out</outputDirectory>
  <outputTimestamp>1580608922</outputTimestamp>
  <useDefaultManifestFile>true</useDefaultManifestFile>
  <defaultManifestFile>MANIFEST.MF</defaultManifestFile>
  <classifier>src</classifier>
  <somethingElse>ignored</somethingElse>
  <archive>
    <addMavenDescriptor>false</addMavenDescriptor>
    <manifestFile>src/main/MANIFEST.MF</manifestFile>
    <manifest>
      <addDefaultEntries>false</addDefaultEntries>
      <addDefaultImplementationEntries>true</addDefaultImplementationEntries>
      <addDefaultSpecificationEntries>true</addDefaultSpecificationEntries>
    </manifest>
    <manifestEntries>
      <Automatic-Module-Name>${project.artifactId}.sources</Automatic-Module-Name>
    </manifestEntries>
  </archive>
</configuration>`)}
			},
			goal: JarGoal,
			expected: func(o *Options) {
				o.Includes = []string{"**/*.java"}
				o.Excludes = []string{"**/generated/**"}
				o.UseDefaultExcludes = false
				o.Attach = false
				o.ExcludeResources = true
				o.ForceCreation = true
				o.FinalName = "app"
				o.OutputDirectory = "out"
				o.OutputTimestamp = "1580608922"
				o.UseDefaultManifestFile = true
				o.DefaultManifestFile = "MANIFEST.MF"
				o.Classifier = "src"
				o.Archive = archiver.Configuration{
					AddMavenDescriptor: false,
					ManifestFile:       "src/main/MANIFEST.MF",
					Manifest: archiver.ManifestConfiguration{
						AddDefaultImplementationEntries: true,
						AddDefaultSpecificationEntries:  true,
					},
					ManifestEntries: map[string]string{"Automatic-Module-Name": "app.sources"},
				}
			},
		},
		{
			name: "classifier applies to the goal being run",
			plugin: func(t *testing.T) *project.Plugin {
				return &project.Plugin{Configuration: configNode(t, `<configuration><classifier>src</classifier></configuration>`)}
			},
			goal: TestJarGoal,
			expected: func(o *Options) {
				o.TestClassifier = "src"
			},
		},
		{
			name:       "execution configuration wins",
			properties: map[string]string{"maven.source.attach": "false"},
			plugin: func(t *testing.T) *project.Plugin {
				return &project.Plugin{
					Configuration: configNode(t, `<configuration><forceCreation>true</forceCreation><attach>true</attach></configuration>`),
					Executions: []project.Execution{
						{ID: "other", Configuration: configNode(t, `<configuration><skipSource>true</skipSource></configuration>`)},
						{ID: "attach-sources", Configuration: configNode(t, `<configuration><forceCreation>false</forceCreation></configuration>`)},
					},
				}
			},
			goal:      JarGoal,
			execution: "attach-sources",
			expected: func(o *Options) {
				o.Attach = true
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p := newTestProject(t, test.properties)
			if test.plugin != nil {
				p.Plugin = test.plugin(t)
			}

			expected := DefaultOptions()
			test.expected(&expected)

			actual, err := DefaultOptions().ForProject(p, test.goal, test.execution)
			require.NoError(t, err)
			if d := cmp.Diff(expected, actual); d != "" {
				t.Errorf("unexpected options (-want +got):\n%s", d)
			}
		})
	}
}

func TestOptions_ForProject_InvalidBoolean(t *testing.T) {
	p := newTestProject(t, map[string]string{"maven.source.forceCreation": "yes please"})
	_, err := DefaultOptions().ForProject(p, JarGoal, DefaultExecutionID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "forceCreation")

	p = newTestProject(t, nil)
	p.Plugin = &project.Plugin{Configuration: configNode(t, `<configuration><archive><manifest><addDefaultEntries>maybe</addDefaultEntries></manifest></archive></configuration>`)}
	_, err = DefaultOptions().ForProject(p, JarGoal, DefaultExecutionID)
	assert.Error(t, err)
}

func TestOptions_ForProject_DoesNotShareState(t *testing.T) {
	base := DefaultOptions()
	base.Excludes = []string{"**/*.bak"}
	base.Archive.ManifestEntries = map[string]string{"A": "1"}

	p := newTestProject(t, nil)
	p.Plugin = &project.Plugin{Configuration: configNode(t, `<configuration><archive><manifestEntries><B>2</B></manifestEntries></archive></configuration>`)}

	layered, err := base.ForProject(p, JarGoal, DefaultExecutionID)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"A": "1", "B": "2"}, layered.Archive.ManifestEntries)
	assert.Equal(t, map[string]string{"A": "1"}, base.Archive.ManifestEntries)
}

// newTestProject loads a minimal in-memory project carrying the given properties.
func newTestProject(t *testing.T, properties map[string]string) *project.Project {
	t.Helper()
	pom := `<project><groupId>g</groupId><artifactId>app</artifactId><version>1</version><properties>`
	for k, v := range properties {
		pom += "<" + k + ">" + v + "</" + k + ">"
	}
	pom += `<excluded>generated</excluded></properties></project>`

	fs := newMemFs(t, map[string]string{"/work/pom.xml": pom})
	p, err := project.LoadProject(fs, "/work")
	require.NoError(t, err)
	return p
}

func newMemFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
	}
	return fs
}
