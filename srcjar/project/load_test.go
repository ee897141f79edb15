package project

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture(t *testing.T, name string) string {
	t.Helper()
	dir, err := filepath.Abs(filepath.Join("test-fixtures", name))
	require.NoError(t, err)
	return dir
}

func TestLoadProject(t *testing.T) {
	dir := fixture(t, "simple")

	p, err := LoadProject(afero.NewOsFs(), dir)
	require.NoError(t, err)

	assert.Equal(t, "source", p.GroupID)
	assert.Equal(t, "simple", p.ArtifactID)
	assert.Equal(t, "1.2.3", p.Version)
	assert.Equal(t, "Simple Project", p.Name)
	assert.Equal(t, JarPackaging, p.Packaging)
	assert.Equal(t, dir, p.Basedir)
	assert.Equal(t, filepath.Join(dir, "pom.xml"), p.PomPath)
	assert.Equal(t, "source:simple:1.2.3", p.Key())

	target := filepath.Join(dir, "target")
	assert.Equal(t, Build{
		Directory:           target,
		FinalName:           "simple-final",
		OutputDirectory:     filepath.Join(target, "classes"),
		TestOutputDirectory: filepath.Join(target, "test-classes"),
		SourceDirectory:     filepath.Join(dir, "src", "main", "java"),
		TestSourceDirectory: filepath.Join(dir, "src", "test", "java"),
		Resources: []Resource{
			{
				Directory:  filepath.Join(dir, "src", "main", "templates"),
				TargetPath: "templates",
				Includes:   []string{"**/*.properties"},
				Excludes:   []string{"**/secret.properties"},
			},
			{
				Directory: filepath.Join(target, "generated"),
				Filtering: true,
			},
		},
		TestResources: []Resource{
			{Directory: filepath.Join(dir, "src", "test", "resources")},
		},
		OutputTimestamp: "2023-01-01T00:00:00Z",
	}, p.Build)

	assert.Equal(t, NewArtifact("source", "simple", "1.2.3", "", "jar"), p.MainArtifact)

	require.NotNil(t, p.Plugin)
	assert.Equal(t, "org.apache.maven.plugins", p.Plugin.GroupID)
	assert.Equal(t, "3.3.1", p.Plugin.Version)
	assert.Equal(t, "true", p.Plugin.Configuration.Child("includePom").Text())
	assert.Equal(t, []string{"**/*.bak"}, p.Plugin.Configuration.Child("excludes").Values())
	require.Len(t, p.Plugin.Executions, 1)
	assert.Equal(t, "attach-sources", p.Plugin.Executions[0].ID)
	assert.Equal(t, []string{"jar-no-fork"}, p.Plugin.Executions[0].Goals)
}

func TestLoadProject_Interpolate(t *testing.T) {
	p, err := LoadProject(afero.NewOsFs(), fixture(t, "simple"))
	require.NoError(t, err)

	tests := []struct {
		input    string
		expected string
	}{
		{input: "${project.artifactId}-${project.version}", expected: "simple-1.2.3"},
		{input: "${pom.groupId}", expected: "source"},
		{input: "${project.build.finalName}.jar", expected: "simple-final.jar"},
		{input: "${basedir}", expected: p.Basedir},
		{input: "${project.build.outputTimestamp}", expected: "2023-01-01T00:00:00Z"},
		{input: "${unknown.property}", expected: "${unknown.property}"},
		{input: "${loop}", expected: "${loop}"},
		{input: "no expressions", expected: "no expressions"},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			assert.Equal(t, test.expected, p.Interpolate(test.input))
		})
	}
}

func TestLoadProject_ParentInheritance(t *testing.T) {
	fs := afero.NewOsFs()

	app, err := LoadProject(fs, filepath.Join(fixture(t, "multi"), "app", "pom.xml"))
	require.NoError(t, err)
	assert.Equal(t, "org.example:app:2.0.0", app.Key())
	assert.Equal(t, "src", app.Interpolate("${shared.classifier}"))

	require.NotNil(t, app.Plugin)
	assert.Equal(t, "3.3.1", app.Plugin.Version)
	assert.Equal(t, "false", app.Plugin.Configuration.Child("forceCreation").Text())
	assert.Equal(t, "${shared.classifier}", app.Plugin.Configuration.Child("classifier").Text())

	nested, err := LoadProject(fs, filepath.Join(fixture(t, "multi"), "lib", "nested"))
	require.NoError(t, err)
	assert.Equal(t, "org.example:nested:2.1.0", nested.Key())
	assert.Equal(t, filepath.Join(nested.Basedir, "src"), nested.Build.SourceDirectory)
	require.NotNil(t, nested.Plugin)
	assert.Equal(t, "true", nested.Plugin.Configuration.Child("forceCreation").Text())
}

func TestLoadProject_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/empty", 0755))
	require.NoError(t, afero.WriteFile(fs, "/broken/pom.xml", []byte("<project><artifactId>"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/anonymous/pom.xml", []byte("<project><groupId>g</groupId></project>"), 0644))

	tests := []struct {
		name string
		path string
	}{
		{name: "missing path", path: "/missing"},
		{name: "directory without pom", path: "/empty"},
		{name: "malformed xml", path: "/broken"},
		{name: "missing artifactId", path: "/anonymous/pom.xml"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := LoadProject(fs, test.path)
			assert.Error(t, err)
		})
	}
}

func TestLoadProject_Defaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	pom := `<project>
  <groupId>g</groupId>
  <artifactId>a</artifactId>
  <version>1</version>
</project>`
	require.NoError(t, afero.WriteFile(fs, "/work/pom.xml", []byte(pom), 0644))

	p, err := LoadProject(fs, "/work")
	require.NoError(t, err)

	assert.Equal(t, JarPackaging, p.Packaging)
	assert.Equal(t, "a-1", p.Build.FinalName)
	assert.Equal(t, filepath.Join("/work", "target"), p.Build.Directory)
	assert.Equal(t, []Resource{{Directory: filepath.Join("/work", "src", "main", "resources")}}, p.Build.Resources)
	assert.Empty(t, p.Build.OutputTimestamp)
	assert.Nil(t, p.Plugin)
}

func TestLoadProject_MainArtifactClassifier(t *testing.T) {
	tests := []struct {
		name     string
		build    string
		expected string
	}{
		{
			name:     "no jar plugin",
			build:    `<build/>`,
			expected: "",
		},
		{
			name: "jar plugin without classifier",
			build: `<build><plugins><plugin>
				<artifactId>maven-jar-plugin</artifactId>
				<configuration><archive/></configuration>
			</plugin></plugins></build>`,
			expected: "",
		},
		{
			name: "declared classifier is interpolated",
			build: `<build><plugins><plugin>
				<groupId>org.apache.maven.plugins</groupId>
				<artifactId>maven-jar-plugin</artifactId>
				<configuration><classifier>${flavor}</classifier></configuration>
			</plugin></plugins></build>`,
			expected: "jdk8",
		},
		{
			name: "managed classifier",
			build: `<build><pluginManagement><plugins><plugin>
				<artifactId>maven-jar-plugin</artifactId>
				<configuration><classifier>managed</classifier></configuration>
			</plugin></plugins></pluginManagement></build>`,
			expected: "managed",
		},
		{
			name: "other plugins are ignored",
			build: `<build><plugins><plugin>
				<groupId>org.example</groupId>
				<artifactId>maven-jar-plugin</artifactId>
				<configuration><classifier>nope</classifier></configuration>
			</plugin></plugins></build>`,
			expected: "",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			pom := `<project><groupId>g</groupId><artifactId>a</artifactId><version>1</version>` +
				`<properties><flavor>jdk8</flavor></properties>` + test.build + `</project>`
			require.NoError(t, afero.WriteFile(fs, "/p/pom.xml", []byte(pom), 0644))

			p, err := LoadProject(fs, "/p")
			require.NoError(t, err)
			assert.Equal(t, test.expected, p.MainArtifact.Classifier)
		})
	}
}
