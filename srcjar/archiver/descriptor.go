package archiver

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/anchore/srcjar/srcjar/project"
)

// descriptorEntries builds the maven descriptor: META-INF/maven/<groupId>/<artifactId>/ holding the project pom.xml
// and a pom.properties with the project coordinates.
func descriptorEntries(fs afero.Fs, p *project.Project) ([]Entry, error) {
	pom, err := afero.ReadFile(fs, p.PomPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read pom for the maven descriptor: %w", err)
	}

	base := fmt.Sprintf("META-INF/maven/%s/%s/", p.GroupID, p.ArtifactID)
	var entries []Entry
	for _, d := range append(parentDirs(base), base) {
		entries = append(entries, Entry{Name: d})
	}
	entries = append(entries,
		Entry{Name: base + "pom.xml", Source: p.PomPath, content: pom},
		Entry{Name: base + "pom.properties", content: pomProperties(p)},
	)
	return entries, nil
}

func pomProperties(p *project.Project) []byte {
	props := map[string]string{
		"groupId":    p.GroupID,
		"artifactId": p.ArtifactID,
		"version":    p.Version,
	}
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(k)
		sb.WriteString("=")
		sb.WriteString(escapeProperty(props[k]))
		sb.WriteString("\n")
	}
	return []byte(sb.String())
}

var propertyEscaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\r", `\r`, "\t", `\t`, "=", `\=`, ":", `\:`)

func escapeProperty(v string) string {
	return propertyEscaper.Replace(v)
}
