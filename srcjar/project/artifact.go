package project

import (
	"fmt"
	"strings"

	"github.com/anchore/packageurl-go"
	"github.com/mitchellh/hashstructure/v2"
)

// JavaSourceType is the artifact type of source archives.
const JavaSourceType = "java-source"

var typeExtensions = map[string]string{
	"jar":          "jar",
	"java-source":  "jar",
	"javadoc":      "jar",
	"test-jar":     "jar",
	"maven-plugin": "jar",
	"ejb":          "jar",
	"pom":          "pom",
	"bom":          "pom",
}

// Artifact identifies a file produced by a project.
type Artifact struct {
	GroupID    string
	ArtifactID string
	Version    string
	Classifier string
	Extension  string
	Type       string
}

// NewArtifact creates an artifact of the given type; the file extension is derived from the type.
func NewArtifact(groupID, artifactID, version, classifier, typ string) Artifact {
	ext, ok := typeExtensions[typ]
	if !ok {
		ext = typ
	}
	return Artifact{
		GroupID:    groupID,
		ArtifactID: artifactID,
		Version:    version,
		Classifier: classifier,
		Extension:  ext,
		Type:       typ,
	}
}

// Key is groupId:artifactId:extension[:classifier]:version. The type is not part of the key.
func (a Artifact) Key() string {
	parts := []string{a.GroupID, a.ArtifactID, a.Extension}
	if a.Classifier != "" {
		parts = append(parts, a.Classifier)
	}
	parts = append(parts, a.Version)
	return strings.Join(parts, ":")
}

func (a Artifact) String() string {
	return a.Key()
}

// ID is a stable content-derived identifier for the artifact coordinates.
func (a Artifact) ID() string {
	h, err := hashstructure.Hash(struct{ Key string }{Key: a.Key()}, hashstructure.FormatV2, &hashstructure.HashOptions{
		ZeroNil:      true,
		SlicesAsSets: true,
	})
	if err != nil {
		return a.Key()
	}
	return fmt.Sprintf("%016x", h)
}

// PackageURL renders the artifact as a maven package URL.
func (a Artifact) PackageURL() string {
	var qualifiers packageurl.Qualifiers
	if a.Classifier != "" {
		qualifiers = append(qualifiers, packageurl.Qualifier{Key: "classifier", Value: a.Classifier})
	}
	if a.Extension != "" && a.Extension != "jar" {
		qualifiers = append(qualifiers, packageurl.Qualifier{Key: "type", Value: a.Extension})
	}
	return packageurl.NewPackageURL(packageurl.TypeMaven, a.GroupID, a.ArtifactID, a.Version, qualifiers, "").ToString()
}
