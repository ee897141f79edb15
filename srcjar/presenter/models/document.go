package models

import (
	"github.com/anchore/srcjar/internal"
	"github.com/anchore/srcjar/internal/version"
	"github.com/anchore/srcjar/srcjar/source"
)

// Document represents the JSON document to be presented
type Document struct {
	Archives   []Archive  `json:"archives"`
	Skipped    []Skip     `json:"skipped"`
	Descriptor Descriptor `json:"descriptor"`
}

// Archive is a single source archive produced (or found up to date) during the session.
type Archive struct {
	ID         string `json:"id"`
	PackageURL string `json:"purl"`
	Project    string `json:"project"`
	Goal       string `json:"goal"`
	Execution  string `json:"execution"`
	Classifier string `json:"classifier,omitempty"`
	Path       string `json:"path"`
	Entries    int    `json:"entries"`
	Size       int64  `json:"size"`
	Created    bool   `json:"created"`
	UpToDate   bool   `json:"upToDate"`
	Attached   bool   `json:"attached"`
}

// Skip records a goal invocation that did not produce an archive.
type Skip struct {
	Project   string `json:"project"`
	Goal      string `json:"goal"`
	Execution string `json:"execution"`
	Reason    string `json:"reason"`
}

// Descriptor describes what created the document as well as surrounding metadata
type Descriptor struct {
	Name          string      `json:"name"`
	Version       string      `json:"version"`
	SessionID     string      `json:"session"`
	Configuration interface{} `json:"configuration,omitempty"`
}

// NewDocument creates and populates a new Document struct, representing the populated JSON document.
func NewDocument(sessionID string, results []source.Result, appConfig interface{}) Document {
	// preallocate so the JSON document does not show "null" when nothing was packaged
	archives := make([]Archive, 0)
	skipped := make([]Skip, 0)

	for _, r := range results {
		projectKey := ""
		if r.Project != nil {
			projectKey = r.Project.Key()
		}

		if r.Artifact == nil {
			skipped = append(skipped, Skip{
				Project:   projectKey,
				Goal:      r.Goal.String(),
				Execution: r.ExecutionID,
				Reason:    r.Skipped,
			})
			continue
		}

		archives = append(archives, Archive{
			ID:         r.Artifact.ID(),
			PackageURL: r.Artifact.PackageURL(),
			Project:    projectKey,
			Goal:       r.Goal.String(),
			Execution:  r.ExecutionID,
			Classifier: r.Classifier,
			Path:       r.Path,
			Entries:    r.Entries,
			Size:       r.Size,
			Created:    r.Created,
			UpToDate:   r.UpToDate,
			Attached:   r.Attached,
		})
	}

	return Document{
		Archives: archives,
		Skipped:  skipped,
		Descriptor: Descriptor{
			Name:          internal.ApplicationName,
			Version:       version.FromBuild().Version,
			SessionID:     sessionID,
			Configuration: appConfig,
		},
	}
}
