package source

import (
	"github.com/anchore/srcjar/srcjar/project"
)

// Result describes the outcome of a single goal invocation on a project.
type Result struct {
	Project     *project.Project
	Goal        Goal
	ExecutionID string
	Classifier  string
	// Artifact is set whenever an archive was produced, attached or not.
	Artifact *project.Artifact
	Path     string
	Entries  int
	Size     int64
	Created  bool
	UpToDate bool
	Attached bool
	// Skipped holds the reason no archive was produced.
	Skipped string
}

const (
	SkippedByConfiguration = "skipped per configuration"
	SkippedAggregator      = "aggregator packaging"
	SkippedClassifier      = "main artifact has a classifier"
	SkippedNoSources       = "no sources"
)
