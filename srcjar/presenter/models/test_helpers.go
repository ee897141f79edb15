package models

import "testing"

// GenerateDocument returns a fixed document covering created, up-to-date and skipped archives.
func GenerateDocument(t testing.TB) Document {
	t.Helper()

	return Document{
		Archives: []Archive{
			{
				ID:         "b1c2d3e4f5a6b7c8",
				PackageURL: "pkg:maven/org.example/app@1.0.0?classifier=sources",
				Project:    "org.example:app:1.0.0",
				Goal:       "jar",
				Execution:  "attach-sources",
				Classifier: "sources",
				Path:       "/build/app/target/app-1.0.0-sources.jar",
				Entries:    12,
				Size:       4096,
				Created:    true,
				Attached:   true,
			},
			{
				ID:         "0a1b2c3d4e5f6a7b",
				PackageURL: "pkg:maven/org.example/app@1.0.0?classifier=test-sources",
				Project:    "org.example:app:1.0.0",
				Goal:       "test-jar",
				Execution:  "attach-sources",
				Classifier: "test-sources",
				Path:       "/build/app/target/app-1.0.0-test-sources.jar",
				Entries:    5,
				Size:       1536,
				UpToDate:   true,
				Attached:   true,
			},
		},
		Skipped: []Skip{
			{
				Project:   "org.example:parent:1.0.0",
				Goal:      "jar",
				Execution: "attach-sources",
				Reason:    "aggregator packaging",
			},
		},
		Descriptor: Descriptor{
			Name:      "srcjar",
			Version:   "[not provided]",
			SessionID: "5f0c3c1e-7d2a-4b4e-9a57-1f9c2a6d3b80",
		},
	}
}
