package internal

const (
	// ApplicationName is the non-capitalized name of the application (do not change this)
	ApplicationName = "srcjar"

	// PluginArtifactID is the artifactId whose pom plugin configuration is honored by srcjar
	PluginArtifactID = "maven-source-plugin"
)
