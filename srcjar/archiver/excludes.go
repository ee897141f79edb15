package archiver

// defaultExcludes are the patterns of SCM metadata and editor/OS leftovers that never belong in an archive.
var defaultExcludes = []string{
	// temporary and backup files
	"**/*~",
	"**/#*#",
	"**/.#*",
	"**/%*%",
	"**/._*",

	// CVS
	"**/CVS",
	"**/CVS/**",
	"**/.cvsignore",

	// RCS and SCCS
	"**/RCS",
	"**/RCS/**",
	"**/SCCS",
	"**/SCCS/**",

	// Visual SourceSafe
	"**/vssver.scc",

	// Subversion
	"**/.svn",
	"**/.svn/**",

	// GNU arch
	"**/.arch-ids",
	"**/.arch-ids/**",
	"**/{arch}",
	"**/{arch}/**",

	// Bazaar
	"**/.bzr",
	"**/.bzr/**",

	// SurroundSCM
	"**/.MySCMServerInfo",

	// Mac
	"**/.DS_Store",

	// Serena Dimensions
	"**/.metadata",
	"**/.metadata/**",

	// Mercurial
	"**/.hg",
	"**/.hg/**",
	"**/.hgignore",

	// git
	"**/.git",
	"**/.git/**",
	"**/.gitignore",
	"**/.gitattributes",

	// BitKeeper
	"**/BitKeeper",
	"**/BitKeeper/**",
	"**/ChangeSet",
	"**/ChangeSet/**",

	// darcs
	"**/_darcs",
	"**/_darcs/**",
	"**/.darcsrepo",
	"**/.darcsrepo/**",
	"**/-darcs-backup*",
	"**/.darcs-temp-mail",
}

// DefaultExcludes returns a copy of the default exclude patterns.
func DefaultExcludes() []string {
	return append([]string(nil), defaultExcludes...)
}
