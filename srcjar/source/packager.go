package source

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"

	"github.com/anchore/srcjar/internal/bus"
	"github.com/anchore/srcjar/internal/file"
	"github.com/anchore/srcjar/internal/log"
	"github.com/anchore/srcjar/srcjar/archiver"
	"github.com/anchore/srcjar/srcjar/project"
	"github.com/anchore/srcjar/srcjar/srcjarerr"
)

// sharedResourcesDir is the suffix of build resource directories (generated by remote resource bundles) that are
// part of every source archive.
const sharedResourcesDir = "maven-shared-archive-resources"

// Packager runs a single goal against the current project of a session.
type Packager struct {
	Session     *project.Session
	Project     *project.Project
	Goal        Goal
	ExecutionID string
	// Options must already be layered for the current project (see Options.ForProject).
	Options   Options
	CreatedBy string
	Monitor   *Monitor
}

// Execute packages the sources, writes the archive and attaches it to the current project.
func (p *Packager) Execute(ctx context.Context) (*Result, error) {
	opts := p.Options
	classifier := p.Project.Interpolate(opts.ClassifierFor(p.Goal))
	result := &Result{
		Project:     p.Project,
		Goal:        p.Goal,
		ExecutionID: p.ExecutionID,
		Classifier:  classifier,
	}

	if opts.Skip {
		log.Info("Skipping source per configuration.")
		result.Skipped = SkippedByConfiguration
		return result, nil
	}

	projects := []*project.Project{p.Project}
	if p.Goal.Aggregate() {
		projects = p.aggregatedProjects()
	} else if p.Project.Packaging.IsAggregator() {
		log.Debugf("not packaging sources of %s with %s packaging", p.Project, p.Project.Packaging)
		result.Skipped = SkippedAggregator
		return result, nil
	}

	mainArtifact := p.Project.MainArtifact
	if mainArtifact.Classifier != "" {
		log.Warnf("NOT adding sources to artifacts with classifier as only one classifier per artifact is supported. Current artifact [%s] has a [%s] classifier.", mainArtifact.Key(), mainArtifact.Classifier)
		result.Skipped = SkippedClassifier
		return result, nil
	}

	arch, err := p.createArchiver(opts)
	if err != nil {
		return nil, err
	}

	for _, sub := range projects {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if sub.Packaging.IsAggregator() {
			p.projectProcessed()
			continue
		}
		if err := p.archiveProjectContent(sub, arch.Jar, opts); err != nil {
			return nil, err
		}
		p.projectProcessed()
	}

	hasEntries, err := arch.Jar.HasEntries()
	if err != nil {
		return nil, fmt.Errorf("error adding directory to source archive: %w", err)
	}
	if !hasEntries && !opts.ForceCreation {
		log.Info("No sources in project. Archive not created.")
		result.Skipped = SkippedNoSources
		return result, nil
	}

	cfg := opts.Archive
	if cfg.ManifestFile != "" {
		cfg.ManifestFile = p.Project.ResolvePath(cfg.ManifestFile)
	}
	if opts.UseDefaultManifestFile && cfg.ManifestFile == "" {
		defaultManifest := p.Project.ResolvePath(opts.DefaultManifestFile)
		if file.Exists(p.fs(), defaultManifest) {
			log.Infof("Adding existing MANIFEST to archive. Found under: %s", defaultManifest)
			cfg.ManifestFile = defaultManifest
		}
	}

	finalName := p.Project.Interpolate(opts.FinalName)
	arch.Output = filepath.Join(p.Project.ResolvePath(opts.OutputDirectory), finalName+"-"+classifier+".jar")
	arch.Forced = opts.ForceCreation

	log.Debugf("create archive %s", arch.Output)
	created, err := arch.CreateArchive(ctx, p.Project, cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating source archive: %w", err)
	}

	artifact := project.NewArtifact(p.Project.GroupID, p.Project.ArtifactID, p.Project.Version, classifier, project.JavaSourceType)
	result.Artifact = &artifact
	result.Path = created.Path
	result.Entries = created.Entries
	result.Size = created.Size
	result.UpToDate = created.UpToDate
	result.Created = !created.UpToDate

	if p.Monitor != nil {
		p.Monitor.EntriesAdded.N += int64(created.Entries)
		p.Monitor.ArchivesCreated.N++
	}
	log.Debugf("archive %s holds %d entries (%s)", created.Path, created.Entries, humanize.Bytes(uint64(created.Size)))
	bus.ArchiveCreated(p.Project.Key(), created.Path)

	if !opts.Attach {
		log.Info("NOT adding java-sources to attached artifacts list.")
		return result, nil
	}

	attached, err := p.attach(artifact, created.Path)
	if err != nil {
		return nil, err
	}
	result.Attached = attached
	return result, nil
}

func (p *Packager) projectProcessed() {
	if p.Monitor != nil {
		p.Monitor.ProjectsProcessed.N++
	}
}

// aggregatedProjects are the session projects at or below the current project.
func (p *Packager) aggregatedProjects() []*project.Project {
	var projects []*project.Project
	for _, candidate := range p.Session.Projects {
		rel, err := filepath.Rel(p.Project.Basedir, candidate.Basedir)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		projects = append(projects, candidate)
	}
	return projects
}

// attach registers the archive with the current project unless the very same file is already attached. An
// attachment of the same artifact to another file is an error.
func (p *Packager) attach(artifact project.Artifact, path string) (bool, error) {
	manager := p.Session.ProjectManager()
	requiresAttach := true
	for _, attached := range manager.AttachedArtifacts(p.Project) {
		if attached.Artifact.Key() != artifact.Key() {
			continue
		}
		attachedPath, ok := manager.ArtifactPath(attached.Artifact)
		if ok && attachedPath != path {
			log.Errorf("Artifact %s already attached to a file %s: attach to %s should be done with another classifier",
				attached.Artifact.Key(), p.Project.Relativize(attachedPath), p.Project.Relativize(path))
			return false, &srcjarerr.DuplicateAttachmentError{
				Key:           attached.Artifact.Key(),
				AttachedPath:  attachedPath,
				RequestedPath: path,
			}
		}
		requiresAttach = false
		log.Infof("Artifact %s already attached to %s: ignoring same re-attach (same artifact, same file)",
			attached.Artifact.Key(), p.Project.Relativize(path))
	}
	if !requiresAttach {
		return false, nil
	}

	if err := manager.AttachArtifact(p.Project, artifact, path); err != nil {
		return false, err
	}
	bus.ArtifactAttached(artifact.Key(), path)
	return true, nil
}

func (p *Packager) createArchiver(opts Options) (*archiver.Archiver, error) {
	arch := archiver.New(p.fs(), p.CreatedBy)
	if err := arch.SetOutputTimestamp(p.Project.Interpolate(opts.OutputTimestamp)); err != nil {
		return nil, err
	}

	for _, r := range p.Project.Build.Resources {
		if !strings.HasSuffix(filepath.ToSlash(r.Directory), sharedResourcesDir) {
			continue
		}
		if !file.IsDir(p.fs(), r.Directory) {
			log.Debugf("shared archive resources not found: %s", r.Directory)
			continue
		}
		if err := p.addDirectory(arch.Jar, r.Directory, "", combinedIncludes(opts, nil), combinedExcludes(opts, nil)); err != nil {
			return nil, err
		}
	}
	return arch, nil
}

func (p *Packager) archiveProjectContent(sub *project.Project, jar *archiver.JarArchiver, opts Options) error {
	if opts.IncludePom {
		if err := jar.AddFile(sub.PomPath, filepath.Base(sub.PomPath)); err != nil {
			return fmt.Errorf("error adding POM file to target jar file: %w", err)
		}
	}

	manager := p.Session.ProjectManager()
	scope := p.Goal.Scope()

	for _, root := range manager.CompileSourceRoots(sub, scope) {
		if !file.IsDir(p.fs(), root) {
			continue
		}
		if err := p.addDirectory(jar, root, "", combinedIncludes(opts, nil), combinedExcludes(opts, nil)); err != nil {
			return err
		}
	}

	if opts.ExcludeResources {
		return nil
	}

	for _, r := range manager.Resources(sub, scope) {
		if !file.IsDir(p.fs(), r.Directory) {
			continue
		}
		prefix := r.TargetPath
		if prefix != "" && !strings.HasSuffix(strings.TrimSpace(prefix), "/") {
			prefix += "/"
		}
		if err := p.addDirectory(jar, r.Directory, prefix, combinedIncludes(opts, r.Includes), combinedExcludes(opts, r.Excludes)); err != nil {
			return err
		}
	}
	return nil
}

func (p *Packager) addDirectory(jar *archiver.JarArchiver, dir, prefix string, includes, excludes []string) error {
	if prefix != "" {
		log.Debugf("add directory %s to archiver with prefix %s", dir, prefix)
	} else {
		log.Debugf("add directory %s to archiver", dir)
	}
	err := jar.AddFileSet(archiver.FileSet{
		Directory: dir,
		Prefix:    prefix,
		Includes:  includes,
		Excludes:  excludes,
	})
	if err != nil {
		return fmt.Errorf("error adding directory to source archive: %w", err)
	}
	return nil
}

// combinedIncludes are the configured includes plus the additional ones, or everything when both are empty.
func combinedIncludes(opts Options, additional []string) []string {
	var includes []string
	includes = append(includes, opts.Includes...)
	includes = append(includes, additional...)
	if len(includes) == 0 {
		includes = []string{"**/**"}
	}
	return includes
}

// combinedExcludes are the default excludes (when enabled), the configured excludes and the additional ones.
func combinedExcludes(opts Options, additional []string) []string {
	var excludes []string
	if opts.UseDefaultExcludes {
		excludes = append(excludes, archiver.DefaultExcludes()...)
	}
	excludes = append(excludes, opts.Excludes...)
	excludes = append(excludes, additional...)
	return excludes
}

// fs is the session filesystem, defaulting to the OS.
func (p *Packager) fs() afero.Fs {
	if p.Session.Fs == nil {
		return afero.NewOsFs()
	}
	return p.Session.Fs
}
