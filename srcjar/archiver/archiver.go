package archiver

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/scylladb/go-set/strset"
	"github.com/spf13/afero"

	"github.com/anchore/srcjar/internal/file"
	"github.com/anchore/srcjar/internal/log"
	"github.com/anchore/srcjar/srcjar/project"
)

const (
	normalizedFileMode os.FileMode = 0644
	normalizedDirMode  os.FileMode = 0755
)

// ManifestConfiguration selects the generated manifest headers.
type ManifestConfiguration struct {
	AddDefaultEntries               bool `yaml:"add-default-entries" json:"add-default-entries" mapstructure:"add-default-entries"`
	AddDefaultImplementationEntries bool `yaml:"add-default-implementation-entries" json:"add-default-implementation-entries" mapstructure:"add-default-implementation-entries"`
	AddDefaultSpecificationEntries  bool `yaml:"add-default-specification-entries" json:"add-default-specification-entries" mapstructure:"add-default-specification-entries"`
}

// Configuration describes the archive metadata: manifest and maven descriptor.
type Configuration struct {
	AddMavenDescriptor bool                  `yaml:"add-maven-descriptor" json:"add-maven-descriptor" mapstructure:"add-maven-descriptor"`
	ManifestFile       string                `yaml:"manifest-file" json:"manifest-file" mapstructure:"manifest-file"`
	Manifest           ManifestConfiguration `yaml:"manifest" json:"manifest" mapstructure:"manifest"`
	ManifestEntries    map[string]string     `yaml:"manifest-entries" json:"manifest-entries" mapstructure:"manifest-entries"`
}

// DefaultConfiguration adds the maven descriptor and the default manifest entries.
func DefaultConfiguration() Configuration {
	return Configuration{
		AddMavenDescriptor: true,
		Manifest: ManifestConfiguration{
			AddDefaultEntries: true,
		},
	}
}

// Result describes a created (or already up to date) archive.
type Result struct {
	Path     string
	Entries  int
	Size     int64
	UpToDate bool
}

// Archiver writes the content collected by a JarArchiver to a jar together with its manifest and the maven
// descriptor of the project.
type Archiver struct {
	Fs  afero.Fs
	Jar *JarArchiver
	// CreatedBy is written as the Created-By manifest header.
	CreatedBy string
	Output    string
	// Forced archives are always rewritten, even when up to date.
	Forced bool
	// Timestamp, when set, makes the archive reproducible: every entry gets this time and normalized permissions.
	Timestamp *time.Time

	now time.Time
}

func New(fs afero.Fs, createdBy string) *Archiver {
	return &Archiver{
		Fs:        fs,
		Jar:       NewJarArchiver(fs),
		CreatedBy: createdBy,
	}
}

// SetOutputTimestamp configures the reproducible build timestamp (see ParseOutputTimestamp).
func (a *Archiver) SetOutputTimestamp(value string) error {
	ts, err := ParseOutputTimestamp(value)
	if err != nil {
		return err
	}
	a.Timestamp = ts
	return nil
}

// CreateArchive writes the archive for the given project to the configured output.
func (a *Archiver) CreateArchive(ctx context.Context, p *project.Project, cfg Configuration) (*Result, error) {
	if a.Output == "" {
		return nil, fmt.Errorf("no output file configured")
	}
	a.now = time.Now()

	content, err := a.Jar.Entries()
	if err != nil {
		return nil, err
	}

	manifest, err := a.manifest(p, cfg)
	if err != nil {
		return nil, err
	}

	entries := []Entry{
		{Name: "META-INF/"},
		{Name: manifestPath, content: manifest.Bytes()},
	}
	entries = append(entries, content...)

	if cfg.AddMavenDescriptor {
		descriptor, err := descriptorEntries(a.Fs, p)
		if err != nil {
			return nil, err
		}
		entries = append(entries, descriptor...)
	}
	entries = dedupe(entries)

	inputs := sourceFiles(entries)
	if cfg.ManifestFile != "" {
		inputs = append(inputs, cfg.ManifestFile)
	}
	if !a.Forced {
		if info, ok := a.upToDate(inputs); ok {
			log.Debugf("archive is up to date: %s", a.Output)
			return &Result{Path: a.Output, Entries: len(entries), Size: info.Size(), UpToDate: true}, nil
		}
	}

	if err := a.write(ctx, entries); err != nil {
		return nil, err
	}

	info, err := a.Fs.Stat(a.Output)
	if err != nil {
		return nil, fmt.Errorf("unable to stat archive: %w", err)
	}
	return &Result{Path: a.Output, Entries: len(entries), Size: info.Size()}, nil
}

func (a *Archiver) manifest(p *project.Project, cfg Configuration) (*Manifest, error) {
	m := NewManifest()
	if cfg.Manifest.AddDefaultEntries && a.CreatedBy != "" {
		m.Main.Set("Created-By", a.CreatedBy)
	}
	if cfg.Manifest.AddDefaultSpecificationEntries {
		m.Main.Set("Specification-Title", title(p))
		m.Main.Set("Specification-Version", p.Version)
	}
	if cfg.Manifest.AddDefaultImplementationEntries {
		m.Main.Set("Implementation-Title", title(p))
		m.Main.Set("Implementation-Version", p.Version)
	}

	if cfg.ManifestFile != "" {
		f, err := a.Fs.Open(cfg.ManifestFile)
		if err != nil {
			return nil, fmt.Errorf("unable to open manifest file: %w", err)
		}
		defer log.CloseAndLogError(f, cfg.ManifestFile)

		existing, err := ParseManifest(f)
		if err != nil {
			return nil, fmt.Errorf("unable to parse manifest file %s: %w", cfg.ManifestFile, err)
		}
		m.Merge(existing)
	}

	names := make([]string, 0, len(cfg.ManifestEntries))
	for n := range cfg.ManifestEntries {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		if v := cfg.ManifestEntries[n]; v != "" {
			m.Main.Set(n, v)
		} else {
			m.Main.Remove(n)
		}
	}
	return m, nil
}

func title(p *project.Project) string {
	if p.Name != "" {
		return p.Name
	}
	return p.ArtifactID
}

func dedupe(entries []Entry) []Entry {
	seen := strset.New()
	var result []Entry
	for _, e := range entries {
		if seen.Has(e.Name) {
			continue
		}
		seen.Add(e.Name)
		result = append(result, e)
	}
	return result
}

func sourceFiles(entries []Entry) []string {
	var files []string
	for _, e := range entries {
		if e.Source != "" {
			files = append(files, e.Source)
		}
	}
	return files
}

// upToDate reports whether the output exists and is not older than any of the inputs.
func (a *Archiver) upToDate(inputs []string) (os.FileInfo, bool) {
	out, err := a.Fs.Stat(a.Output)
	if err != nil || out.IsDir() {
		return nil, false
	}
	for _, in := range inputs {
		info, err := a.Fs.Stat(in)
		if err != nil || info.ModTime().After(out.ModTime()) {
			return nil, false
		}
	}
	return out, true
}

func (a *Archiver) write(ctx context.Context, entries []Entry) (err error) {
	if err := a.Fs.MkdirAll(filepath.Dir(a.Output), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	pending, err := file.NewPendingFile(a.Fs, a.Output, normalizedFileMode)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if discardErr := pending.Discard(); discardErr != nil {
				log.Debugf("unable to discard pending archive %s: %+v", a.Output, discardErr)
			}
		}
	}()

	zw := zip.NewWriter(pending)
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := a.writeEntry(zw, e); err != nil {
			return fmt.Errorf("unable to write entry %s: %w", e.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("unable to finish archive: %w", err)
	}
	return pending.Commit()
}

func (a *Archiver) writeEntry(zw *zip.Writer, e Entry) error {
	modTime := e.ModTime
	if modTime.IsZero() {
		modTime = a.now
	}
	perm := e.Mode.Perm()

	if a.Timestamp != nil {
		modTime = *a.Timestamp
		perm = normalizedFileMode
		if e.IsDir() {
			perm = normalizedDirMode
		}
	} else if perm == 0 {
		perm = normalizedFileMode
		if e.IsDir() {
			perm = normalizedDirMode
		}
	}

	header := &zip.FileHeader{
		Name:     e.Name,
		Modified: modTime,
		Method:   zip.Deflate,
	}
	if e.IsDir() {
		header.Method = zip.Store
		header.SetMode(os.ModeDir | perm)
	} else {
		header.SetMode(perm)
	}

	w, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}
	if e.IsDir() {
		return nil
	}
	if e.content != nil {
		_, err = w.Write(e.content)
		return err
	}

	f, err := a.Fs.Open(e.Source)
	if err != nil {
		return err
	}
	defer log.CloseAndLogError(f, e.Source)
	_, err = io.Copy(w, f)
	return err
}
