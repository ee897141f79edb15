package archiver

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

const (
	manifestPath      = "META-INF/MANIFEST.MF"
	manifestLineLimit = 72
)

// Attributes is an ordered set of manifest headers. Header names are case-insensitive.
type Attributes struct {
	names  []string
	values map[string]string
}

func (a *Attributes) key(name string) string {
	return strings.ToLower(name)
}

// Set adds the header, or replaces the value of an existing header while keeping its position and spelling.
func (a *Attributes) Set(name, value string) {
	if a.values == nil {
		a.values = make(map[string]string)
	}
	k := a.key(name)
	if _, ok := a.values[k]; !ok {
		a.names = append(a.names, name)
	}
	a.values[k] = value
}

func (a *Attributes) Get(name string) (string, bool) {
	v, ok := a.values[a.key(name)]
	return v, ok
}

func (a *Attributes) Remove(name string) {
	k := a.key(name)
	if _, ok := a.values[k]; !ok {
		return
	}
	delete(a.values, k)
	for i, n := range a.names {
		if a.key(n) == k {
			a.names = append(a.names[:i], a.names[i+1:]...)
			break
		}
	}
}

// Names returns the header names in insertion order.
func (a *Attributes) Names() []string {
	return append([]string(nil), a.names...)
}

func (a *Attributes) Len() int {
	return len(a.names)
}

// merge copies every header of other into a, other wins.
func (a *Attributes) merge(other Attributes) {
	for _, n := range other.names {
		v, _ := other.Get(n)
		a.Set(n, v)
	}
}

// Section is a named manifest section (per-entry attributes).
type Section struct {
	Name       string
	Attributes Attributes
}

// Manifest is a jar manifest: the main attributes followed by named sections.
type Manifest struct {
	Main     Attributes
	Sections []Section
}

// NewManifest returns a manifest holding only the manifest version.
func NewManifest() *Manifest {
	m := &Manifest{}
	m.Main.Set("Manifest-Version", "1.0")
	return m
}

// Section returns the named section, creating it when missing.
func (m *Manifest) Section(name string) *Attributes {
	for i := range m.Sections {
		if m.Sections[i].Name == name {
			return &m.Sections[i].Attributes
		}
	}
	m.Sections = append(m.Sections, Section{Name: name})
	return &m.Sections[len(m.Sections)-1].Attributes
}

// Merge overlays other onto m: main attributes and same-named sections are merged, other wins.
func (m *Manifest) Merge(other *Manifest) {
	if other == nil {
		return
	}
	m.Main.merge(other.Main)
	for _, s := range other.Sections {
		m.Section(s.Name).merge(s.Attributes)
	}
}

// ParseManifest reads a manifest. Lines may end with CRLF, LF or CR; a line starting with a single space continues
// the previous header; sections are separated by blank lines and every section after the main one starts with a
// Name header.
func ParseManifest(r io.Reader) (*Manifest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read manifest: %w", err)
	}
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	data = bytes.ReplaceAll(data, []byte("\r"), []byte("\n"))

	m := &Manifest{}
	current := &m.Main
	inMain := true
	sectionStarted := false

	var name, value string
	pending := false
	flush := func() error {
		if !pending {
			return nil
		}
		pending = false
		if !inMain && !sectionStarted {
			if !strings.EqualFold(name, "Name") {
				return fmt.Errorf("manifest section does not start with a Name header: %q", name)
			}
			current = m.Section(value)
			sectionStarted = true
			return nil
		}
		current.Set(name, value)
		return nil
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		switch {
		case line == "":
			if err := flush(); err != nil {
				return nil, err
			}
			inMain = false
			sectionStarted = false
		case strings.HasPrefix(line, " "):
			if !pending {
				return nil, fmt.Errorf("manifest line %d: continuation without header", lineNo)
			}
			value += line[1:]
		default:
			if err := flush(); err != nil {
				return nil, err
			}
			idx := strings.Index(line, ": ")
			if idx <= 0 {
				return nil, fmt.Errorf("manifest line %d: invalid header %q", lineNo, line)
			}
			name, value = line[:idx], line[idx+2:]
			pending = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("unable to read manifest: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return m, nil
}

// Write renders the manifest: CRLF line endings, lines of at most 72 bytes (continuations start with a space), and a
// blank line after every section. Manifest-Version always comes first.
func (m *Manifest) Write(w io.Writer) error {
	var buf bytes.Buffer

	if v, ok := m.Main.Get("Manifest-Version"); ok {
		writeHeader(&buf, "Manifest-Version", v)
	}
	for _, n := range m.Main.names {
		if strings.EqualFold(n, "Manifest-Version") {
			continue
		}
		v, _ := m.Main.Get(n)
		writeHeader(&buf, n, v)
	}
	buf.WriteString("\r\n")

	for _, s := range m.Sections {
		writeHeader(&buf, "Name", s.Name)
		for _, n := range s.Attributes.names {
			v, _ := s.Attributes.Get(n)
			writeHeader(&buf, n, v)
		}
		buf.WriteString("\r\n")
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// Bytes renders the manifest into memory.
func (m *Manifest) Bytes() []byte {
	var buf bytes.Buffer
	_ = m.Write(&buf)
	return buf.Bytes()
}

func writeHeader(buf *bytes.Buffer, name, value string) {
	line := name + ": " + value
	limit := manifestLineLimit
	for len(line) > limit {
		cut := limit
		// never split a multi-byte character
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		buf.WriteString(line[:cut])
		buf.WriteString("\r\n ")
		line = line[cut:]
		limit = manifestLineLimit - 1
	}
	buf.WriteString(line)
	buf.WriteString("\r\n")
}
