package gradleprops

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopasspw/gopass/pkg/debug"
	"github.com/gopasspw/gopass/pkg/set"
)

// File represents a single Java-properties file.
//
// File handles reading and writing a properties file while preserving
// the original formatting (comments, blank lines, key order, separators).
//
// Fields:
// - path: File path of this properties file
// - readonly: If true, prevents any modifications (even in-memory)
// - noWrites: If true, prevents persisting changes to disk (useful for tests)
// - raw: Maintains the raw text representation for round-trip fidelity
// - vars: Map of keys to their current values
//
// Note: File is not thread-safe. Concurrent access from multiple goroutines
// is not supported. Callers must provide synchronization if needed.
//
// Typical Usage:
//
//	f, err := LoadProps("platforms/android/gradle.properties")
//	if err != nil { ... }
//	value, ok := f.Get("org.gradle.jvmargs")
//	if err := f.Set("org.gradle.daemon", "true"); err != nil { ... }
//	if err := f.Write(); err != nil { ... }
type File struct {
	path     string
	readonly bool // do not allow modifying values (even in memory)
	noWrites bool // do not persist changes to disk (e.g. for tests)
	raw      strings.Builder
	vars     map[string]string
}

// IsEmpty returns true if the file has no content loaded.
//
// An empty file is one that:
// - Is nil
// - Has no variables loaded
// - Has no raw content
//
// This is used to distinguish between "not yet loaded" and "loaded but empty file".
func (f *File) IsEmpty() bool {
	if f == nil || f.vars == nil {
		return true
	}

	if f.raw.Len() > 0 {
		return false
	}

	return true
}

// Get returns the value of the key.
//
// A properties file may contain the same key on multiple lines. Following
// java.util.Properties semantics the last occurrence wins.
//
// Returns (value, true) if the key is found, ("", false) otherwise.
//
// Example:
//
//	v, ok := f.Get("cdvMinSdkVersion")
//	if ok {
//	  fmt.Printf("minSdkVersion: %s\n", v)
//	}
func (f *File) Get(key string) (string, bool) {
	v, found := f.vars[key]

	return v, found
}

// IsSet returns true if the key is present in this file.
//
// Returns true even if the value is an empty string (unlike checking Get with ok).
func (f *File) IsSet(key string) bool {
	_, present := f.vars[key]

	return present
}

// Keys returns a sorted list of all keys in this file.
func (f *File) Keys() []string {
	keys := make([]string, 0, len(f.vars))
	for k := range f.vars {
		keys = append(keys, k)
	}

	return set.Sorted(keys)
}

// Set updates or adds a key in the file.
//
// Behavior:
// - If the key exists, every occurrence is rewritten in place
// - If the key doesn't exist, it's appended at the end of the file
// - Original formatting (comments, blank lines, untouched keys) is preserved
// - Changes are in-memory only; call Write to persist them
//
// Errors:
// - Returns ErrInvalidKey if the key is empty or blank
//
// Readonly files silently ignore the set operation.
//
// Example:
//
//	if err := f.Set("cdvMinSdkVersion", "21"); err != nil {
//	  log.Fatal(err)
//	}
func (f *File) Set(key, value string) error {
	return f.set(key, value, "", false)
}

// SetWithComment updates or adds a key and places a comment line directly
// above its entry.
//
// For an existing key the comment line directly above the entry is replaced
// when present, inserted otherwise. A previously attached comment is
// preserved when the key is set again through Set without a new comment.
func (f *File) SetWithComment(key, value, comment string) error {
	return f.set(key, value, comment, true)
}

func (f *File) set(key, value, comment string, withComment bool) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	if f.readonly {
		debug.Log("can not write to a readonly file")

		return nil
	}

	if f.vars == nil {
		f.vars = make(map[string]string, 16)
	}

	cur, present := f.vars[key]
	if present && cur == value && !withComment {
		debug.V(1).Log("key %q with value %q already present. Not re-writing.", key, value)

		return nil
	}

	f.vars[key] = value

	if !present {
		debug.V(3).Log("appending %q = %q", key, value)
		f.appendEntry(key, value, comment)

		return nil
	}

	debug.V(3).Log("updating %q to %q", key, value)
	f.updateEntry(key, value, comment, withComment)

	return nil
}

// Unset deletes a key from the file.
//
// Behavior:
// - If the key exists, every occurrence is removed from vars and the raw text
// - If the key doesn't exist, this is a no-op (no error)
// - Changes are in-memory only; call Write to persist them
// - Readonly files silently ignore the unset operation
//
// Example:
//
//	if err := f.Unset("cdvBuildToolsVersion"); err != nil {
//	  log.Fatal(err)
//	}
func (f *File) Unset(key string) error {
	if f.readonly {
		return nil
	}

	_, present := f.vars[key]
	if !present {
		return nil
	}

	delete(f.vars, key)

	f.rewriteRaw(func(k, _, entry string) (string, bool) {
		if k == key {
			return "", true
		}

		return entry, false
	})

	return nil
}

// appendEntry adds a new entry (with an optional comment line above it) at
// the end of the raw text.
func (f *File) appendEntry(key, value, comment string) {
	raw := f.raw.String()

	f.raw = strings.Builder{}
	f.raw.WriteString(raw)
	if raw != "" && !strings.HasSuffix(raw, "\n") {
		f.raw.WriteString("\n")
	}
	if comment != "" {
		f.raw.WriteString(formatComment(comment))
		f.raw.WriteString("\n")
	}
	f.raw.WriteString(formatKeyValue(key, value))
	f.raw.WriteString("\n")
}

// updateEntry rewrites every occurrence of key in the raw text. A continued
// (backslash-wrapped) entry collapses to a single physical line. When a new
// comment is supplied the comment line directly above the entry is replaced,
// or inserted if there is none.
func (f *File) updateEntry(key, value, comment string, withComment bool) {
	debug.V(3).Log("input (%s: %s): \n--------------\n%s\n--------------\n", key, value, f.raw.String())

	s := bufio.NewScanner(strings.NewReader(f.raw.String()))

	lines := make([]string, 0, 128)
	for s.Scan() {
		fullLine := s.Text()

		lines = append(lines, fullLine)

		trimmed := strings.TrimLeft(fullLine, " \t\f")
		if trimmed == "" || isComment(trimmed) {
			continue
		}

		logical := trimmed
		n := 1
		for hasContinuation(logical) {
			logical = logical[:len(logical)-1]
			if !s.Scan() {
				break
			}
			next := s.Text()
			lines = append(lines, next)
			n++
			logical += strings.TrimLeft(next, " \t\f")
		}

		k, _ := splitKeyValue(logical)
		if k != key {
			continue
		}

		lines = append(lines[:len(lines)-n], formatKeyValue(key, value))

		if !withComment || comment == "" {
			continue
		}

		c := formatComment(comment)
		if i := len(lines) - 2; i >= 0 && isComment(strings.TrimLeft(lines[i], " \t\f")) {
			lines[i] = c

			continue
		}
		lines = append(lines[:len(lines)-1], c, formatKeyValue(key, value))
	}

	f.raw = strings.Builder{}
	f.raw.WriteString(strings.Join(lines, "\n"))
	if len(lines) > 0 {
		f.raw.WriteString("\n")
	}

	debug.V(3).Log("output: \n--------------\n%s\n--------------\n", f.raw.String())
}

// rewriteRaw is used to rewrite the raw text copy. It is used for unset and
// load operations with different callbacks each.
func (f *File) rewriteRaw(cb parseFunc) {
	debug.V(3).Log("input: \n--------------\n%s\n--------------\n", f.raw.String())

	lines := parseProps(strings.NewReader(f.raw.String()), cb)

	f.raw = strings.Builder{}
	f.raw.WriteString(strings.Join(lines, "\n"))
	if len(lines) > 0 {
		f.raw.WriteString("\n")
	}

	debug.V(3).Log("output: \n--------------\n%s\n--------------\n", f.raw.String())
}

// Write persists the full current in-memory state back to the file path,
// overwriting prior content.
func (f *File) Write() error {
	return f.flushRaw()
}

func (f *File) flushRaw() error {
	if f.noWrites || f.path == "" {
		debug.V(3).Log("not writing changes to disk (noWrites %t, path %q)", f.noWrites, f.path)

		return nil
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("%w %q for %q: %w", ErrCreateDir, filepath.Dir(f.path), f.path, err)
	}

	debug.V(3).Log("writing properties to %s: \n--------------\n%s\n--------------", f.path, f.raw.String())

	if err := os.WriteFile(f.path, []byte(f.raw.String()), 0o600); err != nil {
		return fmt.Errorf("%w %s: %w", ErrWriteFile, f.path, err)
	}

	debug.V(1).Log("wrote properties to %s", f.path)

	return nil
}

type parseFunc func(key, value, entry string) (newEntry string, skipEntry bool)

// parseProps implements a line parser for the Java properties format. The
// idea is to save all physical lines unaltered so we can reproduce the file
// exactly. Comments and blank lines are kept as-is. For every logical line
// (following backslash continuations) the key and value are decoded and
// handed to the callback, which either keeps the entry verbatim, replaces it
// with a new single line, or drops it.
func parseProps(in io.Reader, cb parseFunc) []string {
	s := bufio.NewScanner(in)

	lines := make([]string, 0, 128)
	for s.Scan() {
		fullLine := s.Text()

		lines = append(lines, fullLine)

		trimmed := strings.TrimLeft(fullLine, " \t\f")
		if trimmed == "" || isComment(trimmed) {
			continue
		}

		// collect the full logical line, following backslash continuations.
		// "a natural line that contains only white space characters is
		// considered blank and is ignored" applies to the continuation's
		// leading whitespace as well.
		logical := trimmed
		n := 1
		for hasContinuation(logical) {
			logical = logical[:len(logical)-1]
			if !s.Scan() {
				break
			}
			next := s.Text()
			lines = append(lines, next)
			n++
			logical += strings.TrimLeft(next, " \t\f")
		}

		key, value := splitKeyValue(logical)
		if key == "" {
			debug.V(3).Log("no valid key on line: %q", logical)

			continue
		}

		entry := strings.Join(lines[len(lines)-n:], "\n")

		newEntry, skip := cb(key, value, entry)
		if skip {
			lines = lines[:len(lines)-n]

			continue
		}
		if newEntry == entry {
			continue
		}
		lines = append(lines[:len(lines)-n], newEntry)
	}

	return lines
}

var keyValueTpl = "%s=%s"

func formatKeyValue(key, value string) string {
	return fmt.Sprintf(keyValueTpl, escapeKey(key), escapeValue(value))
}

func formatComment(comment string) string {
	if isComment(comment) {
		return comment
	}

	return "# " + comment
}

// NewFromMap allows creating a new preset file from a map.
func NewFromMap(data map[string]string) *File {
	f := &File{
		readonly: true,
		vars:     make(map[string]string, len(data)),
	}

	for k, v := range data {
		f.vars[k] = v
	}

	return f
}

// ParseProps will try to parse a properties file from the given io.Reader.
// It never fails. Lines without a valid key are preserved verbatim but do
// not contribute a value.
func ParseProps(r io.Reader) *File {
	f := &File{
		vars: make(map[string]string, 16),
	}

	lines := parseProps(r, func(key, value, entry string) (string, bool) {
		f.vars[key] = value

		return entry, false
	})

	f.raw.WriteString(strings.Join(lines, "\n"))
	if len(lines) > 0 {
		f.raw.WriteString("\n")
	}

	debug.V(3).Log("processed properties: %s\nvars: %+v", f.raw.String(), f.vars)

	return f
}

// LoadProps tries to load a properties file from the given path.
func LoadProps(fn string) (*File, error) {
	fh, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer fh.Close() //nolint:errcheck

	f := ParseProps(fh)
	f.path = fn

	return f, nil
}
