package gradleprops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopasspw/gopass/pkg/debug"
	"github.com/gopasspw/gopass/pkg/set"
)

// PropsFile is the well-known name of the Gradle properties file inside an
// Android platform directory.
const PropsFile = "gradle.properties"

// Editor manages the gradle.properties file of one Android platform
// directory.
//
// Editor lazily loads the file on first use, creating an empty one on disk
// when missing, merges the recommended defaults on Configure and persists
// changes on Save. Get, Set and Unset operate on the in-memory state only.
//
// Fields (can be changed before the first operation touches the file):
// - Defaults: Recommended key/value table merged by Configure
// - Notifier: Receives verbose and info notices (nil routes to the debug log)
// - NoWrites: If true, prevents all disk access (useful for tests)
//
// Note: Editor is not thread-safe and assumes it exclusively owns the target
// file within one process.
//
// Usage:
//
//	e := NewEditor("platforms/android")
//	if err := e.Configure(); err != nil { ... }
//	v, ok, err := e.Get("cdvMinSdkVersion")
type Editor struct {
	path string
	file *File

	Defaults []Default
	Notifier Notifier
	NoWrites bool
}

// NewEditor creates a new Editor for the given platform directory. The
// target file path is fixed to <platformDir>/gradle.properties and never
// changes. No disk access happens until the first operation.
func NewEditor(platformDir string) *Editor {
	return &Editor{
		path:     filepath.Join(platformDir, PropsFile),
		Defaults: Recommended,
	}
}

// Path returns the fixed target file path of this editor.
func (e *Editor) Path() string {
	return e.path
}

func (e *Editor) notifier() Notifier {
	if e.Notifier != nil {
		return e.Notifier
	}

	return debugNotifier{}
}

// load initializes the in-memory file on first use. The file is loaded at
// most once per Editor; all subsequent operations reuse it.
func (e *Editor) load() (*File, error) {
	if e.file != nil {
		return e.file, nil
	}

	if e.NoWrites {
		debug.V(1).Log("noWrites set, using empty in-memory file for %q", e.path)

		e.file = &File{path: e.path, noWrites: true, vars: make(map[string]string, 16)}

		return e.file, nil
	}

	if _, err := os.Stat(e.path); os.IsNotExist(err) {
		e.notifier().Verbosef("File missing, creating file: %s", e.path)

		if err := e.create(); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat %q: %w", e.path, err)
	}

	f, err := LoadProps(e.path)
	if err != nil {
		return nil, fmt.Errorf("failed to load properties from %q: %w", e.path, err)
	}
	e.file = f

	debug.V(1).Log("loaded %d properties from %q", len(f.vars), e.path)

	return f, nil
}

// create writes an empty properties file at the target path.
func (e *Editor) create() error {
	if err := os.MkdirAll(filepath.Dir(e.path), 0o700); err != nil {
		return fmt.Errorf("%w %q for %q: %w", ErrCreateDir, filepath.Dir(e.path), e.path, err)
	}

	if err := os.WriteFile(e.path, nil, 0o600); err != nil {
		return fmt.Errorf("%w %s: %w", ErrWriteFile, e.path, err)
	}

	return nil
}

// Configure merges the recommended defaults into the file and persists it.
//
// For each entry of the Defaults table, in table order:
// - absent or empty value: the default is applied (verbose notice)
// - differing value: an info advisory is emitted, the value is kept
// - matching value: no action, no notice
//
// Configure is idempotent: a second call applies no further defaults,
// though drift advisories repeat.
func (e *Editor) Configure() error {
	f, err := e.load()
	if err != nil {
		return err
	}

	for _, d := range e.Defaults {
		cur, ok := f.Get(d.Key)
		if !ok || cur == "" {
			if err := f.Set(d.Key, d.Value); err != nil {
				return err
			}
			e.notifier().Verbosef("Appending configuration item: %s=%s", d.Key, d.Value)

			continue
		}
		if cur != d.Value {
			e.notifier().Infof("Detected Gradle property %q with the value of %q, the recommended value is %q", d.Key, cur, d.Value)
		}
	}

	return e.Save()
}

// Get returns the current value of the key, with ok reporting whether the
// key is present. The error is non-nil only when the lazy first load fails.
func (e *Editor) Get(key string) (string, bool, error) {
	f, err := e.load()
	if err != nil {
		return "", false, err
	}

	v, ok := f.Get(key)

	return v, ok, nil
}

// IsSet reports whether the key is present, even with an empty value.
func (e *Editor) IsSet(key string) (bool, error) {
	f, err := e.load()
	if err != nil {
		return false, err
	}

	return f.IsSet(key), nil
}

// Set associates value with key in the in-memory state. Changes are not
// persisted until Save is called.
func (e *Editor) Set(key, value string) error {
	f, err := e.load()
	if err != nil {
		return err
	}

	return f.Set(key, value)
}

// SetWithComment is like Set and additionally attaches a comment line
// directly above the entry for inclusion when the file is next saved.
func (e *Editor) SetWithComment(key, value, comment string) error {
	f, err := e.load()
	if err != nil {
		return err
	}

	return f.SetWithComment(key, value, comment)
}

// Unset removes the key from the in-memory state. Removing an absent key is
// a no-op. Changes are not persisted until Save is called.
func (e *Editor) Unset(key string) error {
	f, err := e.load()
	if err != nil {
		return err
	}

	return f.Unset(key)
}

// Save writes the full current in-memory state back to the target path,
// overwriting prior content.
func (e *Editor) Save() error {
	f, err := e.load()
	if err != nil {
		return err
	}

	e.notifier().Verbosef("Updating and saving file: %s", e.path)

	return f.Write()
}

// Keys returns a sorted list of all keys in the file.
func (e *Editor) Keys() ([]string, error) {
	f, err := e.load()
	if err != nil {
		return nil, err
	}

	return f.Keys(), nil
}

// List returns all keys matching the given prefix. The prefix can be empty,
// then this is identical to Keys().
func (e *Editor) List(prefix string) ([]string, error) {
	f, err := e.load()
	if err != nil {
		return nil, err
	}

	return set.SortedFiltered(f.Keys(), func(k string) bool {
		return strings.HasPrefix(k, prefix)
	}), nil
}

// Matching returns all keys matching the given glob pattern, e.g. "cdv*"
// or "org.gradle.*".
func (e *Editor) Matching(pattern string) ([]string, error) {
	f, err := e.load()
	if err != nil {
		return nil, err
	}

	keys := f.Keys()
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		match, err := globMatch(pattern, k)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if match {
			out = append(out, k)
		}
	}

	return out, nil
}
