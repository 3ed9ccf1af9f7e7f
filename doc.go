// Package gradleprops edits the gradle.properties file of an Android
// platform directory. It ensures the file exists, applies a set of
// recommended default key/value pairs when missing, warns when existing
// values diverge from the recommendations and exposes generic get/set
// accessors for arbitrary keys.
//
// The file format is the Java properties format: key=value (or key: value,
// or key value) lines, '#'/'!' comment lines, blank lines, backslash line
// continuations and the usual escape sequences. When writing we preserve
// comments, blank lines, key order and untouched entries byte-for-byte;
// only the specific entries that were modified are rewritten.
//
// # Usage
//
// Create an Editor for a platform directory and let Configure seed the
// recommended defaults:
//
//	e := gradleprops.NewEditor("platforms/android")
//	if err := e.Configure(); err != nil {
//		log.Fatal(err)
//	}
//
// Read and modify individual keys. Mutations stay in memory until Save:
//
//	v, ok, err := e.Get("cdvMinSdkVersion")
//	if err := e.Set("cdvMinSdkVersion", "21"); err != nil { ... }
//	if err := e.SetWithComment("org.gradle.jvmargs", "-Xmx4g", "bumped for R8"); err != nil { ... }
//	if err := e.Unset("cdvBuildToolsVersion"); err != nil { ... }
//	if err := e.Save(); err != nil { ... }
//
// # Customization
//
// The recommended table and the notice sink can be replaced before the
// first operation touches the file:
//
//	e := gradleprops.NewEditor(dir)
//	e.Defaults = []gradleprops.Default{{Key: "org.gradle.caching", Value: "true"}}
//	e.Notifier = myNotifier
//	e.NoWrites = true // for tests
//
// Notices come in two severities: verbose (internal operational detail such
// as file creation, defaults applied and save actions) and info (advisories
// about configuration drift from the recommended values). Without a
// Notifier they go to the debug log.
//
// # Error Handling
//
// Filesystem errors propagate synchronously to the caller of the operation
// that triggered them; there is no internal recovery or retry. Use errors.Is
// to detect common categories:
//
//	if err := e.Set("", "x"); errors.Is(err, gradleprops.ErrInvalidKey) {
//		// handle invalid key
//	}
//
// Missing keys are not errors: Get returns ok == false. Malformed lines are
// preserved verbatim on write but contribute no value.
//
// # Known limitations
//
// * Values are written as UTF-8; non-Latin-1 runes are not \uXXXX encoded
// * A rewritten backslash-continued entry collapses to a single line
// * No file locking; one Editor instance owns one file within one process
package gradleprops
