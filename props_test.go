package gradleprops

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProps(t *testing.T) {
	t.Parallel()

	in := `# Generated defaults
org.gradle.daemon=true
org.gradle.jvmargs = -Xmx2048m
cdvMinSdkVersion: 19
cdvCompileSdkVersion 28
! bang comment
android.useDeprecatedNdk=true
`
	f := ParseProps(strings.NewReader(in))
	require.NotNil(t, f)

	for key, want := range map[string]string{
		"org.gradle.daemon":        "true",
		"org.gradle.jvmargs":       "-Xmx2048m",
		"cdvMinSdkVersion":         "19",
		"cdvCompileSdkVersion":     "28",
		"android.useDeprecatedNdk": "true",
	} {
		v, ok := f.Get(key)
		assert.True(t, ok, key)
		assert.Equal(t, want, v, key)
	}

	_, ok := f.Get("missing")
	assert.False(t, ok)
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	in := `# Project-wide Gradle settings.

org.gradle.daemon=true
org.gradle.jvmargs = -Xmx2048m

! touched by hand, do not regenerate
cdvMinSdkVersion: 19
`
	f := ParseProps(strings.NewReader(in))

	assert.Equal(t, in, f.raw.String())
}

func TestRoundTripEmpty(t *testing.T) {
	t.Parallel()

	f := ParseProps(strings.NewReader(""))

	assert.Equal(t, "", f.raw.String())
	assert.True(t, f.IsEmpty())
}

func TestRoundTripContinuation(t *testing.T) {
	t.Parallel()

	in := `org.gradle.jvmargs=-Xmx2048m \
    -Dfile.encoding=UTF-8
cdvMinSdkVersion=19
`
	f := ParseProps(strings.NewReader(in))

	v, ok := f.Get("org.gradle.jvmargs")
	assert.True(t, ok)
	assert.Equal(t, "-Xmx2048m -Dfile.encoding=UTF-8", v)

	// untouched continuation lines survive verbatim
	assert.Equal(t, in, f.raw.String())
}

func TestSetUpdatesInPlace(t *testing.T) {
	t.Parallel()

	in := `# defaults
org.gradle.daemon=true
cdvMinSdkVersion=19
`
	f := ParseProps(strings.NewReader(in))
	f.noWrites = true

	require.NoError(t, f.Set("cdvMinSdkVersion", "21"))
	assert.Equal(t, `# defaults
org.gradle.daemon=true
cdvMinSdkVersion=21
`, f.raw.String())

	v, ok := f.Get("cdvMinSdkVersion")
	assert.True(t, ok)
	assert.Equal(t, "21", v)
}

func TestSetSameValueKeepsFormatting(t *testing.T) {
	t.Parallel()

	in := `org.gradle.jvmargs = -Xmx2048m
`
	f := ParseProps(strings.NewReader(in))
	f.noWrites = true

	// no rewrite, the original spacing stays
	require.NoError(t, f.Set("org.gradle.jvmargs", "-Xmx2048m"))
	assert.Equal(t, in, f.raw.String())
}

func TestSetAppends(t *testing.T) {
	t.Parallel()

	f := ParseProps(strings.NewReader("org.gradle.daemon=true\n"))
	f.noWrites = true

	require.NoError(t, f.Set("cdvMinSdkVersion", "19"))
	assert.Equal(t, `org.gradle.daemon=true
cdvMinSdkVersion=19
`, f.raw.String())
}

func TestSetOnEmptyFile(t *testing.T) {
	t.Parallel()

	f := ParseProps(strings.NewReader(""))
	f.noWrites = true

	require.NoError(t, f.Set("foo", "bar"))
	assert.Equal(t, "foo=bar\n", f.raw.String())
}

func TestSetCollapsesContinuation(t *testing.T) {
	t.Parallel()

	in := `org.gradle.jvmargs=-Xmx2048m \
    -Dfile.encoding=UTF-8
cdvMinSdkVersion=19
`
	f := ParseProps(strings.NewReader(in))
	f.noWrites = true

	require.NoError(t, f.Set("org.gradle.jvmargs", "-Xmx4g"))
	assert.Equal(t, `org.gradle.jvmargs=-Xmx4g
cdvMinSdkVersion=19
`, f.raw.String())
}

func TestSetInvalidKey(t *testing.T) {
	t.Parallel()

	f := ParseProps(strings.NewReader(""))
	f.noWrites = true

	require.ErrorIs(t, f.Set("", "x"), ErrInvalidKey)
	require.ErrorIs(t, f.Set("   ", "x"), ErrInvalidKey)
}

func TestSetWithComment(t *testing.T) {
	t.Parallel()

	f := ParseProps(strings.NewReader("org.gradle.daemon=true\n"))
	f.noWrites = true

	require.NoError(t, f.SetWithComment("cdvMinSdkVersion", "21", "raised for the camera plugin"))
	assert.Equal(t, `org.gradle.daemon=true
# raised for the camera plugin
cdvMinSdkVersion=21
`, f.raw.String())
}

func TestSetWithCommentReplacesComment(t *testing.T) {
	t.Parallel()

	in := `# old note
cdvMinSdkVersion=19
`
	f := ParseProps(strings.NewReader(in))
	f.noWrites = true

	require.NoError(t, f.SetWithComment("cdvMinSdkVersion", "21", "new note"))
	assert.Equal(t, `# new note
cdvMinSdkVersion=21
`, f.raw.String())

	// re-setting without a comment keeps the attached one
	require.NoError(t, f.Set("cdvMinSdkVersion", "22"))
	assert.Equal(t, `# new note
cdvMinSdkVersion=22
`, f.raw.String())
}

func TestSetWithCommentInsertsBetweenKeys(t *testing.T) {
	t.Parallel()

	in := `org.gradle.daemon=true
cdvMinSdkVersion=19
`
	f := ParseProps(strings.NewReader(in))
	f.noWrites = true

	require.NoError(t, f.SetWithComment("cdvMinSdkVersion", "21", "note"))
	assert.Equal(t, `org.gradle.daemon=true
# note
cdvMinSdkVersion=21
`, f.raw.String())
}

func TestUnset(t *testing.T) {
	t.Parallel()

	in := `# defaults
org.gradle.daemon=true
cdvMinSdkVersion=19
cdvCompileSdkVersion=28
`
	f := ParseProps(strings.NewReader(in))
	f.noWrites = true

	require.NoError(t, f.Unset("cdvMinSdkVersion"))
	assert.Equal(t, `# defaults
org.gradle.daemon=true
cdvCompileSdkVersion=28
`, f.raw.String())

	_, ok := f.Get("cdvMinSdkVersion")
	assert.False(t, ok)

	// unsetting an absent key is a no-op
	require.NoError(t, f.Unset("nope"))
	assert.Equal(t, `# defaults
org.gradle.daemon=true
cdvCompileSdkVersion=28
`, f.raw.String())
}

func TestDuplicateKeysLastWins(t *testing.T) {
	t.Parallel()

	in := `cdvMinSdkVersion=19
cdvMinSdkVersion=21
`
	f := ParseProps(strings.NewReader(in))
	f.noWrites = true

	v, ok := f.Get("cdvMinSdkVersion")
	assert.True(t, ok)
	assert.Equal(t, "21", v)

	// set rewrites every occurrence
	require.NoError(t, f.Set("cdvMinSdkVersion", "23"))
	assert.Equal(t, `cdvMinSdkVersion=23
cdvMinSdkVersion=23
`, f.raw.String())

	// unset removes every occurrence
	require.NoError(t, f.Unset("cdvMinSdkVersion"))
	assert.Equal(t, "", f.raw.String())
}

func TestMalformedLinesPreserved(t *testing.T) {
	t.Parallel()

	in := `=no key here
org.gradle.daemon=true
`
	f := ParseProps(strings.NewReader(in))
	f.noWrites = true

	require.NoError(t, f.Set("org.gradle.daemon", "false"))
	assert.Equal(t, `=no key here
org.gradle.daemon=false
`, f.raw.String())
}

func TestEmptyValues(t *testing.T) {
	t.Parallel()

	in := `lonely.key
empty.key=
`
	f := ParseProps(strings.NewReader(in))

	v, ok := f.Get("lonely.key")
	assert.True(t, ok)
	assert.Empty(t, v)

	v, ok = f.Get("empty.key")
	assert.True(t, ok)
	assert.Empty(t, v)

	assert.True(t, f.IsSet("lonely.key"))
	assert.False(t, f.IsSet("missing"))
}

func TestEscapedEntries(t *testing.T) {
	t.Parallel()

	in := `key\ with\ spaces=value
plain=first\tsecond
unicode=äöü
`
	f := ParseProps(strings.NewReader(in))

	v, ok := f.Get("key with spaces")
	assert.True(t, ok)
	assert.Equal(t, "value", v)

	v, ok = f.Get("plain")
	assert.True(t, ok)
	assert.Equal(t, "first\tsecond", v)

	v, ok = f.Get("unicode")
	assert.True(t, ok)
	assert.Equal(t, "äöü", v)

	// untouched escapes survive verbatim
	assert.Equal(t, in, f.raw.String())
}

func TestFormatRoundTrip(t *testing.T) {
	t.Parallel()

	f := ParseProps(strings.NewReader(""))
	f.noWrites = true

	require.NoError(t, f.Set("key with spaces", "a b"))
	require.NoError(t, f.Set("tabbed", "a\tb"))

	g := ParseProps(strings.NewReader(f.raw.String()))

	v, ok := g.Get("key with spaces")
	assert.True(t, ok)
	assert.Equal(t, "a b", v)

	v, ok = g.Get("tabbed")
	assert.True(t, ok)
	assert.Equal(t, "a\tb", v)
}

func TestNewFromMapReadonly(t *testing.T) {
	t.Parallel()

	f := NewFromMap(map[string]string{"cdvMinSdkVersion": "19"})

	v, ok := f.Get("cdvMinSdkVersion")
	assert.True(t, ok)
	assert.Equal(t, "19", v)

	// mutations are silently ignored
	require.NoError(t, f.Set("cdvMinSdkVersion", "21"))
	require.NoError(t, f.Unset("cdvMinSdkVersion"))

	v, ok = f.Get("cdvMinSdkVersion")
	assert.True(t, ok)
	assert.Equal(t, "19", v)
}

func TestFileKeys(t *testing.T) {
	t.Parallel()

	f := ParseProps(strings.NewReader(`b=2
a=1
c=3
`))

	assert.Equal(t, []string{"a", "b", "c"}, f.Keys())
}

func TestLoadAndWrite(t *testing.T) {
	t.Parallel()

	td := t.TempDir()
	fn := filepath.Join(td, PropsFile)

	in := `# keep me
org.gradle.daemon=true
`
	require.NoError(t, os.WriteFile(fn, []byte(in), 0o600))

	f, err := LoadProps(fn)
	require.NoError(t, err)

	require.NoError(t, f.Set("cdvMinSdkVersion", "19"))
	require.NoError(t, f.Write())

	buf, err := os.ReadFile(fn)
	require.NoError(t, err)
	assert.Equal(t, `# keep me
org.gradle.daemon=true
cdvMinSdkVersion=19
`, string(buf))
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadProps(filepath.Join(t.TempDir(), "nope", PropsFile))
	require.Error(t, err)
}
