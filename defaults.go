package gradleprops

// Default is one recommended gradle.properties entry.
type Default struct {
	Key   string
	Value string
}

// Recommended is the built-in table of recommended Gradle properties for
// Android builds. Configure merges these into the target file in table
// order, seeding any key that is absent or empty and emitting an advisory
// when a present value diverges.
var Recommended = []Default{
	{Key: "org.gradle.daemon", Value: "true"},
	{Key: "org.gradle.jvmargs", Value: "-Xmx2048m"},
	{Key: "android.useDeprecatedNdk", Value: "true"},
	{Key: "cdvMinSdkVersion", Value: "19"},
	{Key: "cdvCompileSdkVersion", Value: "28"},
}
