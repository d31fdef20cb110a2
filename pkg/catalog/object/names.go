package object

import (
	"strings"

	"github.com/google/uuid"
)

// Qualifier separates the segments of a qualified name. A rooted name starts
// with the qualifier and is resolved from the catalog root.
const Qualifier = "."

func IsRooted(name string) bool {
	return strings.HasPrefix(name, Qualifier)
}

// EnsureRooted returns name resolved from the catalog root.
func EnsureRooted(name string) string {
	if name == "" || IsRooted(name) {
		return name
	}
	return Qualifier + name
}

// EnsureUnrooted strips a leading qualifier.
func EnsureUnrooted(name string) string {
	return strings.TrimPrefix(name, Qualifier)
}

// Qualify prefixes name with qualifier. An empty qualifier leaves name unchanged.
func Qualify(name, qualifier string) string {
	if qualifier == "" {
		return name
	}
	return qualifier + Qualifier + name
}

// Unqualify returns the last segment of a qualified name.
func Unqualify(name string) string {
	if i := strings.LastIndex(name, Qualifier); i >= 0 {
		return name[i+1:]
	}
	return name
}

// QualifierOf returns everything before the last segment, or "" for a
// single-segment name.
func QualifierOf(name string) string {
	name = EnsureUnrooted(name)
	if i := strings.LastIndex(name, Qualifier); i >= 0 {
		return name[:i]
	}
	return ""
}

// NamesEqual reports whether reference resolves name. A rooted reference
// must match exactly; an unrooted one may match any trailing segments.
func NamesEqual(name, reference string) bool {
	if IsRooted(reference) {
		return EnsureRooted(name) == reference
	}
	name = EnsureUnrooted(name)
	return name == reference || strings.HasSuffix(name, Qualifier+reference)
}

// SynthesizeGlobalName derives the catalog-wide name of a session-scoped
// object from the name it was declared with in its session.
func SynthesizeGlobalName(sessionObjectName string) string {
	return EnsureUnrooted(sessionObjectName) + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
