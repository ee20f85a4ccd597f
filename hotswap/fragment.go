package hotswap

import (
	"path"
	"strings"
)

const (
	// SourceExt and ArtifactExt are the extensions swapped by Fragment.
	SourceExt   = ".java"
	ArtifactExt = ".class"
	// classpathSeparator splits a source path from a trailing position such
	// as a line number.
	classpathSeparator = ":"
)

// Fragment derives the class-file fragment for a source reference:
// "com/foo/Bar.java:42" becomes "Bar.class". The fragment is matched as a
// substring of member base names, so it also hits "BarBar.class".
func Fragment(sourceID string) string {
	seg, _, _ := strings.Cut(strings.TrimSpace(sourceID), classpathSeparator)
	seg = strings.ReplaceAll(seg, "\\", "/")
	if seg == "" {
		return ""
	}
	base := path.Base(seg)
	if strings.HasSuffix(base, SourceExt) {
		base = strings.TrimSuffix(base, SourceExt) + ArtifactExt
	}
	return base
}
