package extract

import (
	"strings"
)

// DefaultElideDepth is the number of trailing path segments kept by ElidePath.
const DefaultElideDepth = 4

// elisionMarker replaces the leading segments of an elided path.
const elisionMarker = "<...>"

// ElidePath shortens path to its last depth segments behind a "<...>" marker.
// The root of an absolute path ("/" or a drive such as "C:/") is not a
// segment; it is kept when nothing is elided and dropped with the rest of the
// leading segments otherwise. Both "/" and "\" separate segments, so Windows
// paths elide the same way on every platform. Paths with at most depth segments
// come back slash-normalised but otherwise unchanged.
// A depth below one selects DefaultElideDepth.
func ElidePath(path string, depth int) string {
	if depth < 1 {
		depth = DefaultElideDepth
	}
	root, segments := splitSegments(path)
	if len(segments) > depth {
		return elisionMarker + "/" + strings.Join(segments[len(segments)-depth:], "/")
	}
	return root + strings.Join(segments, "/")
}

// splitSegments splits a path into its root and its parts. The root is empty
// for relative paths, "/" for POSIX absolute paths and the drive with a
// trailing slash ("C:/") for Windows ones. A bare drive ("C:x") is kept
// as the root without a slash.
func splitSegments(path string) (string, []string) {
	path = strings.ReplaceAll(path, `\`, "/")

	var root string
	if hasDriveLetter(path) {
		root, path = path[:2], path[2:]
	}
	if strings.HasPrefix(path, "/") {
		root += "/"
		path = strings.TrimLeft(path, "/")
	}

	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s == "" || s == "." {
			continue
		}
		segments = append(segments, s)
	}
	return root, segments
}

func hasDriveLetter(path string) bool {
	if len(path) < 2 || path[1] != ':' {
		return false
	}
	c := path[0]
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
