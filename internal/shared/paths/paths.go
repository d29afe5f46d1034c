// Package paths names the well-known locations of the virtual desktop
// tree so every component refers to the same layout. The seeder builds
// these directories on first run.
package paths

import "strings"

// Well-known directories
const (
	Root         = "/"
	Users        = "/Users"
	UserHome     = "/Users/User"
	Documents    = "/Users/User/Documents"
	Desktop      = "/Users/User/Desktop"
	Downloads    = "/Users/User/Downloads"
	Pictures     = "/Users/User/Pictures"
	Applications = "/Applications"
	System       = "/System"
)

// UserFolders returns the folders created inside the user's home, in
// seeding order.
func UserFolders() []string {
	return []string{Documents, Desktop, Downloads, Pictures}
}

// Base returns the final segment of a path; the root maps to "".
func Base(path string) string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return ""
	}
	segments := strings.Split(trimmed, "/")
	return segments[len(segments)-1]
}

// IsSystemPath reports whether path lies inside a system-owned area
// that user interactions should not rearrange.
func IsSystemPath(path string) bool {
	return path == Root || path == System || strings.HasPrefix(path, System+"/")
}
