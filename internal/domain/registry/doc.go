// Package registry catalogs the applications bundled with the desktop.
//
// The registry maps application ids to launch metadata and resolves file
// extensions to the applications able to open them. It is consumed by
// the file-system service (to seed shortcuts) and by the opener.
package registry
