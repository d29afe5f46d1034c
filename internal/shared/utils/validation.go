// Package utils holds request validation shared by the API handlers.
package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Input limits
const (
	MaxNameLength    = 255
	MaxIDLength      = 128
	MaxContentLength = 1 * 1024 * 1024 // 1MB per file
	MaxTargetLength  = 2048
)

// idPattern allows the id alphabets in use: prefixed ULIDs and uuids
var idPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateName checks an entity name supplied by a client. Separators
// and control characters would corrupt path resolution, so they are
// rejected here before the name reaches the file system.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return fmt.Errorf("name exceeds %d characters", MaxNameLength)
	}
	if strings.ContainsRune(name, '/') {
		return fmt.Errorf("name must not contain '/'")
	}
	for _, r := range name {
		if r < 0x20 || r == 0x7f {
			return fmt.Errorf("name must not contain control characters")
		}
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name must not be blank")
	}
	return nil
}

// ValidateID checks an entity or window id path parameter
func ValidateID(id, field string) error {
	if id == "" {
		return fmt.Errorf("%s is required", field)
	}
	if len(id) > MaxIDLength {
		return fmt.Errorf("%s exceeds %d characters", field, MaxIDLength)
	}
	if !idPattern.MatchString(id) {
		return fmt.Errorf("%s contains invalid characters", field)
	}
	return nil
}

// ValidateContent checks a file content payload
func ValidateContent(content string) error {
	if len(content) > MaxContentLength {
		return fmt.Errorf("content exceeds %d bytes", MaxContentLength)
	}
	return nil
}

// ValidateTarget checks a link target (entity id, app id or URL)
func ValidateTarget(target string) error {
	if target == "" {
		return fmt.Errorf("target is required")
	}
	if len(target) > MaxTargetLength {
		return fmt.Errorf("target exceeds %d characters", MaxTargetLength)
	}
	return nil
}
