// Package pathutil provides target-path validation and lock-path derivation.
package pathutil

import (
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/fslease-project/fslease/pkg/errclass"
)

// LockExt is the extension carried by every lock file.
const LockExt = ".lock"

// ValidateTarget checks that a target resource path can carry a sidecar lock.
func ValidateTarget(path string) error {
	if path == "" {
		return errclass.ErrPathInvalid.WithMessage("target path must not be empty")
	}

	// NFC normalize so visually identical names derive the same lock path
	path = norm.NFC.String(path)

	base := filepath.Base(path)
	if base == "." || base == ".." || base == string(filepath.Separator) {
		return errclass.ErrPathInvalid.WithMessagef("target has no usable file name: %s", path)
	}

	for _, r := range path {
		if r == 0 || (unicode.IsControl(r) && r != '\t') {
			return errclass.ErrPathInvalid.WithMessagef("target must not contain control characters: %q", path)
		}
	}

	return nil
}

// LockPath derives the sidecar lock-file path from a target path by replacing
// the target's extension with ".lock". A target without an extension gains
// the extension instead.
//
//	/tmp/data.txt -> /tmp/data.lock
//	/tmp/data     -> /tmp/data.lock
func LockPath(target string) string {
	target = norm.NFC.String(target)
	ext := filepath.Ext(target)
	if ext == "" {
		return target + LockExt
	}
	return strings.TrimSuffix(target, ext) + LockExt
}
