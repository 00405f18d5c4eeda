package internal

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// A name starts with a letter, digit or underscore, and has no control
	// characters or slashes after that.
	nameRe = regexp.MustCompile(`^[\pL\pN_][^\pC/]*$`)
	// Trailing whitespace and reserved type names are not allowed.
	reservedRe = regexp.MustCompile(`(\pZ|^(u?byte|char|string|u?short|u?int|u?int64|float|double|enum|opaque|compound))$`)

	ErrBadName      = errors.New("invalid netCDF name")
	ErrBadGroupPath = errors.New("invalid group path")
)

// IsValidNetCDFName returns true if name is a valid NetCDF name.
func IsValidNetCDFName(name string) bool {
	return nameRe.MatchString(name) && !reservedRe.MatchString(name)
}

// SplitGroupPath splits an absolute or relative group path into its components.
// "", "/" and "." name the root group and return no components.
func SplitGroupPath(path string) ([]string, error) {
	path = strings.Trim(path, "/")
	if path == "" || path == "." {
		return nil, nil
	}
	parts := strings.Split(path, "/")
	for _, p := range parts {
		if !IsValidNetCDFName(p) {
			return nil, errors.Join(ErrBadGroupPath, ErrBadName)
		}
	}
	return parts, nil
}

// JoinGroupPath appends name to an absolute group path.
func JoinGroupPath(parent, name string) string {
	if parent == "" || parent == "/" {
		return "/" + name
	}
	return parent + "/" + name
}
