package domain

import (
	"crypto/md5" //nolint:gosec // symbol names only, not a security boundary
	"encoding/hex"
	"regexp"
	"strings"
)

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SymbolFunc derives the C identifier of a resource byte array from its relative path.
type SymbolFunc func(prefix, relPath string) string

// SymbolName returns prefix + "_" + the MD5 hex digest of the path's comparison key.
// Names stay stable across rebuilds that touch unrelated files.
func SymbolName(prefix, relPath string) string {
	sum := md5.Sum([]byte(PathKey(relPath))) //nolint:gosec // see import
	return prefix + "_" + hex.EncodeToString(sum[:])
}

// CountSymbol returns the name of the file-count constant for the prefix.
func CountSymbol(prefix string) string {
	return strings.ToUpper(prefix) + "_COUNT"
}

// SizesSymbol returns the name of the size table for the prefix.
func SizesSymbol(prefix string) string {
	return prefix + "_sizes"
}

// PathsSymbol returns the name of the path table for the prefix.
func PathsSymbol(prefix string) string {
	return prefix + "_paths"
}

// IsIdentifier reports whether s is a valid C identifier.
func IsIdentifier(s string) bool {
	return identPattern.MatchString(s)
}
