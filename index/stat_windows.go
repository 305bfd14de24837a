//go:build windows

package index

import "os"

// fillSystemInfo is a no-op on windows: dev/ino/uid/gid have no direct
// equivalent, so entries are written with zero values, matching what a
// real git index does on a filesystem without those concepts.
func fillSystemInfo(e *Entry, fi os.FileInfo) {}
