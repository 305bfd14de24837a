//go:build !windows

package index

import (
	"os"
	"syscall"
)

// fillSystemInfo populates the dev/ino/uid/gid/ctime fields of e from
// the platform-specific stat info carried by fi, mirroring the way a
// real git index entry is built from a fresh os.Lstat
func fillSystemInfo(e *Entry, fi os.FileInfo) {
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return
	}
	e.Dev = uint32(st.Dev)   //nolint:gosec // dev numbers fit in uint32 in practice
	e.Ino = uint32(st.Ino)   //nolint:gosec // inode numbers fit in uint32 in practice
	e.UID = st.Uid
	e.GID = st.Gid
	ctim := st.Ctim
	e.CTimeSec = uint32(ctim.Sec)  //nolint:gosec // matches on-disk format width
	e.CTimeNano = uint32(ctim.Nsec) //nolint:gosec // matches on-disk format width
}
