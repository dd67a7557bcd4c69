package fsio

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"
)

var tempSeq atomic.Uint64

// TempPath generates a hidden sibling filename for path of the form
// ".__<tag>.<nanotimestamp>_<seq><suffix chain>".
//
// The temporary file lives in the same directory as path so the final
// rename stays on one filesystem, and it keeps the full suffix chain so
// suffix-driven compression inference treats it exactly like the
// destination. The nanosecond timestamp plus a process-wide sequence
// number make collisions between concurrent writers vanishingly unlikely;
// this is a uniqueness mechanism, not a lock.
func TempPath(path, tag string) string {
	name := fmt.Sprintf(".__%s.%d_%d%s",
		tag, time.Now().UnixNano(), tempSeq.Add(1), suffixChain(filepath.Base(path)))
	return filepath.Join(filepath.Dir(path), name)
}

// suffixChain returns every extension of name joined together, e.g.
// ".tar.gz" for "data.tar.gz". A leading dot does not start the chain, so
// hidden files like ".env.gz" yield ".gz" and ".gitignore" yields "".
func suffixChain(name string) string {
	trimmed := strings.TrimLeft(name, ".")
	i := strings.Index(trimmed, ".")
	if i < 0 {
		return ""
	}
	return trimmed[i:]
}
