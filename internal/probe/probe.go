// Package probe reports the observable size of a watched resource.
//
// A probe never fails: anything that prevents a stat (missing file, permission
// denied, broken symlink) is folded into the Absent sentinel, because callers
// only need to know whether the resource is usable yet.
package probe

import (
	"context"
	"io/fs"
	"os"
)

// Absent is the size reported for a resource that could not be stat'ed.
//
// Sizes reported for present resources must be >= 0, otherwise a present
// resource would be indistinguishable from an absent one. Filesystem stats
// satisfy this; custom Prober implementations must too.
const Absent int64 = -1

// Result is the outcome of a single probe.
type Result struct {
	// Size is the resource size in bytes, or Absent.
	Size int64

	// Info is the raw stat result, kept for diagnostics only. Nil when absent.
	Info fs.FileInfo
}

// Available reports whether the probe saw the resource.
func (r Result) Available() bool {
	return r.Size >= 0
}

// AbsentResult returns the result used for unusable resources.
func AbsentResult() Result {
	return Result{Size: Absent}
}

// Prober produces the current observable size of a resource.
type Prober interface {
	Probe(ctx context.Context, resource string) Result
}

// ProberFunc is a function that implements Prober.
type ProberFunc func(ctx context.Context, resource string) Result

// Probe implements Prober.
func (f ProberFunc) Probe(ctx context.Context, resource string) Result {
	return f(ctx, resource)
}

// StatFunc stats a resource path.
type StatFunc func(name string) (fs.FileInfo, error)

// FileProber probes resources with a filesystem stat.
type FileProber struct {
	stat StatFunc
}

// NewFileProber creates a prober backed by os.Stat, following symlinks.
func NewFileProber() *FileProber {
	return &FileProber{stat: os.Stat}
}

// NewFSProber creates a prober that resolves resources inside fsys.
// Resource names must be valid fs.FS paths (slash separated, unrooted).
func NewFSProber(fsys fs.FS) *FileProber {
	return &FileProber{
		stat: func(name string) (fs.FileInfo, error) {
			return fs.Stat(fsys, name)
		},
	}
}

// NewStatProber creates a prober around an arbitrary stat function.
func NewStatProber(stat StatFunc) *FileProber {
	return &FileProber{stat: stat}
}

// Probe implements Prober.
func (p *FileProber) Probe(ctx context.Context, resource string) Result {
	if ctx.Err() != nil {
		return AbsentResult()
	}
	info, err := p.stat(resource)
	if err != nil || info == nil {
		return AbsentResult()
	}
	size := info.Size()
	if size < 0 {
		// Keep the sentinel unambiguous.
		size = 0
	}
	return Result{Size: size, Info: info}
}
