package filesystem

import (
	"os"
	"time"
)

// Operation names reported to the Observer.
const (
	OpStat    = "stat"
	OpLstat   = "lstat"
	OpReadDir = "readdir"
	OpOpen    = "open"
)

// Operations lists every operation name, for metric label pre-population.
var Operations = []string{OpStat, OpLstat, OpReadDir, OpOpen}

func record(operation string, start time.Time, err error) {
	if o := observe(); o != nil {
		o.ObserveOperation(operation, time.Since(start).Seconds(), err)
	}
}

// Stat is os.Stat with timing reported to the observer.
func Stat(path string) (os.FileInfo, error) {
	start := time.Now()
	info, err := os.Stat(path)
	record(OpStat, start, err)
	return info, err
}

// Lstat is os.Lstat with timing reported to the observer.
func Lstat(path string) (os.FileInfo, error) {
	start := time.Now()
	info, err := os.Lstat(path)
	record(OpLstat, start, err)
	return info, err
}

// ReadDir is os.ReadDir with timing reported to the observer. Like
// os.ReadDir it returns the entries read before an error, sorted by name.
func ReadDir(path string) ([]os.DirEntry, error) {
	start := time.Now()
	entries, err := os.ReadDir(path)
	record(OpReadDir, start, err)
	return entries, err
}

// Open is os.Open with timing reported to the observer.
func Open(path string) (*os.File, error) {
	start := time.Now()
	f, err := os.Open(path)
	record(OpOpen, start, err)
	return f, err
}
