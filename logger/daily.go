package logger

import (
	"os"
	"path/filepath"
	"sync"
	"time"
)

const dayLayout = "20060102"

// DailyFile is an io.Writer appending to <dir>/YYYYMMDD.log. The file is
// swapped on the first write after midnight.
type DailyFile struct {
	dir string
	now func() time.Time

	mu   sync.Mutex
	day  string
	file *os.File
}

// NewDailyFile creates dir if needed and returns a writer for it
func NewDailyFile(dir string) (*DailyFile, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DailyFile{dir: dir, now: time.Now}, nil
}

// Path returns the file written for the given time
func (d *DailyFile) Path(t time.Time) string {
	return filepath.Join(d.dir, t.Format(dayLayout)+".log")
}

// Write implements io.Writer
func (d *DailyFile) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	if day := now.Format(dayLayout); day != d.day || d.file == nil {
		if err := d.rotate(now); err != nil {
			return 0, err
		}
	}
	return d.file.Write(p)
}

func (d *DailyFile) rotate(now time.Time) error {
	if d.file != nil {
		d.file.Close()
		d.file = nil
	}
	f, err := os.OpenFile(d.Path(now), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	d.file = f
	d.day = now.Format(dayLayout)
	return nil
}

// Close closes the current file
func (d *DailyFile) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	return err
}
