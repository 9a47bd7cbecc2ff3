// Package filelog appends single-line records to a file that is recreated
// each time the writer is created. Write failures are logged and dropped.
package filelog

import (
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

type Writer struct {
	path string
	log  *logrus.Entry

	mu   sync.Mutex
	file *os.File
}

// New truncates or creates the file at path. A file that cannot be opened
// yields a Writer that discards every line.
func New(path string) *Writer {
	w := &Writer{
		path: path,
		log:  logrus.WithFields(logrus.Fields{"component": "filelog", "path": path}),
	}
	if path == "" {
		return w
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC|os.O_APPEND, 0o644)
	if err != nil {
		w.log.WithError(err).Warn("cannot open side log, lines will be dropped")
		return w
	}
	w.file = f
	return w
}

func (w *Writer) Path() string {
	return w.path
}

// WriteLine appends line followed by a newline. Embedded newlines are
// flattened so one call always produces one record.
func (w *Writer) WriteLine(line string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return
	}
	line = strings.ReplaceAll(line, "\n", " ")
	if _, err := w.file.WriteString(line + "\n"); err != nil {
		w.log.WithError(err).Debug("side log write failed")
	}
}

func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}
