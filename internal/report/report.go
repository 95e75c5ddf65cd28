package report

import (
	"bufio"
	"io"

	"github.com/rag-nar1/bloomcheck/filter/bloom"
	"github.com/rag-nar1/bloomcheck/internal/checker"
)

const (
	PresentText = "Probably in the DB"
	AbsentText  = "Not in the DB"
)

// Render returns the line printed for one verdict, without the newline.
func Render(r checker.Result) string {
	if r.Verdict == bloom.PossiblyPresent {
		return r.Key + "," + PresentText
	}
	return r.Key + "," + AbsentText
}

type Writer struct {
	w *bufio.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteAll writes one line per result in the given order and flushes.
func (w *Writer) WriteAll(results []checker.Result) error {
	for _, r := range results {
		if _, err := w.w.WriteString(Render(r)); err != nil {
			return err
		}
		if err := w.w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return w.w.Flush()
}
