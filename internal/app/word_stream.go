package app

import (
	"strings"
	"time"
)

// wordStream re-chunks arbitrary upstream deltas at word boundaries and
// paces each emission, so bursty provider output reads as steady typing.
type wordStream struct {
	delay time.Duration
	emit  func(string) error
	buf   strings.Builder
}

func newWordStream(delay time.Duration, emit func(string) error) *wordStream {
	return &wordStream{
		delay: delay,
		emit:  emit,
	}
}

func (w *wordStream) Write(chunk string) error {
	w.buf.WriteString(chunk)
	pending := w.buf.String()

	for {
		idx := strings.IndexAny(pending, " \t\n")
		if idx < 0 {
			break
		}
		// Keep the separator attached to its word.
		if err := w.emitWord(pending[:idx+1]); err != nil {
			return err
		}
		pending = pending[idx+1:]
	}

	w.buf.Reset()
	w.buf.WriteString(pending)
	return nil
}

// Flush emits whatever trailing text has no separator after it.
func (w *wordStream) Flush() error {
	if w.buf.Len() == 0 {
		return nil
	}
	word := w.buf.String()
	w.buf.Reset()
	return w.emitWord(word)
}

func (w *wordStream) emitWord(word string) error {
	if err := w.emit(word); err != nil {
		return err
	}
	if w.delay > 0 {
		time.Sleep(w.delay)
	}
	return nil
}
