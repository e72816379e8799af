// Package cgen emits indented C source text.
package cgen

import (
	"fmt"
	"strconv"
	"strings"
)

// Writer accumulates C source lines with tab indentation.
// The zero value is ready to use.
type Writer struct {
	sb     strings.Builder
	indent int
}

// NewWriter creates an empty writer at indentation level zero.
func NewWriter() *Writer {
	return &Writer{}
}

// Linef writes one indented line. An empty format writes a blank line
// without indentation.
func (w *Writer) Linef(format string, args ...any) {
	if format == "" {
		w.sb.WriteByte('\n')
		return
	}
	for i := 0; i < w.indent; i++ {
		w.sb.WriteByte('\t')
	}
	fmt.Fprintf(&w.sb, format, args...)
	w.sb.WriteByte('\n')
}

// OpenBlockf writes the line followed by " {" and indents subsequent lines.
func (w *Writer) OpenBlockf(format string, args ...any) {
	w.Linef(format+" {", args...)
	w.indent++
}

// CloseBlock dedents and writes the closing brace.
func (w *Writer) CloseBlock() {
	if w.indent > 0 {
		w.indent--
	}
	w.Linef("}")
}

// String returns the accumulated source text.
func (w *Writer) String() string {
	return w.sb.String()
}

// Float formats a float32 as a C floating-point literal with the shortest
// representation that round-trips.
func Float(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}
