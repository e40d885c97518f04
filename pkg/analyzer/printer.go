package analyzer

import (
	"fmt"
	"io"
	"strings"
)

// printer writes lines and keeps the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s+"\n")
}

func (p *printer) linef(format string, args ...any) {
	p.line(fmt.Sprintf(format, args...))
}

// banner writes a title underlined with '='.
func (p *printer) banner(title string) {
	p.line(title)
	p.line(strings.Repeat("=", len(title)))
}
