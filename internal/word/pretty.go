package word

import "strings"

const inlineWidth = 60

// Pretty renders w as indented source, one string per line. Lines only
// break right after an opening brace and right before a closing one, so the
// output parses back to an equal word.
func Pretty(w Word) []string {
	p := &printer{}
	p.word(w)
	p.flush()
	return p.lines
}

type printer struct {
	lines []string
	cur   strings.Builder
	depth int
}

func (p *printer) word(w Word) {
	l, ok := w.(List)
	if !ok || inline(l) {
		p.token(w.String())
		return
	}
	p.token("{")
	p.flush()
	p.depth++
	for _, e := range l {
		p.word(e)
	}
	p.flush()
	p.depth--
	p.token("}")
}

func (p *printer) token(s string) {
	if p.cur.Len() == 0 {
		p.cur.WriteString(strings.Repeat("  ", p.depth))
	} else {
		p.cur.WriteString(" ")
	}
	p.cur.WriteString(s)
}

func (p *printer) flush() {
	if p.cur.Len() > 0 {
		p.lines = append(p.lines, p.cur.String())
		p.cur.Reset()
	}
}

func inline(l List) bool {
	return nesting(l) <= 2 && len(l.String()) <= inlineWidth
}

func nesting(w Word) int {
	l, ok := w.(List)
	if !ok {
		return 0
	}
	deepest := 0
	for _, e := range l {
		deepest = max(deepest, nesting(e))
	}
	return deepest + 1
}
