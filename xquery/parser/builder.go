package parser

type eventKind uint8

const (
	eventStart eventKind = iota
	eventToken
	eventFinish
)

// kindTombstone marks a start event that was dropped: its children are
// attached to the enclosing node instead.
const kindTombstone NodeKind = -1

type event struct {
	kind   eventKind
	node   NodeKind
	tok    Token
	err    *Error
	offset int
}

// marker is a bookmark returned by open. It must be closed, dropped or
// abandoned exactly once.
type marker struct {
	event int
	pos   int
	mode  Mode
}

// open flushes pending trivia into the current node and starts a new one at
// the next token.
func (p *Parser) open() marker {
	p.flushTrivia()
	m := marker{event: len(p.events), pos: p.pos, mode: p.mode}
	p.events = append(p.events, event{kind: eventStart, node: kindTombstone, offset: p.pos})
	return m
}

// openRoot starts the root node without flushing trivia, so the root
// covers the input from offset zero.
func (p *Parser) openRoot() marker {
	m := marker{event: len(p.events), pos: p.pos, mode: p.mode}
	p.events = append(p.events, event{kind: eventStart, node: kindTombstone, offset: p.pos})
	return m
}

// close turns everything consumed since m into a node of the given kind.
func (p *Parser) close(m marker, kind NodeKind) {
	p.events[m.event].node = kind
	p.events = append(p.events, event{kind: eventFinish})
}

// closeError is close for error nodes wrapping the consumed tokens.
func (p *Parser) closeError(m marker, err *Error) {
	p.events[m.event].node = KindError
	p.events[m.event].err = err
	p.events = append(p.events, event{kind: eventFinish})
}

// drop discards m but keeps what was consumed since it.
func (p *Parser) drop(m marker) {
	p.events[m.event].node = kindTombstone
}

// abandon discards m together with everything consumed since it and rewinds
// the cursor.
func (p *Parser) abandon(m marker) {
	p.events = p.events[:m.event]
	p.pos = m.pos
	p.mode = m.mode
}

// consumed reports whether any token was bumped since m.
func (p *Parser) consumed(m marker) bool {
	return p.pos > m.pos
}

// closeIf closes m when keep is set and drops it otherwise.
func (p *Parser) closeIf(m marker, kind NodeKind, keep bool) {
	if keep {
		p.close(m, kind)
	} else {
		p.drop(m)
	}
}

// errorHere emits a zero-width error node at the next token.
func (p *Parser) errorHere(message string) {
	p.errorAt(syntaxError(message))
}

func (p *Parser) errorAt(err *Error) {
	p.flushTrivia()
	p.events = append(p.events,
		event{kind: eventStart, node: KindError, err: err, offset: p.pos},
		event{kind: eventFinish})
}

func (p *Parser) pushToken(tok Token) {
	p.events = append(p.events, event{kind: eventToken, tok: tok})
	p.pos = tok.End()
	if tok.Error != nil {
		p.events = append(p.events,
			event{kind: eventStart, node: KindError, err: tok.Error, offset: tok.End()},
			event{kind: eventFinish})
	}
}

func (p *Parser) flushTrivia() {
	for {
		tok := p.lexer.Scan(p.pos, p.mode)
		if !tok.Kind.IsTrivia() {
			return
		}
		p.pushToken(tok)
	}
}

// build replays the event log into a tree.
func (p *Parser) build() *Node {
	type frame struct {
		node   *Node
		offset int
	}
	var stack []frame
	var root *Node

	finish := func() {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := top.node
		if len(n.Children) > 0 {
			n.Span = Span{Start: n.Children[0].Span.Start, End: n.Children[len(n.Children)-1].Span.End}
		} else {
			n.Span = p.lines.span(top.offset, top.offset)
		}
		if len(stack) == 0 {
			root = n
			return
		}
		parent := stack[len(stack)-1].node
		parent.Children = append(parent.Children, n)
	}

	for i := range p.events {
		ev := &p.events[i]
		switch ev.kind {
		case eventStart:
			if ev.node == kindTombstone {
				continue
			}
			stack = append(stack, frame{node: &Node{Kind: ev.node, Error: ev.err}, offset: ev.offset})
		case eventToken:
			tok := ev.tok
			leaf := &Node{Kind: KindToken, Span: tok.Span, Token: &tok}
			if len(stack) > 0 {
				parent := stack[len(stack)-1].node
				parent.Children = append(parent.Children, leaf)
			}
		case eventFinish:
			finish()
		}
	}
	for len(stack) > 0 {
		finish()
	}
	if root != nil && root.Kind == KindModule {
		root.Span = p.lines.span(0, len(p.input))
	}
	return root
}
