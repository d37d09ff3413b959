package tree

import "github.com/treekit/treekit/core"

// probe records every lifecycle call it receives and lets tests inject
// behavior into Ready and Process, which is how structural edits and signal
// traffic get driven from inside a frame.
type probe struct {
	core.NodeBase

	readyCalls int
	processed  []float64
	terminal   []core.TerminalReason

	trace *[]string

	onReady   func(p *probe)
	onProcess func(p *probe, delta float64)
}

func newProbe(name string) *probe {
	return &probe{NodeBase: core.NewBase(name)}
}

func newTracedProbe(name string, trace *[]string) *probe {
	p := newProbe(name)
	p.trace = trace
	return p
}

func (p *probe) Ready() {
	p.readyCalls++
	if p.trace != nil {
		*p.trace = append(*p.trace, "ready:"+p.Name())
	}
	if p.onReady != nil {
		p.onReady(p)
	}
}

func (p *probe) Process(delta float64) {
	p.processed = append(p.processed, delta)
	if p.trace != nil {
		*p.trace = append(*p.trace, "process:"+p.Name())
	}
	if p.onProcess != nil {
		p.onProcess(p, delta)
	}
}

func (p *probe) Terminal(reason core.TerminalReason) {
	p.terminal = append(p.terminal, reason)
	if p.trace != nil {
		*p.trace = append(*p.trace, "terminal:"+p.Name())
	}
}

// recordingSink captures the diagnostic stream for assertions.
type recordingSink struct {
	posts []core.Diagnostic
}

func (s *recordingSink) Post(d core.Diagnostic) {
	s.posts = append(s.posts, d)
}
