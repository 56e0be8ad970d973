package mdtok

// TODO proper handling of virtual space, esp wrt tabs after {list,quote}
// markers: indent accounting below treats every VirtualSpace/tab code as a
// single column, which is not exact when a tab follows a container prefix
// that did not itself end on a tab stop.

import "unicode/utf8"

// blockType names the leaf (non-container) block a document line can be
// part of. Containers (BlockQuote, ListItem, etc.) are tracked separately
// by name in containerFrame / the tokenizer's own stack.
type blockType int8

const (
	leafNone blockType = iota
	leafBlank
	leafParagraph
	leafATXHeading
	leafSetextHeading
	leafThematicBreak
	leafFencedCode
	leafIndentedCode
	leafHTMLBlock
	leafDefinition
)

// containerFrame records the marker shape of one open container, so that
// subsequent lines can be matched against it. Parallel to the tokenizer's
// own open-name stack; containers[i] corresponds to the i-th container
// TokenName currently on the stack (Document is implicit and not kept
// here).
type containerFrame struct {
	Name     TokenName
	Marker   rune // '>' for quotes; '-','*','+','.',')' for list/item
	Width    int  // marker + trailing space width, in codes
	Indent   int  // content indent demanded of continuation lines
	Ordered  bool
	EnterIdx int // event index of this container's own Enter event
}

// openLeaf is the currently open flow (non-container) block, if any.
type openLeaf struct {
	typ          blockType
	delim        rune
	width        int
	indent       int
	headingLevel int
	enterIdx     int // event index of the leaf's own Enter event
	firstData    int // event index of the chain's first Data Enter, -1 if none yet
	lastData     int // event index of the chain's most recent Data Enter, -1 if none yet
}

func (l *openLeaf) reset() { *l = openLeaf{firstData: -1, lastData: -1} }

// documentDriver is the document container driver (spec.md §4.3): it walks
// the input one logical line at a time, matches and closes containers,
// opens new ones, recognises the current line's leaf block, and emits
// Data spans chained for later sub-tokenize/splice.
type documentDriver struct {
	t          *Tokenizer
	containers []containerFrame
	leaf       openLeaf
	lastBlank  bool // true if the immediately preceding line was leafBlank
	listLoose  []bool

	// pendingBlankLoose records that a blank line was just seen while at
	// least one container was open; checked against the next line's
	// container-continuation match (matchContainerContinuation) to decide
	// whether the blank actually separated two pieces of a still-open
	// list rather than merely trailing before it closed.
	pendingBlankLoose bool
}

// ParseDocument tokenizes a complete document: container/flow structure via
// the document driver, followed by text-content sub-tokenize/splice and the
// attention/label-end resolvers. Spec.md §4.3-§4.6.
func ParseDocument(src []byte) *Tokenizer {
	codes := Codes(src)
	t := NewTokenizer(codes)
	d := &documentDriver{t: t}
	d.leaf.reset()
	t.enter(Document)

	for _, line := range splitLines(codes) {
		d.processLine(line)
	}
	d.closeLeaf()
	for len(d.containers) > 0 {
		d.closeContainer()
	}
	t.exit(Document)

	t.RegisterResolver("splice", spliceTextContent)
	t.RegisterResolver("attention", resolveAttention)
	t.RegisterResolver("label-end", resolveLabelEnd)
	t.flush(func(tt *Tokenizer, code Code) (Result, StateFn) {
		tt.consume(code)
		return OK, nil
	})
	return t
}

// splitLines divides a code stream into consecutive lines, each including
// its own trailing line ending code (absent only for a final partial
// line).
func splitLines(codes []Code) [][]Code {
	var lines [][]Code
	start := 0
	for i := 0; i < len(codes); i++ {
		c := codes[i]
		if c.Kind == CodeCRLF || c.Is('\n') || c.Is('\r') {
			lines = append(lines, codes[start:i+1])
			start = i + 1
		}
	}
	if start < len(codes) {
		lines = append(lines, codes[start:])
	}
	return lines
}

func splitLineEnding(line []Code) (content, ending []Code) {
	if len(line) == 0 {
		return line, nil
	}
	last := line[len(line)-1]
	if last.Kind == CodeCRLF || last.Is('\n') || last.Is('\r') {
		return line[:len(line)-1], line[len(line)-1:]
	}
	return line, nil
}

func isBlank(tail []Code) bool {
	for _, c := range tail {
		if !c.IsSpaceOrTab() {
			return false
		}
	}
	return true
}

// countIndent counts up to limit leading space/virtual-space/tab codes,
// returning the count and the remaining tail.
func countIndent(line []Code, limit int) (n int, tail []Code) {
	tail = line
	for n < limit && len(tail) > 0 && tail[0].IsSpaceOrTab() {
		n++
		tail = tail[1:]
	}
	return n, tail
}

func skipSpaceOrTab(line []Code) []Code {
	i := 0
	for i < len(line) && line[i].IsSpaceOrTab() {
		i++
	}
	return line[i:]
}

func isMark(c Code, marks ...rune) bool {
	if c.Kind != CodeChar {
		return false
	}
	for _, m := range marks {
		if c.Char == m {
			return true
		}
	}
	return false
}

// matchRun matches a run of 1..maxWidth of the same mark rune, optionally
// followed by whitespace, returning the delimiter, run width, and tail
// after the run (whitespace not consumed). Used for ATX '#' and blockquote
// '>' markers.
func matchRun(line []Code, maxWidth int, marks ...rune) (delim rune, width int, tail []Code) {
	if len(line) == 0 || !isMark(line[0], marks...) {
		return 0, 0, nil
	}
	delim = line[0].Char
	width = 1
	tail = line[1:]
	for len(tail) > 0 && isMark(tail[0], delim) {
		width++
		if width > maxWidth {
			return 0, 0, nil
		}
		tail = tail[1:]
	}
	if len(tail) > 0 && !tail[0].IsSpaceOrTab() {
		return 0, 0, nil
	}
	return delim, width, tail
}

func matchFence(line []Code, min int, marks ...rune) (fence rune, width int, tail []Code) {
	if len(line) == 0 || !isMark(line[0], marks...) {
		return 0, 0, nil
	}
	fence = line[0].Char
	width = 1
	for width < len(line) && isMark(line[width], fence) {
		width++
	}
	if width < min {
		return 0, 0, nil
	}
	return fence, width, line[width:]
}

func matchRuler(line []Code, marks ...rune) (rule rune, width int, tail []Code) {
	if len(line) == 0 || !isMark(line[0], marks...) {
		return 0, 0, nil
	}
	rule = line[0].Char
	for width = 1; width < len(line); width++ {
		c := line[width]
		if isMark(c, rule) || c.IsSpaceOrTab() {
			continue
		}
		return 0, 0, nil
	}
	return rule, width, nil
}

func quoteMarker(line []Code) (delim rune, width int, tail []Code) {
	delim, width, t := matchRun(line, 1, '>')
	if delim == 0 {
		return 0, 0, nil
	}
	if len(t) > 0 && t[0].IsSpaceOrTab() {
		return delim, width + 1, t[1:]
	}
	return delim, width, t
}

func listMarker(line []Code) (delim rune, width int, tail []Code, ordered bool) {
	if len(line) > 0 && isMark(line[0], '-', '*', '+') {
		delim = line[0].Char
		width = 1
		tail = line[1:]
	} else {
		i := 0
		for i < len(line) && i < 9 && line[i].Kind == CodeChar && line[i].Char >= '0' && line[i].Char <= '9' {
			i++
		}
		if i == 0 || i >= len(line) || !isMark(line[i], '.', ')') {
			return 0, 0, nil, false
		}
		delim = line[i].Char
		width = i + 1
		tail = line[i+1:]
		ordered = true
	}
	if len(tail) == 0 {
		return delim, width, tail, ordered
	}
	if !tail[0].IsSpaceOrTab() {
		return 0, 0, nil, false
	}
	return delim, width + 1, tail[1:], ordered
}

// matchContainerContinuation reports whether tail continues the container
// f, returning the tail with f's marker/indent consumed.
func (d *documentDriver) matchContainerContinuation(f containerFrame, tail []Code) ([]Code, bool) {
	switch f.Name {
	case BlockQuote:
		n, t := countIndent(tail, 3)
		_ = n
		delim, _, rest := quoteMarker(t)
		if delim == 0 {
			return tail, false
		}
		return rest, true
	case ListItem:
		n, t := countIndent(tail, f.Indent)
		if n < f.Indent && len(t) > 0 {
			return tail, false
		}
		return t, true
	default: // ListOrdered, ListUnordered: continuation handled by child Item frame
		return tail, true
	}
}

// paragraphThematicBreakProbe speculatively recognizes a thematic-break
// rule: a run of 3+ of the same '-', '_' or '*' mark, interleaved with any
// amount of space/tab, running to end of input. Used by
// lineInterruptsParagraph to decide, through the engine's own
// attempt/restore machinery rather than a bare boolean peek, whether a
// candidate line interrupts an open paragraph; the committing pass in
// recognizeLeaf re-derives the same decision afterward via matchRuler.
func paragraphThematicBreakProbe() StateFn {
	var mark rune
	count := 0
	var step StateFn
	step = func(t *Tokenizer, code Code) (Result, StateFn) {
		switch {
		case code.IsEOF():
			t.consume(code)
			if count >= 3 {
				return OK, nil
			}
			return Nok, nil
		case code.IsSpaceOrTab():
			t.consume(code)
			return Continue, step
		case isMark(code, '-', '_', '*') && (mark == 0 || code.Char == mark):
			mark = code.Char
			count++
			t.consume(code)
			return Continue, step
		default:
			t.consume(code)
			return Nok, nil
		}
	}
	return step
}

// paragraphATXProbe speculatively recognizes an ATX heading opener: 1-6
// '#' marks followed by a space/tab or end of input. Same rollback-only
// role as paragraphThematicBreakProbe, for the '#' candidate.
func paragraphATXProbe() StateFn {
	count := 0
	var step StateFn
	step = func(t *Tokenizer, code Code) (Result, StateFn) {
		switch {
		case isMark(code, '#'):
			count++
			t.consume(code)
			if count > 6 {
				return Nok, nil
			}
			return Continue, step
		case code.IsEOF() || code.IsSpaceOrTab():
			t.consume(code)
			if count >= 1 {
				return OK, nil
			}
			return Nok, nil
		default:
			t.consume(code)
			return Nok, nil
		}
	}
	return step
}

// lineInterruptsParagraph reports whether tail, as the continuation of an
// open paragraph, is actually a new leaf block that interrupts it per
// CommonMark's paragraph-interrupt rule, rather than a lazy continuation
// line. A blank line always interrupts; a thematic break or ATX heading
// opener is confirmed speculatively via attemptBool over a throwaway
// tokenizer seeded with tail, so the decision runs through the engine's
// real attempt/rollback path instead of only ever being a peek. A fenced
// code opener also interrupts; matchFence's own bounded width scan is
// already exact here; rerunning it through attempt would add rollback
// machinery but no additional certainty, so it is consulted directly. A
// block quote marker, or a list item marker with content after it, also
// interrupts.
func (d *documentDriver) lineInterruptsParagraph(tail []Code) bool {
	if isBlank(tail) {
		return true
	}
	if delim, _, _ := matchRuler(tail, '-', '_', '*'); delim != 0 {
		probe := NewTokenizer(tail)
		if probe.attemptBool(paragraphThematicBreakProbe()) {
			return true
		}
	}
	if delim, _, _ := matchRun(tail, 6, '#'); delim != 0 {
		probe := NewTokenizer(tail)
		if probe.attemptBool(paragraphATXProbe()) {
			return true
		}
	}
	if delim, _, _ := matchFence(tail, 3, '`', '~'); delim != 0 {
		return true
	}
	if delim, _, _ := quoteMarker(tail); delim != 0 {
		return true
	}
	if delim, _, rest, _ := listMarker(tail); delim != 0 && !isBlank(rest) {
		return true
	}
	return false
}

// convertParagraphToSetextHeading retroactively turns the currently open
// paragraph into a HeadingSetext/HeadingSetextText span in place, rather
// than closing it as an ordinary Paragraph and opening a separate, empty
// heading beside it: a setext heading's text is indistinguishable from a
// paragraph until its underline line is seen.
func (d *documentDriver) convertParagraphToSetextHeading() {
	t := d.t
	if d.leaf.lastData >= 0 {
		t.exit(dataContentExitName(d.leaf.typ))
	}
	idx := d.leaf.enterIdx
	t.events[idx].Name = HeadingSetext
	insertAt := idx + 1

	rest := append([]Event{}, t.events[insertAt:]...)
	for i := range rest {
		if l := rest[i].Link; l != nil {
			if l.Previous >= insertAt {
				l.Previous++
			}
			if l.Next >= insertAt {
				l.Next++
			}
		}
	}
	shiftedSpanCodes := make(map[int][]Code, len(t.spanCodes))
	for k, v := range t.spanCodes {
		if k >= insertAt {
			shiftedSpanCodes[k+1] = v
		} else {
			shiftedSpanCodes[k] = v
		}
	}
	t.spanCodes = shiftedSpanCodes
	t.events = t.events[:insertAt]
	t.events = append(t.events, Event{Kind: Enter, Name: HeadingSetextText, Point: t.events[idx].Point})
	t.events = append(t.events, rest...)
	t.events = append(t.events, Event{Kind: Exit, Name: HeadingSetextText, Point: t.point})

	t.stack[len(t.stack)-1] = HeadingSetext
}

func (d *documentDriver) closeContainer() {
	f := d.containers[len(d.containers)-1]
	d.containers = d.containers[:len(d.containers)-1]
	d.t.exit(f.Name)
	if f.Name == ListOrdered || f.Name == ListUnordered {
		loose := d.listLoose[len(d.listLoose)-1]
		d.listLoose = d.listLoose[:len(d.listLoose)-1]
		d.t.events[f.EnterIdx].Loose = loose
	}
}

func (d *documentDriver) closeLeaf() {
	if d.leaf.typ == leafNone {
		return
	}
	name := leafTokenName(d.leaf.typ)
	if d.leaf.lastData >= 0 {
		d.t.exit(dataContentExitName(d.leaf.typ))
	}
	d.t.exit(name)
	d.leaf.reset()
}

func leafTokenName(b blockType) TokenName {
	switch b {
	case leafParagraph:
		return Paragraph
	case leafATXHeading:
		return HeadingAtx
	case leafSetextHeading:
		return HeadingSetext
	case leafThematicBreak:
		return ThematicBreak
	case leafFencedCode:
		return CodeFenced
	case leafIndentedCode:
		return CodeIndented
	case leafHTMLBlock:
		return HTMLFlow
	case leafDefinition:
		return Definition
	default:
		return noToken
	}
}

func dataContentExitName(b blockType) TokenName {
	switch b {
	case leafFencedCode, leafIndentedCode:
		return CodeFlowChunk
	case leafHTMLBlock:
		return HTMLFlowData
	default:
		return Data
	}
}

// emitData appends (or continues) the leaf's Data span for the codes
// consumed on the current line, chaining successive spans via Link so the
// sub-tokenize pass (splice.go) can walk the whole logical content run.
func (d *documentDriver) emitData(content ContentMode, codes []Code) {
	t := d.t
	name := Data
	if d.leaf.typ == leafFencedCode || d.leaf.typ == leafIndentedCode {
		name = CodeFlowChunk
	} else if d.leaf.typ == leafHTMLBlock {
		name = HTMLFlowData
	}

	if d.leaf.lastData >= 0 {
		t.exit(name)
	}

	enterIdx := len(t.events)
	link := &Link{Previous: d.leaf.lastData, Next: -1, Content: content}
	t.enterLink(name, link)
	if d.leaf.lastData >= 0 {
		t.events[d.leaf.lastData].Link.Next = enterIdx
	} else {
		d.leaf.firstData = enterIdx
	}
	d.leaf.lastData = enterIdx

	t.spanCodes[enterIdx] = append([]Code{}, codes...)
	for _, c := range codes {
		t.expect(c)
		t.consume(c)
	}
}

func (d *documentDriver) openContainer(name TokenName, marker rune, width, indent int, ordered bool) {
	enterIdx := len(d.t.events)
	d.t.enter(name)
	d.containers = append(d.containers, containerFrame{Name: name, Marker: marker, Width: width, Indent: indent, Ordered: ordered, EnterIdx: enterIdx})
	if name == ListOrdered || name == ListUnordered {
		d.listLoose = append(d.listLoose, false)
	}
	d.t.defineSkip(d.t.Point())
}

// markLooseFromBlank marks every list container among the first matched
// entries of d.containers as loose: called at the start of a line that
// followed a blank one, once we know how many enclosing containers the
// new line actually continues. A list that still has matched content past
// a blank line is loose by definition (spec.md's list-looseness rule);
// one that the blank merely trailed before closing is not touched.
func (d *documentDriver) markLooseFromBlank(matched int) {
	listIdx := -1
	for i := 0; i < len(d.containers); i++ {
		if d.containers[i].Name == ListOrdered || d.containers[i].Name == ListUnordered {
			listIdx++
			if i < matched {
				d.listLoose[listIdx] = true
			}
		}
	}
}

// processLine runs one physical line through match/close/open/recognize,
// the same four-step shape as a single call to a bufio.SplitFunc-based
// block scanner, generalized to the speculative-engine event model.
func (d *documentDriver) processLine(line []Code) {
	t := d.t
	content, ending := splitLineEnding(line)
	tail := content

	matched := 0
	for matched < len(d.containers) {
		next, ok := d.matchContainerContinuation(d.containers[matched], tail)
		if !ok {
			break
		}
		tail = next
		matched++
	}

	if d.pendingBlankLoose {
		d.markLooseFromBlank(matched)
		d.pendingBlankLoose = false
	}

	lazy := false
	if matched < len(d.containers) && d.leaf.typ == leafParagraph && !d.lastBlank && !d.lineInterruptsParagraph(tail) {
		// Lazy continuation: an unprefixed line may continue an open
		// paragraph even though it fails to re-match enclosing containers,
		// provided it isn't itself a block that interrupts a paragraph.
		lazy = true
		t.Lazy = true
	}

	if !lazy {
		if len(d.containers) > matched {
			d.closeLeaf()
		}
		for len(d.containers) > matched {
			d.closeContainer()
		}
	}

	// New container opens: not tried while an open fenced code or HTML
	// block continues on this line, since their contents cannot be
	// interrupted; any other open leaf is closed by the container that opens.
	for {
		if isBlank(tail) {
			break
		}
		if d.leaf.typ == leafFencedCode || d.leaf.typ == leafHTMLBlock {
			break
		}
		if n, t2 := countIndent(tail, 4); n >= 4 {
			_ = t2
			break // indent too deep to be a container marker
		}
		if delim, width, rest := quoteMarker(tail); delim != 0 {
			d.closeLeaf()
			d.openContainer(BlockQuote, delim, width, width, false)
			tail = rest
			continue
		}
		if delim, width, rest, ordered := listMarker(tail); delim != 0 {
			if !d.continuesSameList(delim, ordered) {
				d.closeLeaf()
				name := ListUnordered
				if ordered {
					name = ListOrdered
				}
				d.openContainer(name, delim, 0, 0, ordered)
			} else {
				d.closeLeaf()
			}
			indent := width
			if n, _ := countIndent(rest, 4); len(rest) == 0 || n >= 4 {
				indent = width // degenerate/blank item: 1-space rule
			}
			d.openContainer(ListItem, delim, width, width+0, ordered)
			d.containers[len(d.containers)-1].Indent = indent
			tail = rest
			continue
		}
		break
	}
	t.Lazy = false

	// Consume the container prefixes matched or opened above, so the leaf's
	// spans start at the offsets of their own codes.
	for _, c := range content[:len(content)-len(tail)] {
		t.expect(c)
		t.consume(c)
	}

	d.recognizeLeaf(tail, ending)
}

func (d *documentDriver) continuesSameList(delim rune, ordered bool) bool {
	if len(d.containers) == 0 {
		return false
	}
	top := d.containers[len(d.containers)-1]
	name := ListUnordered
	if ordered {
		name = ListOrdered
	}
	return top.Name == name && top.Marker == delim
}

// recognizeLeaf decides what the remainder of the current line means for
// the open leaf (continue, close, transform, or open a new one) and emits
// the corresponding events, mirroring the single big if-chain of a
// line-oriented block scanner.
func (d *documentDriver) recognizeLeaf(tail []Code, ending []Code) {
	t := d.t

	if d.leaf.typ == leafFencedCode {
		if d.closeFenceIfMatches(tail, ending) {
			return
		}
		d.emitData(ContentFlow, append(codesAfterIndent(tail, d.leaf.indent), ending...))
		return
	}
	if d.leaf.typ == leafHTMLBlock {
		if !isBlank(tail) {
			d.emitData(ContentFlow, append(tail, ending...))
			return
		}
		d.closeLeaf()
	}

	if isBlank(tail) {
		d.closeLeaf()
		d.lastBlank = true
		if len(d.containers) > 0 {
			d.pendingBlankLoose = true
		}
		if len(ending) > 0 {
			t.enter(BlankLineEnding)
			for _, c := range append(tail, ending...) {
				t.expect(c)
				t.consume(c)
			}
			t.exit(BlankLineEnding)
		}
		return
	}
	d.lastBlank = false

	if n, rest := countIndent(tail, 4); n == 4 && d.leaf.typ != leafParagraph {
		if d.leaf.typ != leafIndentedCode {
			d.closeLeaf()
			t.enter(CodeIndented)
			d.leaf.typ = leafIndentedCode
			d.leaf.firstData, d.leaf.lastData = -1, -1
		}
		d.emitData(ContentFlow, append(append([]Code{}, rest...), ending...))
		return
	}

	if d.leaf.typ == leafParagraph {
		if delim, width, _ := matchRuler(tail, '=', '-'); delim != 0 {
			d.convertParagraphToSetextHeading()
			t.enter(HeadingSetextUnderline)
			for _, c := range append(tail, ending...) {
				t.expect(c)
				t.consume(c)
			}
			t.exit(HeadingSetextUnderline)
			t.exit(HeadingSetext)
			d.leaf.reset()
			_ = width
			return
		}
		if delim, width, _ := matchFence(tail, 3, '`', '~'); delim != 0 {
			d.closeLeaf()
			d.openFence(delim, width, tail, ending)
			return
		}
		if delim, _, _ := matchRuler(tail, '-', '_', '*'); delim != 0 {
			d.closeLeaf()
			d.emitThematicBreak(tail, ending)
			return
		}
		if delim, level, _ := matchRun(tail, 6, '#'); delim != 0 {
			d.closeLeaf()
			d.emitATXHeading(level, tail[level:], ending)
			return
		}
		d.emitData(ContentText, append(tail, ending...))
		return
	}

	if delim, width, _ := matchFence(tail, 3, '`', '~'); delim != 0 {
		d.closeLeaf()
		d.openFence(delim, width, tail, ending)
		return
	}
	if delim, _, _ := matchRuler(tail, '-', '_', '*'); delim != 0 {
		d.closeLeaf()
		d.emitThematicBreak(tail, ending)
		return
	}
	if delim, level, _ := matchRun(tail, 6, '#'); delim != 0 {
		d.closeLeaf()
		d.emitATXHeading(level, tail[level:], ending)
		return
	}
	if looksLikeHTMLBlockStart(tail) {
		d.closeLeaf()
		t.enter(HTMLFlow)
		d.leaf.typ = leafHTMLBlock
		d.leaf.firstData, d.leaf.lastData = -1, -1
		d.emitData(ContentFlow, append(tail, ending...))
		return
	}
	if isMark(firstCode(tail), '[') {
		if ok, rest := tryDefinition(tail); ok {
			d.closeLeaf()
			d.emitDefinitionLine(rest, ending)
			return
		}
	}

	d.closeLeaf()
	d.leaf.enterIdx = len(t.events)
	t.enter(Paragraph)
	d.leaf.typ = leafParagraph
	d.leaf.firstData, d.leaf.lastData = -1, -1
	d.emitData(ContentText, append(tail, ending...))
}

func firstCode(tail []Code) Code {
	if len(tail) == 0 {
		return End
	}
	return tail[0]
}

// looksLikeHTMLBlockStart implements a reduced two-condition HTML-block
// start test (SPEC_FULL.md's documented reduction of CommonMark's full
// seven-condition table): a line beginning "<tag" for a small set of
// block-level tag names, or a raw "<!--" comment start.
func looksLikeHTMLBlockStart(tail []Code) bool {
	s := codesToASCIIPrefix(tail, 10)
	if len(s) < 2 || s[0] != '<' {
		return false
	}
	if len(s) >= 4 && s[:4] == "<!--" {
		return true
	}
	rest := s[1:]
	for _, tag := range htmlBlockTags {
		if hasASCIIPrefixFold(rest, tag) {
			return true
		}
	}
	return false
}

var htmlBlockTags = []string{
	"address", "article", "aside", "base", "blockquote", "body", "details",
	"dialog", "div", "dl", "fieldset", "figcaption", "figure", "footer",
	"form", "h1", "h2", "h3", "h4", "h5", "h6", "head", "header", "hr",
	"html", "iframe", "legend", "li", "main", "menu", "nav", "ol", "p",
	"pre", "script", "section", "style", "summary", "table", "tbody",
	"td", "textarea", "tfoot", "th", "thead", "title", "tr", "ul",
}

func codesToASCIIPrefix(codes []Code, n int) string {
	b := make([]rune, 0, n)
	for i := 0; i < len(codes) && i < n; i++ {
		if codes[i].Kind == CodeChar {
			b = append(b, codes[i].Char)
		} else {
			b = append(b, ' ')
		}
	}
	return string(b)
}

func hasASCIIPrefixFold(s, prefix string) bool {
	if len(s) < len(prefix) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		a, b := s[i], prefix[i]
		if a >= 'A' && a <= 'Z' {
			a += 'a' - 'A'
		}
		if a != b {
			return false
		}
	}
	return true
}

// closeFenceIfMatches tests tail against the closing-fence rule for the
// currently open fenced code block (same delimiter, width at least that of
// the opening fence, nothing but trailing blanks after it) and, if it
// matches, emits the closing CodeFencedFence markup and closes the leaf.
// It reports whether tail was a closing fence.
func (d *documentDriver) closeFenceIfMatches(tail []Code, ending []Code) bool {
	t := d.t
	n, rest := countIndent(tail, d.leaf.indent)
	delim, width, after := matchFence(rest, 3, rune(d.leaf.delim))
	if delim == 0 || width < d.leaf.width || !isBlank(after) {
		return false
	}

	if d.leaf.lastData >= 0 {
		t.exit(CodeFlowChunk)
	}
	for i := 0; i < n; i++ {
		t.expect(tail[i])
		t.consume(tail[i])
	}
	t.enter(CodeFencedFence)
	t.enter(CodeFencedFenceSequence)
	for i := n; i < n+width; i++ {
		t.expect(tail[i])
		t.consume(tail[i])
	}
	t.exit(CodeFencedFenceSequence)
	t.exit(CodeFencedFence)
	for _, c := range after {
		t.expect(c)
		t.consume(c)
	}
	for _, c := range ending {
		t.expect(c)
		t.consume(c)
	}
	t.exit(CodeFenced)
	d.leaf.reset()
	return true
}

func codesAfterIndent(tail []Code, indent int) []Code {
	_, rest := countIndent(tail, indent)
	return rest
}

func (d *documentDriver) openFence(delim rune, width int, tail []Code, ending []Code) {
	t := d.t
	t.enter(CodeFenced)
	t.enter(CodeFencedFence)
	t.enter(CodeFencedFenceSequence)
	for i := 0; i < width; i++ {
		t.expect(tail[i])
		t.consume(tail[i])
	}
	t.exit(CodeFencedFenceSequence)
	info := skipSpaceOrTab(tail[width:])
	if len(info) > 0 {
		t.enter(CodeFencedFenceInfo)
		for _, c := range info {
			t.expect(c)
			t.consume(c)
		}
		t.exit(CodeFencedFenceInfo)
	}
	t.exit(CodeFencedFence)
	for _, c := range ending {
		t.expect(c)
		t.consume(c)
	}
	d.leaf.typ = leafFencedCode
	d.leaf.delim = delim
	d.leaf.width = width
	d.leaf.indent = 0
	d.leaf.firstData, d.leaf.lastData = -1, -1
}

func (d *documentDriver) emitThematicBreak(tail []Code, ending []Code) {
	t := d.t
	t.enter(ThematicBreak)
	t.enter(ThematicBreakSequence)
	for _, c := range append(append([]Code{}, tail...), ending...) {
		t.expect(c)
		t.consume(c)
	}
	t.exit(ThematicBreakSequence)
	t.exit(ThematicBreak)
}

func (d *documentDriver) emitATXHeading(level int, rest []Code, ending []Code) {
	t := d.t
	t.enter(HeadingAtx)
	t.enter(HeadingAtxSequence)
	for i := 0; i < level; i++ {
		c := Char('#')
		t.expect(c)
		t.consume(c)
	}
	t.exit(HeadingAtxSequence)
	body := skipSpaceOrTab(rest)
	for _, c := range rest[:len(rest)-len(body)] {
		t.expect(c)
		t.consume(c)
	}
	text := trimTrailingHashesAndSpace(body)
	if len(text) > 0 {
		// Carry a Link like emitData's Data spans do, so the splice resolver
		// re-tokenizes this heading's text under Text content mode instead of
		// leaving it a single literal span: an ATX heading's text admits the
		// same inline constructs (emphasis, links, ...) as a paragraph's.
		enterIdx := len(t.events)
		link := &Link{Previous: -1, Next: -1, Content: ContentText}
		t.enterLink(HeadingAtxText, link)
		t.spanCodes[enterIdx] = append([]Code{}, text...)
		for _, c := range text {
			t.expect(c)
			t.consume(c)
		}
		t.exit(HeadingAtxText)
	}
	for _, c := range body[len(text):] {
		t.expect(c)
		t.consume(c)
	}
	for _, c := range ending {
		t.expect(c)
		t.consume(c)
	}
	t.exit(HeadingAtx)
}

func trimTrailingHashesAndSpace(text []Code) []Code {
	end := len(text)
	for end > 0 && text[end-1].IsSpaceOrTab() {
		end--
	}
	hashEnd := end
	for hashEnd > 0 && isMark(text[hashEnd-1], '#') {
		hashEnd--
	}
	if hashEnd < end && (hashEnd == 0 || text[hashEnd-1].IsSpaceOrTab()) {
		end = hashEnd
		for end > 0 && text[end-1].IsSpaceOrTab() {
			end--
		}
	}
	return text[:end]
}

// tryDefinition checks whether tail begins a link reference definition;
// real label/destination/title parsing happens at the text-content
// sub-tokenize stage, so this is a cheap structural gate only: a line
// starting with '[' that contains a top-level "]:".
func tryDefinition(tail []Code) (bool, []Code) {
	depth := 0
	for i, c := range tail {
		if isMark(c, '[') {
			depth++
		} else if isMark(c, ']') {
			depth--
			if depth == 0 && i+1 < len(tail) && isMark(tail[i+1], ':') {
				return true, tail
			}
		}
	}
	return false, nil
}

func (d *documentDriver) emitDefinitionLine(tail []Code, ending []Code) {
	t := d.t
	t.enter(Definition)
	d.leaf.typ = leafDefinition
	d.leaf.firstData, d.leaf.lastData = -1, -1
	d.emitData(ContentString, append(append([]Code{}, tail...), ending...))
}

// DecodeEntity exposes decodeEntityRune for collaborator packages (the html
// compiler) that need to resolve a CharacterReference's raw name (without
// the surrounding '&'/';') back to its rune without re-deriving the table.
func DecodeEntity(name string) (rune, bool) { return decodeEntityRune(name) }

// decodeEntityRune looks up a small built-in HTML4 character reference
// table (SPEC_FULL.md's documented reduction of the full HTML5 named
// character reference table) plus numeric/hex references.
func decodeEntityRune(name string) (rune, bool) {
	if len(name) > 1 && name[0] == '#' {
		if len(name) > 2 && (name[1] == 'x' || name[1] == 'X') {
			var v int64
			for _, r := range name[2:] {
				v = v*16 + int64(hexDigit(r))
			}
			return rune(v), v > 0 && v <= utf8.MaxRune
		}
		var v int64
		for _, r := range name[1:] {
			if r < '0' || r > '9' {
				return 0, false
			}
			v = v*10 + int64(r-'0')
		}
		return rune(v), v > 0 && v <= utf8.MaxRune
	}
	r, ok := htmlEntities[name]
	return r, ok
}

func hexDigit(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10
	default:
		return 0
	}
}

var htmlEntities = map[string]rune{
	"amp": '&', "lt": '<', "gt": '>', "quot": '"', "apos": '\'',
	"nbsp": ' ', "copy": '©', "reg": '®', "mdash": '—',
	"ndash": '–', "hellip": '…',
}
