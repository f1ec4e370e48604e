package css

import (
	"bytes"
	"errors"
	"io"
	"regexp"
	"sort"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses CSS stylesheets and reports what it finds as events.
// Listeners are registered with AddListener before calling Parse.
type Parser struct {
	Dispatcher

	log   *zap.Logger
	cache *SelectorCache
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser"), cache: NewSelectorCache()}
}

// UseSelectorCache replaces the parser's selector cache, letting callers share
// parsed selectors between stylesheets.
func (p *Parser) UseSelectorCache(c *SelectorCache) {
	if c != nil {
		p.cache = c
	}
}

// Parse parses CSS text and fires events at registered listeners. Parsing is
// lenient, malformed input produces error events rather than stopping the
// walk.
func (p *Parser) Parse(text string) {
	p.log.Debug("Parsing CSS", zap.Int("bytes", len(text)))

	input := parse.NewInput(bytes.NewReader([]byte(text)))
	w := &walker{
		p:       p,
		input:   input,
		parser:  css.NewParser(input, false),
		pos:     newPositions(text),
		src:     text,
		lastOff: -1,
	}

	p.fire(&Event{Type: EventStylesheetStart, Line: 1, Col: 1})
	w.walk()
	w.closeScopes()
	line, col := w.pos.lineCol(len(text))
	p.fire(&Event{Type: EventStylesheetEnd, Line: line, Col: col})
}

type scopeKind int

const (
	scopeRule scopeKind = iota
	scopeConditional
	scopePage
	scopePageMargin
	scopeFontFace
	scopeViewport
	scopeKeyframes
	scopeKeyframeRule
)

type scopeEntry struct {
	start   *Event
	endType EventType
	kind    scopeKind
}

type walker struct {
	p      *Parser
	input  *parse.Input
	parser *css.Parser
	pos    *positions
	src    string

	scopes  []scopeEntry
	pending []*Selector
	lastOff int
}

func (w *walker) walk() {
	for {
		off := w.input.Offset()
		gt, _, data := w.parser.Next()

		switch gt {
		case css.ErrorGrammar:
			err := w.parser.Err()
			if err == nil || errors.Is(err, io.EOF) {
				return
			}
			if off == w.lastOff {
				// The tokenizer made no progress, give up on the rest.
				w.p.log.Debug("CSS parse stalled", zap.Error(err))
				return
			}
			itemOff := w.pos.skipTrivia(off)
			if !w.recoverDeclaration(itemOff) {
				line, col := w.pos.lineCol(itemOff)
				w.p.fire(&Event{Type: EventError, Line: line, Col: col, Message: parseErrorMessage(err)})
			}

		case css.CommentGrammar, css.TokenGrammar:
			// comment directives are extracted before parsing

		case css.BeginAtRuleGrammar:
			w.beginAtRule(string(data), w.pos.skipTrivia(off))

		case css.AtRuleGrammar:
			w.atRule(string(data), w.pos.skipTrivia(off))

		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			w.endScope()

		case css.QualifiedRuleGrammar:
			// one selector group of a comma separated list
			w.pending = append(w.pending, w.parseSelectors(data, w.parser.Values(), off)...)

		case css.BeginRulesetGrammar:
			w.beginRule(data, off)

		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			w.declaration(string(data), off)
		}

		w.lastOff = off
	}
}

func (w *walker) push(ev *Event, end EventType, kind scopeKind) {
	w.p.fire(ev)
	w.scopes = append(w.scopes, scopeEntry{start: ev, endType: end, kind: kind})
}

// endScope pops the innermost scope and fires its end event with the start
// event's payload.
func (w *walker) endScope() {
	if len(w.scopes) == 0 {
		return
	}
	top := w.scopes[len(w.scopes)-1]
	w.scopes = w.scopes[:len(w.scopes)-1]
	ev := *top.start
	ev.Type = top.endType
	w.p.fire(&ev)
}

func (w *walker) closeScopes() {
	for len(w.scopes) > 0 {
		w.endScope()
	}
}

func (w *walker) atScope(kind scopeKind) bool {
	return len(w.scopes) > 0 && w.scopes[len(w.scopes)-1].kind == kind
}

func (w *walker) inConditional() bool {
	for _, s := range w.scopes {
		if s.kind == scopeConditional {
			return true
		}
	}
	return false
}

// marginBoxes lists @page margin box rule names.
var marginBoxes = map[string]bool{
	"top-left-corner":     true,
	"top-left":            true,
	"top-center":          true,
	"top-right":           true,
	"top-right-corner":    true,
	"bottom-left-corner":  true,
	"bottom-left":         true,
	"bottom-center":       true,
	"bottom-right":        true,
	"bottom-right-corner": true,
	"left-top":            true,
	"left-middle":         true,
	"left-bottom":         true,
	"right-top":           true,
	"right-middle":        true,
	"right-bottom":        true,
}

func (w *walker) beginAtRule(name string, off int) {
	prelude := strings.TrimSpace(tokensText(w.parser.Values()))
	line, col := w.pos.lineCol(off)

	kind := strings.ToLower(strings.TrimPrefix(name, "@"))
	prefix := ""
	if strings.HasPrefix(kind, "-") {
		if i := strings.Index(kind[1:], "-"); i >= 0 {
			prefix = kind[1 : 1+i]
			kind = kind[i+2:]
		}
	}

	ev := &Event{Line: line, Col: col, Prelude: prelude, Prefix: prefix}
	switch kind {
	case "media":
		ev.Type = EventMediaStart
		w.push(ev, EventMediaEnd, scopeConditional)
	case "supports":
		ev.Type = EventSupportsStart
		w.push(ev, EventSupportsEnd, scopeConditional)
	case "container":
		ev.Type = EventContainerStart
		w.push(ev, EventContainerEnd, scopeConditional)
	case "document":
		ev.Type = EventDocumentStart
		w.push(ev, EventDocumentEnd, scopeConditional)
	case "page":
		ev.Type = EventPageStart
		ev.Name = prelude
		w.push(ev, EventPageEnd, scopePage)
	case "font-face":
		ev.Type = EventFontFaceStart
		w.push(ev, EventFontFaceEnd, scopeFontFace)
	case "viewport":
		ev.Type = EventViewportStart
		w.push(ev, EventViewportEnd, scopeViewport)
	case "keyframes":
		ev.Type = EventKeyframesStart
		ev.Name = prelude
		w.push(ev, EventKeyframesEnd, scopeKeyframes)
	default:
		if marginBoxes[kind] && w.atScope(scopePage) {
			ev.Type = EventPageMarginStart
			ev.Name = "@" + kind
			w.push(ev, EventPageMarginEnd, scopePageMargin)
			return
		}
		w.p.fire(&Event{Type: EventWarning, Line: line, Col: col, Message: "Unknown @ rule: " + name + "."})
		w.skipAtRuleBlock()
	}
}

// atRule handles blockless @-rules such as @import and @charset.
func (w *walker) atRule(name string, off int) {
	values := w.parser.Values()
	line, col := w.pos.lineCol(off)

	switch strings.ToLower(strings.TrimPrefix(name, "@")) {
	case "import":
		w.p.fire(&Event{Type: EventImport, Line: line, Col: col, URI: extractImportURL(values)})
	case "charset":
		cs := ""
		for _, t := range values {
			if t.TokenType == css.StringToken {
				cs = unquote(string(t.Data))
				break
			}
		}
		w.p.fire(&Event{Type: EventCharset, Line: line, Col: col, Charset: cs})
	case "namespace":
		w.p.fire(&Event{Type: EventNamespace, Line: line, Col: col, Prelude: strings.TrimSpace(tokensText(values))})
	default:
		w.p.fire(&Event{Type: EventWarning, Line: line, Col: col, Message: "Unknown @ rule: " + name + "."})
	}
}

func (w *walker) beginRule(data []byte, off int) {
	sels := append(w.pending, w.parseSelectors(data, w.parser.Values(), off)...)
	w.pending = nil

	line, col := w.pos.lineCol(w.pos.skipTrivia(off))
	if len(sels) > 0 {
		line, col = sels[0].Line, sels[0].Col
	}

	ev := &Event{Line: line, Col: col, Selectors: sels}
	if w.atScope(scopeKeyframes) {
		ev.Type = EventKeyframeRuleStart
		w.push(ev, EventKeyframeRuleEnd, scopeKeyframeRule)
		return
	}
	ev.Type = EventRuleStart
	ev.Nested = w.inConditional()
	w.push(ev, EventRuleEnd, scopeRule)
}

// parseSelectors turns a ruleset prelude into selectors, going through the
// cache keyed by the prelude text.
func (w *walker) parseSelectors(data []byte, values []css.Token, off int) []*Selector {
	tokens, prelude := annotateTokens(data, values)
	if strings.TrimSpace(prelude) == "" {
		return nil
	}

	templates, ok := w.p.cache.get(prelude)
	if !ok {
		templates = parseSelectorTemplates(tokens, prelude)
		w.p.cache.put(prelude, templates)
	}

	// Align template offsets with the source. The prelude may carry leading
	// trivia of its own, in which case skipTrivia overshoots by that length.
	base := w.pos.skipTrivia(off) - triviaLen(prelude)
	sels := make([]*Selector, 0, len(templates))
	for _, st := range templates {
		sels = append(sels, st.materialize(base, w.pos))
	}
	return sels
}

func (w *walker) declaration(name string, off int) {
	raw := name
	hack := ""
	if len(raw) > 1 && (raw[0] == '_' || raw[0] == '*' || raw[0] == '$') {
		hack = raw[:1]
		name = raw[1:]
	}

	// The item offset may sit before stray semicolons left over from the
	// previous declaration.
	nameStart := w.pos.skipTrivia(off)
	for nameStart < len(w.src) && w.src[nameStart] == ';' {
		nameStart = w.pos.skipTrivia(nameStart + 1)
	}
	line, col := w.pos.lineCol(nameStart)

	values, important := stripImportant(w.parser.Values())
	values = trimSpaceTokens(values)
	valueStart := w.findValueStart(nameStart + len(raw))
	tokens, text := annotateTokens(nil, values)

	w.p.fire(&Event{
		Type:      EventProperty,
		Line:      line,
		Col:       col,
		Property:  name,
		Hack:      hack,
		Value:     parseValue(tokens, text, valueStart, w.pos),
		Important: important,
		Invalid:   checkPropertyName(name),
	})
}

// findValueStart locates the first value byte after the declaration name
// ending at the given offset.
func (w *walker) findValueStart(after int) int {
	i := w.pos.skipTrivia(after)
	if i < len(w.src) && w.src[i] == ':' {
		return w.pos.skipTrivia(i + 1)
	}
	// Escapes in the name can throw the offset off, look for the colon nearby.
	end := after + 128
	if end > len(w.src) {
		end = len(w.src)
	}
	if after >= 0 && after < end {
		if j := strings.IndexByte(w.src[after:end], ':'); j >= 0 {
			return w.pos.skipTrivia(after + j + 1)
		}
	}
	return i
}

var importantRE = regexp.MustCompile(`(?i)!\s*important\s*$`)

// recoverDeclaration re-parses a star or dollar prefixed declaration that the
// grammar rejected, so property hacks still reach the listeners.
func (w *walker) recoverDeclaration(off int) bool {
	if off >= len(w.src) {
		return false
	}
	c := w.src[off]
	if c != '*' && c != '$' {
		return false
	}

	i := off + 1
	start := i
	for i < len(w.src) && isNameByte(w.src[i]) {
		i++
	}
	if i == start {
		return false
	}
	name := w.src[start:i]

	i = w.pos.skipTrivia(i)
	if i >= len(w.src) || w.src[i] != ':' {
		return false
	}
	valStart := w.pos.skipTrivia(i + 1)
	end := valStart
	for end < len(w.src) && w.src[end] != ';' && w.src[end] != '}' {
		end++
	}

	valText := strings.TrimRight(w.src[valStart:end], " \t\r\n\f")
	important := false
	if m := importantRE.FindStringIndex(valText); m != nil {
		important = true
		valText = strings.TrimRight(valText[:m[0]], " \t\r\n\f")
	}

	line, col := w.pos.lineCol(off)
	w.p.fire(&Event{
		Type:      EventProperty,
		Line:      line,
		Col:       col,
		Property:  name,
		Hack:      string(c),
		Value:     parseValue(lexValue(valText), valText, valStart, w.pos),
		Important: important,
		Invalid:   checkPropertyName(name),
	})
	return true
}

// lexValue tokenizes a raw value string outside the grammar walk.
func lexValue(s string) []srcToken {
	lexer := css.NewLexer(parse.NewInputString(s))
	var tokens []srcToken
	off := 0
	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			return tokens
		}
		tokens = append(tokens, srcToken{tt: tt, data: string(data), off: off})
		off += len(data)
	}
}

func isNameByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' ||
		b >= '0' && b <= '9' || b == '-' || b == '_' || b >= 0x80
}

// skipAtRuleBlock skips tokens until the matching end of an @-rule block.
func (w *walker) skipAtRuleBlock() {
	depth := 1
	for depth > 0 {
		gt, _, _ := w.parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

func parseErrorMessage(err error) string {
	var perr *parse.Error
	if errors.As(err, &perr) {
		return perr.Message
	}
	return err.Error()
}

// extractImportURL extracts the URL from @import tokens.
// Handles: @import "url"; @import url("url"); @import url(url);
func extractImportURL(tokens []css.Token) string {
	for _, t := range tokens {
		switch t.TokenType {
		case css.StringToken:
			return unquote(string(t.Data))
		case css.URLToken:
			s := string(t.Data)
			s = strings.TrimPrefix(s, "url(")
			s = strings.TrimSuffix(s, ")")
			return unquote(strings.TrimSpace(s))
		}
	}
	return ""
}

// positions maps byte offsets in the source to line and column numbers, both
// one based.
type positions struct {
	src   string
	lines []int
}

func newPositions(src string) *positions {
	lines := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			lines = append(lines, i+1)
		}
	}
	return &positions{src: src, lines: lines}
}

func (p *positions) lineCol(off int) (int, int) {
	if off < 0 {
		off = 0
	}
	if off > len(p.src) {
		off = len(p.src)
	}
	line := sort.Search(len(p.lines), func(i int) bool { return p.lines[i] > off }) - 1
	return line + 1, off - p.lines[line] + 1
}

// skipTrivia advances past whitespace and comments starting at off.
func (p *positions) skipTrivia(off int) int {
	if off < 0 {
		off = 0
	}
	if off >= len(p.src) {
		return len(p.src)
	}
	return off + triviaLen(p.src[off:])
}

// triviaLen returns the length of leading whitespace and comments in s.
func triviaLen(s string) int {
	i := 0
	for i < len(s) {
		switch s[i] {
		case ' ', '\t', '\n', '\r', '\f':
			i++
		case '/':
			if i+1 >= len(s) || s[i+1] != '*' {
				return i
			}
			end := strings.Index(s[i+2:], "*/")
			if end < 0 {
				return len(s)
			}
			i += 2 + end + 2
		default:
			return i
		}
	}
	return i
}
