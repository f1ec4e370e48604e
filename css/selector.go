package css

import (
	"strings"
	"sync"

	"github.com/tdewolff/parse/v2/css"
)

// ModifierType classifies a selector modifier.
type ModifierType int

const (
	ModifierID ModifierType = iota
	ModifierClass
	ModifierAttribute
	ModifierPseudo
)

func (t ModifierType) String() string {
	switch t {
	case ModifierID:
		return "id"
	case ModifierClass:
		return "class"
	case ModifierAttribute:
		return "attribute"
	case ModifierPseudo:
		return "pseudo"
	}
	return "unknown"
}

// Modifier qualifies a simple selector part: #id, .class, [attr] or :pseudo.
type Modifier struct {
	Type ModifierType
	Text string
	Line int
	Col  int
}

// SelectorPart is one unit of a selector chain: either a simple selector
// (element name plus modifiers) or a combinator between two simple selectors.
type SelectorPart struct {
	Combinator string // "descendant", "child", "adjacent-sibling" or "sibling"; empty for simple parts
	Element    string
	Modifiers  []*Modifier
	Text       string
	Line       int
	Col        int
}

// IsCombinator reports whether the part separates two simple selectors.
func (p *SelectorPart) IsCombinator() bool { return p.Combinator != "" }

// Selector is a single parsed selector with its position in the source.
type Selector struct {
	Text  string
	Parts []*SelectorPart
	Line  int
	Col   int
}

// srcToken is a lexer token annotated with its offset in the reconstructed
// prelude or value text.
type srcToken struct {
	tt   css.TokenType
	data string
	off  int
}

func annotateTokens(lead []byte, values []css.Token) ([]srcToken, string) {
	toks := make([]srcToken, 0, len(values)+1)
	var sb strings.Builder
	if len(lead) > 0 {
		// lead carries the bytes consumed before Values(), re-lex them to get
		// proper token types
		toks = append(toks, lexValue(string(lead))...)
		sb.Write(lead)
	}
	for _, v := range values {
		toks = append(toks, srcToken{v.TokenType, string(v.Data), sb.Len()})
		sb.Write(v.Data)
	}
	return toks, sb.String()
}

// Cached selector breakdown. All offsets are relative to the prelude start,
// so a hit can be materialized at any position in any stylesheet.
type selectorTemplate struct {
	text  string
	off   int
	parts []partTemplate
}

type partTemplate struct {
	combinator string
	element    string
	modifiers  []modifierTemplate
	text       string
	off        int
}

type modifierTemplate struct {
	typ  ModifierType
	text string
	off  int
}

func (st *selectorTemplate) materialize(base int, pos *positions) *Selector {
	sel := &Selector{Text: st.text}
	sel.Line, sel.Col = pos.lineCol(base + st.off)
	for i := range st.parts {
		pt := &st.parts[i]
		part := &SelectorPart{Combinator: pt.combinator, Element: pt.element, Text: pt.text}
		part.Line, part.Col = pos.lineCol(base + pt.off)
		for _, mt := range pt.modifiers {
			m := &Modifier{Type: mt.typ, Text: mt.text}
			m.Line, m.Col = pos.lineCol(base + mt.off)
			part.Modifiers = append(part.Modifiers, m)
		}
		sel.Parts = append(sel.Parts, part)
	}
	return sel
}

// SelectorCache memoizes parsed rule preludes keyed by their text.
type SelectorCache struct {
	mu sync.Mutex
	m  map[string][]*selectorTemplate
}

// NewSelectorCache creates an empty cache, safe for concurrent use.
func NewSelectorCache() *SelectorCache {
	return &SelectorCache{m: make(map[string][]*selectorTemplate)}
}

func (c *SelectorCache) get(key string) ([]*selectorTemplate, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.m[key]
	return v, ok
}

func (c *SelectorCache) put(key string, v []*selectorTemplate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = v
}

// Len returns the number of cached preludes.
func (c *SelectorCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.m)
}

var combinatorNames = map[string]string{
	">": "child",
	"+": "adjacent-sibling",
	"~": "sibling",
}

// parseSelectorTemplates breaks prelude tokens into comma separated selector
// templates. Commas inside parentheses and brackets do not split.
func parseSelectorTemplates(tokens []srcToken, src string) []*selectorTemplate {
	var groups [][]srcToken
	depth := 0
	start := 0
	for i, t := range tokens {
		switch t.tt {
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken, css.LeftBraceToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken, css.RightBraceToken:
			if depth > 0 {
				depth--
			}
		case css.CommaToken:
			if depth == 0 {
				groups = append(groups, tokens[start:i])
				start = i + 1
			}
		}
	}
	groups = append(groups, tokens[start:])

	sels := make([]*selectorTemplate, 0, len(groups))
	for _, g := range groups {
		if st := parseSelectorGroup(g, src); st != nil {
			sels = append(sels, st)
		}
	}
	return sels
}

func isTrivialToken(t srcToken) bool {
	return t.tt == css.WhitespaceToken || t.tt == css.CommentToken
}

func parseSelectorGroup(tokens []srcToken, src string) *selectorTemplate {
	for len(tokens) > 0 && isTrivialToken(tokens[0]) {
		tokens = tokens[1:]
	}
	for len(tokens) > 0 && isTrivialToken(tokens[len(tokens)-1]) {
		tokens = tokens[:len(tokens)-1]
	}
	if len(tokens) == 0 {
		return nil
	}

	st := &selectorTemplate{off: tokens[0].off}
	var (
		cur       *partTemplate
		curEnd    int
		pendingWS *srcToken
	)

	flush := func() {
		if cur != nil {
			cur.text = src[cur.off:curEnd]
			st.parts = append(st.parts, *cur)
			cur = nil
		}
	}
	ensure := func(off int) *partTemplate {
		if cur == nil {
			cur = &partTemplate{off: off}
			curEnd = off
		}
		return cur
	}
	consume := func(t srcToken) {
		curEnd = t.off + len(t.data)
	}

	i := 0
	for i < len(tokens) {
		t := tokens[i]

		if t.tt == css.WhitespaceToken {
			if cur != nil {
				flush()
				ws := t
				pendingWS = &ws
			}
			i++
			continue
		}
		if t.tt == css.CommentToken {
			i++
			continue
		}
		if t.tt == css.DelimToken {
			if name, ok := combinatorNames[t.data]; ok {
				flush()
				st.parts = append(st.parts, partTemplate{combinator: name, text: t.data, off: t.off})
				pendingWS = nil
				i++
				continue
			}
		}
		if pendingWS != nil {
			st.parts = append(st.parts, partTemplate{combinator: "descendant", text: pendingWS.data, off: pendingWS.off})
			pendingWS = nil
		}

		p := ensure(t.off)
		switch t.tt {
		case css.IdentToken, css.PercentageToken, css.NumberToken, css.DimensionToken:
			p.element += t.data
			consume(t)
			i++
		case css.DelimToken:
			switch t.data {
			case "*":
				p.element += "*"
				consume(t)
				i++
			case ".":
				text := t.data
				off := t.off
				consume(t)
				if i+1 < len(tokens) && tokens[i+1].tt == css.IdentToken {
					text += tokens[i+1].data
					consume(tokens[i+1])
					i++
				}
				p.modifiers = append(p.modifiers, modifierTemplate{ModifierClass, text, off})
				i++
			default:
				consume(t)
				i++
			}
		case css.HashToken:
			p.modifiers = append(p.modifiers, modifierTemplate{ModifierID, t.data, t.off})
			consume(t)
			i++
		case css.LeftBracketToken:
			off := t.off
			depth := 0
			for i < len(tokens) {
				tok := tokens[i]
				consume(tok)
				if tok.tt == css.LeftBracketToken {
					depth++
				}
				if tok.tt == css.RightBracketToken {
					depth--
					if depth == 0 {
						i++
						break
					}
				}
				i++
			}
			p.modifiers = append(p.modifiers, modifierTemplate{ModifierAttribute, src[off:curEnd], off})
		case css.ColonToken:
			off := t.off
			consume(t)
			i++
			for i < len(tokens) && tokens[i].tt == css.ColonToken {
				consume(tokens[i])
				i++
			}
			if i < len(tokens) {
				switch tokens[i].tt {
				case css.IdentToken:
					consume(tokens[i])
					i++
				case css.FunctionToken:
					depth := 1
					consume(tokens[i])
					i++
					for i < len(tokens) && depth > 0 {
						tok := tokens[i]
						switch tok.tt {
						case css.FunctionToken, css.LeftParenthesisToken:
							depth++
						case css.RightParenthesisToken:
							depth--
						}
						consume(tok)
						i++
					}
				}
			}
			p.modifiers = append(p.modifiers, modifierTemplate{ModifierPseudo, src[off:curEnd], off})
		default:
			consume(t)
			i++
		}
	}
	flush()

	for len(st.parts) > 0 && st.parts[len(st.parts)-1].combinator != "" {
		st.parts = st.parts[:len(st.parts)-1]
	}
	if len(st.parts) == 0 {
		return nil
	}

	last := st.parts[len(st.parts)-1]
	end := last.off + len(last.text)
	st.text = strings.TrimSpace(src[st.off:end])
	return st
}
