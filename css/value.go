package css

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/tdewolff/parse/v2/css"
)

// PartType classifies a single component of a declaration value.
type PartType int

const (
	PartNumber PartType = iota
	PartInteger
	PartPercentage
	PartLength
	PartAngle
	PartTime
	PartFrequency
	PartResolution
	PartDimension
	PartColor
	PartURI
	PartString
	PartIdent
	PartFunction
	PartOperator
)

func (t PartType) String() string {
	switch t {
	case PartNumber:
		return "number"
	case PartInteger:
		return "integer"
	case PartPercentage:
		return "percentage"
	case PartLength:
		return "length"
	case PartAngle:
		return "angle"
	case PartTime:
		return "time"
	case PartFrequency:
		return "frequency"
	case PartResolution:
		return "resolution"
	case PartDimension:
		return "dimension"
	case PartColor:
		return "color"
	case PartURI:
		return "uri"
	case PartString:
		return "string"
	case PartIdent:
		return "identifier"
	case PartFunction:
		return "function"
	case PartOperator:
		return "operator"
	}
	return "unknown"
}

// ValuePart is one typed component of a declaration value.
type ValuePart struct {
	Type PartType
	Text string
	Line int
	Col  int

	Number  float64 // numeric value, valid when Numeric is set
	Numeric bool
	Units   string // unit of dimensions, "%" for percentages

	URI string // unquoted target of uri parts

	Name     string // function name of function and functional color parts
	HasAlpha bool   // color with an alpha channel (rgba, hsla)
	HasHue   bool   // color in a hue based space (hsl, hsla, hwb)
}

// Value is a declaration value broken into typed parts. Text excludes any
// trailing !important.
type Value struct {
	Text  string
	Parts []*ValuePart
	Line  int
	Col   int
}

var integerRE = regexp.MustCompile(`^[-+]?\d+$`)

func dimensionType(unit string) PartType {
	switch unit {
	case "em", "ex", "ch", "rem", "px", "cm", "mm", "q", "in", "pt", "pc", "vw", "vh", "vmin", "vmax":
		return PartLength
	case "deg", "rad", "grad", "turn":
		return PartAngle
	case "s", "ms":
		return PartTime
	case "hz", "khz":
		return PartFrequency
	case "dpi", "dpcm", "dppx":
		return PartResolution
	}
	return PartDimension
}

// splitDimension separates the numeric value from the unit of a dimension
// token such as "10px".
func splitDimension(s string) (float64, string) {
	numEnd := 0
	for i, r := range s {
		if unicode.IsDigit(r) || r == '.' || r == '-' || r == '+' {
			numEnd = i + 1
		} else {
			break
		}
	}
	if numEnd == 0 {
		return 0, strings.ToLower(s)
	}
	num, _ := strconv.ParseFloat(s[:numEnd], 64)
	return num, strings.ToLower(s[numEnd:])
}

// extractURL unwraps url(...) notation and surrounding quotes.
func extractURL(s string) string {
	if len(s) >= 4 && strings.EqualFold(s[:4], "url(") {
		s = s[4:]
		s = strings.TrimSuffix(s, ")")
	}
	return unquote(strings.TrimSpace(s))
}

func colorFunction(name string) (alpha, hue, ok bool) {
	switch name {
	case "rgb":
		return false, false, true
	case "rgba":
		return true, false, true
	case "hsl":
		return false, true, true
	case "hsla":
		return true, true, true
	case "hwb":
		return false, true, true
	case "lab", "lch", "oklab", "oklch", "color":
		return false, false, true
	}
	return false, false, false
}

// parseValue turns annotated value tokens into a Value. base is the absolute
// source offset of the first token; text is the reconstructed value text.
func parseValue(tokens []srcToken, text string, base int, pos *positions) *Value {
	v := &Value{Text: strings.TrimSpace(text)}
	if len(tokens) > 0 {
		v.Line, v.Col = pos.lineCol(base + tokens[0].off)
	} else {
		v.Line, v.Col = pos.lineCol(base)
	}

	i := 0
	for i < len(tokens) {
		t := tokens[i]
		if isTrivialToken(t) {
			i++
			continue
		}

		part := &ValuePart{Text: t.data}
		part.Line, part.Col = pos.lineCol(base + t.off)

		switch t.tt {
		case css.NumberToken:
			part.Numeric = true
			part.Number, _ = strconv.ParseFloat(t.data, 64)
			if integerRE.MatchString(t.data) {
				part.Type = PartInteger
			} else {
				part.Type = PartNumber
			}
			i++
		case css.PercentageToken:
			part.Type = PartPercentage
			part.Numeric = true
			part.Number, _ = strconv.ParseFloat(strings.TrimSuffix(t.data, "%"), 64)
			part.Units = "%"
			i++
		case css.DimensionToken:
			part.Numeric = true
			part.Number, part.Units = splitDimension(t.data)
			part.Type = dimensionType(part.Units)
			i++
		case css.HashToken:
			part.Type = PartColor
			i++
		case css.StringToken:
			part.Type = PartString
			i++
		case css.URLToken:
			part.Type = PartURI
			part.URI = extractURL(t.data)
			i++
		case css.IdentToken:
			if _, ok := namedColors[strings.ToLower(t.data)]; ok {
				part.Type = PartColor
			} else {
				part.Type = PartIdent
			}
			i++
		case css.FunctionToken:
			name := strings.ToLower(strings.TrimSuffix(t.data, "("))
			start := t.off
			end := t.off + len(t.data)
			depth := 1
			i++
			for i < len(tokens) && depth > 0 {
				tok := tokens[i]
				switch tok.tt {
				case css.FunctionToken, css.LeftParenthesisToken:
					depth++
				case css.RightParenthesisToken:
					depth--
				}
				end = tok.off + len(tok.data)
				i++
			}
			part.Text = text[start:end]
			part.Name = name
			if name == "url" {
				part.Type = PartURI
				part.URI = extractURL(part.Text)
			} else if alpha, hue, ok := colorFunction(name); ok {
				part.Type = PartColor
				part.HasAlpha = alpha
				part.HasHue = hue
			} else {
				part.Type = PartFunction
			}
		case css.CommaToken, css.DelimToken, css.ColonToken:
			part.Type = PartOperator
			i++
		default:
			part.Type = PartIdent
			i++
		}
		v.Parts = append(v.Parts, part)
	}
	return v
}

// stripImportant removes a trailing "! important" from value tokens.
func stripImportant(tokens []css.Token) ([]css.Token, bool) {
	i := len(tokens) - 1
	for i >= 0 && (tokens[i].TokenType == css.WhitespaceToken || tokens[i].TokenType == css.CommentToken) {
		i--
	}
	if i < 1 || tokens[i].TokenType != css.IdentToken || !strings.EqualFold(string(tokens[i].Data), "important") {
		return tokens, false
	}
	j := i - 1
	for j >= 0 && (tokens[j].TokenType == css.WhitespaceToken || tokens[j].TokenType == css.CommentToken) {
		j--
	}
	if j < 0 || tokens[j].TokenType != css.DelimToken || string(tokens[j].Data) != "!" {
		return tokens, false
	}
	return tokens[:j], true
}

func trimSpaceTokens(tokens []css.Token) []css.Token {
	for len(tokens) > 0 && (tokens[0].TokenType == css.WhitespaceToken || tokens[0].TokenType == css.CommentToken) {
		tokens = tokens[1:]
	}
	for n := len(tokens); n > 0 && (tokens[n-1].TokenType == css.WhitespaceToken || tokens[n-1].TokenType == css.CommentToken); n = len(tokens) {
		tokens = tokens[:n-1]
	}
	return tokens
}

func tokensText(tokens []css.Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.Write(t.Data)
	}
	return sb.String()
}

// unquote removes surrounding quotes from a string.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
