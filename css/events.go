package css

// EventType identifies a grammar event fired while walking a stylesheet.
type EventType int

const (
	EventStylesheetStart EventType = iota
	EventStylesheetEnd
	EventRuleStart
	EventRuleEnd
	EventMediaStart
	EventMediaEnd
	EventPageStart
	EventPageEnd
	EventPageMarginStart
	EventPageMarginEnd
	EventFontFaceStart
	EventFontFaceEnd
	EventKeyframesStart
	EventKeyframesEnd
	EventKeyframeRuleStart
	EventKeyframeRuleEnd
	EventSupportsStart
	EventSupportsEnd
	EventDocumentStart
	EventDocumentEnd
	EventContainerStart
	EventContainerEnd
	EventViewportStart
	EventViewportEnd
	EventImport
	EventCharset
	EventNamespace
	EventProperty
	EventError
	EventWarning
)

func (t EventType) String() string {
	switch t {
	case EventStylesheetStart:
		return "startstylesheet"
	case EventStylesheetEnd:
		return "endstylesheet"
	case EventRuleStart:
		return "startrule"
	case EventRuleEnd:
		return "endrule"
	case EventMediaStart:
		return "startmedia"
	case EventMediaEnd:
		return "endmedia"
	case EventPageStart:
		return "startpage"
	case EventPageEnd:
		return "endpage"
	case EventPageMarginStart:
		return "startpagemargin"
	case EventPageMarginEnd:
		return "endpagemargin"
	case EventFontFaceStart:
		return "startfontface"
	case EventFontFaceEnd:
		return "endfontface"
	case EventKeyframesStart:
		return "startkeyframes"
	case EventKeyframesEnd:
		return "endkeyframes"
	case EventKeyframeRuleStart:
		return "startkeyframerule"
	case EventKeyframeRuleEnd:
		return "endkeyframerule"
	case EventSupportsStart:
		return "startsupports"
	case EventSupportsEnd:
		return "endsupports"
	case EventDocumentStart:
		return "startdocument"
	case EventDocumentEnd:
		return "enddocument"
	case EventContainerStart:
		return "startcontainer"
	case EventContainerEnd:
		return "endcontainer"
	case EventViewportStart:
		return "startviewport"
	case EventViewportEnd:
		return "endviewport"
	case EventImport:
		return "import"
	case EventCharset:
		return "charset"
	case EventNamespace:
		return "namespace"
	case EventProperty:
		return "property"
	case EventError:
		return "error"
	case EventWarning:
		return "warning"
	}
	return "unknown"
}

// Event is a single parse event. Which fields are populated depends on Type;
// Line and Col are always set (1-based).
type Event struct {
	Type EventType
	Line int
	Col  int

	// Rule scopes. End events repeat the fields of the matching start event.
	Selectors []*Selector
	Nested    bool

	// At-rule scopes.
	Prelude string // raw prelude text: media query, supports condition and so on
	Name    string // keyframes name, page selector, margin box name
	Prefix  string // vendor prefix of the at-rule keyword, without dashes

	// Declarations.
	Property  string
	Hack      string // "*", "_" or "$" when the declaration used an IE hack prefix
	Value     *Value
	Important bool
	InParens  bool
	Invalid   string // diagnostic for unrecognized property names

	// Blockless at-rules.
	URI     string
	Charset string

	// Diagnostics.
	Message string
}

// PropertyText returns the property name as written, including any hack prefix.
func (e *Event) PropertyText() string { return e.Hack + e.Property }

// Dispatcher delivers events to listeners in registration order.
type Dispatcher struct {
	listeners map[EventType][]func(*Event)
}

// AddListener subscribes fn to events of type t.
func (d *Dispatcher) AddListener(t EventType, fn func(*Event)) {
	if d.listeners == nil {
		d.listeners = make(map[EventType][]func(*Event))
	}
	d.listeners[t] = append(d.listeners[t], fn)
}

func (d *Dispatcher) fire(e *Event) {
	for _, fn := range d.listeners[e.Type] {
		fn(e)
	}
}
