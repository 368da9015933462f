package kvjson

import "fmt"

// frame is one open object or array awaiting closure.
type frame struct {
	key   string
	value *Value
	line  int

	// topic frames are opened by topic headers and have no closing brace.
	topic bool
	// inline frames were opened by a brace with no key; their members are
	// merged into the parent object on close.
	inline bool
}

// BuildContext is the tree builder state for one input file.
type BuildContext struct {
	stack []*frame

	pending     string
	hasPending  bool
	pendingLine int

	started bool
	label   string

	// LinesSeen counts non-ignored lines that are not topic headers.
	LinesSeen int
	// TopicsSeen counts topic headers that opened a section.
	TopicsSeen int
}

// NewBuildContext returns a builder with the root object already open.
func NewBuildContext() *BuildContext {
	return &BuildContext{
		stack: []*frame{{value: Object()}},
	}
}

func (b *BuildContext) top() *frame {
	return b.stack[len(b.stack)-1]
}

func (b *BuildContext) push(f *frame) {
	b.stack = append(b.stack, f)
}

// close pops the top frame and binds it into its parent.
func (b *BuildContext) close() {
	f := b.top()
	b.stack = b.stack[:len(b.stack)-1]
	parent := b.top()

	switch {
	case f.inline:
		parent.value.Members = append(parent.value.Members, f.value.Members...)
	case parent.value.Kind == KindArray:
		parent.value.Append(f.value)
	default:
		parent.value.Set(f.key, f.value)
	}
}

func (b *BuildContext) closeTopics() {
	for len(b.stack) > 1 && b.top().topic {
		b.close()
	}
}

func (b *BuildContext) declare(line int, key string) error {
	if b.hasPending {
		return b.danglingKey()
	}
	b.pending, b.hasPending, b.pendingLine = key, true, line
	return nil
}

func (b *BuildContext) danglingKey() error {
	return &NestingError{Line: b.pendingLine, Message: fmt.Sprintf("key %q is never given a value", b.pending)}
}

// Feed applies one classified line. lineNum is only used for errors.
func (b *BuildContext) Feed(lineNum int, pl ParsedLine) error {
	if pl.Kind == LineIgnored {
		return nil
	}

	if pl.Kind == LineTopic {
		return b.topic(lineNum, pl.Text)
	}

	b.started = true
	b.LinesSeen++

	switch pl.Kind {
	case LineKeyValue:
		if b.hasPending {
			return b.danglingKey()
		}
		cur := b.top()
		if cur.value.Kind != KindObject {
			return &NestingError{Line: lineNum, Message: fmt.Sprintf("key %q inside an array", pl.Key)}
		}
		cur.value.Set(pl.Key, pl.Value)

	case LineItem:
		if b.hasPending {
			return b.danglingKey()
		}
		cur := b.top()
		if cur.value.Kind != KindArray {
			return &NestingError{Line: lineNum, Message: "array element outside an array"}
		}
		cur.value.Append(pl.Value)

	case LineKeyOnly:
		return b.declare(lineNum, pl.Key)

	case LineBrace:
		if pl.Open {
			return b.open(lineNum, pl)
		}
		return b.closeBrace(lineNum, pl.Container)
	}

	return nil
}

func (b *BuildContext) topic(lineNum int, name string) error {
	if !b.started {
		b.started = true
		b.label = name
		return nil
	}
	if b.hasPending {
		return b.danglingKey()
	}

	if b.top().topic {
		b.close()
	}
	if b.top().value.Kind != KindObject {
		return &NestingError{Line: lineNum, Message: fmt.Sprintf("topic %q inside an array", name)}
	}

	b.push(&frame{key: name, value: Object(), line: lineNum, topic: true})
	b.TopicsSeen++
	return nil
}

func (b *BuildContext) open(lineNum int, pl ParsedLine) error {
	if pl.Key != "" {
		if err := b.declare(lineNum, pl.Key); err != nil {
			return err
		}
	}

	container := Object()
	if pl.Container == KindArray {
		container = Array()
	}

	f := &frame{value: container, line: lineNum}
	switch {
	case b.top().value.Kind == KindArray:
		if b.hasPending {
			return &NestingError{Line: lineNum, Message: fmt.Sprintf("key %q inside an array", b.pending)}
		}
	case b.hasPending:
		f.key = b.pending
		b.hasPending = false
	case pl.Container == KindObject:
		f.inline = true
	default:
		return &NestingError{Line: lineNum, Message: "array opened without a key"}
	}

	b.push(f)
	return nil
}

func (b *BuildContext) closeBrace(lineNum int, container Kind) error {
	if b.hasPending {
		return b.danglingKey()
	}

	b.closeTopics()
	if len(b.stack) == 1 {
		return &NestingError{Line: lineNum, Message: "closing brace without a matching open"}
	}
	if got := b.top().value.Kind; got != container {
		return &NestingError{Line: lineNum, Message: fmt.Sprintf("%s closed as %s", got, container)}
	}

	b.close()
	return nil
}

// Finish closes any open topic sections and returns the finished document.
// Braced frames still open at this point are an error.
func (b *BuildContext) Finish() (*Document, error) {
	if b.hasPending {
		return nil, b.danglingKey()
	}

	b.closeTopics()
	if len(b.stack) > 1 {
		f := b.top()
		what := "object"
		if f.value.Kind == KindArray {
			what = "array"
		}
		if f.key != "" {
			what = fmt.Sprintf("%s %q", what, f.key)
		}
		return nil, &NestingError{Line: f.line, Message: what + " is never closed"}
	}

	return &Document{
		Root:   b.stack[0].value,
		Label:  b.label,
		Topics: b.TopicsSeen,
	}, nil
}
