// Package xmlwriter provides a restricted streaming XML element writer.
//
// It supports exactly the operations a package-manifest emitter needs:
// start an element, add attributes while the start tag is open, close the
// most recent element. A small state machine tracks well-formedness; any
// out-of-protocol call latches the writer into StateError and the recorded
// error is surfaced via Err(). The writer can also be initialized from a
// previously serialized document to append children inside its root element.
package xmlwriter

import (
	"bytes"
	"fmt"
	"strings"
)

// State represents the writer's position in the document lifecycle.
type State int

const (
	// StateOpen means the writer is between elements inside the document.
	StateOpen State = iota
	// StateElementOpen means a start tag is open and attributes may be added.
	StateElementOpen
	// StateFinish means the root element has been closed; the document is complete.
	StateFinish
	// StateError means a protocol violation occurred; the writer is unusable.
	StateError
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateElementOpen:
		return "element-open"
	case StateFinish:
		return "finish"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`

// attrEscaper escapes the characters that may not appear raw inside a
// double-quoted attribute value.
var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// ProtocolError reports a call made while the writer was not in a state
// that permits it.
type ProtocolError struct {
	Op     string
	State  State
	Reason string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("xmlwriter: %s in state %s: %s", e.Op, e.State, e.Reason)
}

type frame struct {
	name        string
	hasChildren bool
}

// Writer emits a single XML document element by element. It is single-use
// and not safe for concurrent use.
type Writer struct {
	buf     bytes.Buffer
	stack   []frame
	state   State
	err     error
	pending bool // a start tag is written but not yet terminated with '>'
}

// New returns a writer with the root element's start tag already open, so
// root-level attributes can be added before the first child. When header is
// true the XML declaration precedes the root element.
func New(root string, header bool) *Writer {
	w := &Writer{state: StateOpen}
	if header {
		w.buf.WriteString(xmlHeader)
	}
	w.StartElement(root)
	return w
}

// Initialize returns a writer positioned to append children inside the root
// element of a previously serialized document. Everything before the root's
// closing tag is preserved verbatim; the closing tag is re-emitted when the
// root element is closed.
func Initialize(existing []byte, root string) (*Writer, error) {
	closeTag := "</" + root + ">"
	idx := bytes.LastIndex(existing, []byte(closeTag))
	if idx < 0 {
		return nil, fmt.Errorf("xmlwriter: closing tag %s not found in existing document", closeTag)
	}
	w := &Writer{state: StateOpen}
	w.buf.Write(existing[:idx])
	w.stack = append(w.stack, frame{name: root, hasChildren: true})
	return w, nil
}

// StartElement opens a new element as a child of the current one.
func (w *Writer) StartElement(name string) {
	if w.state == StateFinish || w.state == StateError {
		w.fail("StartElement", "document already finished")
		return
	}
	if w.pending {
		w.buf.WriteByte('>')
		w.stack[len(w.stack)-1].hasChildren = true
		w.pending = false
	}
	w.buf.WriteByte('<')
	w.buf.WriteString(name)
	w.stack = append(w.stack, frame{name: name})
	w.pending = true
	w.state = StateElementOpen
}

// AddAttribute appends an attribute to the currently open start tag. The
// value is escaped; the name is written as given.
func (w *Writer) AddAttribute(name, value string) {
	if w.state != StateElementOpen || !w.pending {
		w.fail("AddAttribute", "no element start tag is open")
		return
	}
	w.buf.WriteByte(' ')
	w.buf.WriteString(name)
	w.buf.WriteString(`="`)
	w.buf.WriteString(attrEscaper.Replace(value))
	w.buf.WriteByte('"')
}

// CloseElement closes the most recently opened element. Childless elements
// are written in self-closing form. Closing the last open element moves the
// writer to StateFinish.
func (w *Writer) CloseElement() {
	if w.state == StateFinish || w.state == StateError {
		w.fail("CloseElement", "document already finished")
		return
	}
	if len(w.stack) == 0 {
		w.fail("CloseElement", "no element is open")
		return
	}
	top := w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]
	if w.pending {
		w.buf.WriteString("/>")
		w.pending = false
	} else {
		w.buf.WriteString("</")
		w.buf.WriteString(top.name)
		w.buf.WriteByte('>')
	}
	if len(w.stack) == 0 {
		w.state = StateFinish
	} else {
		w.state = StateOpen
	}
}

// State reports the writer's current state.
func (w *Writer) State() State {
	return w.state
}

// Err returns the first protocol violation observed, if any.
func (w *Writer) Err() error {
	return w.err
}

// Bytes returns the serialized document. Callers should only rely on the
// result after the writer has reached StateFinish.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

func (w *Writer) fail(op, reason string) {
	if w.err == nil {
		w.err = &ProtocolError{Op: op, State: w.state, Reason: reason}
	}
	w.state = StateError
}
