// ABOUTME: Struct store for decoded Yjs updates: items, GC ranges, contents.
// ABOUTME: Supports UTF-16 clock accounting and item splitting for integration.

package yjs

import (
	"sort"
	"unicode/utf16"
)

// ID addresses one unit of CRDT state: a (client, logical clock) pair.
type ID struct {
	Client uint64
	Clock  uint64
}

// Content type tags of the update v1 format.
const (
	refGC      = 0
	refDeleted = 1
	refJSON    = 2
	refBinary  = 3
	refString  = 4
	refEmbed   = 5
	refFormat  = 6
	refType    = 7
	refAny     = 8
	refDoc     = 9
	refSkip    = 10
)

// Shared type kind tags carried by ContentType.
const (
	typeArray       = 0
	typeMap         = 1
	typeText        = 2
	typeXmlElement  = 3
	typeXmlFragment = 4
	typeXmlHook     = 5
	typeXmlText     = 6
)

// content is the payload of an item. Lengths are measured in UTF-16 code
// units, matching the clock arithmetic of the reference implementation.
type content interface {
	length() uint64
	countable() bool
	// split is only called with 0 < at < length() on splittable contents.
	split(at uint64) (content, content)
}

type contentString struct {
	units []uint16
}

func newContentString(s string) *contentString {
	return &contentString{units: utf16.Encode([]rune(s))}
}

func (c *contentString) String() string  { return string(utf16.Decode(c.units)) }
func (c *contentString) length() uint64  { return uint64(len(c.units)) }
func (c *contentString) countable() bool { return true }
func (c *contentString) split(at uint64) (content, content) {
	return &contentString{units: c.units[:at]}, &contentString{units: c.units[at:]}
}

type contentDeleted struct {
	n uint64
}

func (c *contentDeleted) length() uint64  { return c.n }
func (c *contentDeleted) countable() bool { return false }
func (c *contentDeleted) split(at uint64) (content, content) {
	return &contentDeleted{n: at}, &contentDeleted{n: c.n - at}
}

type contentAny struct {
	values []any
}

func (c *contentAny) length() uint64  { return uint64(len(c.values)) }
func (c *contentAny) countable() bool { return true }
func (c *contentAny) split(at uint64) (content, content) {
	return &contentAny{values: c.values[:at]}, &contentAny{values: c.values[at:]}
}

type contentJSON struct {
	values []any
}

func (c *contentJSON) length() uint64  { return uint64(len(c.values)) }
func (c *contentJSON) countable() bool { return true }
func (c *contentJSON) split(at uint64) (content, content) {
	return &contentJSON{values: c.values[:at]}, &contentJSON{values: c.values[at:]}
}

type contentBinary struct {
	data []byte
}

func (c *contentBinary) length() uint64                  { return 1 }
func (c *contentBinary) countable() bool                 { return true }
func (c *contentBinary) split(uint64) (content, content) { panic("binary content is not splittable") }

type contentEmbed struct {
	value any
}

func (c *contentEmbed) length() uint64                  { return 1 }
func (c *contentEmbed) countable() bool                 { return true }
func (c *contentEmbed) split(uint64) (content, content) { panic("embed content is not splittable") }

type contentFormat struct {
	key   string
	value any
}

func (c *contentFormat) length() uint64                  { return 1 }
func (c *contentFormat) countable() bool                 { return false }
func (c *contentFormat) split(uint64) (content, content) { panic("format content is not splittable") }

type contentDoc struct {
	guid string
	opts any
}

func (c *contentDoc) length() uint64                  { return 1 }
func (c *contentDoc) countable() bool                 { return true }
func (c *contentDoc) split(uint64) (content, content) { panic("doc content is not splittable") }

// docType is the shared-type state behind a ContentType item or a root:
// a linked list of child items plus a map of keyed entries.
type docType struct {
	kind    uint64 // typeArray..typeXmlText
	name    string // tag name for XmlElement / XmlHook
	start   *item
	entries map[string]*item
}

func newDocType(kind uint64, name string) *docType {
	return &docType{kind: kind, name: name, entries: map[string]*item{}}
}

type contentType struct {
	t *docType
}

func (c *contentType) length() uint64                  { return 1 }
func (c *contentType) countable() bool                 { return true }
func (c *contentType) split(uint64) (content, content) { panic("type content is not splittable") }

// item is one decoded struct. GC ranges are items with gc set and no
// content beyond their clock length.
type item struct {
	id          ID
	origin      *ID
	rightOrigin *ID
	left, right *item
	// parent resolution inputs as decoded from the wire; parent is the
	// resolved shared type after integration.
	parentName string
	parentID   *ID
	parentSub  string
	parent     *docType

	content content
	deleted bool
	gc      bool
	// skipped marks items that could not be attached (GC'd dependency,
	// unknown parent). They keep their clock range for lookups but are
	// never linked into a type.
	skipped bool
}

func (it *item) len() uint64 {
	return it.content.length()
}

func (it *item) lastID() ID {
	return ID{Client: it.id.Client, Clock: it.id.Clock + it.len() - 1}
}

// store indexes integrated items by client so origins, right origins and
// parents can be located and split at exact clock offsets.
type store struct {
	clients map[uint64][]*item
	roots   map[string]*docType
}

func newStore() *store {
	return &store{clients: map[uint64][]*item{}, roots: map[string]*docType{}}
}

func (s *store) root(name string, kind uint64) *docType {
	t, ok := s.roots[name]
	if !ok {
		t = newDocType(kind, "")
		s.roots[name] = t
	}
	return t
}

func (s *store) add(it *item) {
	s.clients[it.id.Client] = append(s.clients[it.id.Client], it)
}

// find returns the index of the item whose clock range contains clock,
// or -1 when the range is unknown.
func (s *store) find(client, clock uint64) int {
	structs := s.clients[client]
	i := sort.Search(len(structs), func(i int) bool {
		it := structs[i]
		return clock < it.id.Clock+it.len()
	})
	if i == len(structs) || structs[i].id.Clock > clock {
		return -1
	}
	return i
}

// splitAt splits the item at index i so that a new item starts exactly at
// clock. Callers guarantee the clock falls inside the item's range.
func (s *store) splitAt(client uint64, i int, clock uint64) {
	structs := s.clients[client]
	it := structs[i]
	diff := clock - it.id.Clock
	if diff == 0 {
		return
	}
	leftContent, rightContent := it.content.split(diff)
	rightItem := &item{
		id:         ID{Client: client, Clock: clock},
		origin:     &ID{Client: client, Clock: clock - 1},
		left:       it,
		right:      it.right,
		parentSub:  it.parentSub,
		parent:     it.parent,
		content:    rightContent,
		deleted:    it.deleted,
		gc:         it.gc,
		skipped:    it.skipped,
	}
	it.content = leftContent
	if it.right != nil {
		it.right.left = rightItem
	}
	it.right = rightItem
	structs = append(structs, nil)
	copy(structs[i+2:], structs[i+1:])
	structs[i+1] = rightItem
	s.clients[client] = structs
}

// itemCleanStart returns the item beginning exactly at id, splitting its
// container when id points into the middle of a run.
func (s *store) itemCleanStart(id ID) *item {
	i := s.find(id.Client, id.Clock)
	if i < 0 {
		return nil
	}
	s.splitAt(id.Client, i, id.Clock)
	if s.clients[id.Client][i].id.Clock == id.Clock {
		return s.clients[id.Client][i]
	}
	return s.clients[id.Client][i+1]
}

// itemCleanEnd returns the item ending exactly at id, splitting when id
// points before the end of a run.
func (s *store) itemCleanEnd(id ID) *item {
	i := s.find(id.Client, id.Clock)
	if i < 0 {
		return nil
	}
	it := s.clients[id.Client][i]
	if id.Clock != it.id.Clock+it.len()-1 {
		s.splitAt(id.Client, i, id.Clock+1)
		it = s.clients[id.Client][i]
	}
	return it
}
