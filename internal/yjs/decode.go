// ABOUTME: Decodes a Yjs v1 binary update into a materialized Replica.
// ABOUTME: Parses structs, integrates them in dependency order, applies deletes.

package yjs

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Replica is one locally materialized document state. It is transient and
// process-local; persistence happens through the envelope codec and the
// storage collaborator.
type Replica struct {
	roots map[string]*Fragment
}

// NewReplica returns an empty replica with no shared roots.
func NewReplica() *Replica {
	return &Replica{roots: map[string]*Fragment{}}
}

// SetRoot installs a materialized tree under a shared root name.
func (r *Replica) SetRoot(name string, f *Fragment) {
	r.roots[name] = f
}

// Root returns the tree under the given shared root, or nil when the
// update never touched that root. An empty document and a missing root are
// different conditions; callers that need "at least one block" normalize
// at the BlockNote layer.
func (r *Replica) Root(name string) *Fragment {
	return r.roots[name]
}

// Roots lists the shared root names present in the replica, sorted.
func (r *Replica) Roots() []string {
	names := make([]string, 0, len(r.roots))
	for name := range r.roots {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load applies a binary update to a fresh replica and materializes the
// resulting document state. Bytes that do not parse as an update yield
// ErrCorruptDocument; an empty update yields an empty replica, never an
// error, so callers can tell "empty" from "corrupt".
func Load(update []byte) (*Replica, error) {
	st, err := decodeUpdate(update)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	r := NewReplica()
	for name, t := range st.roots {
		r.roots[name] = &Fragment{Children: childNodes(t)}
	}
	return r, nil
}

type deleteRange struct {
	client uint64
	clock  uint64
	length uint64
}

func decodeUpdate(update []byte) (*store, error) {
	rd := &reader{buf: update}
	st := newStore()

	numClients := rd.readVarUint()
	clients := make([]uint64, 0, rd.capHint(numClients))
	queues := map[uint64][]*item{}
	remaining := 0
	for i := uint64(0); i < numClients && rd.err == nil; i++ {
		numStructs := rd.readVarUint()
		client := rd.readVarUint()
		clock := rd.readVarUint()
		if _, seen := queues[client]; !seen {
			clients = append(clients, client)
		}
		for j := uint64(0); j < numStructs && rd.err == nil; j++ {
			it := readStruct(rd, ID{Client: client, Clock: clock})
			if rd.err != nil {
				break
			}
			clock += it.len()
			queues[client] = append(queues[client], it)
			remaining++
		}
	}

	var deletes []deleteRange
	numDeleteClients := rd.readVarUint()
	for i := uint64(0); i < numDeleteClients && rd.err == nil; i++ {
		client := rd.readVarUint()
		numRanges := rd.readVarUint()
		for j := uint64(0); j < numRanges && rd.err == nil; j++ {
			clock := rd.readVarUint()
			length := rd.readVarUint()
			deletes = append(deletes, deleteRange{client: client, clock: clock, length: length})
		}
	}
	if rd.err != nil {
		return nil, rd.err
	}
	if rd.pos != len(rd.buf) {
		return nil, fmt.Errorf("%d trailing bytes after update", len(rd.buf)-rd.pos)
	}

	// Integrate in dependency order. A struct is ready once its origin,
	// right origin and parent item have been integrated; structs of one
	// client are already in clock order.
	state := map[uint64]uint64{}
	for remaining > 0 {
		progress := false
		for _, client := range clients {
			q := queues[client]
			for len(q) > 0 {
				it := q[0]
				if it.id.Clock > state[client] || !depsReady(it, state) {
					break
				}
				if it.id.Clock < state[client] {
					return nil, fmt.Errorf("overlapping structs for client %d at clock %d", client, it.id.Clock)
				}
				st.integrate(it)
				state[client] = it.id.Clock + it.len()
				q = q[1:]
				remaining--
				progress = true
			}
			queues[client] = q
		}
		if !progress {
			return nil, fmt.Errorf("update references %d structs with unmet dependencies", remaining)
		}
	}

	st.applyDeletes(deletes)
	return st, nil
}

func readStruct(rd *reader, id ID) *item {
	info := rd.readUint8()
	ref := uint64(info & 31)
	switch ref {
	case refGC:
		return &item{id: id, gc: true, deleted: true, content: &contentDeleted{n: rd.readVarUint()}}
	case refSkip:
		return &item{id: id, skipped: true, deleted: true, content: &contentDeleted{n: rd.readVarUint()}}
	}

	it := &item{id: id}
	if info&0x80 != 0 {
		o := readID(rd)
		it.origin = &o
	}
	if info&0x40 != 0 {
		o := readID(rd)
		it.rightOrigin = &o
	}
	if info&0xc0 == 0 {
		if rd.readVarUint() == 1 {
			it.parentName = rd.readVarString()
		} else {
			p := readID(rd)
			it.parentID = &p
		}
		if info&0x20 != 0 {
			it.parentSub = rd.readVarString()
		}
	}
	it.content = readContent(rd, ref)
	return it
}

func readID(rd *reader) ID {
	return ID{Client: rd.readVarUint(), Clock: rd.readVarUint()}
}

func readContent(rd *reader, ref uint64) content {
	switch ref {
	case refDeleted:
		return &contentDeleted{n: rd.readVarUint()}
	case refJSON:
		n := rd.readVarUint()
		values := make([]any, 0, rd.capHint(n))
		for i := uint64(0); i < n && rd.err == nil; i++ {
			values = append(values, readJSONValue(rd))
		}
		return &contentJSON{values: values}
	case refBinary:
		return &contentBinary{data: rd.readVarBytes()}
	case refString:
		return newContentString(rd.readVarString())
	case refEmbed:
		return &contentEmbed{value: readJSONValue(rd)}
	case refFormat:
		key := rd.readVarString()
		return &contentFormat{key: key, value: readJSONValue(rd)}
	case refType:
		kind := rd.readVarUint()
		var name string
		switch kind {
		case typeXmlElement, typeXmlHook:
			name = rd.readVarString()
		case typeArray, typeMap, typeText, typeXmlFragment, typeXmlText:
		default:
			rd.fail("unknown shared type ref %d", kind)
			return &contentDeleted{n: 1}
		}
		return &contentType{t: newDocType(kind, name)}
	case refAny:
		n := rd.readVarUint()
		values := make([]any, 0, rd.capHint(n))
		for i := uint64(0); i < n && rd.err == nil; i++ {
			values = append(values, rd.readAny())
		}
		return &contentAny{values: values}
	case refDoc:
		guid := rd.readVarString()
		return &contentDoc{guid: guid, opts: rd.readAny()}
	default:
		rd.fail("unknown content ref %d", ref)
		return &contentDeleted{n: 1}
	}
}

// readJSONValue decodes the JSON-as-varstring encoding used by embeds,
// formats and legacy JSON content.
func readJSONValue(rd *reader) any {
	s := rd.readVarString()
	if rd.err != nil {
		return nil
	}
	if s == "undefined" {
		return nil
	}
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		rd.fail("invalid embedded JSON %q: %v", s, err)
		return nil
	}
	return v
}

func depsReady(it *item, state map[uint64]uint64) bool {
	if it.origin != nil && state[it.origin.Client] <= it.origin.Clock {
		return false
	}
	if it.rightOrigin != nil && state[it.rightOrigin.Client] <= it.rightOrigin.Clock {
		return false
	}
	if it.parentID != nil && state[it.parentID.Client] <= it.parentID.Clock {
		return false
	}
	return true
}

func (s *store) itemAt(id ID) *item {
	i := s.find(id.Client, id.Clock)
	if i < 0 {
		return nil
	}
	return s.clients[id.Client][i]
}

// integrate links one item into its parent type, resolving the insert
// position with the YATA conflict rules of the reference implementation.
func (s *store) integrate(it *item) {
	if it.gc || it.skipped {
		s.add(it)
		return
	}

	var left, right *item
	if it.origin != nil {
		left = s.itemCleanEnd(*it.origin)
		if left == nil || left.gc || left.skipped {
			s.drop(it)
			return
		}
	}
	if it.rightOrigin != nil {
		right = s.itemCleanStart(*it.rightOrigin)
		if right == nil || right.gc || right.skipped {
			s.drop(it)
			return
		}
	}

	switch {
	case left != nil:
		it.parent = left.parent
		it.parentSub = left.parentSub
	case right != nil:
		it.parent = right.parent
		it.parentSub = right.parentSub
	case it.parentID != nil:
		p := s.itemAt(*it.parentID)
		if p == nil || p.gc || p.skipped {
			s.drop(it)
			return
		}
		ct, ok := p.content.(*contentType)
		if !ok {
			s.drop(it)
			return
		}
		it.parent = ct.t
	case it.parentName != "":
		it.parent = s.root(it.parentName, typeXmlFragment)
	}
	if it.parent == nil {
		s.drop(it)
		return
	}
	it.left = left
	it.right = right

	if (it.left == nil && (it.right == nil || it.right.left != nil)) ||
		(it.left != nil && it.left.right != it.right) {
		left := it.left
		var o *item
		switch {
		case left != nil:
			o = left.right
		case it.parentSub != "":
			o = it.parent.entries[it.parentSub]
			for o != nil && o.left != nil {
				o = o.left
			}
		default:
			o = it.parent.start
		}
		conflicting := map[*item]bool{}
		before := map[*item]bool{}
		for o != nil && o != it.right {
			before[o] = true
			conflicting[o] = true
			if idEqual(it.origin, o.origin) {
				if o.id.Client < it.id.Client {
					left = o
					conflicting = map[*item]bool{}
				} else if idEqual(it.rightOrigin, o.rightOrigin) {
					break
				}
			} else if o.origin != nil && before[s.itemAt(*o.origin)] {
				if !conflicting[s.itemAt(*o.origin)] {
					left = o
					conflicting = map[*item]bool{}
				}
			} else {
				break
			}
			o = o.right
		}
		it.left = left
	}

	if it.left != nil {
		it.right = it.left.right
		it.left.right = it
	} else {
		var r *item
		if it.parentSub != "" {
			r = it.parent.entries[it.parentSub]
			for r != nil && r.left != nil {
				r = r.left
			}
		} else {
			r = it.parent.start
			it.parent.start = it
		}
		it.right = r
	}
	if it.right != nil {
		it.right.left = it
	} else if it.parentSub != "" {
		it.parent.entries[it.parentSub] = it
		if it.left != nil {
			// Overwritten map entry.
			it.left.deleted = true
		}
	}
	s.add(it)
}

// drop records an item that cannot be attached (GC'd dependency, missing
// or non-type parent) so its clock range stays addressable, without
// linking it into any tree. Read resilience over strictness.
func (s *store) drop(it *item) {
	it.skipped = true
	it.deleted = true
	s.add(it)
}

func (s *store) applyDeletes(ranges []deleteRange) {
	for _, dr := range ranges {
		end := dr.clock + dr.length
		i := s.find(dr.client, dr.clock)
		if i < 0 {
			continue
		}
		structs := s.clients[dr.client]
		if structs[i].id.Clock < dr.clock {
			s.splitAt(dr.client, i, dr.clock)
			i++
			structs = s.clients[dr.client]
		}
		for i < len(structs) && structs[i].id.Clock < end {
			it := structs[i]
			if it.id.Clock+it.len() > end {
				s.splitAt(dr.client, i, end)
				structs = s.clients[dr.client]
			}
			structs[i].deleted = true
			i++
		}
	}
}

func idEqual(a, b *ID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// childNodes walks a type's item chain and materializes the visible
// children. Adjacent raw string runs merge into a single Text node.
func childNodes(t *docType) []Node {
	var out []Node
	var sb strings.Builder
	flush := func() {
		if sb.Len() > 0 {
			out = append(out, &Text{Content: sb.String()})
			sb.Reset()
		}
	}
	for it := t.start; it != nil; it = it.right {
		if it.deleted || !it.content.countable() {
			continue
		}
		switch c := it.content.(type) {
		case *contentType:
			flush()
			out = append(out, materializeType(c.t))
		case *contentString:
			sb.WriteString(c.String())
		}
	}
	flush()
	return out
}

func materializeType(t *docType) Node {
	switch t.kind {
	case typeXmlElement, typeXmlHook:
		return &Element{Tag: t.name, Attrs: attrsOf(t), Children: childNodes(t)}
	case typeText, typeXmlText:
		return &Text{Content: textOf(t)}
	default:
		return &Fragment{Children: childNodes(t)}
	}
}

func textOf(t *docType) string {
	var sb strings.Builder
	for it := t.start; it != nil; it = it.right {
		if it.deleted {
			continue
		}
		if c, ok := it.content.(*contentString); ok {
			sb.WriteString(c.String())
		}
	}
	return sb.String()
}

func attrsOf(t *docType) map[string]string {
	attrs := make(map[string]string, len(t.entries))
	for sub, it := range t.entries {
		if it == nil || it.deleted {
			continue
		}
		switch c := it.content.(type) {
		case *contentAny:
			if len(c.values) > 0 {
				if s, ok := attrString(c.values[len(c.values)-1]); ok {
					attrs[sub] = s
				}
			}
		case *contentJSON:
			if len(c.values) > 0 {
				if s, ok := attrString(c.values[len(c.values)-1]); ok {
					attrs[sub] = s
				}
			}
		case *contentString:
			attrs[sub] = c.String()
		}
	}
	return attrs
}

func attrString(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	default:
		return fmt.Sprint(x), true
	}
}
