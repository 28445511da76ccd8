// ABOUTME: Serializes a Replica as a self-contained Yjs v1 update.
// ABOUTME: Emits a fresh single-client snapshot; no diffing, no merging.

package yjs

import (
	"math/rand/v2"
	"unicode/utf16"
)

// Snapshot serializes the full replica state as one binary update written
// by a brand-new client. The tree shape round-trips exactly; the client id
// and clocks are internal to the encoding and differ between calls.
func (r *Replica) Snapshot() []byte {
	e := &updateEncoder{client: uint64(rand.Uint32())}
	for _, name := range r.Roots() {
		e.appendChildren(r.roots[name].Children, parentRef{name: name})
	}
	return e.finish()
}

// parentRef addresses an item's parent: either a shared root by name or a
// previously written type item by id.
type parentRef struct {
	name string
	id   *ID
}

type updateEncoder struct {
	client  uint64
	clock   uint64
	structs writer
	count   uint64
}

// appendChildren writes the items for an ordered child sequence. The first
// child names its parent explicitly; each later child chains on its left
// sibling's last id, mirroring how sequential inserts integrate.
func (e *updateEncoder) appendChildren(children []Node, parent parentRef) {
	var prev *ID
	for _, child := range children {
		last := e.appendNode(child, parent, prev)
		prev = &last
	}
}

func (e *updateEncoder) appendNode(n Node, parent parentRef, leftLast *ID) ID {
	switch x := n.(type) {
	case *Element:
		id := e.writeTypeItem(typeXmlElement, x.Tag, parent, leftLast)
		for _, k := range x.AttrNames() {
			e.writeAttrItem(id, k, x.Attrs[k])
		}
		e.appendChildren(x.Children, parentRef{id: &id})
		return id
	case *Fragment:
		id := e.writeTypeItem(typeXmlFragment, "", parent, leftLast)
		e.appendChildren(x.Children, parentRef{id: &id})
		return id
	case *Text:
		id := e.writeTypeItem(typeXmlText, "", parent, leftLast)
		if x.Content != "" {
			e.writeStringItem(id, x.Content)
		}
		return id
	}
	panic("unknown node variant")
}

func (e *updateEncoder) writeTypeItem(kind uint64, name string, parent parentRef, leftLast *ID) ID {
	id := e.nextID(1)
	e.writeItemHeader(refType, leftLast, parent, "")
	e.structs.writeVarUint(kind)
	if kind == typeXmlElement || kind == typeXmlHook {
		e.structs.writeVarString(name)
	}
	return id
}

func (e *updateEncoder) writeAttrItem(parent ID, key, value string) {
	e.nextID(1)
	e.writeItemHeader(refAny, nil, parentRef{id: &parent}, key)
	e.structs.writeVarUint(1)
	e.structs.writeAny(value)
}

func (e *updateEncoder) writeStringItem(parent ID, s string) {
	e.nextID(uint64(len(utf16.Encode([]rune(s)))))
	e.writeItemHeader(refString, nil, parentRef{id: &parent}, "")
	e.structs.writeVarString(s)
}

func (e *updateEncoder) writeItemHeader(ref uint64, origin *ID, parent parentRef, parentSub string) {
	info := byte(ref)
	if origin != nil {
		info |= 0x80
	}
	if origin == nil && parentSub != "" {
		info |= 0x20
	}
	e.structs.writeUint8(info)
	if origin != nil {
		e.structs.writeVarUint(origin.Client)
		e.structs.writeVarUint(origin.Clock)
		return
	}
	if parent.name != "" {
		e.structs.writeVarUint(1)
		e.structs.writeVarString(parent.name)
	} else {
		e.structs.writeVarUint(0)
		e.structs.writeVarUint(parent.id.Client)
		e.structs.writeVarUint(parent.id.Clock)
	}
	if parentSub != "" {
		e.structs.writeVarString(parentSub)
	}
}

func (e *updateEncoder) nextID(length uint64) ID {
	id := ID{Client: e.client, Clock: e.clock}
	e.clock += length
	e.count++
	return id
}

func (e *updateEncoder) finish() []byte {
	var w writer
	if e.count == 0 {
		// No structs at all: an update with zero clients and an empty
		// delete set, which loads back as an empty replica.
		w.writeVarUint(0)
		w.writeVarUint(0)
		return w.buf
	}
	w.writeVarUint(1)
	w.writeVarUint(e.count)
	w.writeVarUint(e.client)
	w.writeVarUint(0)
	w.buf = append(w.buf, e.structs.buf...)
	w.writeVarUint(0)
	return w.buf
}
