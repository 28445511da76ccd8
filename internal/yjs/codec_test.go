// ABOUTME: Tests for the update encoder and decoder.
// ABOUTME: Round trips, hand-built updates, delete sets, corrupt input.

package yjs

import (
	"errors"
	"reflect"
	"testing"
)

func sampleTree() *Fragment {
	return &Fragment{Children: []Node{
		&Element{Tag: "blockGroup", Attrs: map[string]string{}, Children: []Node{
			&Element{
				Tag:   "blockContainer",
				Attrs: map[string]string{"id": "3f2b7c58-90dd-4a3a-8f56-0d20c4a3f001"},
				Children: []Node{
					&Element{
						Tag: "heading",
						Attrs: map[string]string{
							"level":           "2",
							"textColor":       "default",
							"textAlignment":   "left",
							"backgroundColor": "default",
						},
						Children: []Node{&Text{Content: "Résumé 🚀"}},
					},
				},
			},
			&Element{
				Tag:   "blockContainer",
				Attrs: map[string]string{"id": "3f2b7c58-90dd-4a3a-8f56-0d20c4a3f002"},
				Children: []Node{
					&Element{
						Tag: "paragraph",
						Attrs: map[string]string{
							"textColor":       "default",
							"textAlignment":   "left",
							"backgroundColor": "default",
						},
						Children: []Node{&Text{Content: "Hello\nWorld"}},
					},
				},
			},
		}},
	}}
}

func TestSnapshotLoadRoundTrip(t *testing.T) {
	original := sampleTree()

	r := NewReplica()
	r.SetRoot(StoreKey, original)

	loaded, err := Load(r.Snapshot())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	got := loaded.Root(StoreKey)
	if got == nil {
		t.Fatalf("root %q missing after round trip, have %v", StoreKey, loaded.Roots())
	}
	if !reflect.DeepEqual(got, original) {
		t.Errorf("tree changed across round trip:\ngot  %#v\nwant %#v", got, original)
	}
}

func TestSnapshotLoadTwice(t *testing.T) {
	r := NewReplica()
	r.SetRoot(StoreKey, sampleTree())

	first := r.Snapshot()
	loaded, err := Load(first)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	reloaded, err := Load(loaded.Snapshot())
	if err != nil {
		t.Fatalf("Load second snapshot: %v", err)
	}

	if !reflect.DeepEqual(reloaded.Root(StoreKey), sampleTree()) {
		t.Error("second generation tree differs from original")
	}
}

func TestSnapshotEmptyReplica(t *testing.T) {
	loaded, err := Load(NewReplica().Snapshot())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.Roots()) != 0 {
		t.Errorf("expected no roots, got %v", loaded.Roots())
	}
}

func TestLoadEmptyUpdate(t *testing.T) {
	// Zero clients, empty delete set.
	loaded, err := Load([]byte{0, 0})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.Roots()) != 0 {
		t.Errorf("expected no roots, got %v", loaded.Roots())
	}
}

func TestLoadGarbage(t *testing.T) {
	inputs := [][]byte{
		nil,
		{0xff},
		{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01},
		[]byte("definitely not an update"),
	}
	for _, in := range inputs {
		if _, err := Load(in); !errors.Is(err, ErrCorruptDocument) {
			t.Errorf("Load(%v): got %v, want ErrCorruptDocument", in, err)
		}
	}
}

func TestLoadHugeClientCount(t *testing.T) {
	// A corrupt header claiming 2^60 clients must fail cleanly instead of
	// sizing an allocation from the wire.
	w := &writer{}
	w.writeVarUint(1 << 60)
	if _, err := Load(w.buf); !errors.Is(err, ErrCorruptDocument) {
		t.Errorf("got %v, want ErrCorruptDocument", err)
	}
}

func TestLoadHugeContentCount(t *testing.T) {
	// One struct whose Any content claims 2^60 values but carries none.
	w := &writer{}
	w.writeVarUint(1) // one client
	w.writeVarUint(1) // one struct
	w.writeVarUint(1) // client 1
	w.writeVarUint(0) // starting clock
	w.writeUint8(byte(refAny))
	w.writeVarUint(1) // parent is a root
	w.writeVarString(StoreKey)
	w.writeVarUint(1 << 60) // value count

	if _, err := Load(w.buf); !errors.Is(err, ErrCorruptDocument) {
		t.Errorf("got %v, want ErrCorruptDocument", err)
	}
}

func TestLoadTrailingBytes(t *testing.T) {
	update := append(NewReplica().Snapshot(), 0x42)
	if _, err := Load(update); !errors.Is(err, ErrCorruptDocument) {
		t.Errorf("got %v, want ErrCorruptDocument for trailing bytes", err)
	}
}

// textTypeHeader writes the structs for a root text type owned by
// client 1 containing "Hello World".
func textTypeHeader(w *writer) {
	// struct 0: shared text type at the root
	w.writeUint8(byte(refType))
	w.writeVarUint(1) // parent is a root
	w.writeVarString(StoreKey)
	w.writeVarUint(typeXmlText)
	// struct 1: the text run, first child of the type
	w.writeUint8(byte(refString))
	w.writeVarUint(0) // parent is an item
	w.writeVarUint(1) // parent id client
	w.writeVarUint(0) // parent id clock
	w.writeVarString("Hello World")
}

func TestDeleteSetRemovesText(t *testing.T) {
	w := &writer{}
	w.writeVarUint(1) // one client
	w.writeVarUint(2) // two structs
	w.writeVarUint(1) // client 1
	w.writeVarUint(0) // starting clock
	textTypeHeader(w)
	// delete set: client 1, one range covering " World"
	w.writeVarUint(1)
	w.writeVarUint(1)
	w.writeVarUint(1)
	w.writeVarUint(6)
	w.writeVarUint(6)

	loaded, err := Load(w.buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	root := loaded.Root(StoreKey)
	if root == nil || len(root.Children) != 1 {
		t.Fatalf("unexpected root shape: %#v", root)
	}
	text, ok := root.Children[0].(*Text)
	if !ok {
		t.Fatalf("expected text child, got %T", root.Children[0])
	}
	if text.Content != "Hello" {
		t.Errorf("got %q, want %q after delete", text.Content, "Hello")
	}
}

func TestConcurrentInsertsOrderByClient(t *testing.T) {
	w := &writer{}
	w.writeVarUint(2) // two clients

	// client 1: the type and "A"
	w.writeVarUint(2)
	w.writeVarUint(1)
	w.writeVarUint(0)
	w.writeUint8(byte(refType))
	w.writeVarUint(1)
	w.writeVarString(StoreKey)
	w.writeVarUint(typeXmlText)
	w.writeUint8(byte(refString))
	w.writeVarUint(0)
	w.writeVarUint(1)
	w.writeVarUint(0)
	w.writeVarString("A")

	// client 2: "B", also inserted at the head of the same type
	w.writeVarUint(1)
	w.writeVarUint(2)
	w.writeVarUint(0)
	w.writeUint8(byte(refString))
	w.writeVarUint(0)
	w.writeVarUint(1)
	w.writeVarUint(0)
	w.writeVarString("B")

	w.writeVarUint(0) // empty delete set

	loaded, err := Load(w.buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	root := loaded.Root(StoreKey)
	if root == nil || len(root.Children) != 1 {
		t.Fatalf("unexpected root shape: %#v", root)
	}
	text := root.Children[0].(*Text)
	// The lower client id wins the head position.
	if text.Content != "AB" {
		t.Errorf("got %q, want %q", text.Content, "AB")
	}
}

func TestDeleteSetSplitsSurrogatePairs(t *testing.T) {
	// "🚀" occupies two UTF-16 code units; deleting both removes the rune.
	r := NewReplica()
	r.SetRoot(StoreKey, &Fragment{Children: []Node{&Text{Content: "a🚀b"}}})
	update := r.Snapshot()

	loaded, err := Load(update)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	text := loaded.Root(StoreKey).Children[0].(*Text)
	if text.Content != "a🚀b" {
		t.Fatalf("round trip lost text: %q", text.Content)
	}
}
