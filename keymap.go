package editline

import "errors"

// ErrEmptySequence is returned when binding a key sequence with no bytes.
var ErrEmptySequence = errors.New("empty key sequence")

// keymapSize is the fan-out of a trie node, one slot per byte value.
const keymapSize = 256

// keySlot is one entry of a trie node. A slot can hold both a handler and a
// child: ESC alone and ESC [ A share the ESC slot of the root.
type keySlot struct {
	handler Handler
	child   int // index into keyMap.nodes, 0 means no child
}

type keyNode [keymapSize]keySlot

// keyMap is a byte-indexed trie of key sequences. Nodes live in a single
// arena; node 0 is the root and can never be a child, so a child index of 0
// marks the absence of a continuation.
type keyMap struct {
	nodes []keyNode
}

func newKeyMap() *keyMap {
	return &keyMap{nodes: make([]keyNode, 1)}
}

// bind stores h at the slot for the last byte of seq, creating nodes for
// the bytes before it as needed. A nil h removes the handler but keeps any
// longer sequences sharing the prefix.
func (km *keyMap) bind(seq []byte, h Handler) error {
	if len(seq) == 0 {
		return ErrEmptySequence
	}

	node := 0
	for _, b := range seq[:len(seq)-1] {
		child := km.nodes[node][b].child
		if child == 0 {
			km.nodes = append(km.nodes, keyNode{})
			child = len(km.nodes) - 1
			km.nodes[node][b].child = child
		}
		node = child
	}
	km.nodes[node][seq[len(seq)-1]].handler = h
	return nil
}

// lookup matches the key sequence starting with unit. When a slot has a
// continuation and the bytes of the current unit are used up, next is
// called to read another unit from the input. The last handler passed on
// the way down wins, so ESC [ A beats a binding for ESC alone.
//
// key holds every byte consumed. err is the error returned by next, if any;
// h is still the best match seen before it.
func (km *keyMap) lookup(unit []byte, next func() ([]byte, error)) (h Handler, key []byte, err error) {
	key = append([]byte(nil), unit...)

	node := 0
	for i := 0; i < len(unit); {
		slot := km.nodes[node][unit[i]]
		if slot.handler != nil {
			h = slot.handler
		}
		if slot.child == 0 {
			break
		}
		node = slot.child

		i++
		if i >= len(unit) {
			more, err := next()
			if err != nil {
				return h, key, err
			}
			unit = more
			i = 0
			key = append(key, more...)
		}
	}
	return h, key, nil
}
