package scene

import (
	"encoding/binary"
	"hash"
	"hash/fnv"
	"io"
)

// Hash returns a structural fingerprint of the template: FNV-1a over the
// depth-first (type, name, arity) sequence. User state is deliberately
// excluded, so two scenes with the same shape and names hash equal even
// when their persisted values differ.
func Hash(tpl *Template) uint64 {
	h := fnv.New64a()
	hashInto(h, tpl)
	return h.Sum64()
}

func hashInto(h hash.Hash64, tpl *Template) {
	io.WriteString(h, tpl.Type)
	h.Write([]byte{0})
	io.WriteString(h, tpl.Name)
	h.Write([]byte{0})
	var arity [8]byte
	binary.BigEndian.PutUint64(arity[:], uint64(len(tpl.Children)))
	h.Write(arity[:])
	for _, c := range tpl.Children {
		hashInto(h, c)
	}
}
