package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/docchunk/core"
)

// Key prefixes for different data types. Primary and index prefixes are
// disjoint so prefix scans over one never surface the other.
const (
	chunkRecordPrefix   = "chkrec"
	documentIndexPrefix = "docidx"
)

// makeChunkKey generates a key for a chunk by ID.
func makeChunkKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", chunkRecordPrefix, id))
}

// makeDocumentIndexKey generates a composite key for the document index.
// Format: prefix:docHash:index. The document ID is hashed to a fixed-width
// value so arbitrary ID strings cannot collide across documents, and the
// chunk index is BigEndian so lexicographic iteration yields chunk order.
func makeDocumentIndexKey(documentID string, index int) []byte {
	prefix := documentIndexPrefix + ":"
	buf := make([]byte, len(prefix)+16)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(core.IDFromContent(documentID)))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(index))
	return buf
}

// makePartialDocumentIndexKey generates the scan prefix covering every index
// entry of a document.
func makePartialDocumentIndexKey(documentID string) []byte {
	prefix := documentIndexPrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(core.IDFromContent(documentID)))
	return buf
}
