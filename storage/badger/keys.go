package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/pitchcraft/core"
)

// Key prefixes for different data types
const (
	deckRecordPrefix    = "dekrec"
	deckUserPrefix      = "dekusr"
	deckIDSeq           = "dekseq"
	slideRecordPrefix   = "slirec"
	slideDeckPrefix     = "slidek"
	slideIDSeq          = "sliseq"
	sectionPrefix       = "secrec"
	sectionNamePrefix   = "secnam"
	documentPrefix      = "docrec"
	documentDeckPrefix  = "docdek"
	documentIDSeq       = "docseq"
	embeddingPrefix     = "embrec"
	embeddingDeckPrefix = "embdek"
	embeddingIDSeq      = "embseq"
	assetRecordPrefix   = "astrec"
	assetObjectPrefix   = "astobj"
	assetIDSeq          = "astseq"
)

// makeDeckKey generates a key for a deck by ID.
func makeDeckKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", deckRecordPrefix, id))
}

// makeDeckUserKey generates a composite key for the per-user deck index.
// Format: prefix:userID:id
func makeDeckUserKey(userID string, id core.ID) []byte {
	prefix := deckUserPrefix + ":" + userID + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialDeckUserKey generates a partial key for per-user deck queries.
func makePartialDeckUserKey(userID string) []byte {
	return []byte(deckUserPrefix + ":" + userID + ":")
}

// makeSlideKey generates a key for a slide by ID.
func makeSlideKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", slideRecordPrefix, id))
}

// makeSlideDeckKey generates a composite key for the per-deck slide index.
// Format: prefix:deckID:slideID
func makeSlideDeckKey(deckID, slideID core.ID) []byte {
	prefix := slideDeckPrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+16)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(deckID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(slideID))
	return buf
}

// makePartialSlideDeckKey generates a partial key for per-deck slide queries.
func makePartialSlideDeckKey(deckID core.ID) []byte {
	prefix := slideDeckPrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(deckID))
	return buf
}

// makeSectionKey generates a key for a section by ID.
func makeSectionKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", sectionPrefix, id))
}

// makeSectionNameKey generates a key for section lookup by name.
func makeSectionNameKey(name string) []byte {
	return []byte(sectionNamePrefix + ":" + name)
}

// makeDocumentKey generates a key for a document by ID.
func makeDocumentKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", documentPrefix, id))
}

// makeDocumentDeckKey generates a composite key for the per-deck document index.
// Format: prefix:deckID:documentID
func makeDocumentDeckKey(deckID, documentID core.ID) []byte {
	prefix := documentDeckPrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+16)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(deckID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(documentID))
	return buf
}

// makePartialDocumentDeckKey generates a partial key for per-deck document queries.
func makePartialDocumentDeckKey(deckID core.ID) []byte {
	prefix := documentDeckPrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(deckID))
	return buf
}

// makeEmbeddingKey generates a key for an embedding record by ID.
func makeEmbeddingKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", embeddingPrefix, id))
}

// makeEmbeddingDeckKey generates a composite key for the per-deck embedding index.
// Format: prefix:deckID:recordID
func makeEmbeddingDeckKey(deckID, recordID core.ID) []byte {
	prefix := embeddingDeckPrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+16)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(deckID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(recordID))
	return buf
}

// makePartialEmbeddingDeckKey generates a partial key for per-deck embedding queries.
func makePartialEmbeddingDeckKey(deckID core.ID) []byte {
	prefix := embeddingDeckPrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(deckID))
	return buf
}

// makeAssetRecordKey generates a key for asset metadata by object path.
func makeAssetRecordKey(path string) []byte {
	return []byte(assetRecordPrefix + ":" + path)
}

// makePartialAssetRecordKey generates a partial key for asset listing by path prefix.
func makePartialAssetRecordKey(prefix string) []byte {
	return []byte(assetRecordPrefix + ":" + prefix)
}

// makeAssetObjectKey generates a key for object bytes by path.
func makeAssetObjectKey(path string) []byte {
	return []byte(assetObjectPrefix + ":" + path)
}

// makeCheckpointKey generates a key for task checkpoints.
func makeCheckpointKey(task string) []byte {
	return []byte(fmt.Sprintf("%s:chkpt", task))
}
