package domain

// ChunkSize is the fixed number of characters per chunk.
// Offsets are counted in runes, not bytes, so multi-byte text (CJK
// novels in particular) chunks at the same boundaries regardless of
// its encoding on disk.
const ChunkSize = 10000

// Document is the decoded, normalised text of one open novel.
// It exists only for the lifetime of a reading session: it is built on
// load, replaced wholesale when another novel is loaded, and discarded
// on close. Chunks are derived data sliced from it on demand; they are
// never persisted.
type Document struct {
	// NovelID links to the library entry this document was loaded from.
	NovelID string

	// Title is the human-readable title, shown in the reader header.
	Title string

	text []rune
}

// NewDocument builds a document from normalised text.
func NewDocument(novelID, title, text string) *Document {
	return &Document{
		NovelID: novelID,
		Title:   title,
		text:    []rune(text),
	}
}

// Len returns the total character count.
func (d *Document) Len() int {
	return len(d.text)
}

// TotalChunks returns the number of chunks, ceil(Len / ChunkSize).
// An empty document has zero chunks.
func (d *Document) TotalChunks() int {
	return (len(d.text) + ChunkSize - 1) / ChunkSize
}

// InRange reports whether index identifies a valid chunk.
func (d *Document) InRange(index int) bool {
	return index >= 0 && index < d.TotalChunks()
}

// ChunkText returns the text of chunk index.
// Chunk i covers character offsets [i*ChunkSize, min((i+1)*ChunkSize, Len)),
// so chunks are contiguous, non-overlapping, and concatenating them in
// order reproduces the full text exactly. Out-of-range indices return
// the empty string.
func (d *Document) ChunkText(index int) string {
	if !d.InRange(index) {
		return ""
	}
	start := index * ChunkSize
	end := start + ChunkSize
	if end > len(d.text) {
		end = len(d.text)
	}
	return string(d.text[start:end])
}
