package source

// LogLevel represents a log severity level
type LogLevel int

const (
	LevelUnknown LogLevel = iota
	LevelTrace
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

// Line represents a single line with optional metadata
type Line struct {
	Content       string
	Level         LogLevel
	OriginalIndex int  // line number in original file, 0-based
	Synthetic     bool // inserted by the loader, not read from the file
}

// LineProvider is the core abstraction for accessing lines
// The viewport only interacts with this interface
type LineProvider interface {
	// LineCount returns total number of lines
	LineCount() int

	// GetLine returns line at index (0-based), nil when out of range
	GetLine(index int) *Line

	// GetLines returns a range of lines, clipped to what exists
	GetLines(start, count int) []*Line
}

// Format identifies how a source file is stored on disk
type Format int

const (
	FormatPlain Format = iota
	FormatGzip
	FormatZstd
	FormatZip
	FormatTar
	FormatTarGz
)

func (f Format) String() string {
	switch f {
	case FormatGzip:
		return "gzip"
	case FormatZstd:
		return "zstd"
	case FormatZip:
		return "zip"
	case FormatTar:
		return "tar"
	case FormatTarGz:
		return "tar.gz"
	default:
		return "text"
	}
}

// Origin describes where loaded lines came from
type Origin struct {
	Path   string
	Format Format
	Member string // archive member, empty for streams and plain text
}
