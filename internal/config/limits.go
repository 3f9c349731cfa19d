package config

const (
	// MaxFolderNameLength is the maximum length for folder names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (names should be short and descriptive).
	MaxFolderNameLength = 255

	// MaxFileNameLength is the maximum length for file names.
	// Same as folder names for consistency.
	MaxFileNameLength = 255

	// MaxPayloadBytes caps a single file payload. The library stores
	// classroom PDFs and worksheets, not media archives.
	MaxPayloadBytes = 20 << 20
)
