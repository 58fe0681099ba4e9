package interfaces

type CompressorInterface interface {
	Compress(val []byte) ([]byte, error)
	Decompress(val []byte) ([]byte, error)
	// Extension is appended to store file names, e.g. ".zst".
	Extension() string
	Close()
}
