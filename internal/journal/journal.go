package journal

// Recorder defines the journal operations the exporter and status API
// depend on. Consumers should depend on this interface rather than the
// concrete *DB type to facilitate testing with mocks.
type Recorder interface {
	RecordExport(row ExportRow) error
	RecordAsset(row AssetRow) error
	Recent(limit int) ([]ExportRow, error)
	Stats() (Stats, error)
	Close() error
}

// Verify *DB satisfies Recorder at compile time.
var _ Recorder = (*DB)(nil)
