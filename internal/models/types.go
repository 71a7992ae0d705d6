package models

// Archive defines persistence of ingested check files
type Archive interface {
	HasFile(name string) (bool, error)
	SaveFile(name string, results []*Result) error
	LoadAll() ([]ArchivedFile, error)
	Prune(olderThan int64) (int64, error)
	Close() error
}

// ArchivedFile is a check file restored from the archive
type ArchivedFile struct {
	Name    string
	Results []*Result
}
