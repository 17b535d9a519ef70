package fraud

import (
	pkgerrors "github.com/kiranalabs/kirana-voice-backend/pkg/errors"
	"github.com/kiranalabs/kirana-voice-backend/pkg/storage/jsonfile"
)

// Store reads and rewrites the case collection. Every write replaces the
// whole collection; there are no partial or append writes, so storage cost
// is O(total cases) per update and a failed write leaves the prior file
// untouched.
type Store interface {
	ReadAll() ([]Case, error)
	WriteAll(cases []Case) error
}

type fileStore struct {
	path string
}

// NewFileStore returns a Store backed by a single JSON array file.
func NewFileStore(path string) Store {
	return &fileStore{path: path}
}

// ReadAll loads the full case collection. A missing file is an empty
// collection, not an error.
func (s *fileStore) ReadAll() ([]Case, error) {
	var cases []Case
	if err := jsonfile.ReadOrEmpty(s.path, &cases); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "reading fraud case collection")
	}
	return cases, nil
}

// WriteAll atomically replaces the case collection file.
func (s *fileStore) WriteAll(cases []Case) error {
	if err := jsonfile.Write(s.path, cases); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodePersistence, err, "rewriting fraud case collection")
	}
	return nil
}
