package makigami

import (
	"os"
)

// localStorage serves an archive and index straight off the local
// filesystem, grounded on the teacher's LocalStore in the original
// local.go - no caching needed since there's no network round trip.
type localStorage struct {
	archivePath string
	indexPath   string
}

func newLocalStorage(archiveLocator, idxOverride string) (Storage, error) {
	idxPath := idxOverride
	if idxPath == "" {
		idxPath = deriveIndexLocator(archiveLocator, false)
	}
	return localStorage{archivePath: archiveLocator, indexPath: idxPath}, nil
}

func (s localStorage) FetchIndex() ([]byte, error) {
	b, err := os.ReadFile(s.indexPath)
	if err != nil {
		return nil, Wrapf(err, "reading index %s", s.indexPath)
	}
	return b, nil
}

func (s localStorage) ReadBlock(offset, size uint64) ([]byte, error) {
	if size == 0 {
		return nil, InvalidRange{Offset: offset, Size: size}
	}
	f, err := os.Open(s.archivePath)
	if err != nil {
		return nil, Wrapf(err, "opening archive %s", s.archivePath)
	}
	defer f.Close()

	buf := make([]byte, size)
	if _, err := f.ReadAt(buf, int64(offset)); err != nil {
		return nil, Wrapf(err, "reading block at offset %d", offset)
	}
	return buf, nil
}
