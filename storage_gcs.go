package makigami

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	gcs "cloud.google.com/go/storage"
)

// gcsStorage is a read-only Storage backed by a Google Cloud Storage
// bucket, grounded on the teacher's GCStoreBase/GCStore in the original
// gcs.go. Unlike the teacher's chunk store, there's exactly one archive
// object and one index object per locator, not one object per chunk.
type gcsStorage struct {
	bucket      string
	archiveName string
	indexName   string
	client      *gcs.BucketHandle
	cacheDir    string
}

// newGCSStorage resolves a gs://bucket/object locator, opens a client for
// the bucket, and determines where the index gets cached locally.
func newGCSStorage(archiveLocator, idxOverride string) (Storage, error) {
	bucket, object, err := parseGCSLocator(archiveLocator)
	if err != nil {
		return nil, err
	}

	indexName := idxOverride
	if indexName == "" {
		indexName = deriveIndexLocator(object, true)
	} else if isRemoteLocator(indexName) {
		_, indexName, err = parseGCSLocator(indexName)
		if err != nil {
			return nil, err
		}
	}

	client, err := gcs.NewClient(context.Background())
	if err != nil {
		return nil, RemoteError{Op: "dial", Cause: err}
	}

	cacheDir, err := indexCacheDir(bucket)
	if err != nil {
		return nil, err
	}

	return gcsStorage{
		bucket:      bucket,
		archiveName: object,
		indexName:   indexName,
		client:      client.Bucket(bucket),
		cacheDir:    cacheDir,
	}, nil
}

// indexCacheDir returns (creating if necessary) the local directory used
// to cache downloaded indexes for a given bucket, keyed by bucket name so
// two archives in different buckets never collide.
func indexCacheDir(bucket string) (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", Wrap(err, "resolving user cache directory")
	}
	dir := filepath.Join(base, "makigami", sanitizeCacheComponent(bucket))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", Wrap(err, "creating index cache directory")
	}
	return dir, nil
}

// sanitizeCacheComponent replaces path separators in an object name so it
// can be used as a single filesystem path component.
func sanitizeCacheComponent(s string) string {
	r := strings.NewReplacer("/", "_", "\\", "_")
	return r.Replace(s)
}

// cachePath returns the local cache file path for this storage's index
// object.
func (s gcsStorage) cachePath() string {
	return filepath.Join(s.cacheDir, sanitizeCacheComponent(s.indexName))
}

// FetchIndex downloads the index object, caching it locally keyed by
// bucket and object name so repeated searches against the same archive
// don't re-download it (spec.md §4.6).
func (s gcsStorage) FetchIndex() ([]byte, error) {
	cachePath := s.cachePath()
	if b, err := os.ReadFile(cachePath); err == nil {
		return b, nil
	}

	ctx := context.Background()
	rc, err := s.client.Object(s.indexName).NewReader(ctx)
	if err != nil {
		return nil, RemoteError{Op: "open index object " + s.indexName, Cause: err}
	}
	defer rc.Close()

	b, err := io.ReadAll(rc)
	if err != nil {
		return nil, RemoteError{Op: "read index object " + s.indexName, Cause: err}
	}

	tmp := cachePath + ".tmp"
	if err := os.WriteFile(tmp, b, 0644); err == nil {
		os.Rename(tmp, cachePath)
	}
	return b, nil
}

// ReadBlock issues a ranged read against the archive object. GCS ranged
// reads are byte-exact, so no post-filtering of the result is needed.
func (s gcsStorage) ReadBlock(offset, size uint64) ([]byte, error) {
	if size == 0 {
		return nil, InvalidRange{Offset: offset, Size: size}
	}
	ctx := context.Background()
	rc, err := s.client.Object(s.archiveName).NewRangeReader(ctx, int64(offset), int64(size))
	if err != nil {
		return nil, RemoteError{Op: "range-read archive object " + s.archiveName, Cause: err}
	}
	defer rc.Close()

	b, err := io.ReadAll(rc)
	if err != nil {
		return nil, RemoteError{Op: "read archive range", Cause: err}
	}
	return b, nil
}
