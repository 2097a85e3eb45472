package makigami

import (
	"fmt"
	"net/url"
	"strings"
)

// Storage is the read path for an archive's index and its compressed
// blocks (spec.md §4.6). Implementations are read-only: the build side
// writes archives directly with os.File, so Storage only needs to serve
// the search path.
type Storage interface {
	// FetchIndex returns the full contents of the archive's index stream.
	FetchIndex() ([]byte, error)
	// ReadBlock returns size bytes starting at offset in the archive.
	ReadBlock(offset, size uint64) ([]byte, error)
}

// OpenStorage resolves a locator - a local filesystem path or a
// gs://bucket/object URL - into a Storage backend for that archive and its
// index. archiveLocator is whatever the search command was given on the
// command line for the archive; the index locator is derived from it
// unless idxOverride is non-empty.
func OpenStorage(archiveLocator, idxOverride string) (Storage, error) {
	if isRemoteLocator(archiveLocator) {
		return newGCSStorage(archiveLocator, idxOverride)
	}
	return newLocalStorage(archiveLocator, idxOverride)
}

// isRemoteLocator reports whether locator names a Google Cloud Storage
// object rather than a filesystem path.
func isRemoteLocator(locator string) bool {
	return strings.HasPrefix(locator, "gs://")
}

// deriveIndexLocator implements the §9 open-question resolution: a local
// archive's index sits beside it with a .idx extension; a remote
// archive's index uses .mg, since desync's own index stores already use
// .caibx/.diridx. Both conventions drop a trailing .zst first so
// "data.zst" becomes "data.idx" (local) or "data.mg" (remote), not
// "data.zst.idx"; any other extension is kept and the suffix appended.
func deriveIndexLocator(archiveLocator string, remote bool) string {
	trimmed := strings.TrimSuffix(archiveLocator, ".zst")
	if remote {
		return trimmed + ".mg"
	}
	return trimmed + ".idx"
}

// parseGCSLocator splits a gs://bucket/object URL into its bucket and
// object components.
func parseGCSLocator(locator string) (bucket, object string, err error) {
	u, err := url.Parse(locator)
	if err != nil {
		return "", "", InvalidLocator{Locator: locator, Reason: err.Error()}
	}
	if u.Scheme != "gs" {
		return "", "", InvalidLocator{Locator: locator, Reason: fmt.Sprintf("unsupported scheme %q, expected gs", u.Scheme)}
	}
	bucket = u.Host
	object = strings.TrimPrefix(u.Path, "/")
	if bucket == "" || object == "" {
		return "", "", InvalidLocator{Locator: locator, Reason: "expected gs://bucket/object"}
	}
	return bucket, object, nil
}
