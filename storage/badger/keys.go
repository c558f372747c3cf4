package badger

import "fmt"

// Key prefixes for different data types
const (
	videoRecordPrefix = "vidrec"
)

// makeVideoKey generates a key for a cached video by ID.
func makeVideoKey(videoID string) []byte {
	return []byte(fmt.Sprintf("%s:%s", videoRecordPrefix, videoID))
}
