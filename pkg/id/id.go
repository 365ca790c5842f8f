// Package id generates ULID identifiers for optimization runs.
package id

import (
	"crypto/rand"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// mono draws entropy straight from crypto/rand; ulid.Monotonic keeps ids
// generated within the same millisecond lexicographically increasing. The
// reader is not safe for concurrent use, hence the mutex.
var (
	mu   sync.Mutex
	mono io.Reader = ulid.Monotonic(rand.Reader, 0)
)

// NewRunID returns a ULID string. Run ids sort by creation time, so journal
// rows keyed on them list in chronological order.
func NewRunID() string {
	mu.Lock()
	defer mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(time.Now().UTC()), mono)
	if err != nil {
		panic(err)
	}
	return id.String()
}
