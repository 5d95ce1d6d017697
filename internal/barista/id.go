package barista

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync/atomic"
	"time"
)

// idSource is swapped in tests.
var idSource io.Reader = rand.Reader

var fallbackSeq atomic.Uint64

// generateID creates a short random hex ID for orders.
func generateID() string {
	b := make([]byte, 8)
	if _, err := io.ReadFull(idSource, b); err != nil {
		// Fallback -- should never happen.
		return fmt.Sprintf("order-%d-%d", time.Now().UnixNano(), fallbackSeq.Add(1))
	}
	return fmt.Sprintf("%x", b)
}
