package cache

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// GenerateKey produces a deterministic cache key from a namespace and the
// content bytes that identify the value. The same namespace and payload
// always yield the same key, so producers and consumers can derive keys
// independently. The namespace is kept as a readable prefix so related keys
// can be invalidated together with InvalidateByPrefix.
func GenerateKey(namespace string, payload []byte) string {
	h := xxhash.New()
	_, _ = h.WriteString(namespace)
	_, _ = h.Write([]byte{0}) // separator so ("ab","c") != ("a","bc")
	_, _ = h.Write(payload)
	return namespace + ":" + strconv.FormatUint(h.Sum64(), 16)
}
