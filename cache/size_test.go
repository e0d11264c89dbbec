package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateSize(t *testing.T) {
	assert.Equal(t, int64(entryOverhead), estimateSize(nil))
	assert.Equal(t, int64(entryOverhead+5), estimateSize("hello"))
	assert.Equal(t, int64(entryOverhead+1024), estimateSize(make([]byte, 1024)))

	// Structured values are measured by their msgpack encoding; exact size
	// is an implementation detail, monotonicity in payload size is not.
	type record struct {
		Name string
		Data []byte
	}
	small := estimateSize(record{Name: "a", Data: make([]byte, 10)})
	large := estimateSize(record{Name: "a", Data: make([]byte, 1000)})
	assert.Greater(t, small, int64(entryOverhead))
	assert.Greater(t, large, small)
}

func TestEstimateSizeUnencodable(t *testing.T) {
	// Functions cannot be msgpack-encoded; they are charged the fixed
	// overhead rather than failing the write.
	assert.Equal(t, int64(entryOverhead), estimateSize(func() {}))
}
