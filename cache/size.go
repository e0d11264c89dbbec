package cache

import (
	"github.com/vmihailenco/msgpack/v5"
)

// entryOverhead approximates the fixed bookkeeping cost of one entry
// (struct, map slot, list element) on top of its payload.
const entryOverhead = 96

// estimateSize returns the estimated serialized size of a value in bytes.
// Byte slices and strings are counted directly; everything else is measured
// by its msgpack encoding, matching how values would serialize if they ever
// left the process. The estimate only drives byte-bounded and pressure
// eviction, so a conservative approximation is sufficient — values that
// cannot be encoded (functions, channels) are charged the fixed overhead
// alone.
func estimateSize(v any) int64 {
	switch t := v.(type) {
	case nil:
		return entryOverhead
	case []byte:
		return entryOverhead + int64(len(t))
	case string:
		return entryOverhead + int64(len(t))
	}
	data, err := msgpack.Marshal(v)
	if err != nil {
		return entryOverhead
	}
	return entryOverhead + int64(len(data))
}
