package byteutil

import (
	"encoding/binary"
)

func EncodeInt64ToBytes(id int64) []byte {
	b := make([]byte, 64)
	binary.BigEndian.PutUint64(b, uint64(id))
	return b
}
