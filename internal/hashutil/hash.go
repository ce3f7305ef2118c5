package hashutil

import (
	"crypto/sha1"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/codeclash-games/codeclash/internal/bytespool"
)

func SerializedSha1FromTime() string {
	buf := bytespool.Get()
	defer func() {
		buf.Reset()
		bytespool.Put(buf)
	}()
	buf.WriteString(strconv.FormatInt(time.Now().UnixNano(), 10))
	hash := sha1.New()
	hash.Write(buf.Bytes())
	return hex.EncodeToString(hash.Sum(nil))
}
