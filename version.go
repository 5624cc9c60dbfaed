package bust

import (
	"os"
	"strconv"
	"time"
)

// token returns the version for a single asset: the fixed Version when
// one was given, otherwise the asset's mtime
func (b *Bust) token(asset string) string {
	if b.Version != "" {
		return b.Version
	}

	return mtimeToken(asset)
}

// mtimeToken renders an asset's modification time as integer Unix
// seconds. A failed stat falls back to the current time rather than
// killing the pass; the asset was just seen, so at worst the token churns
// on the next run.
func mtimeToken(asset string) string {
	info, err := os.Stat(asset)
	if err != nil {
		return strconv.FormatInt(time.Now().Unix(), 10)
	}

	return strconv.FormatInt(info.ModTime().Unix(), 10)
}
