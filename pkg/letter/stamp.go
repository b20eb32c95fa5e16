package letter

import (
	"fmt"
	"math/rand"
	"path/filepath"
)

// Stamp identifiers name the decorative postage images shipped with the
// desktop shell, numbered 001 through 118.
const (
	StampMin = 1
	StampMax = 118
)

// RandomStampID picks a stamp uniformly at random. Every successful
// generation rolls a fresh stamp; the choice is decorative and unseeded.
func RandomStampID() string {
	return fmt.Sprintf("%03d", rand.Intn(StampMax-StampMin+1)+StampMin)
}

// ValidStampID reports whether id is a well-formed 3-digit stamp identifier
// in range.
func ValidStampID(id string) bool {
	if len(id) != 3 {
		return false
	}
	n := 0
	for _, c := range id {
		if c < '0' || c > '9' {
			return false
		}
		n = n*10 + int(c-'0')
	}
	return n >= StampMin && n <= StampMax
}

// StampAssetPath resolves a stamp id to its image file under the data
// directory. Pure lookup; nothing checks the file exists.
func StampAssetPath(baseDir, id string) string {
	return filepath.Join(baseDir, "stamp", id+".png")
}
