//go:build !linux

package attribution

import (
	"os"
	"time"
)

// creationTime falls back to the modification time where no portable birth
// time is available.
func creationTime(path string) (time.Time, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return fi.ModTime(), nil
}
