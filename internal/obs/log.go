// Package obs holds the small logging helper shared by the ingest layer and
// both drivers.
package obs

import (
	"fmt"
	"time"
)

// Log prints a timestamp-prefixed message, mirroring the teacher's
// webledger.Log helper.
func Log(format string, a ...interface{}) {
	message := fmt.Sprintf(format, a...)
	fmt.Printf("%v %v\n", time.Now().Format(time.Stamp), message)
}

// Warn is Log with a "warn:" tag, used for ParseWarning-class events that
// are retained (not fatal) per spec §7(b).
func Warn(format string, a ...interface{}) {
	Log("warn: "+format, a...)
}
