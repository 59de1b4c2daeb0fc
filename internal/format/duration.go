// Package format holds pure formatting helpers shared by the CLI and the
// kitchen tasks.
package format

import (
	"fmt"
	"time"
)

// FormatSeconds renders d as seconds with exactly two decimals ("1.50").
func FormatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.2f", d.Seconds())
}
