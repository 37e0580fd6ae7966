// Package lifecycle holds shared timing constants for fx lifecycle hooks.
package lifecycle

import "time"

// DefaultTimeout bounds start/stop hooks such as the database ping.
const DefaultTimeout = 10 * time.Second
