package http

import (
	"time"

	xutil "github.com/energy-oracle/eo-api/pkg/util"
)

// ParseISODate parses a YYYY-MM-DD calendar day as midnight UTC.
func ParseISODate(s string) (time.Time, bool) { return xutil.ParseISODate(s) }

// ParseIntDefault parses string to int or returns default if empty/invalid.
func ParseIntDefault(s string, def int) int { return xutil.ParseIntDefault(s, def) }
