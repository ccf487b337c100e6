package mf

import "time"

const (
	shutDownTimeout = 30 * time.Second
	checkPortTimeout = 2 * time.Second

	// defaultLimit is used when the `limit` query parameter is absent (§4.B).
	defaultLimit = 10
	// maxLimit is the upper bound §4.B places on `limit`.
	maxLimit = 10000

	defaultCRS = "urn:ogc:def:crs:OGC:1.3:CRS84"
	defaultTRS = "urn:ogc:data:time:iso8601"
)
