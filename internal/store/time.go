package store

import "time"

// stdTime is just time.Time, named locally so the scan helpers in this
// package read a little less noisily next to the pq.Array conversions.
type stdTime = time.Time

const storeTimestampLayout = "2006-01-02 15:04:05.999999"

// parseStoreTimestamp parses the timestamp format Postgres returns for a
// naive (no offset) timestamp column, which is always UTC in this store
// (§3: every instant the core deals in is UTC).
func parseStoreTimestamp(raw string) (time.Time, error) {
	t, err := time.Parse(storeTimestampLayout, raw)
	if err != nil {
		return time.Time{}, err
	}

	return t.UTC(), nil
}
