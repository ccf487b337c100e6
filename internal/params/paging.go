package params

import (
	"strconv"

	"github.com/mf-api/server/pkg/mf/errors"
)

const (
	defaultLimit = 10
	maxLimit     = 10000
)

// Paging parses `limit` and `offset` (§4.B), applying the default and
// bounds when limit is absent, and rejecting a limit outside (0, maxLimit]
// or a negative offset.
func Paging(rawLimit, rawOffset string) (limit, offset int, err error) {
	limit = defaultLimit

	if rawLimit != "" {
		limit, err = strconv.Atoi(rawLimit)
		if err != nil || limit <= 0 || limit > maxLimit {
			return 0, 0, errors.InvalidParameterValue{Param: []string{"limit"}}
		}
	}

	if rawOffset != "" {
		offset, err = strconv.Atoi(rawOffset)
		if err != nil || offset < 0 {
			return 0, 0, errors.InvalidParameterValue{Param: []string{"offset"}}
		}
	}

	return limit, offset, nil
}
