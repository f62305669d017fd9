package httpclient

import (
	"strconv"
	"strings"
)

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// nextOffset interprets a server-reported byte range and returns the new
// confirmed offset. The server is the source of truth for upload progress:
// the confirmed offset is only ever derived from its answer, never from
// local write counts, since a transmitted chunk is not necessarily durably
// received. The consumed value is the integer after the final hyphen
// ("bytes 0-499" or "0-499"). Anything unparsable reports no progress and
// keeps the previous offset, so the caller re-probes.
//
// A value below the previous offset is accepted as reported: the server
// owns the reconciled range, including any regression.
func nextOffset(rangevalue string, current int64) (int64, bool) {
	i := strings.LastIndexByte(rangevalue, '-')
	if i < 0 {
		return current, false
	}
	value, err := strconv.ParseInt(strings.TrimSpace(rangevalue[i+1:]), 10, 64)
	if err != nil || value < 0 {
		return current, false
	}
	return value, true
}
