package feed

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"time"
)

// NoMoreData is the cursor value returned once a page comes back empty. The
// listing sets a real cursor on every non-empty page, so a caller only learns
// the feed is exhausted by requesting one page past the end.
const NoMoreData = "no more data"

// EncodeCursor serializes a post's creation time into an opaque token that
// round-trips through the client.
func EncodeCursor(t time.Time) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatInt(t.UnixNano()/int64(time.Millisecond), 10)))
}

// DecodeCursor restores the creation time a cursor was built from.
func DecodeCursor(cursor string) (time.Time, error) {
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed cursor: %v", err)
	}

	millis, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed cursor: %v", err)
	}

	return time.Unix(0, millis*int64(time.Millisecond)).UTC(), nil
}
