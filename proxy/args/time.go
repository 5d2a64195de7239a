package args

import (
	"fmt"
	"strconv"
	"time"
)

// EpochMillis is a time.Time that marshals to and from JSON as the
// integer count of milliseconds since the Unix epoch, matching how
// timestamp arguments encode on the wire. Use it in request and
// response models wherever a service speaks epoch dates instead of
// RFC 3339.
type EpochMillis time.Time

// MarshalJSON implements json.Marshaler.
func (t EpochMillis) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, time.Time(t).UnixMilli(), 10), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *EpochMillis) UnmarshalJSON(b []byte) error {
	ms, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("parsing epoch milliseconds: %w", err)
	}

	*t = EpochMillis(time.UnixMilli(ms).UTC())

	return nil
}

// Time returns the underlying time.Time.
func (t EpochMillis) Time() time.Time { return time.Time(t) }
