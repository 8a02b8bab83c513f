package contracts

import (
	"encoding/json"
	"time"

	"github.com/djrtwo/simple-contracts/errors"
)

// UnixTime is a point in time in whole seconds since the epoch. Block time
// and expirations are both UnixTime, so comparing them never mixes
// precisions.
type UnixTime int64

// AsUnixTime drops the sub-second part of t.
func AsUnixTime(t time.Time) UnixTime {
	return UnixTime(t.Unix())
}

func (t UnixTime) Time() time.Time {
	return time.Unix(int64(t), 0)
}

// Validate rejects times before the epoch.
func (t UnixTime) Validate() error {
	if t < 0 {
		return errors.Wrap(errors.ErrState, "negative value")
	}
	return nil
}

func (t UnixTime) String() string {
	return t.Time().UTC().String()
}

// UnmarshalJSON reads a number of seconds, or an RFC 3339 string which is
// easier to write in a genesis file.
func (t *UnixTime) UnmarshalJSON(raw []byte) error {
	var secs int64
	if err := json.Unmarshal(raw, &secs); err != nil {
		var std time.Time
		if err := json.Unmarshal(raw, &std); err != nil {
			return errors.Wrap(errors.ErrInput, "invalid time format")
		}
		secs = std.Unix()
	}
	if secs < 0 {
		return errors.Wrap(errors.ErrInput, "time before epoch")
	}
	*t = UnixTime(secs)
	return nil
}
