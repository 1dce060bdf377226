package core

import "time"

// Timestamp is the creation instant of a tick, in milliseconds since the Unix
// epoch.
type Timestamp int64

// Now returns the current instant as a Timestamp.
func Now() Timestamp {
	return Timestamp(time.Now().UnixMilli())
}

// TimestampFromTime converts a time.Time to a Timestamp.
func TimestampFromTime(t time.Time) Timestamp {
	return Timestamp(t.UnixMilli())
}

// Time converts the Timestamp back to a time.Time.
func (t Timestamp) Time() time.Time {
	return time.UnixMilli(int64(t))
}

// Before reports whether t is earlier than other.
func (t Timestamp) Before(other Timestamp) bool {
	return t < other
}

// String implements fmt.Stringer interface
func (t Timestamp) String() string {
	return t.Time().UTC().Format(time.RFC3339Nano)
}

// Timeout is the validity duration of a tick. A tick with timestamp ts and
// timeout d is valid until ts + d; interpreting that deadline is the caller's
// job, not an active timer owned by this package.
type Timeout time.Duration

// Duration converts the Timeout to a time.Duration.
func (t Timeout) Duration() time.Duration {
	return time.Duration(t)
}

// String implements fmt.Stringer interface
func (t Timeout) String() string {
	return time.Duration(t).String()
}
