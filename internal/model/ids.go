package model

import (
	"strconv"
	"sync/atomic"
	"time"
)

// Entity identifiers are process-unique 64-bit integers derived from a
// microsecond clock. Each kind gets its own type so a TagID can never be
// passed where a UserID is expected.
type (
	UserID int64
	TagID  int64
	TeamID int64
	TaskID int64
)

func (id UserID) String() string { return strconv.FormatInt(int64(id), 10) }
func (id TagID) String() string  { return strconv.FormatInt(int64(id), 10) }
func (id TeamID) String() string { return strconv.FormatInt(int64(id), 10) }
func (id TaskID) String() string { return strconv.FormatInt(int64(id), 10) }

var lastID atomic.Int64

// NextID returns a fresh process-unique identifier. IDs follow the
// microsecond clock and are bumped past the previous value when two calls
// land on the same tick, so they are strictly increasing within a process.
func NextID() int64 {
	for {
		last := lastID.Load()
		id := time.Now().UnixMicro()
		if id <= last {
			id = last + 1
		}
		if lastID.CompareAndSwap(last, id) {
			return id
		}
	}
}

// NewUserID allocates a fresh user identifier.
func NewUserID() UserID { return UserID(NextID()) }

// NewTagID allocates a fresh tag identifier.
func NewTagID() TagID { return TagID(NextID()) }

// NewTeamID allocates a fresh team identifier.
func NewTeamID() TeamID { return TeamID(NextID()) }

// NewTaskID allocates a fresh task identifier.
func NewTaskID() TaskID { return TaskID(NextID()) }

// ParseUserID parses a decimal user ID string.
func ParseUserID(s string) (UserID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	return UserID(n), err
}

// ParseTagID parses a decimal tag ID string.
func ParseTagID(s string) (TagID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	return TagID(n), err
}

// ParseTeamID parses a decimal team ID string.
func ParseTeamID(s string) (TeamID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	return TeamID(n), err
}

// ParseTaskID parses a decimal task ID string.
func ParseTaskID(s string) (TaskID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	return TaskID(n), err
}
