// Package utmp reads login accounting records from wtmp and btmp
// files. Records are fixed-size binary entries appended over time, so
// the newest activity sits at the end of the file. Reads walk the file
// backwards and stop as soon as the requested number of matching
// records has been found.
package utmp

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/cdtdelta/lastseen/internal/model"
)

// Record types from the glibc utmp header.
const (
	Empty        int16 = 0
	RunLvl       int16 = 1
	BootTime     int16 = 2
	NewTime      int16 = 3
	OldTime      int16 = 4
	InitProcess  int16 = 5
	LoginProcess int16 = 6
	UserProcess  int16 = 7
	DeadProcess  int16 = 8
	Accounting   int16 = 9
)

// recordSize is the on-disk size of one glibc x86_64 utmp record.
const recordSize = 384

// rawRecord mirrors the glibc utmp struct, little-endian. Blank fields
// are alignment padding and reserved space.
type rawRecord struct {
	Type    int16
	_       [2]byte
	PID     int32
	Line    [32]byte
	ID      [4]byte
	User    [32]byte
	Host    [256]byte
	Exit    [4]byte
	Session int32
	Sec     int32
	Usec    int32
	Addr    [4]int32
	_       [20]byte
}

// Request controls one read of a log channel. Types nil means every
// non-empty record type matches. Category maps a matching record's
// type to the category it should carry; nil falls back to
// DefaultCategory.
type Request struct {
	Limit    int
	Types    []int16
	Category func(int16) model.Category
}

// DefaultCategory maps utmp record types to the categories a login
// accounting channel usually carries. Types without a fixed meaning
// map to the empty category.
func DefaultCategory(t int16) model.Category {
	switch t {
	case UserProcess:
		return model.Login
	case DeadProcess:
		return model.Logout
	case BootTime:
		return model.SystemStart
	case RunLvl:
		return model.SystemShutdown
	}
	return ""
}

// Read scans the channel at path backwards and returns up to
// req.Limit matching records, newest first. A channel that cannot be
// opened produces a Result carrying a single diagnostic line instead
// of records; a limit of zero or less returns an empty Result without
// opening the file. Non-matching and empty records count as excluded.
func Read(path string, req Request) *model.Result {
	res := &model.Result{}
	if req.Limit <= 0 {
		return res
	}

	f, err := os.Open(path)
	if err != nil {
		res.Diagnostic = "cannot open log channel: " + err.Error()
		return res
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		res.Diagnostic = "cannot read log channel: " + err.Error()
		return res
	}

	category := req.Category
	if category == nil {
		category = DefaultCategory
	}

	// A trailing partial record is ignored.
	total := info.Size() / recordSize
	for i := total - 1; i >= 0 && len(res.Records) < req.Limit; i-- {
		var raw rawRecord
		sr := io.NewSectionReader(f, i*recordSize, recordSize)
		if err := binary.Read(sr, binary.LittleEndian, &raw); err != nil {
			res.Excluded++
			continue
		}
		if raw.Type == Empty || !matches(raw.Type, req.Types) {
			res.Excluded++
			continue
		}
		res.Records = append(res.Records, mapRecord(path, &raw, category))
	}

	res.Count = len(res.Records)
	return res
}

func matches(t int16, types []int16) bool {
	if types == nil {
		return true
	}
	for _, want := range types {
		if t == want {
			return true
		}
	}
	return false
}

func mapRecord(path string, raw *rawRecord, category func(int16) model.Category) model.Record {
	user := cstring(raw.User[:])
	line := cstring(raw.Line[:])
	host := cstring(raw.Host[:])

	var ts time.Time
	if raw.Sec > 0 {
		ts = time.Unix(int64(raw.Sec), int64(raw.Usec)*1000)
	}

	cat := category(raw.Type)
	return model.Record{
		Timestamp: ts,
		Category:  cat,
		Primary:   stamp(raw.Sec, ts) + " " + label(cat) + ": " + user,
		Secondary: secondary(raw.Type, line, host),
		Origin:    path,
	}
}

// stamp renders the record time, falling back to the raw seconds value
// when there is no usable timestamp.
func stamp(sec int32, ts time.Time) string {
	if ts.IsZero() {
		return strconv.FormatInt(int64(sec), 10)
	}
	return ts.Format("2006-01-02 15:04:05")
}

func label(c model.Category) string {
	switch c {
	case model.Login:
		return "Login"
	case model.Logout:
		return "Logout"
	case model.SystemStart:
		return "System start"
	case model.SystemShutdown:
		return "Shutdown"
	case model.FailedLogin:
		return "Failed login"
	}
	return "Record"
}

// secondary picks the qualifier for a record. Boot and runlevel
// entries keep the kernel release glibc stores in the host field;
// everything else reports the terminal line and remote host.
func secondary(t int16, line, host string) string {
	switch {
	case t == BootTime || t == RunLvl:
		return host
	case line != "" && host != "":
		return line + " from " + host
	case line != "":
		return line
	}
	return host
}

func cstring(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
