// This file is part of Gophernes.
//
// Gophernes is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gophernes is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gophernes.  If not, see <https://www.gnu.org/licenses/>.

package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Entry represents a single line/entry in the log
type Entry struct {
	Timestamp time.Time
	Tag       string
	Detail    string
	repeated  int
}

func (e *Entry) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s: %s", e.Tag, e.Detail))
	if e.repeated > 0 {
		s.WriteString(fmt.Sprintf(" (repeat x%d)", e.repeated+1))
	}
	return s.String()
}

// Logger is a bounded list of log entries. Consecutive identical entries are
// folded into a single entry with a repeat count.
type Logger struct {
	crit sync.Mutex

	maxEntries int
	entries    []Entry

	// the index of the first entry not yet returned by WriteRecent()
	recentStart int

	echo           io.Writer
	echoRecentOnly bool
}

// NewLogger is the preferred method of initialisation for the Logger type.
func NewLogger(maxEntries int) *Logger {
	return &Logger{
		maxEntries: maxEntries,
		entries:    make([]Entry, 0, maxEntries),
	}
}

// Log adds an entry to the log. The detail argument can be of any type but
// error and fmt.Stringer are treated specially.
func (l *Logger) Log(perm Permission, tag string, detail any) {
	if perm != Allow && !perm.AllowLogging() {
		return
	}

	var s string
	switch d := detail.(type) {
	case error:
		s = d.Error()
	case fmt.Stringer:
		s = d.String()
	case string:
		s = d
	default:
		s = fmt.Sprintf("%v", d)
	}

	l.log(tag, s)
}

// Logf adds a formatted entry to the log.
func (l *Logger) Logf(perm Permission, tag string, detail string, args ...any) {
	if perm != Allow && !perm.AllowLogging() {
		return
	}
	l.log(tag, fmt.Sprintf(detail, args...))
}

func (l *Logger) log(tag string, detail string) {
	l.crit.Lock()
	defer l.crit.Unlock()

	// newlines in an entry make the output of Write() and Tail() ambiguous
	tag = strings.ReplaceAll(tag, "\n", "")
	detail = strings.ReplaceAll(detail, "\n", "")

	var last *Entry
	if len(l.entries) > 0 {
		last = &l.entries[len(l.entries)-1]
	}

	if last != nil && last.Tag == tag && last.Detail == detail {
		last.repeated++
		last.Timestamp = time.Now()
	} else {
		l.entries = append(l.entries, Entry{Timestamp: time.Now(), Tag: tag, Detail: detail})
		last = &l.entries[len(l.entries)-1]
	}

	if len(l.entries) > l.maxEntries {
		n := len(l.entries) - l.maxEntries
		l.entries = l.entries[n:]
		l.recentStart = max(0, l.recentStart-n)
		last = &l.entries[len(l.entries)-1]
	}

	if l.echo != nil {
		io.WriteString(l.echo, last.String())
		io.WriteString(l.echo, "\n")
	}
}

// Clear all entries from the log.
func (l *Logger) Clear() {
	l.crit.Lock()
	defer l.crit.Unlock()
	l.entries = l.entries[:0]
	l.recentStart = 0
}

// Write contents of the log to io.Writer. Returns false if there are no
// entries.
func (l *Logger) Write(output io.Writer) bool {
	l.crit.Lock()
	defer l.crit.Unlock()

	if len(l.entries) == 0 {
		return false
	}
	for _, e := range l.entries {
		io.WriteString(output, e.String())
		io.WriteString(output, "\n")
	}
	return true
}

// WriteRecent writes only the entries added since the previous call to
// WriteRecent.
func (l *Logger) WriteRecent(output io.Writer) {
	l.crit.Lock()
	defer l.crit.Unlock()

	for _, e := range l.entries[l.recentStart:] {
		io.WriteString(output, e.String())
		io.WriteString(output, "\n")
	}
	l.recentStart = len(l.entries)
}

// Tail writes the last N entries to io.Writer.
func (l *Logger) Tail(output io.Writer, number int) {
	l.crit.Lock()
	defer l.crit.Unlock()

	number = min(max(number, 0), len(l.entries))
	for _, e := range l.entries[len(l.entries)-number:] {
		io.WriteString(output, e.String())
		io.WriteString(output, "\n")
	}
}

// SetEcho prints new log entries to io.Writer as they are added. A nil
// writer stops the echo. If writeExisting is true then any existing entries
// are written to the io.Writer immediately.
func (l *Logger) SetEcho(output io.Writer, writeExisting bool) {
	l.crit.Lock()
	l.echo = output
	l.crit.Unlock()

	if output != nil && writeExisting {
		l.Write(output)
	}
}

// BorrowLog gives the provided function the critical section and access to
// the list of log entries.
func (l *Logger) BorrowLog(f func([]Entry)) {
	l.crit.Lock()
	defer l.crit.Unlock()
	f(l.entries)
}
