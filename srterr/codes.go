// Package srterr carries the error taxonomy the surrounding SRT
// protocol uses: a major/minor code pair plus a system errno, and the
// separate reject-reason enumeration reported on connection refusal.
// The core time/sync/loss-list packages do not originate these errors;
// syncx uses them to report the rare construction-time failure the
// spec carves out for condition variables.
package srterr

import "fmt"

// CodeMajor is the top-level error category.
type CodeMajor int

const (
	MJSuccess CodeMajor = 0
	MJSetup   CodeMajor = 1
	MJConnection CodeMajor = 2
	MJSystemRes  CodeMajor = 3
	MJFileSystem CodeMajor = 4
	MJNotSup     CodeMajor = 5
	MJAgain      CodeMajor = 6
	MJPeerError  CodeMajor = 7
)

// CodeMinor qualifies a CodeMajor.
type CodeMinor int

const (
	MNNone CodeMinor = 0

	// MJSetup
	MNTimeout  CodeMinor = 1
	MNRejected CodeMinor = 2
	MNNoRes    CodeMinor = 3
	MNSecurity CodeMinor = 4

	// MJConnection
	MNConnLost CodeMinor = 1
	MNNoConn   CodeMinor = 2

	// MJSystemRes
	MNThread CodeMinor = 1
	MNMemory CodeMinor = 2

	// MJFileSystem
	MNSeekGFail CodeMinor = 1
	MNReadFail  CodeMinor = 2
	MNSeekPFail CodeMinor = 3
	MNWriteFail CodeMinor = 4

	// MJAgain
	MNWrAvail   CodeMinor = 1
	MNRdAvail   CodeMinor = 2
	MNXmTimeout CodeMinor = 3
)

// Error is the major/minor/errno triple described in spec.md §6/§7.
type Error struct {
	Major CodeMajor
	Minor CodeMinor
	Errno int
	cause error
}

// New builds an Error wrapping cause (may be nil).
func New(major CodeMajor, minor CodeMinor, cause error) *Error {
	return &Error{Major: major, Minor: minor, cause: cause}
}

// Code returns the numeric major*1000+minor code.
func (e *Error) Code() int {
	return int(e.Major)*1000 + int(e.Minor)
}

// Unwrap lets errors.Is/errors.As reach the wrapped cause. Error has no
// Cause method, so pkg/errors.Cause stops at the Error itself.
func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Error() string {
	msg := majorMessage(e.Major, e.Minor)
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.cause)
	}
	return msg
}

func majorMessage(major CodeMajor, minor CodeMinor) string {
	switch major {
	case MJSuccess:
		return "Success"
	case MJSetup:
		m := "Connection setup failure"
		switch minor {
		case MNTimeout:
			return m + ": connection time out"
		case MNRejected:
			return m + ": connection rejected"
		case MNNoRes:
			return m + ": unable to create/configure SRT socket"
		case MNSecurity:
			return m + ": abort for security reasons"
		}
		return m
	case MJConnection:
		switch minor {
		case MNConnLost:
			return "Connection was broken"
		case MNNoConn:
			return "Connection does not exist"
		}
		return "Connection failure"
	case MJSystemRes:
		m := "System resource failure"
		switch minor {
		case MNThread:
			return m + ": unable to create new threads"
		case MNMemory:
			return m + ": unable to allocate buffers"
		}
		return m
	case MJFileSystem:
		m := "File system failure"
		switch minor {
		case MNSeekGFail:
			return m + ": cannot seek read position"
		case MNReadFail:
			return m + ": failure in read"
		case MNSeekPFail:
			return m + ": cannot seek write position"
		case MNWriteFail:
			return m + ": failure in write"
		}
		return m
	case MJNotSup:
		return "Operation not supported"
	case MJAgain:
		m := "Non-blocking call failure"
		switch minor {
		case MNWrAvail:
			return m + ": no buffer available for sending"
		case MNRdAvail:
			return m + ": no data available for reading"
		case MNXmTimeout:
			return m + ": transmission timed out"
		}
		return m
	case MJPeerError:
		return "The peer side has signalled an error"
	default:
		return "Unknown error"
	}
}

// RejectReason is the connection-refusal enumeration, separate from
// the major/minor taxonomy above.
type RejectReason int

const (
	RejUnknown RejectReason = iota
	RejSystem
	RejPeer
	RejResource
	RejRogue
	RejBacklog
	RejInternal
	RejClosed
	RejVersion
	RejRdvCookie
	RejBadSecret
	RejUnsecure
	RejMessageAPI
	RejCongCtl
	RejFilter
	RejGroup
)

var rejectReasonMessages = [...]string{
	"Unknown or erroneous",
	"Error in system calls",
	"Peer rejected connection",
	"Resource allocation failure",
	"Rogue peer or incorrect parameters",
	"Listener's backlog exceeded",
	"Internal Program Error",
	"Socket is being closed",
	"Peer version too old",
	"Rendezvous-mode cookie collision",
	"Incorrect passphrase",
	"Password required or unexpected",
	"MessageAPI/StreamAPI collision",
	"Congestion controller type collision",
	"Packet Filter type collision",
	"Group settings collision",
}

// String renders the human-readable reject message, falling back to
// RejUnknown's message for an out-of-range value.
func (r RejectReason) String() string {
	if int(r) < 0 || int(r) >= len(rejectReasonMessages) {
		return rejectReasonMessages[RejUnknown]
	}
	return rejectReasonMessages[r]
}
