package event

// Variables exported by NZBGet to extension scripts.
const (
	KeyScriptDir = "NZBOP_SCRIPTDIR"
	KeyCommand   = "NZBCP_COMMAND"

	KeyQueueEvent        = "NZBNA_EVENT"
	KeyQueueNZBName      = "NZBNA_NZBNAME"
	KeyQueueNZBID        = "NZBNA_NZBID"
	KeyQueueDeleteStatus = "NZBNA_DELETESTATUS"

	KeyPostTotalStatus  = "NZBPP_TOTALSTATUS"
	KeyPostStatus       = "NZBPP_STATUS"
	KeyPostNZBName      = "NZBPP_NZBNAME"
	KeyPostNZBID        = "NZBPP_NZBID"
	KeyPostParStatus    = "NZBPP_PARSTATUS"
	KeyPostUnpackStatus = "NZBPP_UNPACKSTATUS"
	KeyPostDirectory    = "NZBPP_DIRECTORY"
)

// Flow is the kind of work an invocation asks for.
type Flow int

const (
	// FlowNone means there is nothing to do. The process exits 0.
	FlowNone Flow = iota
	FlowQueue
	FlowPostProcess
	FlowTest
)

func (f Flow) String() string {
	switch f {
	case FlowQueue:
		return "queue"
	case FlowPostProcess:
		return "post-process"
	case FlowTest:
		return "test"
	default:
		return "none"
	}
}

// QueueEvent is the value of NZBNA_EVENT.
type QueueEvent string

const (
	QueueAdded      QueueEvent = "NZB_ADDED"
	QueueDownloaded QueueEvent = "NZB_DOWNLOADED"
	QueueDeleted    QueueEvent = "NZB_DELETED"
)

// Known reports whether the event is one this extension subscribes to.
func (e QueueEvent) Known() bool {
	switch e {
	case QueueAdded, QueueDownloaded, QueueDeleted:
		return true
	}
	return false
}

// Command names NZBGet uses for the "Test Push Notifications" button. Older
// NZBGet releases sent TestSettings.
const (
	CommandTest       = "Test"
	CommandTestLegacy = "TestSettings"
)

// Classify picks the flow for c. A queue event takes precedence over a
// post-processing status, which takes precedence over a command. Queue events
// other than added/downloaded/deleted classify as FlowNone.
func Classify(c Context) Flow {
	if ev, ok := c.Lookup(KeyQueueEvent); ok {
		if QueueEvent(ev).Known() {
			return FlowQueue
		}
		return FlowNone
	}
	if c.Has(KeyPostTotalStatus) {
		return FlowPostProcess
	}
	switch c.Get(KeyCommand) {
	case CommandTest, CommandTestLegacy:
		return FlowTest
	}
	return FlowNone
}
