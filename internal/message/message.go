// Package message builds the notification that is pushed to NZBClient: the
// title, body, priority and deep link for each NZBGet flow.
package message

import (
	"errors"
	"strings"
)

// Priority is the wire priority code.
type Priority int

const (
	PriorityLow    Priority = -1
	PriorityNormal Priority = 0
	PriorityHigh   Priority = 1
)

// ParsePriority maps an option word to its code. Anything other than low,
// normal or high is treated as normal.
func ParsePriority(word string) Priority {
	switch word {
	case "low":
		return PriorityLow
	case "high":
		return PriorityHigh
	default:
		return PriorityNormal
	}
}

// Deep link roots understood by the NZBClient app.
const (
	LinkDownloads = "nzbclient://downloads"
	LinkHistory   = "nzbclient://history"
	LinkTest      = "nzbclient://test"
)

// DeepLink appends the NZB id to root as an nzbid query parameter. An empty
// id returns root unchanged.
func DeepLink(root, nzbID string) string {
	if nzbID == "" {
		return root
	}
	return root + "?nzbid=" + nzbID
}

// Outbound is a fully composed notification.
type Outbound struct {
	Title          string
	Body           string
	Link           string
	Priority       Priority
	IsEncrypted    bool
	EncryptionType string // set only when IsEncrypted
	CorrelationID  string
}

// Validate checks the invariants every notification must satisfy before it
// is sent.
func (o Outbound) Validate() error {
	if o.Body == "" {
		return errors.New("message: body is empty")
	}
	if o.Priority < PriorityLow || o.Priority > PriorityHigh {
		return errors.New("message: priority out of range")
	}
	if o.IsEncrypted != (o.EncryptionType != "") {
		return errors.New("message: encryption flag and type disagree")
	}
	return nil
}

// Sanitize replaces every '.' in a body with a space. NZB names are dotted
// and read better that way on a lock screen.
func Sanitize(body string) string {
	return strings.ReplaceAll(body, ".", " ")
}
