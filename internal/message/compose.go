package message

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/LISSConsulting/LISSTech.NZBNotify/internal/config"
	"github.com/LISSConsulting/LISSTech.NZBNotify/internal/event"
)

// LookupError reports a status code outside the set NZBGet documents.
type LookupError struct {
	Field string
	Code  string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("message: unknown %s code %q", e.Field, e.Code)
}

var parStatusLabels = map[string]string{
	"0": "skipped",
	"1": "failed",
	"2": "repaired",
	"3": "repairable",
	"4": "manual",
}

var unpackStatusLabels = map[string]string{
	"0": "skipped",
	"1": "failed",
	"2": "success",
}

// ParStatusLabel translates NZBPP_PARSTATUS. Unknown codes are an error.
func ParStatusLabel(code string) (string, error) {
	label, ok := parStatusLabels[code]
	if !ok {
		return "", &LookupError{Field: event.KeyPostParStatus, Code: code}
	}
	return label, nil
}

// UnpackStatusLabel translates NZBPP_UNPACKSTATUS. Unknown codes are an error.
func UnpackStatusLabel(code string) (string, error) {
	label, ok := unpackStatusLabels[code]
	if !ok {
		return "", &LookupError{Field: event.KeyPostUnpackStatus, Code: code}
	}
	return label, nil
}

// UnknownDeletionTitle is used for delete statuses NZBGet may add later.
const UnknownDeletionTitle = "Unknown Deletion"

var deletionTitles = map[string]string{
	"MANUAL": "NZB Manually Deleted",
	"DUPE":   "Duplicate NZB Deleted",
	"BAD":    "Bad NZB Deleted",
	"GOOD":   "Good NZB Deleted",
	"COPY":   "NZB Copy Deleted",
	"SCAN":   "NZB Scan Deleted",
}

// DeletionTitle maps NZBNA_DELETESTATUS to a title. Unlike the par/unpack
// labels this never fails.
func DeletionTitle(status string) string {
	if title, ok := deletionTitles[status]; ok {
		return title
	}
	return UnknownDeletionTitle
}

// Outcome is the class of a post-processing result.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeWarning
	OutcomeFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWarning:
		return "warning"
	case OutcomeFailure:
		return "failure"
	default:
		return "success"
	}
}

// ClassifyTotalStatus maps NZBPP_TOTALSTATUS to an outcome. Everything that
// is not FAILURE or WARNING counts as success.
func ClassifyTotalStatus(total string) Outcome {
	switch total {
	case "FAILURE":
		return OutcomeFailure
	case "WARNING":
		return OutcomeWarning
	default:
		return OutcomeSuccess
	}
}

// PostProcess composes the post-processing notification and returns it
// together with the outcome, so the caller can apply the success/failure
// delivery gate. Diagnostics and the file list are appended here, before
// any gating.
func PostProcess(pp event.PostProcess, cfg config.PostProcessConfig) (Outbound, Outcome, error) {
	outcome := ClassifyTotalStatus(pp.TotalStatus)

	var title, body string
	switch outcome {
	case OutcomeFailure:
		title = "Download Failed"
		body = fmt.Sprintf(`Download of "%s" has failed: %s`, pp.NZBName, pp.Status)
	case OutcomeWarning:
		title = "Action Needed"
		body = fmt.Sprintf(`User intervention required for download of "%s": %s`, pp.NZBName, pp.Status)
	default:
		title = "Download Successful"
		body = fmt.Sprintf(`Download of "%s" has successfully completed: %s`, pp.NZBName, pp.Status)
	}

	priority := ParsePriority(cfg.FailurePriority)
	if outcome == OutcomeSuccess {
		priority = ParsePriority(cfg.SuccessPriority)
	}

	var b strings.Builder
	b.WriteString(body)

	if cfg.AppendParUnpack {
		par, err := ParStatusLabel(pp.ParStatus)
		if err != nil {
			return Outbound{}, outcome, err
		}
		unpack, err := UnpackStatusLabel(pp.UnpackStatus)
		if err != nil {
			return Outbound{}, outcome, err
		}
		fmt.Fprintf(&b, "\nPar-Status: %s", par)
		fmt.Fprintf(&b, "\nUnpack-Status: %s", unpack)
	}

	if cfg.FileList {
		if !pp.HasDirectory {
			return Outbound{}, outcome, &event.MissingKeyError{Key: event.KeyPostDirectory}
		}
		files, err := ListFiles(pp.Directory)
		if err != nil {
			return Outbound{}, outcome, err
		}
		b.WriteString("\n\nFiles:")
		for _, f := range files {
			b.WriteString("\n")
			b.WriteString(f)
		}
	}

	return Outbound{
		Title:         title,
		Body:          b.String(),
		Link:          DeepLink(LinkHistory, pp.NZBID),
		Priority:      priority,
		CorrelationID: pp.NZBID,
	}, outcome, nil
}

// ListFiles returns the path of every regular file below dir, relative to
// dir, in filepath.WalkDir order. Directories that cannot be read are
// skipped, as is a dir that does not exist.
func ListFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			return relErr
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("message: list %s: %w", dir, err)
	}
	return files, nil
}

// Queue composes the notification for a queue event. ok is false when the
// event's notification is disabled, in which case nothing is composed.
func Queue(q event.Queue, cfg config.QueueConfig) (msg Outbound, ok bool) {
	switch q.Event {
	case event.QueueAdded:
		if !cfg.NZBAdded {
			return Outbound{}, false
		}
		msg = Outbound{
			Title:    "NZB Added To Queue",
			Link:     DeepLink(LinkDownloads, q.NZBID),
			Priority: ParsePriority(cfg.AddedPriority),
		}
	case event.QueueDownloaded:
		if !cfg.NZBDownloaded {
			return Outbound{}, false
		}
		msg = Outbound{
			Title:    "NZB Downloaded",
			Link:     DeepLink(LinkHistory, q.NZBID),
			Priority: ParsePriority(cfg.DownloadedPriority),
		}
	case event.QueueDeleted:
		if !cfg.NZBDeleted {
			return Outbound{}, false
		}
		msg = Outbound{
			Title:    DeletionTitle(q.DeleteStatus),
			Link:     DeepLink(LinkHistory, q.NZBID),
			Priority: ParsePriority(cfg.DeletedPriority),
		}
	default:
		return Outbound{}, false
	}

	msg.Body = q.NZBName
	msg.CorrelationID = q.NZBID
	return msg, true
}

// Test is the fixed connectivity-test notification.
func Test(correlationID string) Outbound {
	return Outbound{
		Title:         "Test Notification",
		Body:          "Success! Push Notifications are working.",
		Link:          LinkTest,
		Priority:      PriorityNormal,
		CorrelationID: correlationID,
	}
}
