package event

// Queue is the context of a queue event.
type Queue struct {
	Event        QueueEvent
	NZBName      string
	NZBID        string
	DeleteStatus string
}

// ExtractQueue pulls the queue-event fields out of c. The delete status is
// only required for NZB_DELETED.
func ExtractQueue(c Context) (Queue, error) {
	ev, err := c.Require(KeyQueueEvent)
	if err != nil {
		return Queue{}, err
	}
	name, err := c.Require(KeyQueueNZBName)
	if err != nil {
		return Queue{}, err
	}
	q := Queue{
		Event:   QueueEvent(ev),
		NZBName: name,
		NZBID:   c.Get(KeyQueueNZBID),
	}
	if q.Event == QueueDeleted {
		if q.DeleteStatus, err = c.Require(KeyQueueDeleteStatus); err != nil {
			return Queue{}, err
		}
	}
	return q, nil
}

// PostProcess is the context of a post-processing run. ParStatus,
// UnpackStatus and Directory are optional here; the steps that read them
// check for presence themselves.
type PostProcess struct {
	TotalStatus string
	Status      string
	NZBName     string
	NZBID       string

	ParStatus       string
	HasParStatus    bool
	UnpackStatus    string
	HasUnpackStatus bool
	Directory       string
	HasDirectory    bool
}

// ExtractPostProcess pulls the post-processing fields out of c.
func ExtractPostProcess(c Context) (PostProcess, error) {
	var (
		pp  PostProcess
		err error
	)
	if pp.TotalStatus, err = c.Require(KeyPostTotalStatus); err != nil {
		return PostProcess{}, err
	}
	if pp.NZBName, err = c.Require(KeyPostNZBName); err != nil {
		return PostProcess{}, err
	}
	if pp.Status, err = c.Require(KeyPostStatus); err != nil {
		return PostProcess{}, err
	}
	pp.NZBID = c.Get(KeyPostNZBID)
	pp.ParStatus, pp.HasParStatus = c.Lookup(KeyPostParStatus)
	pp.UnpackStatus, pp.HasUnpackStatus = c.Lookup(KeyPostUnpackStatus)
	pp.Directory, pp.HasDirectory = c.Lookup(KeyPostDirectory)
	return pp, nil
}
