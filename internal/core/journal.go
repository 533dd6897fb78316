package core

import "encoding/json"

// journalRecord is the wire format of spec.md §6: t, state, cal, score,
// rel, action.
type journalRecord struct {
	T      float64 `json:"t"`
	State  int     `json:"state"`
	Cal    int     `json:"cal"`
	Score  float64 `json:"score"`
	Rel    float64 `json:"rel"`
	Action int     `json:"action"`
}

// defaultJournalCapacity matches spec.md §4.9.
const defaultJournalCapacity = 200

// eventJournal is a bounded ring of event records: on overflow the oldest
// entry is dropped, and the backing array is allocated once up front so
// pushing never allocates.
type eventJournal struct {
	buf   []journalRecord
	start int
	count int
}

func newEventJournal(capacity int) *eventJournal {
	if capacity <= 0 {
		capacity = defaultJournalCapacity
	}
	return &eventJournal{buf: make([]journalRecord, capacity)}
}

func (j *eventJournal) push(event MotionEvent, relativeMotion float64, action ActionRequest) {
	rec := journalRecord{
		T:      event.TimestampSec,
		State:  int(event.DetectionState),
		Cal:    int(event.CalibrationState),
		Score:  event.Score,
		Rel:    relativeMotion,
		Action: int(action.Type),
	}

	capacity := len(j.buf)
	idx := (j.start + j.count) % capacity
	j.buf[idx] = rec
	if j.count < capacity {
		j.count++
	} else {
		j.start = (j.start + 1) % capacity
	}
}

// dump returns the last n records, oldest first, as a JSON array.
func (j *eventJournal) dump(n int) string {
	if n > j.count {
		n = j.count
	}
	if n < 0 {
		n = 0
	}
	out := make([]journalRecord, n)
	skip := j.count - n
	for i := 0; i < n; i++ {
		idx := (j.start + skip + i) % len(j.buf)
		out[i] = j.buf[idx]
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "[]"
	}
	return string(b)
}
