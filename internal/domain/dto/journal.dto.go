package dto

// Streak is one synthesized day of a month view: the canonical day key
// and the total seconds recorded on that day (zero when nothing was
// recorded).
type Streak struct {
	Date         string  `json:"date"`
	ProgressTime float64 `json:"progress_time"`
}

// JournalDay is one existing day bundle in a whole-journal listing. A
// nil transcript marks an entry that was never transcribed.
type JournalDay struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"`
	Transcripts []*string `json:"transcripts"`
}

type ProgressTimeResponse struct {
	ProgressTime float64 `json:"progress_time"`
}

type JournalEntriesResponse struct {
	Transcripts []*string `json:"transcripts"`
}

type DeleteStatus struct {
	Status string `json:"status"`
}

type UploadResponse struct {
	Filename string `json:"filename"`
}
