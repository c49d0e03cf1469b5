package model

import (
	"time"
)

// ObjectiveExport is the JSON document produced by objective exports.
type ObjectiveExport struct {
	ExportedAt time.Time                  `json:"exported_at"`
	Objective  *Objective                 `json:"objective"`
	Progress   map[int64][]*ProgressEntry `json:"progress"`
	Coverage   []*KeyResultCoverage       `json:"coverage"`
}

// ExportArchive points at an export stored in object storage.
type ExportArchive struct {
	Key string `json:"key"`
	URL string `json:"url"`
}
