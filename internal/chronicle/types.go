package chronicle

import (
	"encoding/json"
	"strings"
	"time"
)

// Stage is the remote-service-reported lifecycle state of an export.
// The value set is owned by the service; anything outside the known
// constants classifies as unrecognized rather than failing to parse.
type Stage string

const (
	StagePending         Stage = "PENDING"
	StageInQueue         Stage = "IN_QUEUE"
	StageProcessing      Stage = "PROCESSING"
	StageFinishedSuccess Stage = "FINISHED_SUCCESS"
	StageFinishedFailure Stage = "FINISHED_FAILURE"
	StageCancelled       Stage = "CANCELLED"
	StageUnknown         Stage = "UNKNOWN"
)

// StageClass partitions stages for the tracking loop.
type StageClass int

const (
	// ClassNonTerminal stages keep the tracker polling.
	ClassNonTerminal StageClass = iota
	ClassSuccess
	// ClassFailure covers both a failed run and a cancelled one.
	ClassFailure
	// ClassUnrecognized is any stage outside the known set. Never
	// assumed transient: the tracker stops on it.
	ClassUnrecognized
)

func (c StageClass) String() string {
	switch c {
	case ClassNonTerminal:
		return "non-terminal"
	case ClassSuccess:
		return "success"
	case ClassFailure:
		return "failure"
	default:
		return "unrecognized"
	}
}

// Classify maps a stage onto its tracking class.
func (s Stage) Classify() StageClass {
	switch s {
	case StagePending, StageInQueue, StageProcessing:
		return ClassNonTerminal
	case StageFinishedSuccess:
		return ClassSuccess
	case StageFinishedFailure, StageCancelled:
		return ClassFailure
	default:
		return ClassUnrecognized
	}
}

// Terminal reports whether tracking stops at this stage.
func (s Stage) Terminal() bool {
	return s.Classify() != ClassNonTerminal
}

// ExportStatus is the status block of a data-export resource.
type ExportStatus struct {
	Stage              Stage  `json:"stage"`
	ProgressPercentage int    `json:"progressPercentage,omitempty"`
	Error              string `json:"error,omitempty"`
}

// DataExport mirrors the wire representation of one export resource.
// Timestamps stay as RFC3339 strings: the service formats them and the
// tool only displays them.
type DataExport struct {
	Name            string        `json:"name"`
	StartTime       string        `json:"startTime,omitempty"`
	EndTime         string        `json:"endTime,omitempty"`
	GCSBucket       string        `json:"gcsBucket,omitempty"`
	IncludeLogTypes []string      `json:"includeLogTypes,omitempty"`
	CreateTime      string        `json:"createTime,omitempty"`
	Status          *ExportStatus `json:"dataExportStatus,omitempty"`

	// Raw is the undecoded response body the resource came from, kept
	// for diagnosis when tracking ends in failure or an unknown stage.
	Raw json.RawMessage `json:"-"`
}

// Stage returns the reported stage, or StageUnknown when the service
// sent no status block.
func (e *DataExport) Stage() Stage {
	if e.Status == nil || e.Status.Stage == "" {
		return StageUnknown
	}
	return e.Status.Stage
}

// ShortID is the last path segment of the resource name, as shown in
// listings.
func (e *DataExport) ShortID() string {
	if e.Name == "" {
		return "UNKNOWN"
	}
	parts := strings.Split(e.Name, "/")
	return parts[len(parts)-1]
}

// StatusObservation is one immutable snapshot produced per status fetch.
type StatusObservation struct {
	Name       string
	Stage      Stage
	Payload    json.RawMessage
	ObservedAt time.Time
}
