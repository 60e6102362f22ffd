package chronicle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStageClassify(t *testing.T) {
	tests := []struct {
		stage Stage
		want  StageClass
	}{
		{StagePending, ClassNonTerminal},
		{StageInQueue, ClassNonTerminal},
		{StageProcessing, ClassNonTerminal},
		{StageFinishedSuccess, ClassSuccess},
		{StageFinishedFailure, ClassFailure},
		{StageCancelled, ClassFailure},
		{StageUnknown, ClassUnrecognized},
		{Stage("ARCHIVING"), ClassUnrecognized},
		{Stage(""), ClassUnrecognized},
	}

	for _, tt := range tests {
		t.Run(string(tt.stage), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.stage.Classify())
		})
	}
}

func TestStageTerminal(t *testing.T) {
	assert.False(t, StageProcessing.Terminal())
	assert.False(t, StageInQueue.Terminal())
	assert.True(t, StageFinishedSuccess.Terminal())
	assert.True(t, StageCancelled.Terminal())
	// An unrecognized stage stops tracking, so it counts as terminal.
	assert.True(t, Stage("SOMETHING_NEW").Terminal())
}

func TestDataExportStage(t *testing.T) {
	e := &DataExport{}
	assert.Equal(t, StageUnknown, e.Stage())

	e.Status = &ExportStatus{}
	assert.Equal(t, StageUnknown, e.Stage())

	e.Status.Stage = StageProcessing
	assert.Equal(t, StageProcessing, e.Stage())
}

func TestDataExportShortID(t *testing.T) {
	e := &DataExport{Name: "projects/p1/locations/us/instances/i1/dataExports/abc-123"}
	assert.Equal(t, "abc-123", e.ShortID())

	assert.Equal(t, "bare", (&DataExport{Name: "bare"}).ShortID())
	assert.Equal(t, "UNKNOWN", (&DataExport{}).ShortID())
}
