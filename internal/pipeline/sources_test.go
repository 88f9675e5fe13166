package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/connectivity-cli/internal/model"
	"github.com/sells-group/connectivity-cli/internal/utm"
)

func TestSourceConnectivity(t *testing.T) {
	leads := []model.Lead{
		lead("911111111111", "A", "google", "spring"),
		lead("912222222222", "B", "google", "summer"),
		lead("913333333333", "C", "meta", "fall"),
		lead("914444444444", "D", "", ""),
	}
	calls := []model.CallEvent{
		call("911111111111", "x", model.StatusAnswered, 10, 0),
		call("911111111111", "x", model.StatusAnswered, 10, 0),
		call("912222222222", "x", model.StatusMissed, 0, 0),
		call("913333333333", "x", "Busy", 0, 0),
	}

	got := SourceConnectivity(Join(leads, calls))
	require.Len(t, got, 3)

	google := got[0]
	assert.Equal(t, "google", google.Source)
	assert.Equal(t, 2, google.AnsweredCalls)
	assert.Equal(t, 1, google.MissedCalls)
	assert.Equal(t, 3, google.TotalCalls)
	require.NotNil(t, google.ConnectivityRate)
	assert.Equal(t, 0.67, *google.ConnectivityRate)

	meta := got[1]
	assert.Equal(t, "meta", meta.Source)
	assert.Equal(t, 0, meta.TotalCalls)
	assert.Nil(t, meta.ConnectivityRate)

	none := got[2]
	assert.Equal(t, utm.None, none.Source)
	assert.Nil(t, none.ConnectivityRate)
}

func TestSourceConnectivity_Empty(t *testing.T) {
	assert.Empty(t, SourceConnectivity(nil))
}
