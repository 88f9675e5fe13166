package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/connectivity-cli/internal/model"
)

func TestCallDetails(t *testing.T) {
	leads := []model.Lead{
		lead("911111111111", "Asha", "google", "spring"),
		lead("911111111111", "Asha", "meta", "fall"),
		lead("912222222222", "Ravi", "", ""),
	}
	calls := []model.CallEvent{
		call("911111111111", "acct-1", model.StatusAnswered, 75, 5),
		call("912222222222", "acct-1", model.StatusMissed, 0, 0),
		call("911111111111", "acct-2", model.StatusMissed, -10, 2),
	}

	got := CallDetails(Join(leads, calls), "911111111111")
	require.Len(t, got, 2, "calls shared by duplicate leads are listed once")

	assert.Equal(t, "acct-1", got[0].Account)
	assert.Equal(t, model.StatusAnswered, got[0].Status)
	assert.Equal(t, "00:01:15", got[0].AnswerDuration)
	assert.Equal(t, "00:01:20", got[0].TotalDuration)
	assert.False(t, got[0].NegativeDuration)

	assert.Equal(t, "acct-2", got[1].Account)
	assert.True(t, got[1].NegativeDuration)
	assert.Equal(t, "-00:00:10", got[1].AnswerDuration)
}

func TestCallDetails_NoPhone(t *testing.T) {
	leads := []model.Lead{lead("", "A", "", "")}
	assert.Nil(t, CallDetails(Join(leads, nil), ""))
	assert.Empty(t, CallDetails(Join(leads, nil), "911111111111"))
}
