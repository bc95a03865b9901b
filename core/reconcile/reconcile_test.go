package reconcile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanOverwrite(t *testing.T) {
	tests := []struct {
		name       string
		incoming   int
		incumbent  int
		sameSource bool
		want       bool
	}{
		{"Better priority", 1, 5, false, true},
		{"Worse priority", 5, 1, false, false},
		{"Tie keeps incumbent", 3, 3, false, false},
		{"Same source", 9, 1, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanOverwrite(tt.incoming, tt.incumbent, tt.sameSource))
		})
	}
}

func TestCanOverwrite_Monotonic(t *testing.T) {
	// Once a better source owns a record, no worse source ever wins it back.
	for better := 0; better < 10; better++ {
		for worse := better; worse < 10; worse++ {
			assert.False(t, CanOverwrite(worse, better, false), "%d over %d", worse, better)
		}
	}
}

func TestStats(t *testing.T) {
	s := Stats{Total: 3, Added: 1, Skipped: 2}
	s.Merge(Stats{Total: 2, Updated: 1, Errors: 1})

	assert.Equal(t, Stats{Total: 5, Updated: 1, Added: 1, Skipped: 2, Errors: 1}, s)
	assert.Equal(t, 2, s.Changed())

	raw, err := json.Marshal(SyncResult{Success: true, Message: "ok", Stats: s})
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"message":"ok","stats":{"total_records":5,"records_updated":1,"records_added":1,"records_skipped":2,"records_errors":1}}`, string(raw))
}

func TestPlan(t *testing.T) {
	var plan Plan[string]
	plan.Add(Action[string]{Type: ActionInsert, Key: "a", Record: "A"})
	plan.Add(Action[string]{Type: ActionUpdate, Key: "b", Record: "B"})
	plan.Add(Action[string]{Type: ActionSkip, Key: "c", Reason: "unchanged"})
	plan.Add(Action[string]{Type: ActionInsert, Key: "d", Record: "D"})

	assert.Equal(t, 4, plan.Len())
	assert.Equal(t, []string{"A", "D"}, Records(plan.Inserts))
	assert.Equal(t, []string{"B"}, Records(plan.Updates))
	assert.Equal(t, "unchanged", plan.Skips[0].Reason)
}
