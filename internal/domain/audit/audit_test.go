package audit_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alanyang/dao-janny/internal/domain/audit"
	"github.com/alanyang/dao-janny/internal/domain/task"
)

func TestNew(t *testing.T) {
	pool := []string{"0x01", "0x02"}
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))

	rec := audit.New(audit.ActionRandomAssignment, "0xrequester", audit.SourceOracle, audit.Details{
		Task:            task.Task{ID: "prop-7"},
		EligibleMembers: pool,
		Assignee:        "0x02",
	}, at)
	pool[0] = "0xmutated"

	assert.Equal(t, "prop-7", rec.TaskID)
	assert.Equal(t, time.UTC, rec.Timestamp.Location())
	assert.Equal(t, []string{"0x01", "0x02"}, rec.Details.EligibleMembers)
	assert.Equal(t, "dao-janny-random_assignment-prop-7", rec.Name())
}
