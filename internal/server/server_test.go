package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spectraretail/spectra-pos/pkg/schedule"
)

func TestRegisterScheduleOnlyRegisters(t *testing.T) {
	// The schedule:list command calls this with nil services; registration
	// must neither invoke the tasks nor start the dispatch loop.
	RegisterSchedule(nil, nil)

	listing := schedule.List()
	require.Len(t, listing, 2)
	assert.Contains(t, listing[0], "reports.daily_export")
	assert.Contains(t, listing[1], "metrics.low_stock_gauge")
}
