package publisher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventBuilders(t *testing.T) {
	e := Log("run-1", "starting", "info")
	assert.Equal(t, EventLog, e.Type)
	assert.Equal(t, "run-1", e.RunID)
	assert.Equal(t, "starting", e.Message)
	assert.False(t, e.At.IsZero())

	e = Count("run-1", 42, 5)
	assert.Equal(t, EventUpdateCount, e.Type)
	assert.Equal(t, 42, e.TotalRecords)
	assert.Equal(t, 5, e.NewRecords)

	e = Pages("run-1", 3)
	assert.Equal(t, EventUpdatePages, e.Type)
	assert.Equal(t, 3, e.PagesScraped)

	e = Complete("run-1", 42)
	assert.Equal(t, EventScrapingComplete, e.Type)

	e = Failure("run-1", "boom")
	assert.Equal(t, EventScrapingError, e.Type)
	assert.Equal(t, "error", e.Severity)
}
