package metrics_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stg-tools/stg/metrics"
)

func TestCounterAddAndInc(t *testing.T) {
	m := metrics.New()
	c := m.Counter("widgets")
	c.Inc()
	c.Add(4)

	var b strings.Builder
	require.NoError(t, m.Report(&b))
	assert.Equal(t, "widgets: 5\n", b.String())
}

func TestTimeRecordsElapsed(t *testing.T) {
	m := metrics.New()
	stop := m.Time("work")
	time.Sleep(time.Millisecond)
	stop()

	var b strings.Builder
	require.NoError(t, m.Report(&b))
	assert.Contains(t, b.String(), "work: ")
	assert.Contains(t, b.String(), " ms")
}

func TestHistogramFormatsAscendingByKey(t *testing.T) {
	m := metrics.New()
	h := m.Histogram("sizes")
	h.Add(3)
	h.Add(1)
	h.Add(3)

	var b strings.Builder
	require.NoError(t, m.Report(&b))
	assert.Equal(t, "sizes: [1]=1 [3]=2\n", b.String())
}

func TestReportPreservesFirstRegisteredOrder(t *testing.T) {
	m := metrics.New()
	m.Counter("b").Inc()
	m.Counter("a").Inc()

	var buf strings.Builder
	require.NoError(t, m.Report(&buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "b:"))
	assert.True(t, strings.HasPrefix(lines[1], "a:"))
}
