package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordBooking(t *testing.T) {
	before := testutil.ToFloat64(BookingsTotal.WithLabelValues(ResultFull))
	RecordBooking(ResultFull)
	assert.Equal(t, before+1, testutil.ToFloat64(BookingsTotal.WithLabelValues(ResultFull)))
}

func TestRecordSlotsCreated(t *testing.T) {
	before := testutil.ToFloat64(SlotsCreated.WithLabelValues("recurrence"))
	RecordSlotsCreated("recurrence", 4)
	assert.Equal(t, before+4, testutil.ToFloat64(SlotsCreated.WithLabelValues("recurrence")))
}

func TestRecordCancellation(t *testing.T) {
	before := testutil.ToFloat64(CancellationsTotal)
	RecordCancellation()
	assert.Equal(t, before+1, testutil.ToFloat64(CancellationsTotal))
}
