package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordCallProcessed(t *testing.T) {
	before := testutil.ToFloat64(callsProcessed.WithLabelValues("ok"))
	RecordCallProcessed("ok")
	assert.Equal(t, before+1, testutil.ToFloat64(callsProcessed.WithLabelValues("ok")))
}

func TestRecordAgentError(t *testing.T) {
	before := testutil.ToFloat64(agentErrors.WithLabelValues("process-call"))
	RecordAgentError("process-call")
	assert.Equal(t, before+1, testutil.ToFloat64(agentErrors.WithLabelValues("process-call")))
}

func TestSSEClientGauge(t *testing.T) {
	before := testutil.ToFloat64(sseClients)

	SSEClientConnected()
	assert.Equal(t, before+1, testutil.ToFloat64(sseClients))

	SSEClientDisconnected()
	assert.Equal(t, before, testutil.ToFloat64(sseClients))
}
