package rabbitmq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEntitlementQueues(t *testing.T) {
	queues := GetEntitlementQueues()

	require.Len(t, queues, 2)

	keys := map[string]bool{}
	seen := map[string]bool{}
	for _, q := range queues {
		assert.Falsef(t, seen[q.QueueName], "duplicate queue name: %s", q.QueueName)
		seen[q.QueueName] = true
		keys[q.RoutingKey] = true
	}
	assert.True(t, keys[RoutingGranted])
	assert.True(t, keys[RoutingExpired])
}
