package idempotency

import (
	"time"

	"encore.dev/storage/cache"

	"encore.app/billing/model"
)

// RequestCluster backs replay protection for bill-mutating endpoints.
var RequestCluster = cache.NewCluster("billing-requests", cache.ClusterConfig{
	EvictionPolicy: cache.AllKeysLRU,
})

// Responses are kept for a day, which covers client retry windows; the
// bills.idempotency_key column guards creation beyond that.
var ResponseCache = cache.NewStructKeyspace[model.RequestKey, model.IdempotentResponse](
	RequestCluster,
	cache.KeyspaceConfig{
		KeyPattern:    "bill-requests/:Path/:Key",
		DefaultExpiry: cache.ExpireIn(24 * time.Hour),
	},
)
