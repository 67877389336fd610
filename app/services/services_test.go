package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// jsonRoundTrip simulates what Redis persistence does to session
// values: marshal to JSON and back into untyped interface{} data.
func jsonRoundTrip(t *testing.T, v interface{}) interface{} {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	var out interface{}
	require.NoError(t, json.Unmarshal(b, &out))
	return out
}
