package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullableString(t *testing.T) {
	ns := NullString()
	assert.True(t, ns.IsNil())
	assert.Equal(t, "", ns.String())

	ns.Set("policy-a")
	assert.False(t, ns.IsNil())
	assert.Equal(t, "policy-a", ns.String())

	// empty but present is not nil
	empty := NullableStringFrom("")
	assert.False(t, empty.IsNil())
}

func TestNullableStringJSON(t *testing.T) {
	data, err := json.Marshal(NullableStringFrom("policy-a"))
	require.NoError(t, err)
	assert.Equal(t, `"policy-a"`, string(data))

	data, err = json.Marshal(NullString())
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))

	var ns NullableString
	require.NoError(t, json.Unmarshal([]byte(`"policy-b"`), &ns))
	assert.Equal(t, NullableStringFrom("policy-b"), ns)

	require.NoError(t, json.Unmarshal([]byte("null"), &ns))
	assert.True(t, ns.IsNil())
}
