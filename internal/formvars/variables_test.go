package formvars

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVariables(t *testing.T) {
	initial := map[string]string{"gCoNum": "CO1"}
	vars := New(initial)
	initial["gCoNum"] = "changed"

	assert.Equal(t, "CO1", vars.Get("gCoNum"))
	assert.Equal(t, "", vars.Get("missing"))

	_, ok := vars.Lookup("vJSONResult")
	assert.False(t, ok)

	vars.Set("vJSONResult", "{}")
	got, ok := vars.Lookup("vJSONResult")
	assert.True(t, ok)
	assert.Equal(t, "{}", got)
}
