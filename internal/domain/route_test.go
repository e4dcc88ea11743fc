package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPath_Extend(t *testing.T) {
	base := make(Path, 2, 8)
	base[0], base[1] = "A", "B"

	left := base.Extend("C")
	right := base.Extend("E")

	assert.Equal(t, Path{"A", "B", "C"}, left)
	assert.Equal(t, Path{"A", "B", "E"}, right)
	assert.Equal(t, Path{"A", "B"}, base)

	left[0] = "Z"
	assert.Equal(t, NodeID("A"), base[0])
	assert.Equal(t, Path{"A"}, Path(nil).Extend("A"))
}

func TestPath_StringAndStops(t *testing.T) {
	p := Path{"C", "D", "C"}
	assert.Equal(t, "C → D → C", p.String())
	assert.Equal(t, 2, p.Stops())
	assert.Equal(t, 0, Path{"A"}.Stops())
	assert.Equal(t, 0, Path(nil).Stops())
}

func TestDistance_JSON(t *testing.T) {
	data, err := json.Marshal(map[string]Distance{"found": Found(9), "missing": NoSuchRoute})
	require.NoError(t, err)
	assert.JSONEq(t, `{"found":9,"missing":"NO SUCH ROUTE"}`, string(data))

	var back map[string]Distance
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, Found(9), back["found"])
	assert.False(t, back["missing"].Exists())
}
