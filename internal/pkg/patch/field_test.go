package patch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Title Field[string]  `json:"title"`
	IDs   Field[[]int64] `json:"ids"`
	Flag  Field[bool]    `json:"flag"`
}

func TestField_AbsentNullAndValue(t *testing.T) {
	var s sample
	require.NoError(t, json.Unmarshal([]byte(`{"title":null,"ids":[1,2]}`), &s))

	assert.True(t, s.Title.Set)
	assert.True(t, s.Title.Null)
	assert.False(t, s.Title.HasValue())
	assert.Nil(t, s.Title.Ptr())

	assert.True(t, s.IDs.HasValue())
	assert.Equal(t, []int64{1, 2}, s.IDs.Value)

	assert.False(t, s.Flag.Set, "absent key must stay unset")
}

func TestField_EmptyValueIsNotNull(t *testing.T) {
	var s sample
	require.NoError(t, json.Unmarshal([]byte(`{"title":"","flag":false,"ids":[]}`), &s))

	assert.True(t, s.Title.HasValue())
	require.NotNil(t, s.Title.Ptr())
	assert.Equal(t, "", *s.Title.Ptr())
	assert.True(t, s.Flag.HasValue())
	assert.Equal(t, []int64{}, s.IDs.Value)
}

func TestField_TypeMismatch(t *testing.T) {
	var s sample
	assert.Error(t, json.Unmarshal([]byte(`{"flag":"yes"}`), &s))
}

func TestField_Constructors(t *testing.T) {
	assert.Equal(t, Field[int]{Set: true, Value: 3}, Of(3))
	assert.Equal(t, Field[int]{Set: true, Null: true}, Null[int]())
}
