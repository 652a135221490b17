package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexInt_Unmarshal(t *testing.T) {
	tests := []struct {
		in      string
		want    FlexInt
		wantErr bool
	}{
		{`2021`, FlexInt{Value: 2021, Set: true}, false},
		{`"2021"`, FlexInt{Value: 2021, Set: true}, false},
		{`" 2030 "`, FlexInt{Value: 2030, Set: true}, false},
		{`2021.0`, FlexInt{Value: 2021, Set: true}, false},
		{`""`, FlexInt{}, false},
		{`null`, FlexInt{}, false},
		{`0`, FlexInt{Value: 0, Set: true}, false},
		{`"abc"`, FlexInt{}, true},
		{`2021.5`, FlexInt{}, true},
		{`true`, FlexInt{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var got FlexInt
			err := json.Unmarshal([]byte(tt.in), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFlexInt_MissingKeyStaysUnset(t *testing.T) {
	var req struct {
		Year FlexInt `json:"year"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &req))
	assert.False(t, req.Year.Set)
	assert.False(t, req.Year.Present())
}

func TestFlexInt_ZeroIsSetButNotPresent(t *testing.T) {
	var f FlexInt
	require.NoError(t, json.Unmarshal([]byte(`0`), &f))
	assert.True(t, f.Set)
	assert.False(t, f.Present())
}

func TestFlexIntList_Unmarshal(t *testing.T) {
	var l FlexIntList
	require.NoError(t, json.Unmarshal([]byte(`[1, "2", "", null]`), &l))
	assert.Equal(t, []int64{1, 2}, l.Values())

	require.NoError(t, json.Unmarshal([]byte(`"17"`), &l))
	assert.Equal(t, []int64{17}, l.Values())

	require.NoError(t, json.Unmarshal([]byte(`null`), &l))
	assert.Empty(t, l.Values())
}

func TestFlexID_Unmarshal(t *testing.T) {
	var id FlexID
	require.NoError(t, json.Unmarshal([]byte(`101`), &id))
	assert.Equal(t, FlexID{Value: "101", Set: true}, id)

	require.NoError(t, json.Unmarshal([]byte(`"V-101"`), &id))
	assert.Equal(t, "V-101", id.Value)

	require.NoError(t, json.Unmarshal([]byte(`""`), &id))
	assert.False(t, id.Set)

	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &id))
}
