package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueString(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"null", Null(), ""},
		{"string", String("Widget"), "Widget"},
		{"integer", Number(42), "42"},
		{"fraction", Number(3.25), "3.25"},
		{"day", Date(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)), "2024-01-15"},
		{"datetime", Date(time.Date(2024, 1, 15, 9, 30, 5, 0, time.UTC)), "2024-01-15 09:30:05"},
		{"true", Bool(true), "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.String())
		})
	}
}

func TestValueIsZero(t *testing.T) {
	assert.True(t, Null().IsZero())
	assert.True(t, String("").IsZero())
	assert.True(t, Number(0).IsZero())
	assert.True(t, Bool(false).IsZero())
	assert.False(t, String("x").IsZero())
	assert.False(t, Number(-1).IsZero())
	assert.False(t, Date(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)).IsZero())
}

func TestValueAccessors(t *testing.T) {
	s, ok := String("a").Str()
	assert.True(t, ok)
	assert.Equal(t, "a", s)

	_, ok = Number(1).Str()
	assert.False(t, ok)

	n, ok := Number(2.5).Num()
	assert.True(t, ok)
	assert.Equal(t, 2.5, n)

	b, ok := Bool(true).Boolean()
	assert.True(t, ok)
	assert.True(t, b)

	assert.Nil(t, Null().Interface())
	assert.Equal(t, 1.5, Number(1.5).Interface())
}

func TestValueJSON(t *testing.T) {
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	data, err := json.Marshal([]Value{String("a"), Number(2), Bool(false), Null(), Date(day)})
	require.NoError(t, err)
	assert.JSONEq(t, `["a",2,false,null,"2024-01-15T00:00:00Z"]`, string(data))

	var vs []Value
	require.NoError(t, json.Unmarshal([]byte(`["a",2.5,true,null]`), &vs))
	require.Len(t, vs, 4)
	assert.True(t, vs[0].Equal(String("a")))
	assert.True(t, vs[1].Equal(Number(2.5)))
	assert.True(t, vs[2].Equal(Bool(true)))
	assert.True(t, vs[3].IsNull())
}

func TestValueUnmarshalRejectsObjects(t *testing.T) {
	var v Value
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &v))
}

func TestFromInterface(t *testing.T) {
	v, err := FromInterface(int64(7))
	require.NoError(t, err)
	assert.True(t, v.Equal(Number(7)))

	v, err = FromInterface(json.Number("1e3"))
	require.NoError(t, err)
	assert.True(t, v.Equal(Number(1000)))

	_, err = FromInterface([]int{1})
	assert.Error(t, err)
}
