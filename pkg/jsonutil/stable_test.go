package jsonutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fslease-project/fslease/pkg/jsonutil"
)

func TestMarshalStable_SortsKeys(t *testing.T) {
	got, err := jsonutil.MarshalStable(map[string]any{
		"zebra": 1,
		"alpha": 2,
		"mango": 3,
	})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"alpha\": 2,\n  \"mango\": 3,\n  \"zebra\": 1\n}\n", string(got))
}

func TestMarshalStable_StructFieldOrderIrrelevant(t *testing.T) {
	type a struct {
		B string `json:"b"`
		A string `json:"a"`
	}
	type b struct {
		A string `json:"a"`
		B string `json:"b"`
	}

	out1, err := jsonutil.MarshalStable(a{A: "x", B: "y"})
	require.NoError(t, err)
	out2, err := jsonutil.MarshalStable(b{A: "x", B: "y"})
	require.NoError(t, err)
	assert.Equal(t, string(out1), string(out2))
}

func TestMarshalStable_Nested(t *testing.T) {
	got, err := jsonutil.MarshalStable(map[string]any{
		"outer": map[string]any{"z": true, "a": nil},
		"list":  []any{1, "two"},
	})
	require.NoError(t, err)
	want := "{\n" +
		"  \"list\": [\n    1,\n    \"two\"\n  ],\n" +
		"  \"outer\": {\n    \"a\": null,\n    \"z\": true\n  }\n" +
		"}\n"
	assert.Equal(t, want, string(got))
}

func TestMarshalStable_Empties(t *testing.T) {
	got, err := jsonutil.MarshalStable(map[string]any{"m": map[string]any{}, "l": []any{}})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"l\": [],\n  \"m\": {}\n}\n", string(got))
}

func TestMarshalStable_Primitives(t *testing.T) {
	for input, want := range map[any]string{
		"text": "\"text\"\n",
		42:     "42\n",
		true:   "true\n",
		nil:    "null\n",
	} {
		got, err := jsonutil.MarshalStable(input)
		require.NoError(t, err)
		assert.Equal(t, want, string(got))
	}
}

func TestMarshalStable_Deterministic(t *testing.T) {
	v := map[string]any{"c": 1, "a": 2, "b": map[string]any{"y": 1, "x": 2}}
	first, err := jsonutil.MarshalStable(v)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := jsonutil.MarshalStable(v)
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}
}

func TestMarshalStable_Int64Exact(t *testing.T) {
	got, err := jsonutil.MarshalStable(map[string]any{"ticks": int64(638500000000000001)})
	require.NoError(t, err)
	assert.Contains(t, string(got), "638500000000000001")
}

func TestMarshalStable_Unmarshalable(t *testing.T) {
	_, err := jsonutil.MarshalStable(func() {})
	assert.Error(t, err)
}
