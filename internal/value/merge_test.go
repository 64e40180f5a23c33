package value

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func samples() []Value {
	return []Value{
		Null(),
		Bool(true),
		Number(3.5),
		String("hi"),
		Array(Number(1), String("two")),
		EmptyMap(),
		Object("a", 1, "b", map[string]any{"c": []any{"x", "y"}}),
	}
}

func TestMerge_Idempotent(t *testing.T) {
	for _, x := range samples() {
		if diff := cmp.Diff(x, Merge(x, x)); diff != "" {
			t.Fatalf("merge(%v, %v) mismatch (-want +got):\n%s", x, x, diff)
		}
	}
}

func TestMerge_IdempotentWithNaN(t *testing.T) {
	var fields map[string]any
	require.NoError(t, yaml.Unmarshal([]byte("score: .nan\nnested: {x: .nan}\n"), &fields))
	x, err := FromAny(fields)
	require.NoError(t, err)

	require.True(t, x.Equal(x))
	require.True(t, Merge(x, x).Equal(x), "got %v", Merge(x, x))
	require.False(t, Number(math.NaN()).Equal(Number(1)))
}

func TestMerge_OverlayWinsOnScalars(t *testing.T) {
	cases := []struct{ a, b Value }{
		{Number(1), Number(2)},
		{String("a"), String("b")},
		{Bool(true), Bool(false)},
		{Number(1), String("1")},
		{Object("k", 1), String("replaced")},
		{String("replaced"), Object("k", 1)},
		{Array(Number(1)), Array(Number(2), Number(3))},
	}
	for _, tc := range cases {
		require.True(t, Merge(tc.a, tc.b).Equal(tc.b), "merge(%v, %v)", tc.a, tc.b)
	}
}

func TestMerge_DeepUnionOnMaps(t *testing.T) {
	got := Merge(Object("a", 1, "b", 2), Object("b", 3, "c", 4))
	want := Object("a", 1, "b", 3, "c", 4)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestMerge_NestedMapsMergeKeyWise(t *testing.T) {
	base := Object("site", map[string]any{"title": "Blog", "lang": "en"}, "nav", []any{"home"})
	overlay := Object("site", map[string]any{"title": "Post"}, "nav", []any{"posts"})

	got := Merge(base, overlay)
	want := Object("site", map[string]any{"title": "Post", "lang": "en"}, "nav", []any{"posts"})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestMerge_NotCommutative(t *testing.T) {
	a, b := Object("k", "a"), Object("k", "b")
	require.False(t, Merge(a, b).Equal(Merge(b, a)))
}

func TestMerge_DoesNotMutateOperands(t *testing.T) {
	base := Object("a", 1)
	overlay := Object("b", 2)
	_ = Merge(base, overlay)

	require.Equal(t, []string{"a"}, base.Keys())
	require.Equal(t, []string{"b"}, overlay.Keys())
}
