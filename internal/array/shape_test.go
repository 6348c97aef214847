package array

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeNumElements(t *testing.T) {
	assert.Equal(t, 1, Shape{}.NumElements())
	assert.Equal(t, 3, Shape{3}.NumElements())
	assert.Equal(t, 24, Shape{2, 3, 4}.NumElements())
	assert.Equal(t, 0, Shape{2, 0}.NumElements())
}

func TestShapeStrides(t *testing.T) {
	assert.Equal(t, []int{12, 4, 1}, Shape{2, 3, 4}.Strides())
	assert.Equal(t, []int{}, Shape{}.Strides())
}

func TestShapeString(t *testing.T) {
	assert.Equal(t, "()", Shape{}.String())
	assert.Equal(t, "(3,)", Shape{3}.String())
	assert.Equal(t, "(2, 3)", Shape{2, 3}.String())
}

func TestShapeValidate(t *testing.T) {
	require.NoError(t, Shape{0, 2}.Validate())
	err := Shape{2, -1}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index 1")
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Shape
		want    Shape
		wantErr bool
	}{
		{name: "equal", a: Shape{2, 3}, b: Shape{2, 3}, want: Shape{2, 3}},
		{name: "row vector", a: Shape{2, 3}, b: Shape{3}, want: Shape{2, 3}},
		{name: "column", a: Shape{2, 1}, b: Shape{1, 3}, want: Shape{2, 3}},
		{name: "scalar", a: Shape{2, 3}, b: Shape{}, want: Shape{2, 3}},
		{name: "size one vector", a: Shape{2, 3}, b: Shape{1}, want: Shape{2, 3}},
		{name: "rank three", a: Shape{4, 1, 3}, b: Shape{2, 1}, want: Shape{4, 2, 3}},
		{name: "zero with one", a: Shape{0}, b: Shape{1}, want: Shape{0}},
		{name: "zero with zero", a: Shape{2, 0}, b: Shape{0}, want: Shape{2, 0}},
		{name: "trailing mismatch", a: Shape{2, 3}, b: Shape{4}, wantErr: true},
		{name: "leading mismatch", a: Shape{3, 2}, b: Shape{3}, wantErr: true},
		{name: "zero with three", a: Shape{0}, b: Shape{3}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BroadcastShapes(tt.a, tt.b)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsShapeMismatch(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			// Broadcasting is symmetric.
			rev, err := BroadcastShapes(tt.b, tt.a)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rev)
		})
	}
}

func TestBroadcastShapesErrorMessage(t *testing.T) {
	_, err := BroadcastShapes(Shape{2, 3}, Shape{4})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "(2, 3) (4,)")
}

func TestBroadcastStrides(t *testing.T) {
	assert.Equal(t, []int{0, 1}, BroadcastStrides(Shape{3}, Shape{2, 3}))
	assert.Equal(t, []int{1, 0}, BroadcastStrides(Shape{2, 1}, Shape{2, 3}))
	assert.Equal(t, []int{0, 0}, BroadcastStrides(Shape{}, Shape{2, 3}))
	assert.Equal(t, []int{3, 1}, BroadcastStrides(Shape{2, 3}, Shape{2, 3}))
}
