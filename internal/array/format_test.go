package array

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		arr  *Array
		want string
	}{
		{
			name: "int matrix",
			arr:  Must(Shape{2, 3}, []int64{46, 75, 71, 29, 28, 65}),
			want: "[[46 75 71]\n [29 28 65]]",
		},
		{
			name: "int padding",
			arr:  Vector[int64](1, -10, 100),
			want: "[  1 -10 100]",
		},
		{
			name: "strings",
			arr:  Vector("Joe", "Will", "alice"),
			want: "['Joe' 'Will' 'alice']",
		},
		{
			name: "string with quote",
			arr:  Vector("it's"),
			want: `["it's"]`,
		},
		{
			name: "bools",
			arr:  Vector(true, false),
			want: "[ True False]",
		},
		{
			name: "floats aligned",
			arr:  Vector(1.0, 2.5, 10.25),
			want: "[ 1.    2.5  10.25]",
		},
		{
			name: "float precision",
			arr:  Vector(0.1 + 0.2),
			want: "[0.3]",
		},
		{
			name: "non finite",
			arr:  Vector(math.Inf(1), math.NaN()),
			want: "[inf nan]",
		},
		{
			name: "rank three",
			arr:  Must(Shape{2, 2, 1}, []int64{1, 2, 3, 4}),
			want: "[[[1]\n  [2]]\n\n [[3]\n  [4]]]",
		},
		{
			name: "empty",
			arr:  Vector[float64](),
			want: "[]",
		},
		{
			name: "empty matrix",
			arr:  Must(Shape{2, 0}, []int64{}),
			want: "[]",
		},
		{
			name: "scalar int",
			arr:  Scalar(int64(5)),
			want: "5",
		},
		{
			name: "scalar string",
			arr:  Scalar("joe"),
			want: "joe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.arr.String())
		})
	}
}

func TestFormatOptions(t *testing.T) {
	a := Vector(1.23456, 2.0)
	assert.Equal(t, "[1.23 2.  ]", a.Format(PrintOptions{Precision: 2, Separator: " "}))
	assert.Equal(t, "[1.23456, 2.     ]", a.Format(PrintOptions{Separator: ", "}))
}
