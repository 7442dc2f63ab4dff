package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recorder map[string]Dimensions

func (r recorder) box(name string) LayoutBox {
	return func(dim Dimensions) { r[name] = dim }
}

func TestEditorLayout(t *testing.T) {
	got := recorder{}
	flex := Column(
		FlexItemBox(got.box("main"), Max(Rel(1)), Row(
			FlexItemBox(got.box("linenumbers"), Exact(Abs(3)), nil),
			FlexItemBox(got.box("buffer"), Max(Rel(1)), nil),
		)),
		FlexItemBox(got.box("statusline"), Exact(Abs(3)), nil),
	)
	flex.StartLayouting(80, 24)

	assert.Equal(t, Dimensions{Point{0, 0}, 80, 21}, got["main"])
	assert.Equal(t, Dimensions{Point{0, 21}, 80, 3}, got["statusline"])
	assert.Equal(t, Dimensions{Point{0, 0}, 3, 21}, got["linenumbers"])
	assert.Equal(t, Dimensions{Point{3, 0}, 77, 21}, got["buffer"])
}

func TestLayoutRel(t *testing.T) {
	got := recorder{}
	flex := Column(
		FlexItemBox(got.box("top"), Exact(Rel(0.5)), Row(
			FlexItemBox(got.box("left"), Exact(Rel(0.5)), nil),
			FlexItemBox(got.box("right"), Exact(Rel(0.5)), nil),
		)),
		FlexItemBox(got.box("bottom"), Exact(Rel(0.5)), nil))
	flex.StartLayouting(200, 200)

	assert.Equal(t, Dimensions{Point{0, 0}, 200, 100}, got["top"])
	assert.Equal(t, Dimensions{Point{0, 100}, 200, 100}, got["bottom"])
	assert.Equal(t, Dimensions{Point{0, 0}, 100, 100}, got["left"])
	assert.Equal(t, Dimensions{Point{100, 0}, 100, 100}, got["right"])
}

func TestLayoutSkipsItemsThatDoNotFit(t *testing.T) {
	got := recorder{}
	flex := Row(
		FlexItemBox(got.box("wide"), Exact(Abs(50)), nil),
		FlexItemBox(got.box("rest"), Max(Rel(1)), nil),
	)
	flex.StartLayouting(60, 1)

	_, ok := got["wide"]
	assert.False(t, ok)
	assert.Equal(t, Dimensions{Point{0, 0}, 60, 1}, got["rest"])
}
