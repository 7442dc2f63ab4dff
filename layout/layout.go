package layout

import "slices"

type Point struct {
	X, Y int
}

type Flex struct {
	Dir   Direction // direction of the main axis
	Items []FlexItem
}

func Column(items ...FlexItem) *Flex {
	return &Flex{Dir: Y, Items: items}
}

func Row(items ...FlexItem) *Flex {
	return &Flex{Dir: X, Items: items}
}

func (f Flex) StartLayouting(width, height int) {
	f.Layout(Dimensions{Origin: Point{0, 0}, Width: width, Height: height})
}

// Layout splits area along the main axis and hands every item its part.
// Items whose minimum does not fit an equal share are skipped. The space is
// then filled smallest maximum first, each item taking at most an equal share
// of what is left, so the remainder flows to the items that can grow.
func (f Flex) Layout(area Dimensions) {
	if len(f.Items) == 0 {
		return
	}
	total := area.along(f.Dir)

	smallestPossibleSize := total / len(f.Items)
	itemsToLayout := filter(f.Items, func(item FlexItem) bool {
		return item.Size.Min.toAbs(total) <= smallestPossibleSize
	})
	if len(itemsToLayout) == 0 {
		return
	}

	// order holds indexes into itemsToLayout, smallest maximum first.
	order := make([]int, len(itemsToLayout))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return itemsToLayout[a].Size.Max.toAbs(total) - itemsToLayout[b].Size.Max.toAbs(total)
	})
	filledSpace := make([]int, len(itemsToLayout))
	remaining := total
	for n, i := range order {
		share := remaining / (len(order) - n)
		filledSpace[i] = min(itemsToLayout[i].Size.Max.toAbs(total), share)
		remaining -= filledSpace[i]
	}

	// items are placed in the order they appear, so that the origins are correct
	orig := area.Origin
	for i, item := range itemsToLayout {
		dim := area.withMain(f.Dir, orig, filledSpace[i])
		orig = dim.next(f.Dir)
		if item.Box != nil {
			item.Box(dim)
		}
		if item.Flex != nil {
			item.Flex.Layout(dim)
		}
	}
}

func filter[T any](ss []T, test func(t T) bool) (ret []T) {
	for _, s := range ss {
		if test(s) {
			ret = append(ret, s)
		}
	}
	return
}

// FlexItem is one slot of a Flex: a box drawn into it, a nested Flex laid
// out inside it, or both.
type FlexItem struct {
	Box  LayoutBox
	Flex *Flex
	Size Constraint
}

func FlexItemBox(box LayoutBox, size Constraint, flex *Flex) FlexItem {
	return FlexItem{Box: box, Size: size, Flex: flex}
}

type Constraint struct {
	Min, Max Size
}

func Exact(size Size) Constraint {
	return Constraint{Min: size, Max: size}
}

func Max(size Size) Constraint {
	return Constraint{Min: Abs(0), Max: size}
}

type Size struct {
	abs int     // absolute size
	rel float64 // [0, 1]
}

func Abs(abs int) Size {
	return Size{abs: abs}
}

func Rel(rel float64) Size {
	return Size{rel: rel}
}

func (s Size) toAbs(size int) int {
	if s.abs != 0 {
		return s.abs
	}
	return int(s.rel * float64(size))
}

type Direction int

const (
	Y Direction = iota
	X
)

// Dimensions of a box; Origin is the top left corner.
type Dimensions struct {
	Origin        Point
	Width, Height int
}

func (d Dimensions) along(dir Direction) int {
	if dir == Y {
		return d.Height
	}
	return d.Width
}

// withMain returns a box at orig spanning size on the main axis and the
// whole of d on the cross axis.
func (d Dimensions) withMain(dir Direction, orig Point, size int) Dimensions {
	if dir == Y {
		return Dimensions{orig, d.Width, size}
	}
	return Dimensions{orig, size, d.Height}
}

func (d Dimensions) next(dir Direction) Point {
	if dir == Y {
		return Point{d.Origin.X, d.Origin.Y + d.Height}
	}
	return Point{d.Origin.X + d.Width, d.Origin.Y}
}

type LayoutBox func(Dimensions)

func EmptyBox(Dimensions) {}
