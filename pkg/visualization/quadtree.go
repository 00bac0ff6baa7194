package visualization

import "math"

// maxQuadDepth bounds subdivision so nearly coincident points share a leaf.
const maxQuadDepth = 32

// quad is a node of the Barnes–Hut tree. A leaf has no children and holds
// the indices of the points inside it.
type quad struct {
	children [4]*quad
	points   []int
	leaf     bool

	// aggregates filled by accumulate
	count  int
	cx, cy float64
}

// quadTree indexes a point set by position.
type quadTree struct {
	root           *quad
	xs, ys         []float64
	x0, y0, x1, y1 float64
}

// newQuadTree builds a square tree covering every point.
func newQuadTree(xs, ys []float64) *quadTree {
	t := &quadTree{xs: xs, ys: ys}
	if len(xs) == 0 {
		return t
	}

	x0, y0 := math.Inf(1), math.Inf(1)
	x1, y1 := math.Inf(-1), math.Inf(-1)
	for i := range xs {
		x0 = math.Min(x0, xs[i])
		y0 = math.Min(y0, ys[i])
		x1 = math.Max(x1, xs[i])
		y1 = math.Max(y1, ys[i])
	}
	size := math.Max(x1-x0, y1-y0)
	if size == 0 {
		size = 1
	}
	t.x0, t.y0 = x0, y0
	t.x1, t.y1 = x0+size, y0+size

	t.root = &quad{leaf: true}
	for i := range xs {
		t.insert(t.root, i, t.x0, t.y0, t.x1, t.y1, 0)
	}
	return t
}

func (t *quadTree) insert(q *quad, i int, x0, y0, x1, y1 float64, depth int) {
	if q.leaf {
		if len(q.points) == 0 || depth >= maxQuadDepth || t.samePosition(q.points[0], i) {
			q.points = append(q.points, i)
			return
		}
		existing := q.points
		q.points = nil
		q.leaf = false
		for _, j := range existing {
			t.insertChild(q, j, x0, y0, x1, y1, depth)
		}
	}
	t.insertChild(q, i, x0, y0, x1, y1, depth)
}

func (t *quadTree) insertChild(q *quad, i int, x0, y0, x1, y1 float64, depth int) {
	mx, my := (x0+x1)/2, (y0+y1)/2
	idx := 0
	if t.xs[i] >= mx {
		idx |= 1
		x0 = mx
	} else {
		x1 = mx
	}
	if t.ys[i] >= my {
		idx |= 2
		y0 = my
	} else {
		y1 = my
	}
	if q.children[idx] == nil {
		q.children[idx] = &quad{leaf: true}
	}
	t.insert(q.children[idx], i, x0, y0, x1, y1, depth+1)
}

func (t *quadTree) samePosition(i, j int) bool {
	return t.xs[i] == t.xs[j] && t.ys[i] == t.ys[j]
}

// accumulate computes the point count and centroid of every quad.
func (t *quadTree) accumulate() {
	if t.root != nil {
		t.accumulateQuad(t.root)
	}
}

func (t *quadTree) accumulateQuad(q *quad) {
	q.count, q.cx, q.cy = 0, 0, 0
	if q.leaf {
		for _, i := range q.points {
			q.cx += t.xs[i]
			q.cy += t.ys[i]
		}
		q.count = len(q.points)
	} else {
		for _, c := range q.children {
			if c == nil {
				continue
			}
			t.accumulateQuad(c)
			q.cx += c.cx * float64(c.count)
			q.cy += c.cy * float64(c.count)
			q.count += c.count
		}
	}
	if q.count > 0 {
		q.cx /= float64(q.count)
		q.cy /= float64(q.count)
	}
}

// visit walks the tree in pre-order. When fn returns true the quad's
// children are skipped.
func (t *quadTree) visit(fn func(q *quad, x0, y0, x1, y1 float64) bool) {
	if t.root == nil {
		return
	}
	type frame struct {
		q              *quad
		x0, y0, x1, y1 float64
	}
	stack := []frame{{t.root, t.x0, t.y0, t.x1, t.y1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if fn(f.q, f.x0, f.y0, f.x1, f.y1) || f.q.leaf {
			continue
		}
		mx, my := (f.x0+f.x1)/2, (f.y0+f.y1)/2
		// push in reverse so children pop in index order
		for idx := 3; idx >= 0; idx-- {
			c := f.q.children[idx]
			if c == nil {
				continue
			}
			cx0, cy0, cx1, cy1 := f.x0, f.y0, mx, my
			if idx&1 != 0 {
				cx0, cx1 = mx, f.x1
			}
			if idx&2 != 0 {
				cy0, cy1 = my, f.y1
			}
			stack = append(stack, frame{c, cx0, cy0, cx1, cy1})
		}
	}
}
