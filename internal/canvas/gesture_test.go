package canvas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thelogs/shelflife/internal/errs"
)

func TestDrag_RelativeDeltas(t *testing.T) {
	e := newEngine(item("a"))

	d, err := e.BeginDrag("a", Point{X: 500, Y: 500})
	require.NoError(t, err)

	d.Move(Point{X: 510, Y: 505})
	d.Move(Point{X: 530, Y: 495})
	got := d.End()

	// 100 + (530-500), 100 + (495-500): deltas accumulate, no absolute mapping.
	require.Equal(t, float64(130), got.X)
	require.Equal(t, float64(95), got.Y)
	require.Equal(t, float64(200), got.Width)
}

func TestDrag_CancelRestoresStart(t *testing.T) {
	e := newEngine(item("a"))

	d, err := e.BeginDrag("a", Point{X: 0, Y: 0})
	require.NoError(t, err)
	d.Move(Point{X: 300, Y: 300})
	d.Cancel()

	got := e.Items()[0]
	require.Equal(t, float64(100), got.X)
	require.Equal(t, float64(100), got.Y)
}

func TestDrag_UnknownItem(t *testing.T) {
	e := newEngine()
	_, err := e.BeginDrag("nope", Point{})
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestResize_PerAxisFromOrigin(t *testing.T) {
	e := newEngine(item("a")) // origin 100,100

	r, err := e.BeginResize("a")
	require.NoError(t, err)

	got := r.Move(Point{X: 450, Y: 180})
	require.Equal(t, float64(350), got.Width)
	require.Equal(t, float64(80), got.Height)
}

func TestResize_ClampsBelowMin(t *testing.T) {
	e := newEngine(item("a"))

	r, err := e.BeginResize("a")
	require.NoError(t, err)

	got := r.Move(Point{X: 110, Y: 90}) // 10 wide, -10 tall from origin
	require.Equal(t, float64(MinSize), got.Width)
	require.Equal(t, float64(MinSize), got.Height)
}

func TestResize_CancelRestoresSize(t *testing.T) {
	e := newEngine(item("a"))

	r, _ := e.BeginResize("a")
	r.Move(Point{X: 800, Y: 800})
	r.Cancel()

	got := e.Items()[0]
	require.Equal(t, float64(200), got.Width)
	require.Equal(t, float64(200), got.Height)
}

func TestRotate_FollowsPointerAngle(t *testing.T) {
	e := newEngine(item("a")) // center 200,200

	// Grab directly right of center: pointer angle 0, so offset equals the
	// item's starting rotation (0).
	r, err := e.BeginRotate("a", Point{X: 300, Y: 200})
	require.NoError(t, err)

	got := r.Move(Point{X: 200, Y: 300}) // straight below center: 90 degrees
	require.InDelta(t, 90, got.Rotation, 1e-9)

	got = r.Move(Point{X: 100, Y: 200}) // left of center: 180 degrees
	require.InDelta(t, 180, got.Rotation, 1e-9)
}

func TestRotate_OffsetIsRelative(t *testing.T) {
	it := item("a")
	it.Rotation = 30
	e := newEngine(it)

	// Grab below center (pointer angle 90): rotation must not snap to 90.
	r, err := e.BeginRotate("a", Point{X: 200, Y: 300})
	require.NoError(t, err)

	got := r.Move(Point{X: 200, Y: 300})
	require.InDelta(t, 30, got.Rotation, 1e-9)

	// A quarter turn of the pointer adds a quarter turn to the item.
	got = r.Move(Point{X: 100, Y: 200})
	require.InDelta(t, 120, got.Rotation, 1e-9)
}

func TestRotate_PreservesGeometry(t *testing.T) {
	e := newEngine(item("a"))

	r, _ := e.BeginRotate("a", Point{X: 300, Y: 200})
	got := r.Move(Point{X: 260, Y: 280})

	require.Equal(t, float64(100), got.X)
	require.Equal(t, float64(100), got.Y)
	require.Equal(t, float64(200), got.Width)
	require.Equal(t, float64(200), got.Height)
}

func TestRotate_CancelRestoresAngle(t *testing.T) {
	it := item("a")
	it.Rotation = 15
	e := newEngine(it)

	r, _ := e.BeginRotate("a", Point{X: 300, Y: 200})
	r.Move(Point{X: 200, Y: 300})
	r.Cancel()

	require.Equal(t, float64(15), e.Items()[0].Rotation)
}

func TestPointerAngle(t *testing.T) {
	c := Point{X: 0, Y: 0}
	require.InDelta(t, 0, pointerAngle(c, Point{X: 1, Y: 0}), 1e-9)
	require.InDelta(t, 90, pointerAngle(c, Point{X: 0, Y: 1}), 1e-9)
	require.InDelta(t, 45, pointerAngle(c, Point{X: 1, Y: 1}), 1e-9)
	require.InDelta(t, 180, math.Abs(pointerAngle(c, Point{X: -1, Y: 0})), 1e-9)
}
