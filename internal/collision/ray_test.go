package collision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tank-combat/internal/core"
)

func TestRayVsRect(t *testing.T) {
	target := NewRect(5, 0, 5, 10)

	tests := []struct {
		name   string
		origin core.Vec2
		dir    core.Vec2
		target Rect
		hit    bool
		time   float32
		normal core.Vec2
	}{
		{
			name:   "head-on from the left",
			origin: core.V(0, 5),
			dir:    core.V(10, 0),
			target: target,
			hit:    true,
			time:   0.5,
			normal: core.V(-1, 0),
		},
		{
			name:   "from the right",
			origin: core.V(20, 5),
			dir:    core.V(-10, 0),
			target: target,
			hit:    true,
			time:   1.0,
			normal: core.V(1, 0),
		},
		{
			name:   "from above",
			origin: core.V(7, -10),
			dir:    core.V(0, 20),
			target: target,
			hit:    true,
			time:   0.5,
			normal: core.V(0, -1),
		},
		{
			name:   "from below",
			origin: core.V(7, 20),
			dir:    core.V(0, -20),
			target: target,
			hit:    true,
			time:   0.5,
			normal: core.V(0, 1),
		},
		{
			name:   "target behind the origin",
			origin: core.V(20, 5),
			dir:    core.V(10, 0),
			target: target,
			hit:    false,
		},
		{
			name:   "parallel miss",
			origin: core.V(0, 20),
			dir:    core.V(10, 0),
			target: target,
			hit:    false,
		},
		{
			name:   "ray along the slab boundary is NaN",
			origin: core.V(0, 0),
			dir:    core.V(10, 0),
			target: target,
			hit:    false,
		},
		{
			name:   "zero displacement on a boundary is NaN",
			origin: core.V(5, 5),
			dir:    core.V(0, 0),
			target: target,
			hit:    false,
		},
		{
			name:   "diagonal miss past the corner",
			origin: core.V(0, 0),
			dir:    core.V(10, -10),
			target: NewRect(5, 5, 5, 5),
			hit:    false,
		},
		{
			name:   "exact corner gives zero normal",
			origin: core.V(0, 0),
			dir:    core.V(10, 10),
			target: NewRect(5, 5, 5, 5),
			hit:    true,
			time:   0.5,
			normal: core.V(0, 0),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			hit, ok := RayVsRect(tc.origin, tc.dir, tc.target)
			require.Equal(t, tc.hit, ok)
			if !tc.hit {
				return
			}
			assert.InDelta(t, tc.time, hit.Time, 1e-6)
			assert.Equal(t, tc.normal, hit.Normal)

			expectedPoint := tc.origin.Add(tc.dir.Scale(hit.Time))
			assert.Equal(t, expectedPoint, hit.Point)
		})
	}
}

func TestRayVsRectOriginInside(t *testing.T) {
	// Entry lies behind the origin but the exit is ahead: the ray still
	// reports a hit with a negative time. Callers filter on [0, 1).
	hit, ok := RayVsRect(core.V(7, 5), core.V(10, 0), NewRect(5, 0, 5, 10))
	require.True(t, ok)
	assert.Less(t, hit.Time, float32(0))
}
