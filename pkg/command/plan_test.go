package command

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlan(t *testing.T) {
	testCases := []struct {
		ms        int
		direction Direction
		expect    []byte
	}{
		{ms: 1, direction: Up, expect: []byte{}},
		{ms: 9, direction: Up, expect: []byte{}},
		{ms: 10, direction: Up, expect: []byte{1}},
		{ms: 20, direction: Up, expect: []byte{2}},
		{ms: 200, direction: Up, expect: []byte{20}},
		{ms: 1260, direction: Up, expect: []byte{126}},
		{ms: 1270, direction: Up, expect: []byte{127}},
		{ms: 1280, direction: Up, expect: []byte{127, 1}},
		{ms: 2530, direction: Up, expect: []byte{127, 126}},
		{ms: 2540, direction: Up, expect: []byte{127, 127}},
		{ms: 2549, direction: Up, expect: []byte{127, 127}},
		{ms: 2570, direction: Up, expect: []byte{127, 127, 3}},
		{ms: 10000, direction: Up, expect: []byte{127, 127, 127, 127, 127, 127, 127, 111}},

		{ms: 1, direction: Down, expect: []byte{}},
		{ms: 9, direction: Down, expect: []byte{}},
		{ms: 10, direction: Down, expect: []byte{255}},
		{ms: 30, direction: Down, expect: []byte{253}},
		{ms: 1270, direction: Down, expect: []byte{129}},
		{ms: 1280, direction: Down, expect: []byte{129, 255}},
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s/%dms", tc.direction, tc.ms), func(t *testing.T) {
			cmds, err := Plan(tc.direction, tc.ms)
			require.NoError(t, err)
			require.Equal(t, tc.expect, cmds)
		})
	}
}

func TestPlanTotalDuration(t *testing.T) {
	for _, dir := range []Direction{Up, Down} {
		for ms := 10; ms <= MaxPlanMillis; ms += 370 {
			cmds, err := Plan(dir, ms)
			require.NoError(t, err)
			var total int
			for _, b := range cmds {
				cmd := Decode(b)
				require.Equal(t, dir, cmd.Direction())
				require.NotEqual(t, New(-128), cmd)
				total += int(cmd.Millis())
			}
			require.Equal(t, ms/10*10, total)
		}
	}
}

func TestPlanInvalid(t *testing.T) {
	_, err := Plan(Up, 0)
	require.Equal(t, ErrInvalidDuration, err)
	_, err = Plan(Down, -10)
	require.Equal(t, ErrInvalidDuration, err)
	_, err = Plan(Up, MaxPlanMillis+1)
	require.Equal(t, ErrDurationTooLong, err)
}
