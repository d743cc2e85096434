package lift

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/desklift/pkg/command"
)

func TestMakePlan(t *testing.T) {
	plan, err := MakePlan([]string{"up", "1280"})
	require.NoError(t, err)
	require.Equal(t, []byte{127, 1}, plan.Commands)
	require.Equal(t, "up 1280ms: up/1270ms up/10ms", plan.String())

	out, err := json.Marshal(plan)
	require.NoError(t, err)
	require.JSONEq(t, `{"direction":"up","millis":1280,"commands":[127,1]}`, string(out))

	plan, err = MakePlan([]string{"d", "30"})
	require.NoError(t, err)
	require.Equal(t, []byte{253}, plan.Commands)

	for _, args := range [][]string{
		{"up"},
		{"sideways", "100"},
		{"up", "abc"},
		{"up", "0"},
		{"down", "15001"},
	} {
		_, err := MakePlan(args)
		require.Error(t, err, "%v", args)
	}
	_, err = MakePlan([]string{"up", "15000"})
	require.NoError(t, err)
	_, err = MakePlan([]string{"up", "5"})
	require.NoError(t, err)
}

func TestParseByte(t *testing.T) {
	testCases := []struct {
		in     string
		expect byte
		err    bool
	}{
		{in: "10", expect: 10},
		{in: "246", expect: 246},
		{in: "-10", expect: 246},
		{in: "-128", expect: 128},
		{in: "0x80", expect: 0x80},
		{in: "256", err: true},
		{in: "-129", err: true},
		{in: "up", err: true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			b, err := ParseByte(tc.in)
			if tc.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expect, b)
		})
	}
	require.Equal(t, command.New(-128), command.Decode(128))
}
