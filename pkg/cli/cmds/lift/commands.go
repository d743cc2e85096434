package lift

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/desklift/pkg/cli/sh"
	"github.com/robotalks/desklift/pkg/command"
)

// PlanResult is the output of plan, up and down.
type PlanResult struct {
	Direction string `json:"direction"`
	Millis    int    `json:"millis"`
	Commands  []byte `json:"commands"`
}

// String implements fmt.Stringer.
func (r PlanResult) String() string {
	strs := make([]string, len(r.Commands))
	for n, b := range r.Commands {
		strs[n] = command.Decode(b).String()
	}
	return fmt.Sprintf("%s %dms: %s", r.Direction, r.Millis, strings.Join(strs, " "))
}

// MarshalJSON emits commands as numbers rather than base64.
func (r PlanResult) MarshalJSON() ([]byte, error) {
	nums := make([]string, len(r.Commands))
	for n, b := range r.Commands {
		nums[n] = strconv.Itoa(int(b))
	}
	return []byte(fmt.Sprintf(`{"direction":%q,"millis":%d,"commands":[%s]}`,
		r.Direction, r.Millis, strings.Join(nums, ","))), nil
}

// MakePlan parses DIRECTION and MS arguments into a plan.
func MakePlan(args []string) (*PlanResult, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("DIRECTION and MS required")
	}
	dir, err := command.ParseDirection(args[0])
	if err != nil {
		return nil, err
	}
	return makePlan(dir, args[1])
}

func makePlan(dir command.Direction, arg string) (*PlanResult, error) {
	ms, err := strconv.Atoi(arg)
	if err != nil {
		return nil, fmt.Errorf("Invalid MS: %v", err)
	}
	cmds, err := command.Plan(dir, ms)
	if err != nil {
		return nil, err
	}
	return &PlanResult{Direction: dir.String(), Millis: ms, Commands: cmds}, nil
}

// ParseByte parses a raw command byte, accepted as 0..255, -128..-1 or
// hex with 0x prefix.
func ParseByte(s string) (byte, error) {
	val, err := strconv.ParseInt(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("Invalid BYTE %q: %v", s, err)
	}
	if val < -128 || val > 255 {
		return 0, fmt.Errorf("Invalid BYTE %q: out of range", s)
	}
	return byte(val), nil
}

func moveCmd(dir command.Direction) func(c *ishell.Context) {
	return sh.MustBeConnected(func(c *ishell.Context) {
		if len(c.Args) < 1 {
			c.Err(fmt.Errorf("MS required"))
			return
		}
		plan, err := makePlan(dir, c.Args[0])
		if err != nil {
			c.Err(err)
			return
		}
		if sh.Send(c, plan.Commands) == nil {
			sh.PrintResult(c, plan, plan.String())
		}
	})
}

var (
	// UpCmd moves the lift up.
	UpCmd = ishell.Cmd{
		Name:    "up",
		Aliases: []string{"u"},
		Help:    "MS",
		Func:    moveCmd(command.Up),
	}

	// DownCmd moves the lift down.
	DownCmd = ishell.Cmd{
		Name:    "down",
		Aliases: []string{"dn"},
		Help:    "MS",
		Func:    moveCmd(command.Down),
	}

	// SendCmd sends raw command bytes.
	SendCmd = ishell.Cmd{
		Name:    "send",
		Aliases: []string{"s"},
		Help:    "BYTE...",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("BYTE required"))
				return
			}
			cmds := make([]byte, len(c.Args))
			for n, arg := range c.Args {
				b, err := ParseByte(arg)
				if err != nil {
					c.Err(err)
					return
				}
				cmds[n] = b
			}
			if sh.Send(c, cmds) == nil {
				sh.PrintResult(c, map[string]int{"sent": len(cmds)}, "OK")
			}
		}),
	}

	// PlanCmd prints the commands of a motion without sending them.
	PlanCmd = ishell.Cmd{
		Name:    "plan",
		Aliases: []string{"p"},
		Help:    "up|down MS",
		Func: func(c *ishell.Context) {
			plan, err := MakePlan(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			sh.PrintResult(c, plan, plan.String())
		},
	}
)

func init() {
	sh.AddCmds(
		&UpCmd,
		&DownCmd,
		&SendCmd,
		&PlanCmd,
	)
}
