package sh

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/desklift/pkg/env"
	"github.com/robotalks/desklift/pkg/link"
)

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool
	OutputJSON  bool
	// AutoConnect connects the configured device when a command needs
	// a connection.
	AutoConnect bool

	Shell  *ishell.Shell
	Config *link.Config
	Conn   *Conn
	// Open opens the serial port, link.Open by default.
	Open func(*link.Config) (link.Port, error)
}

// Conn is an opened connection to a lift.
type Conn struct {
	Device string
	Port   link.Port
	Client *link.Client
}

const (
	shellKey          = "$shell"
	unconnectedPrompt = "[none] > "
)

var (
	// flags

	evalOnly   bool
	outputJSON bool

	// commands
	commands = []*ishell.Cmd{
		&ConnectCmd,
		&DisconnectCmd,
		&InfoCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
}

// AddCmds is used by other commands providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New(conf *link.Config) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,

		Shell:  ishell.New(),
		Config: conf,
		Open:   link.Open,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(unconnectedPrompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// MustBeConnected wraps command func requires a connection.
func MustBeConnected(fn func(c *ishell.Context)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		s := ShellFrom(c)
		if s.Conn == nil && s.AutoConnect {
			if err := s.Connect(s.Config.Device); err != nil {
				c.Err(err)
				return
			}
		}
		if s.Conn == nil {
			c.Err(fmt.Errorf("not connected"))
			return
		}
		fn(c)
	}
}

// PrintResult prints v as JSON when OutputJSON is set, or text otherwise.
func PrintResult(c *ishell.Context, v interface{}, text string) {
	if ShellFrom(c).OutputJSON {
		out, err := json.Marshal(v)
		if err != nil {
			c.Err(err)
			return
		}
		c.Println(string(out))
		return
	}
	c.Println(text)
}

// Send sends command bytes over the current connection.
func Send(c *ishell.Context, cmds []byte) error {
	s := ShellFrom(c)
	if s.Conn == nil {
		err := fmt.Errorf("not connected")
		c.Err(err)
		return err
	}
	if err := s.Conn.Client.Send(context.Background(), cmds); err != nil {
		c.Err(err)
		return err
	}
	return nil
}

// WithAutoConnect sets AutoConnect.
func (s *Shell) WithAutoConnect(en bool) *Shell {
	s.AutoConnect = en
	return s
}

// Connect opens device, or the configured device if empty.
func (s *Shell) Connect(device string) error {
	conf := *s.Config
	if device != "" {
		conf.Device = device
	}
	port, err := s.Open(&conf)
	if err != nil {
		return err
	}
	s.Disconnect()
	s.Conn = &Conn{
		Device: conf.Device,
		Port:   port,
		Client: link.NewClient(port, conf.Ack),
	}
	s.Shell.SetPrompt(fmt.Sprintf("%s > ", conf.Device))
	return nil
}

// Disconnect closes current connection.
func (s *Shell) Disconnect() {
	if s.Conn != nil {
		s.Conn.Port.Close()
		s.Conn = nil
		s.Shell.SetPrompt(unconnectedPrompt)
	}
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	defer s.Disconnect()
	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

// Info describes the shell connection.
type Info struct {
	Node      string `json:"node,omitempty"`
	Device    string `json:"device"`
	Baud      int    `json:"baud"`
	Ack       bool   `json:"ack"`
	Connected bool   `json:"connected"`
}

// String implements fmt.Stringer.
func (i Info) String() string {
	state := "disconnected"
	if i.Connected {
		state = "connected"
	}
	return fmt.Sprintf("node=%s device=%s baud=%d ack=%v %s", i.Node, i.Device, i.Baud, i.Ack, state)
}

// Info returns current connection info.
func (s *Shell) Info() Info {
	info := Info{
		Node:   env.NodeID(),
		Device: s.Config.Device,
		Baud:   s.Config.Baud,
		Ack:    s.Config.Ack,
	}
	if s.Conn != nil {
		info.Device, info.Connected = s.Conn.Device, true
	}
	return info
}

var (
	// ConnectCmd connects a lift.
	ConnectCmd = ishell.Cmd{
		Name:    "connect",
		Aliases: []string{"c"},
		Help:    "[DEVICE]",
		Func: func(c *ishell.Context) {
			var device string
			if len(c.Args) > 0 {
				device = c.Args[0]
			}
			if err := ShellFrom(c).Connect(device); err != nil {
				c.Err(err)
			}
		},
	}

	// DisconnectCmd disconnects current lift.
	DisconnectCmd = ishell.Cmd{
		Name:    "disconnect",
		Aliases: []string{"d"},
		Help:    "",
		Func: func(c *ishell.Context) {
			ShellFrom(c).Disconnect()
		},
	}

	// InfoCmd prints connection info.
	InfoCmd = ishell.Cmd{
		Name:    "info",
		Aliases: []string{"i"},
		Help:    "",
		Func: func(c *ishell.Context) {
			info := ShellFrom(c).Info()
			PrintResult(c, info, info.String())
		},
	}
)

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	New(link.Default()).WithAutoConnect(true).Run(flag.Args()...)
}
