package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/abiosoft/ishell/v2"
	"github.com/edup2p/relaysupport/types"
	"github.com/edup2p/relaysupport/types/relay"
)

var (
	configPath = flag.String("c", "", "protocol config path (JSON); defaults to the built-in protocol")
	allocPath  = flag.String("f", "", "allocation response path (JSON), \"-\" reads stdin")
	role       = flag.String("role", "", "build a descriptor for this role (\"host\" or \"player\"), and exit")
	verbose    = flag.Bool("v", false, "log at debug level")

	programLevel = new(slog.LevelVar) // Info by default
)

type inspector struct {
	builder *relay.Builder
	alloc   *relay.Allocation
}

func main() {
	flag.Parse()

	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: programLevel})
	slog.SetDefault(slog.New(h))
	if *verbose {
		programLevel.Set(slog.LevelDebug)
	}

	builder, err := relay.NewBuilder(relay.WithProtocol(loadProtocol()))
	if err != nil {
		log.Fatalf("relay_inspect: %v", err)
	}

	in := &inspector{builder: builder}

	if *allocPath != "" {
		if err := in.load(*allocPath); err != nil {
			log.Fatalf("relay_inspect: %v", err)
		}
	}

	if *role != "" {
		if err := in.build(os.Stdout, relay.Role(*role)); err != nil {
			log.Fatalf("relay_inspect: %v", err)
		}
		return
	}

	runShell(in)
}

func loadProtocol() relay.Protocol {
	if *configPath == "" {
		return relay.DefaultProtocol()
	}

	p, err := relay.LoadProtocol(*configPath)
	if err != nil {
		log.Fatalf("relay_inspect: config: %v", err)
	}

	return p
}

func (in *inspector) load(path string) error {
	var (
		b   []byte
		err error
	)

	if path == "-" {
		b, err = io.ReadAll(os.Stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return err
	}

	a, err := relay.ParseAllocation(b)
	if err != nil {
		return err
	}

	in.alloc = a
	slog.Info("loaded allocation", "id", a.ID, "region", a.Region, "endpoints", len(a.ServerEndpoints), "join", a.IsJoin())

	return nil
}

func (in *inspector) build(w io.Writer, r relay.Role) error {
	if in.alloc == nil {
		return errors.New("no allocation loaded")
	}

	var (
		d   *relay.Descriptor
		err error
	)

	switch r {
	case relay.RoleHost:
		d, err = in.builder.ForHost(in.alloc)
	case relay.RolePlayer:
		d, err = in.builder.ForPlayer(in.alloc)
	default:
		return fmt.Errorf("unknown role %q", r)
	}
	if err != nil {
		return err
	}

	b, err := json.MarshalIndent(d, "", "\t")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

func runShell(in *inspector) {
	shell := ishell.New()

	shell.SetHomeHistoryPath(".relay_inspect_history")

	shell.Println("Relay Descriptor Inspector")

	shell.AddCmd(&ishell.Cmd{
		Name: "trace",
		Help: "set log level to trace",
		Func: func(c *ishell.Context) {
			programLevel.Set(types.LevelTrace)
		},
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "debug",
		Help: "set log level to debug",
		Func: func(c *ishell.Context) {
			programLevel.Set(slog.LevelDebug)
		},
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "info",
		Help: "set log level to info",
		Func: func(c *ishell.Context) {
			programLevel.Set(slog.LevelInfo)
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "load",
		Help: "load an allocation response from a JSON file",
		Func: func(c *ishell.Context) {
			if len(c.Args) != 1 {
				c.Println("usage: load <path>")
				return
			}
			if err := in.load(c.Args[0]); err != nil {
				c.Err(err)
			}
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "endpoints",
		Help: "list the endpoints of the loaded allocation",
		Func: func(c *ishell.Context) {
			if in.alloc == nil {
				c.Println("no allocation loaded")
				return
			}
			for i, e := range in.alloc.ServerEndpoints {
				c.Printf("%d: %s %s\n", i, e.ConnectionType, e.String())
			}
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "protocol",
		Help: "show the protocol descriptors are built against",
		Func: func(c *ishell.Context) {
			b, err := json.MarshalIndent(in.builder.Protocol(), "", "\t")
			if err != nil {
				c.Err(err)
				return
			}
			c.Println(string(b))
		},
	})

	for _, r := range []relay.Role{relay.RoleHost, relay.RolePlayer} {
		r := r
		shell.AddCmd(&ishell.Cmd{
			Name: string(r),
			Help: fmt.Sprintf("build the %s descriptor of the loaded allocation", r),
			Func: func(c *ishell.Context) {
				if err := in.build(os.Stdout, r); err != nil {
					c.Err(err)
				}
			},
		})
	}

	shell.Run()
}
