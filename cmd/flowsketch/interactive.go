package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"strings"
)

type commandList []string

func (c *commandList) String() string {
	return strings.Join(*c, ";")
}

func (c *commandList) Set(value string) error {
	*c = append(*c, value)
	return nil
}

type interactiveCmd struct {
	*root
	fs    *flag.FlagSet
	execs commandList
}

func parseInteractiveCmd(args []string, r *root) (*interactiveCmd, error) {
	fs := flag.NewFlagSet("interactive", flag.ExitOnError)
	c := &interactiveCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.Var(&c.execs, "e", "execute a command in immediate mode (may be specified multiple times)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *interactiveCmd) Program() string { return c.root.Program() + " interactive" }

func (c *interactiveCmd) FlagSet() *flag.FlagSet { return c.fs }

func (c *interactiveCmd) Run() error {
	s := newSession(c.root, c.newDiagram(), c.out())

	if len(c.execs) > 0 {
		for _, line := range c.execs {
			if err := s.execLine(line); err != nil {
				if errors.Is(err, errExit) {
					return nil
				}
				return err
			}
		}
		return nil
	}

	fmt.Fprintln(c.out(), "Enter commands (type 'help' for a list, 'exit' to quit)")
	scanner := bufio.NewScanner(c.stdin)
	for {
		fmt.Fprint(c.out(), "> ")
		if !scanner.Scan() {
			break
		}
		if err := s.execLine(scanner.Text()); err != nil {
			if errors.Is(err, errExit) {
				break
			}
			fmt.Fprintln(c.stderr, err)
		}
	}
	return scanner.Err()
}
