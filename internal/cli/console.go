// Package cli implements the interactive console over the live index.
// The console is a thin collaborator: every command translates to one
// call on the store's query/mutation surface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"remdex/internal/item"
	"remdex/internal/store"
)

// commands drives both dispatch help and tab completion.
var commands = []string{"ls", "tree", "pinned", "trash", "mv", "reindex", "help", "exit"}

// Console is the interactive command loop.
type Console struct {
	store *store.Store
	out   io.Writer
}

// New returns a console over st writing command output to out.
func New(st *store.Store, out io.Writer) *Console {
	return &Console{store: st, out: out}
}

// historyFile returns the path to the prompt history file.
func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".remdex_history")
}

// Run starts the console loop and blocks until exit, EOF, or ctx
// cancellation.
func (c *Console) Run(ctx context.Context) error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(prefix string) []string {
		var out []string

		for _, cmd := range commands {
			if strings.HasPrefix(cmd, strings.ToLower(prefix)) {
				out = append(out, cmd)
			}
		}

		return out
	})

	if f, err := os.Open(historyFile()); err == nil {
		_, _ = line.ReadHistory(f)
		_ = f.Close()
	}

	fmt.Fprintln(c.out, "remdex - live reMarkable document index")
	fmt.Fprintln(c.out, "Type 'help' for available commands.")

	defer func() {
		if path := historyFile(); path != "" {
			if f, err := os.Create(path); err == nil {
				_, _ = line.WriteHistory(f)
				_ = f.Close()
			}
		}
	}()

	for ctx.Err() == nil {
		input, err := line.Prompt("remdex> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return nil
			}

			return fmt.Errorf("reading input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		line.AppendHistory(input)

		parts := strings.Fields(input)
		if c.dispatch(ctx, strings.ToLower(parts[0]), parts[1:]) {
			return nil
		}
	}

	return nil
}

// dispatch executes one command. It returns true when the console should
// exit.
func (c *Console) dispatch(ctx context.Context, cmd string, args []string) bool {
	switch cmd {
	case "ls":
		path := ""
		if len(args) > 0 {
			path = args[0]
		}

		c.cmdLs(path)
	case "tree":
		fmt.Fprint(c.out, RenderTree(c.store.Items()))
	case "pinned":
		c.printItems(c.store.Pinned())
	case "trash":
		c.printItems(c.store.Trash())
	case "mv":
		c.cmdMv(args)
	case "reindex":
		if err := c.store.Rebuild(ctx); err != nil {
			fmt.Fprintln(c.out, "error:", err)

			return false
		}

		fmt.Fprintf(c.out, "indexed %d items\n", c.store.Len())
	case "help":
		c.printHelp()
	case "exit", "quit":
		return true
	default:
		fmt.Fprintf(c.out, "unknown command %q, try 'help'\n", cmd)
	}

	return false
}

func (c *Console) cmdLs(path string) {
	items, err := c.store.List(path)
	if err != nil {
		fmt.Fprintln(c.out, "error:", err)

		return
	}

	c.printItems(items)
}

func (c *Console) cmdMv(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(c.out, "usage: mv <item-path> <target-dir>")

		return
	}

	if err := c.store.Move(args[0], args[1]); err != nil {
		fmt.Fprintln(c.out, "error:", err)

		return
	}

	fmt.Fprintln(c.out, "moved")
}

func (c *Console) printItems(items []item.Item) {
	for _, it := range items {
		fmt.Fprintln(c.out, itemLabel(it))
	}

	fmt.Fprintf(c.out, "%d items\n", len(items))
}

func (c *Console) printHelp() {
	fmt.Fprint(c.out, `Commands:
  ls [path]        list children of a directory (default: root)
  tree             render the whole hierarchy
  pinned           list pinned items
  trash            list trashed items
  mv <item> <dir>  move an item into a directory ("" or / for root, Trash for trash)
  reindex          rebuild the index from disk
  help             show this help
  exit             leave the console
`)
}

// itemLabel formats one item for listings: directories with a trailing
// slash, documents with their format, pinned items with a star.
func itemLabel(it item.Item) string {
	label := it.Name

	if it.IsDir() {
		label += "/"
	} else {
		label += " [" + it.Format.String() + "]"
	}

	if it.Pinned {
		label += " *"
	}

	return label
}
