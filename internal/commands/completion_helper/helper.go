package completion_helper

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
)

// DefaultFlagComplete prints the flags and subcommands of cmd so shells can offer them.
func DefaultFlagComplete(_ context.Context, cmd *cli.Command) {
	w := writer(cmd)
	for _, sub := range cmd.Commands {
		if !sub.Hidden {
			_, _ = fmt.Fprintln(w, sub.Name)
		}
	}
	for _, f := range cmd.Flags {
		for _, name := range f.Names() {
			if len(name) == 1 {
				_, _ = fmt.Fprintln(w, "-"+name)
			} else {
				_, _ = fmt.Fprintln(w, "--"+name)
			}
		}
	}
}

func writer(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return os.Stdout
}
