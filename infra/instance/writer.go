package instance

import (
	"bufio"
	"fmt"
	"io"

	"github.com/skyhaul/dronesim/core/mission"
)

// WriteCommands writes the command log in the grader format: the total
// command count on its own first line, then one command per line.
func WriteCommands(w io.Writer, cmds []mission.Command) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d\n", len(cmds)); err != nil {
		return err
	}
	for _, c := range cmds {
		if _, err := fmt.Fprintf(bw, "%s\n", c); err != nil {
			return err
		}
	}
	return bw.Flush()
}
