// Command passgen prints random passwords drawn from the selected character
// classes. Run without arguments on a terminal it starts an interactive session.
package main

import (
	"os"

	"golang.org/x/term"

	"github.com/vaultpass/passgen-go/internal/clipboard"
)

func main() {
	tty := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))

	os.Exit(run(os.Args[1:], env{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		sink:   clipboard.System{},
		tty:    tty,
	}))
}
