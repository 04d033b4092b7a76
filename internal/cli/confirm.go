package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/arcreach/sfarc/internal/ui"
)

// promptForConfirm asks a y/N question on the terminal. It answers no when
// stdin or stdout is not a TTY, or when JSON output is active, so piped and
// scripted invocations never hang on a prompt.
func promptForConfirm(message string) bool {
	if isJSONOutput() {
		return false
	}
	for _, f := range []*os.File{os.Stdin, os.Stdout} {
		if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
			return false
		}
	}

	fmt.Printf("%s %s ", message, ui.Hint("[y/N]"))
	answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	switch strings.TrimSpace(strings.ToLower(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
