package display

import (
	"fmt"
	"os"

	"github.com/backmassage/mediarestore/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if term.Enabled() {
		fmt.Fprint(os.Stdout, term.Magenta)
	}
	fmt.Fprint(os.Stdout, ` __  __          _ _       ____           _
|  \/  | ___  __| (_) __ _|  _ \ ___  ___| |_ ___  _ __ ___
| |\/| |/ _ \/ _`+"`"+` | |/ _`+"`"+` | |_) / _ \/ __| __/ _ \| '__/ _ \
| |  | |  __/ (_| | | (_| |  _ <  __/\__ \ || (_) | | |  __/
|_|  |_|\___|\__,_|_|\__,_|_| \_\___||___/\__\___/|_|  \___|
`)
	if term.Enabled() {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}
