// ABOUTME: Help display for the binder CLI with grouped flags, examples, and environment status.
// ABOUTME: Provides printHelp for usage output and envStatus for override detection.
package main

import (
	"fmt"
	"io"
	"os"
)

const binderASCII = `
   ______________________
  ||  _________________  |
  || | OP01-001    x3  | |
  || |                 | |
  || |   MONKEY D.     | |
  || |     LUFFY       | |
  || |                 | |
  || |  L  Red  Leader | |
  || |_________________| |
  ||_____________________|
`

// printHelp writes a formatted help message to w, including usage patterns,
// grouped flags, examples, and environment status.
func printHelp(w io.Writer, ver string) {
	fmt.Fprint(w, binderASCII)
	fmt.Fprintf(w, "binder %s - One Piece TCG collection tracker\n", ver)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  binder [collection.xlsx]            Open the terminal app")
	fmt.Fprintln(w, "  binder -serve [collection.xlsx]     Start the read-only web viewer")
	fmt.Fprintln(w, "  binder -mcp [collection.xlsx]       Serve MCP tools over stdio")
	fmt.Fprintln(w, "  binder -stats [collection.xlsx]     Print the statistics report")
	fmt.Fprintln(w, "  binder -export csv [collection.xlsx]  Export records")
	fmt.Fprintln(w, "  binder -history 20                  Print recent activity")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Export Flags:")
	fmt.Fprintln(w, "  -export <format>      csv or json")
	fmt.Fprintln(w, "  -out <file>           Destination file (default: stdout)")
	fmt.Fprintln(w, "  -q <query>            Filter exported records by substring search")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Viewer Flags:")
	fmt.Fprintln(w, "  -serve                Start the web viewer")
	fmt.Fprintln(w, "  -bind <addr>          Listen address, loopback only (default: 127.0.0.1:2389)")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Other:")
	fmt.Fprintln(w, "  -config <file>        Config file path (default: ~/.config/binder/config.yaml)")
	fmt.Fprintln(w, "  -data-dir <dir>       Activity journal directory (default: $XDG_DATA_HOME/binder)")
	fmt.Fprintln(w, "  -history <n>          Print the n most recent activity entries")
	fmt.Fprintln(w, "  -version              Print version and exit")
	fmt.Fprintln(w, "  -help                 Show this help")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  binder cards/op.xlsx")
	fmt.Fprintln(w, "  binder -serve -bind 127.0.0.1:8080 cards/op.xlsx")
	fmt.Fprintln(w, "  binder -export json -q \"straw hat\" -out straw_hats.json")
	fmt.Fprintln(w, "  binder -stats cards/op.xlsx")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment:")
	fmt.Fprintf(w, "  BINDER_COLLECTION     %s\n", envStatus("BINDER_COLLECTION"))
	fmt.Fprintf(w, "  BINDER_BIND           %s\n", envStatus("BINDER_BIND"))
	fmt.Fprintf(w, "  BINDER_EXPORT_DIR     %s\n", envStatus("BINDER_EXPORT_DIR"))
	fmt.Fprintf(w, "  BINDER_DATA_DIR       %s\n", envStatus("BINDER_DATA_DIR"))
	fmt.Fprintf(w, "  BINDER_CONFIG         %s\n", envStatus("BINDER_CONFIG"))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Docs: https://github.com/2389-research/binder")
}

// envStatus returns "[set]" if the named environment variable is non-empty,
// or "[not set]" otherwise.
func envStatus(key string) string {
	if os.Getenv(key) != "" {
		return "[set]"
	}
	return "[not set]"
}
