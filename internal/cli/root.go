package cli

import (
	"context"
	"os"

	"github.com/matzehuels/camdiagram/pkg/buildinfo"
)

// SetVersion overrides the build information displayed by --version.
// Empty values keep what was injected via ldflags.
//
// Parameters:
//   - v: semantic version string (e.g., "v1.2.3")
//   - c: git commit SHA (short or long form)
//   - d: build timestamp (e.g., "2025-12-20T14:32:01Z")
func SetVersion(v, c, d string) {
	if v != "" {
		buildinfo.Version = v
	}
	if c != "" {
		buildinfo.Commit = c
	}
	if d != "" {
		buildinfo.Date = d
	}
}

// Execute runs the camdiagram CLI with the process arguments and returns an
// error if any command fails. This is the main entry point for the CLI
// application.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// Example:
//
//	func main() {
//	    if err := cli.Execute(ctx); err != nil {
//	        os.Exit(1)
//	    }
//	}
func Execute(ctx context.Context) error {
	return execute(ctx, os.Args[1:])
}

func execute(ctx context.Context, args []string) error {
	c := New(os.Stderr, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
