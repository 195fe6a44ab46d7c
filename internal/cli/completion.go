package cli

import (
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

// completionShells maps each supported shell to its script generator.
var completionShells = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash": func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	"zsh":  func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	"fish": func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	"powershell": func(root *cobra.Command, w io.Writer) error {
		return root.GenPowerShellCompletionWithDesc(w)
	},
}

// completionCommand creates the completion command. Modes for "dot" and the
// values of --format and --mode complete as well.
func (c *CLI) completionCommand() *cobra.Command {
	shells := slices.Sorted(maps.Keys(completionShells))

	return &cobra.Command{
		Use:   "completion <shell>",
		Short: "Print a shell completion script for camdiagram",
		Long: `Print a completion script for bash, zsh, fish or powershell to stdout.

  source <(camdiagram completion bash)
  camdiagram completion zsh > "${fpath[1]}/_camdiagram"
  camdiagram completion fish > ~/.config/fish/completions/camdiagram.fish
  camdiagram completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             shells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return completionShells[args[0]](cmd.Root(), cmd.OutOrStdout())
		},
	}
}

// completeList completes comma-separated flag values such as "-f png,svg",
// offering only values not already listed.
func completeList(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		prefix, current := "", toComplete
		if i := strings.LastIndex(toComplete, ","); i >= 0 {
			prefix, current = toComplete[:i+1], toComplete[i+1:]
		}
		listed := splitList(prefix)

		var out []string
		for _, v := range values {
			if strings.HasPrefix(v, current) && !slices.Contains(listed, v) {
				out = append(out, prefix+v)
			}
		}
		return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
	}
}
