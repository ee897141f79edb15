package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/anchore/srcjar/internal"
)

// completionCmd represents the completion command
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish]",
	Short: fmt.Sprintf("Generate a shell completion for %s", internal.ApplicationName),
	Long: `To load completions:

Bash:

$ source <(srcjar completion bash)

# To load completions for each session, execute once:
Linux:
  $ srcjar completion bash > /etc/bash_completion.d/srcjar
MacOS:
  $ srcjar completion bash > /usr/local/etc/bash_completion.d/srcjar

Zsh:

# If shell completion is not already enabled in your environment you will need
# to enable it.  You can execute the following once:

$ echo "autoload -U compinit; compinit" >> ~/.zshrc

# To load completions for each session, execute once:
$ srcjar completion zsh > "${fpath[1]}/_srcjar"

# You will need to start a new shell for this setup to take effect.

Fish:

$ srcjar completion fish | source

# To load completions for each session, execute once:
$ srcjar completion fish > ~/.config/fish/completions/srcjar.fish
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish"},
	Args:                  cobra.ExactValidArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "zsh":
			return cmd.Root().GenZshCompletion(os.Stdout)
		case "fish":
			return cmd.Root().GenFishCompletion(os.Stdout, true)
		default:
			return cmd.Root().GenBashCompletion(os.Stdout)
		}
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
