package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewPrintCommand creates the print command.
func NewPrintCommand(opts *options) *cobra.Command {
	var depth int

	cmd := &cobra.Command{
		Use:   "print [dir]",
		Short: "Print a directory tree without the interactive UI",
		Long: `Print a directory tree as the interactive view would draw it.

Examples:
  celltree print
  celltree print ./src --depth 2
  celltree print --hidden --indent 4`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			s, err := newSession(cfg, dirArg(args), false)
			if err != nil {
				return err
			}
			defer s.Close()

			expandAll(s.tree.RootNode(), depth)
			out := cmd.OutOrStdout()
			for _, line := range s.tree.Lines() {
				if _, err := fmt.Fprintln(out, strings.TrimRight(line, " ")); err != nil {
					return err
				}
			}
			if status := s.tree.Status(); status != "" {
				return fmt.Errorf("tree incomplete: %s", status)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&depth, "depth", "d", -1, "Levels to expand (-1 for all)")

	return cmd
}
