package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "frarold",
		Short:         "Claremont dining hall assistant: menu lookups and food search across halls",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newVersionCmd())
	root.AddCommand(newServerCmd())
	root.AddCommand(newMenuCmd())
	root.AddCommand(newSearchCmd())
	root.AddCommand(newChatCmd())
	root.AddCommand(newPingCmd())

	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
