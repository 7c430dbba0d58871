package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	boardName string
	storeKind string
	storeDir  string
	serveAddr string
	narrow    bool
	pushURL   string
	pushToken string
	typeProps map[string]string
	verbose   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "gridboard",
		Short:        "grid dashboard layout engine and board editor",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "gridboard.yaml", "path to YAML or TOML config file")
	rootCmd.PersistentFlags().StringVar(&boardName, "board", "", "board name (overrides board.name)")
	rootCmd.PersistentFlags().StringVar(&storeKind, "store", "", "store backend: file, redis, mongo or memory")
	rootCmd.PersistentFlags().StringVar(&storeDir, "dir", "", "board directory for the file store")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the board over the JSON HTTP API",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "print the stored board",
		Args:  cobra.NoArgs,
		RunE:  runShow,
	}
	showCmd.Flags().BoolVar(&narrow, "narrow", false, "show the two-column narrow layout")

	arrangeCmd := &cobra.Command{
		Use:   "arrange",
		Short: "compact the board upward",
		Args:  cobra.NoArgs,
		RunE:  runArrange,
	}

	addCmd := &cobra.Command{
		Use:   "add <type>",
		Short: "add a widget at the first free slot",
		Args:  cobra.ExactArgs(1),
		RunE:  runAdd,
	}

	removeCmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "remove a widget",
		Args:  cobra.ExactArgs(1),
		RunE:  runRemove,
	}

	moveCmd := &cobra.Command{
		Use:   "move <id> <x> <y>",
		Short: "move a widget, pushing overlapped widgets down",
		Args:  cobra.ExactArgs(3),
		RunE:  runMove,
	}

	resizeCmd := &cobra.Command{
		Use:   "resize <id> <w> <h>",
		Short: "resize a widget and compact the board",
		Args:  cobra.ExactArgs(3),
		RunE:  runResize,
	}

	editCmd := &cobra.Command{
		Use:   "edit",
		Short: "edit the board interactively in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runEdit,
	}

	pushCmd := &cobra.Command{
		Use:   "push",
		Short: "upload the stored board to a running gridboard server",
		Args:  cobra.NoArgs,
		RunE:  runPush,
	}
	pushCmd.Flags().StringVar(&pushURL, "url", "", "server URL (required)")
	pushCmd.Flags().StringVar(&pushToken, "token", "", "bearer token for the server")
	pushCmd.MarkFlagRequired("url")

	typesCmd := &cobra.Command{
		Use:   "types",
		Short: "list and edit widget types in the config file",
	}
	typesListCmd := &cobra.Command{
		Use:   "list",
		Short: "list widget types",
		Args:  cobra.NoArgs,
		RunE:  runTypesList,
	}
	typesAddCmd := &cobra.Command{
		Use:   "add <name> <w> <h>",
		Short: "add a widget type",
		Args:  cobra.ExactArgs(3),
		RunE:  runTypesAdd,
	}
	typesAddCmd.Flags().StringToStringVar(&typeProps, "prop", nil, "default prop as key=value (repeatable)")
	typesRmCmd := &cobra.Command{
		Use:   "rm <name>",
		Short: "remove a widget type",
		Args:  cobra.ExactArgs(1),
		RunE:  runTypesRm,
	}
	typesSizeCmd := &cobra.Command{
		Use:   "size <name> <w> <h>",
		Short: "set the default size of a widget type",
		Args:  cobra.ExactArgs(3),
		RunE:  runTypesSize,
	}
	typesCmd.AddCommand(typesListCmd, typesAddCmd, typesRmCmd, typesSizeCmd)

	colsCmd := &cobra.Command{
		Use:   "cols <n>",
		Short: "set the board column count in the config file",
		Args:  cobra.ExactArgs(1),
		RunE:  runCols,
	}

	rootCmd.AddCommand(serveCmd, showCmd, arrangeCmd, addCmd, removeCmd, moveCmd,
		resizeCmd, editCmd, pushCmd, typesCmd, colsCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
