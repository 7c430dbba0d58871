package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wcatz/gridboard/internal/board"
	"github.com/wcatz/gridboard/internal/config"
)

// editor returns a YAML editor for the config file. TOML configs are read-only.
func editor() (*config.YAMLEditor, error) {
	if config.FormatFor(cfgFile) != config.FormatYAML {
		return nil, fmt.Errorf("editing is only supported for YAML configs, got %s", cfgFile)
	}
	return config.NewYAMLEditor(cfgFile), nil
}

// recheck reloads the edited config so a bad edit is reported right away.
func recheck() error {
	if _, err := config.Load(cfgFile, nil); err != nil {
		return fmt.Errorf("config saved but no longer loads: %w", err)
	}
	return nil
}

func runTypesList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	order := cfg.WidgetOrder()
	if len(order) == 0 {
		printInfo("no widget types defined in %s", cfgFile)
		return nil
	}
	fmt.Println(typesTable(cfg, order))
	return nil
}

func runTypesAdd(cmd *cobra.Command, args []string) error {
	size, err := parseInts(args[1:], "w", "h")
	if err != nil {
		return err
	}
	ed, err := editor()
	if err != nil {
		return err
	}

	def := config.WidgetDef{W: size[0], H: size[1]}
	if len(typeProps) > 0 {
		def.Props = board.Props{}
		for k, v := range typeProps {
			def.Props[k] = v
		}
	}
	if err := ed.AddWidgetType(args[0], def); err != nil {
		return err
	}
	if err := recheck(); err != nil {
		return err
	}
	printSuccess("added widget type %s (%d×%d)", args[0], def.W, def.H)
	return nil
}

func runTypesRm(cmd *cobra.Command, args []string) error {
	ed, err := editor()
	if err != nil {
		return err
	}
	if err := ed.DeleteWidgetType(args[0]); err != nil {
		return err
	}
	if err := recheck(); err != nil {
		return err
	}
	printSuccess("removed widget type %s", args[0])
	printDetail("widgets of this type already on a board stay until removed")
	return nil
}

func runTypesSize(cmd *cobra.Command, args []string) error {
	size, err := parseInts(args[1:], "w", "h")
	if err != nil {
		return err
	}
	ed, err := editor()
	if err != nil {
		return err
	}
	if err := ed.SetWidgetSize(args[0], size[0], size[1]); err != nil {
		return err
	}
	if err := recheck(); err != nil {
		return err
	}
	printSuccess("widget type %s now defaults to %d×%d", args[0], size[0], size[1])
	return nil
}

func runCols(cmd *cobra.Command, args []string) error {
	n, err := parseInts(args, "cols")
	if err != nil {
		return err
	}
	ed, err := editor()
	if err != nil {
		return err
	}
	if err := ed.SetBoardCols(n[0]); err != nil {
		return err
	}
	if err := recheck(); err != nil {
		return err
	}
	printSuccess("board columns set to %d", n[0])
	printDetail("stored boards wider than this are replaced by the default layout on next load")
	return nil
}
