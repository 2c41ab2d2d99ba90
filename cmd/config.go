package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mj1618/clockface/internal/config"
	"github.com/mj1618/clockface/internal/output"
	"github.com/mj1618/clockface/internal/render"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Long: `Write the default configuration to the --config path. The format follows
the file extension: .yaml/.yml, .toml or .json.

Examples:
  clockface config init
  clockface --config ./clockface.toml config init --force`,
	Annotations: map[string]string{skipConfigLoad: "true"},
	RunE:        runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long:  "Print the configuration after applying the config file and CLOCKFACE_* environment variables.",
	RunE:  runConfigShow,
}

var configPaletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "Print the effective palette as hex colors",
	RunE:  runConfigPalette,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configShowCmd, configPaletteCmd)
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	path := configPath()
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	cfg := config.Default()
	cfg.Palette = render.DefaultPalette().Hex()
	if err := config.Save(cfg, path); err != nil {
		return err
	}
	return output.Print(map[string]string{"path": path})
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	return output.Print(appConfig)
}

func runConfigPalette(cmd *cobra.Command, args []string) error {
	p, err := appConfig.RenderPalette()
	if err != nil {
		return err
	}
	return output.Print(p.Hex())
}
