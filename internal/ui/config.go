package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timegrid/internal/config"
	"github.com/javiermolinar/timegrid/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  timegrid config
  timegrid config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInteractive(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "Config file: %s\n\n", config.DefaultConfigPath())
			printConfig(cmd.OutOrStdout(), a.config)
			return nil
		},
	})

	return cmd
}

func runConfigInteractive(in io.Reader, out io.Writer) error {
	configPath := config.DefaultConfigPath()
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(configPath)
	if os.IsNotExist(fileErr) {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	printConfig(out, cfg)

	reader := bufio.NewReader(in)
	if !promptYesNo(reader, out, "\nWould you like to edit the configuration?") {
		return nil
	}

	editConfig(reader, out, cfg)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

// editConfig prompts for each editable setting, keeping the current value on
// empty input.
func editConfig(reader *bufio.Reader, out io.Writer, cfg *config.Config) {
	p := prompter{r: reader, w: out}

	cfg.Grid.HourStart = p.intValue("First hour", cfg.Grid.HourStart)
	cfg.Grid.HourEnd = p.intValue("Last hour", cfg.Grid.HourEnd)
	cfg.Grid.MinuteCell = p.intValue("Minutes per snap step", cfg.Grid.MinuteCell)
	cfg.Grid.Days = p.intValue("Days shown (1-7)", cfg.Grid.Days)
	cfg.Interaction.GuideOnHover = p.boolValue("Show creation guide on hover", cfg.Interaction.GuideOnHover)
	cfg.Interaction.GuideOnClick = p.boolValue("Create on single click", cfg.Interaction.GuideOnClick)
	cfg.Interaction.DisableDblClick = p.boolValue("Disable double click", cfg.Interaction.DisableDblClick)
	cfg.Interaction.HoverDelayMS = p.intValue("Hover delay (ms)", cfg.Interaction.HoverDelayMS)
	cfg.Interaction.ClickDelayMS = p.intValue("Double click window (ms)", cfg.Interaction.ClickDelayMS)
	cfg.Storage.DBPath = p.value("Database path", cfg.Storage.DBPath)
	cfg.UI.Theme = p.theme(cfg.UI.Theme)
	cfg.Log.Level = p.value("Log level (debug, info, warn, error)", cfg.Log.Level)
	cfg.Log.File = p.value("Log file (empty to disable)", cfg.Log.File)
}

func printConfig(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Current configuration:")
	fmt.Fprintln(w, "──────────────────────")
	fmt.Fprintln(w, "[grid]")
	fmt.Fprintf(w, "  hour_start        = %d\n", cfg.Grid.HourStart)
	fmt.Fprintf(w, "  hour_end          = %d\n", cfg.Grid.HourEnd)
	fmt.Fprintf(w, "  minute_cell       = %d\n", cfg.Grid.MinuteCell)
	fmt.Fprintf(w, "  ratio_hour_grid_y = %v\n", cfg.Grid.RatioHourGridY)
	fmt.Fprintf(w, "  days              = %d\n", cfg.Grid.Days)
	fmt.Fprintln(w, "\n[interaction]")
	fmt.Fprintf(w, "  show_creation_guide_on_hover = %t\n", cfg.Interaction.GuideOnHover)
	fmt.Fprintf(w, "  show_creation_guide_on_click = %t\n", cfg.Interaction.GuideOnClick)
	fmt.Fprintf(w, "  disable_dbl_click            = %t\n", cfg.Interaction.DisableDblClick)
	fmt.Fprintf(w, "  disable_click                = %t\n", cfg.Interaction.DisableClick)
	fmt.Fprintf(w, "  hover_delay_ms               = %d\n", cfg.Interaction.HoverDelayMS)
	fmt.Fprintf(w, "  click_delay_ms               = %d\n", cfg.Interaction.ClickDelayMS)
	fmt.Fprintf(w, "  restore_delay_ms             = %d\n", cfg.Interaction.RestoreDelayMS)
	fmt.Fprintln(w, "\n[storage]")
	fmt.Fprintf(w, "  db_path           = %s\n", cfg.Storage.DBPath)
	fmt.Fprintln(w, "\n[ui]")
	fmt.Fprintf(w, "  theme             = %s\n", cfg.UI.Theme)
	fmt.Fprintln(w, "\n[log]")
	fmt.Fprintf(w, "  level             = %s\n", cfg.Log.Level)
	fmt.Fprintf(w, "  format            = %s\n", cfg.Log.Format)
	fmt.Fprintf(w, "  file              = %s\n", cfg.Log.File)
}

func promptYesNo(reader *bufio.Reader, w io.Writer, question string) bool {
	fmt.Fprintf(w, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

// prompter reads line-based answers.
type prompter struct {
	r *bufio.Reader
	w io.Writer
}

func (p prompter) value(label, current string) string {
	if current == "" {
		fmt.Fprintf(p.w, "  %s: ", label)
	} else {
		fmt.Fprintf(p.w, "  %s [%s]: ", label, current)
	}
	input, _ := p.r.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func (p prompter) intValue(label string, current int) int {
	for {
		value := p.value(label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil {
			return n
		}
		fmt.Fprintf(p.w, "  Invalid number %q\n", value)
	}
}

func (p prompter) boolValue(label string, current bool) bool {
	for {
		value := p.value(label, strconv.FormatBool(current))
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
		fmt.Fprintf(p.w, "  Invalid value %q, use true or false\n", value)
	}
}

func (p prompter) theme(current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(p.value(label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Fprintf(p.w, "  Invalid theme %q. Available: %s\n", value, options)
	}
}
