package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-taghelpers/internal/sample"
)

var (
	flagAuth   string
	flagOutput string
)

var renderCmd = &cobra.Command{
	Use:   "render [page]",
	Short: "Render a sample page to stdout or a file",
	Long: `Render processes one page through the tag helper pack without starting a
server. The page defaults to "index".

Examples:
  taghelpers render
  taghelpers render about --auth admin
  taghelpers render index --auth user --output index.html`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVar(&flagAuth, "auth", "", `Authenticate as "admin" or "user" (anonymous when empty)`)
	renderCmd.Flags().StringVar(&flagOutput, "output", "", "Output file (stdout if empty)")
	addServerFlags(renderCmd.Flags())
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(flagConfig)
	if err != nil {
		return err
	}
	if err := cfg.applyFlags(cmd.Flags()); err != nil {
		return err
	}
	cfg.Watch = false
	if err := cfg.validate(); err != nil {
		return err
	}

	page := "index"
	if len(args) == 1 {
		page = args[0]
	}

	component, err := sample.New(cfg.sampleOptions()...)
	if err != nil {
		return err
	}

	output, err := component.RenderPage(cmd.Context(), page, sample.PrincipalFor(flagAuth))
	if err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}

	if flagOutput == "" {
		_, err := cmd.OutOrStdout().Write(output)
		return err
	}
	if err := os.WriteFile(flagOutput, output, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	log.Printf("page %s written to %s", page, flagOutput)
	return nil
}
