package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"reqctl/internal/app"
)

type inspectOptions struct {
	Manifest  string
	OutputDir string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Inspect lock outputs and group membership",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Manifest, "manifest", "", "Requirements manifest path (optional, enables group summaries)")
	cmd.Flags().StringVar(&opts.OutputDir, "output", "out", "Output directory")
	_ = viper.BindPFlag("inspect_manifest", cmd.Flags().Lookup("manifest"))
	_ = viper.BindPFlag("inspect_output", cmd.Flags().Lookup("output"))
	return cmd
}

func runInspect(cmd *cobra.Command, opts inspectOptions) error {
	service := newAppService()
	result, err := service.Inspect(app.InspectRequest{
		ManifestPath: resolveString(cmd, opts.Manifest, "inspect_manifest", "manifest"),
		OutputDir:    resolveString(cmd, opts.OutputDir, "inspect_output", "output"),
	})
	if err != nil {
		return err
	}

	fmt.Printf("requirements.lock entries: %d (fingerprint=%s)\n", result.LockCount, result.Fingerprint)
	for _, summary := range result.Groups {
		fmt.Printf("- %s: %d packages\n", summary.Name, summary.Count)
		if len(summary.Packages) > 0 {
			fmt.Printf("  %s\n", strings.Join(summary.Packages, ", "))
		}
	}
	fmt.Printf("overrides.report records: %d\n", len(result.OverrideRecords))
	for _, record := range result.OverrideRecords {
		fmt.Printf("- %s %s %s (owner=%s)\n", record.Package, record.Action, record.Value, record.Owner)
	}
	return nil
}
