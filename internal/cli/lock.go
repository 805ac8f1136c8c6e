package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"reqctl/internal/app"
)

type lockOptions struct {
	Manifest  string
	Index     string
	Overrides string
	OutputDir string
	Externals []string
}

func newLockCommand() *cobra.Command {
	opts := lockOptions{}
	cmd := &cobra.Command{
		Use:   "lock",
		Short: "Resolve declarations against a package index and produce lock outputs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLock(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Manifest, "manifest", "requirements.txt", "Requirements manifest path")
	cmd.Flags().StringVar(&opts.Index, "index", "", "Package index file")
	cmd.Flags().StringVar(&opts.Overrides, "overrides", "", "Override directives file (optional)")
	cmd.Flags().StringVar(&opts.OutputDir, "output", "out", "Output directory")
	cmd.Flags().StringSliceVar(&opts.Externals, "external", nil, "External package pattern (repeatable)")

	_ = viper.BindPFlag("manifest", cmd.Flags().Lookup("manifest"))
	_ = viper.BindPFlag("index", cmd.Flags().Lookup("index"))
	_ = viper.BindPFlag("overrides", cmd.Flags().Lookup("overrides"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("externals", cmd.Flags().Lookup("external"))

	return cmd
}

func runLock(ctx context.Context, cmd *cobra.Command, opts lockOptions) error {
	service := newAppService()
	result, err := service.Lock(ctx, app.LockRequest{
		ManifestPath:  resolveString(cmd, opts.Manifest, "manifest", "manifest"),
		IndexPath:     resolveString(cmd, opts.Index, "index", "index"),
		OverridesPath: resolveString(cmd, opts.Overrides, "overrides", "overrides"),
		OutputDir:     resolveString(cmd, opts.OutputDir, "output", "output"),
		Externals:     resolveStrings(cmd, opts.Externals, "externals", "external"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("locked %d packages (%d external) fingerprint=%s\n",
		result.LockCount, result.SkippedCount, result.Fingerprint)
	return nil
}
