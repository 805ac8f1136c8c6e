package cli

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"reqctl/internal/app"
)

type fmtOptions struct {
	Manifest string
	Output   string
	Check    bool
}

func newFmtCommand() *cobra.Command {
	opts := fmtOptions{}
	cmd := &cobra.Command{
		Use:   "fmt",
		Short: "Rewrite a requirements manifest in canonical form",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFmt(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Manifest, "manifest", "requirements.txt", "Requirements manifest path")
	cmd.Flags().StringVar(&opts.Output, "output", "", "Output path (defaults to the manifest itself)")
	cmd.Flags().BoolVar(&opts.Check, "check", false, "Report whether the manifest is canonical without writing")
	_ = viper.BindPFlag("manifest", cmd.Flags().Lookup("manifest"))
	_ = viper.BindPFlag("fmt_output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("fmt_check", cmd.Flags().Lookup("check"))
	return cmd
}

func runFmt(ctx context.Context, cmd *cobra.Command, opts fmtOptions) error {
	service := newAppService()
	check := resolveBool(cmd, opts.Check, "fmt_check", "check")
	result, err := service.Format(ctx, app.FormatRequest{
		ManifestPath: resolveString(cmd, opts.Manifest, "manifest", "manifest"),
		OutputPath:   resolveString(cmd, opts.Output, "fmt_output", "output"),
		Check:        check,
	})
	if err != nil {
		return err
	}
	if check && result.Changed {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("manifest is not canonical: %s", result.ManifestPath))
	}
	if result.Changed {
		fmt.Printf("formatted: %s\n", result.ManifestPath)
	} else {
		fmt.Printf("already canonical: %s\n", result.ManifestPath)
	}
	return nil
}
