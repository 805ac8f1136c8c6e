package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"reqctl/internal/app"
)

type validateOptions struct {
	Manifest       string
	RequiredGroups []string
	Externals      []string
	FlagUnpinned   bool
	Strict         bool
	ReportDir      string
}

func newValidateCommand() *cobra.Command {
	opts := validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Lint a requirements manifest",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Manifest, "manifest", "requirements.txt", "Requirements manifest path")
	cmd.Flags().StringSliceVar(&opts.RequiredGroups, "required-group", nil, "Group header that must be present (repeatable)")
	cmd.Flags().StringSliceVar(&opts.Externals, "external", nil, "External package pattern (repeatable)")
	cmd.Flags().BoolVar(&opts.FlagUnpinned, "flag-unpinned", false, "Warn on declarations without an exact pin")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Treat warnings as errors")
	cmd.Flags().StringVar(&opts.ReportDir, "report", "", "Directory for the lint report (optional)")
	_ = viper.BindPFlag("manifest", cmd.Flags().Lookup("manifest"))
	_ = viper.BindPFlag("required_groups", cmd.Flags().Lookup("required-group"))
	_ = viper.BindPFlag("externals", cmd.Flags().Lookup("external"))
	_ = viper.BindPFlag("flag_unpinned", cmd.Flags().Lookup("flag-unpinned"))
	_ = viper.BindPFlag("strict", cmd.Flags().Lookup("strict"))
	_ = viper.BindPFlag("report", cmd.Flags().Lookup("report"))
	return cmd
}

func runValidate(ctx context.Context, cmd *cobra.Command, opts validateOptions) error {
	service := newAppService()
	result, err := service.Validate(ctx, app.ValidateRequest{
		ManifestPath:   resolveString(cmd, opts.Manifest, "manifest", "manifest"),
		RequiredGroups: resolveStrings(cmd, opts.RequiredGroups, "required_groups", "required-group"),
		Externals:      resolveStrings(cmd, opts.Externals, "externals", "external"),
		FlagUnpinned:   resolveBool(cmd, opts.FlagUnpinned, "flag_unpinned", "flag-unpinned"),
		Strict:         resolveBool(cmd, opts.Strict, "strict", "strict"),
		ReportDir:      resolveString(cmd, opts.ReportDir, "report", "report"),
	})
	if err != nil {
		return err
	}
	for _, finding := range result.Findings {
		fmt.Printf("%s: line %d: %s: %s\n", finding.Severity, finding.Line, finding.Rule, finding.Message)
	}
	if result.HasErrors {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("manifest validation failed: %s", result.ManifestPath))
	}
	fmt.Printf("validated: %s\n", result.ManifestPath)
	return nil
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveStrings(cmd *cobra.Command, values []string, key string, flagName string) []string {
	if cmd == nil {
		if len(values) > 0 {
			return values
		}
		return viper.GetStringSlice(key)
	}
	if flagChanged(cmd, flagName) {
		return values
	}
	return viper.GetStringSlice(key)
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetBool(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
