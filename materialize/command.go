package materialize

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/esystemsdev/fabrix-core/cliout"
	"github.com/esystemsdev/fabrix-core/pathutil"
	"github.com/esystemsdev/fabrix-core/secrets"
	"github.com/esystemsdev/fabrix-core/topology"
)

// NewCommand creates the env command that materializes an application's
// .env file from its env.template.
func NewCommand() *cobra.Command {
	var opts Options
	cmd := &cobra.Command{
		Use:   "env <app>",
		Short: "Materialize an application's .env file from its env.template",
		Long: "Resolves ${VAR} topology variables and kv:// secret references in the\n" +
			"application's env.template and writes the result to its .env file.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appName := args[0]

			written, err := Materialize(appName, opts)
			if err != nil {
				var missing *secrets.MissingSecretsError
				if errors.As(err, &missing) {
					cliout.Error("missing secrets for %s", appName)
					for _, ref := range missing.Refs {
						cliout.Bullet("%s", ref)
					}
					cliout.Hint(
						fmt.Sprintf("add the keys to %s", pathutil.UserSecretsPath()),
						"or rerun with --force to generate placeholder values",
					)
				}
				return err
			}

			cliout.Success("wrote %s", written)
			return nil
		},
	}

	opts.AddFlags(cmd.Flags())
	return cmd
}

// AddFlags registers the materialization flags on the given flag set.
func (o *Options) AddFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&o.Environment, "environment", "e", topology.LocalEnvironment, "Target environment (local, docker, ...)")
	flags.StringVar(&o.SecretsPath, "secrets-file", "", "Explicit secrets file instead of the layered cascade")
	flags.BoolVar(&o.Force, "force", false, "Generate placeholder values for missing secrets first")
	flags.StringVar(&o.AppsDir, "apps-dir", ".", "Directory containing application subdirectories")
}
