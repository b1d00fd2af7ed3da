package cli

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/vlist/internal/config"
)

// NewConfigGetCmd creates the config get command for reading a configuration value.
func NewConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Long:  "Prints the effective value at a dotted key. Sections are printed as YAML.",
		Example: `  # Get the fixed item height
  vlist config get list.item_height

  # Get the whole logging section
  vlist config get logging`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := config.GetGlobalConfig().Get(args[0])
			if err != nil {
				return err
			}

			if section, ok := value.(map[string]interface{}); ok {
				out, marshalErr := yaml.Marshal(section)
				if marshalErr != nil {
					return marshalErr
				}
				cmd.Print(string(out))
				return nil
			}

			cmd.Println(value)
			return nil
		},
	}
}
