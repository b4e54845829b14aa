package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ovoitenko/pagelens/internal/keystore"
)

// keyCmd represents the key command
var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the stored API key",
	Long: `Manage the API key used for chat-completion requests.

A key saved here takes priority over the PAGELENS_API_KEY and
OPENAI_API_KEY environment variables.`,
}

var keySetCmd = &cobra.Command{
	Use:   "set <api-key>",
	Short: "Save an API key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := defaultStore()
		if err != nil {
			return err
		}
		if err := store.Set(args[0]); err != nil {
			return fmt.Errorf("save key: %w", err)
		}
		fmt.Println("✓ API key saved")
		return nil
	},
}

var keyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show where the effective API key comes from",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := defaultStore()
		if err != nil {
			return err
		}

		stored, err := store.Get()
		if err != nil {
			return fmt.Errorf("read key: %w", err)
		}

		cfg := loadConfig()
		switch {
		case stored != "":
			fmt.Printf("Stored key: %s\n", maskKey(stored))
		case envAPIKey(cfg) != "":
			fmt.Printf("Environment key: %s\n", maskKey(envAPIKey(cfg)))
		default:
			fmt.Println("No API key configured")
		}
		return nil
	},
}

var keyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := defaultStore()
		if err != nil {
			return err
		}
		if err := store.Delete(); err != nil {
			return fmt.Errorf("remove key: %w", err)
		}
		fmt.Println("✓ Stored API key removed")
		return nil
	},
}

func defaultStore() (keystore.Store, error) {
	path, err := keystore.DefaultPath()
	if err != nil {
		return nil, err
	}
	return keystore.NewFileStore(path), nil
}

// maskKey hides all but the first and last few characters of a key.
func maskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func init() {
	rootCmd.AddCommand(keyCmd)
	keyCmd.AddCommand(keySetCmd)
	keyCmd.AddCommand(keyShowCmd)
	keyCmd.AddCommand(keyClearCmd)
}
