package main

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"analyse-juridique/assets"
	"analyse-juridique/config"
	"analyse-juridique/storage"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:          "upload-logo <image>",
		Short:        "Upload the page logo to the configured storage",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.LoadDotEnv()
			if key == "" {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				key = cfg.LogoPath
			}

			store, err := storage.NewStorageFromEnv()
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}

			mimeType, err := uploadLogo(cmd.Context(), store, key, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Uploaded %s (%s) as %s\n", args[0], mimeType, key)
			return nil
		},
	}

	cmd.Flags().StringVarP(&key, "key", "k", "", "storage key (defaults to LOGO_PATH)")
	return cmd
}

// uploadLogo checks that path holds an image and stores it under key
func uploadLogo(ctx context.Context, store storage.Storage, key, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	mimeType, err := assets.DetectImage(data)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}

	if err := store.Upload(ctx, key, mimeType, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return mimeType, nil
}
