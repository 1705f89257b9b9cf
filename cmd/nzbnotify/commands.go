package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LISSConsulting/LISSTech.NZBNotify/internal/config"
	"github.com/LISSConsulting/LISSTech.NZBNotify/internal/crypt"
)

func testCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Send a test notification with the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.code = a.executeTest(cmd.Context())
			return nil
		},
	}
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [dir]",
		Short: "Create nzbnotify.toml in dir (default: current directory)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			path, err := config.InitFile(dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}
}

func decryptCmd(a *app) *cobra.Command {
	var kind, key string
	cmd := &cobra.Command{
		Use:   "decrypt <body>",
		Short: "Decrypt a notification body sent with encryption enabled",
		Long: "Decrypt reverses the encryption applied to a notification body. The scheme\n" +
			"and key default to the configured encryption settings.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if kind == "" || key == "" {
				ec, err := a.eventContext()
				if err != nil {
					return err
				}
				cfg, err := a.loadConfig(ec)
				if err != nil {
					return err
				}
				if kind == "" {
					kind = cfg.Encryption.Type
				}
				if key == "" {
					key = cfg.Encryption.PrivateKey
				}
			}
			if key == "" {
				return errors.New("no key: pass --key or set PrivateKey")
			}

			k, err := crypt.ParseKind(kind)
			if err != nil {
				return err
			}
			c, err := crypt.New(k, key)
			if err != nil {
				return err
			}
			plain, err := c.Decrypt(strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), plain)
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "type", "", "encryption scheme: fernet or aes")
	cmd.Flags().StringVar(&key, "key", "", "shared secret (Fernet key or AES passphrase)")
	return cmd
}

func keygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Print a new random Fernet key for the PrivateKey option",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := crypt.GenerateFernetKey()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), k)
			return nil
		},
	}
}

func manifestCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Print the NZBGet extension manifest.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.MarshalManifest(config.BuildManifest("nzbnotify", version))
			if err != nil {
				return err
			}
			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write manifest: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}
