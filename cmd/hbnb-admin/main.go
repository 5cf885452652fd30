// Package main is the entry point for the HBnB admin CLI.
// This tool provides operational helpers: configuration checks, signing
// secret generation and password hashing for seeded users.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prn-tf/hbnb/internal/config"
	"github.com/prn-tf/hbnb/internal/domain"
	"github.com/prn-tf/hbnb/internal/pkg/crypto"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "hbnb-admin",
		Short:        "HBnB admin CLI",
		SilenceUsage: true,
	}

	cmd.AddCommand(
		newVersionCmd(),
		newConfigCmd(),
		newGenSecretCmd(),
		newHashPasswordCmd(),
	)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "HBnB Admin CLI\n")
			fmt.Fprintf(out, "Version: %s\n", Version)
			fmt.Fprintf(out, "Build Time: %s\n", BuildTime)
			fmt.Fprintf(out, "Git Commit: %s\n", GitCommit)
		},
	}
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect server configuration",
	}

	var configPath string
	check := &cobra.Command{
		Use:   "check",
		Short: "Load and validate the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "configuration OK")
			fmt.Fprintf(out, "  listen:   %s\n", cfg.Server.Addr())
			fmt.Fprintf(out, "  auth:     %t\n", cfg.Auth.Enabled)
			fmt.Fprintf(out, "  logging:  %s (%s)\n", cfg.Logging.Level, cfg.Logging.Format)
			if cfg.Metrics.Enabled {
				fmt.Fprintf(out, "  metrics:  %s\n", cfg.Metrics.Path)
			} else {
				fmt.Fprintln(out, "  metrics:  disabled")
			}
			return nil
		},
	}
	check.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")

	cmd.AddCommand(check)
	return cmd
}

func newGenSecretCmd() *cobra.Command {
	var length int

	cmd := &cobra.Command{
		Use:   "gen-secret",
		Short: "Generate a random JWT signing secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if length < 32 {
				return fmt.Errorf("secret length must be at least 32, got %d", length)
			}
			secret, err := crypto.GenerateSecret(length)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), secret)
			return nil
		},
	}
	cmd.Flags().IntVarP(&length, "length", "l", crypto.DefaultSecretLength, "secret length")
	return cmd
}

func newHashPasswordCmd() *cobra.Command {
	var cost int

	cmd := &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print the bcrypt hash of a password (read from stdin when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				var err error
				if password, err = readLine(cmd.InOrStdin()); err != nil {
					return err
				}
			}

			if _, err := domain.ValidatePassword(password); err != nil {
				return err
			}

			hash, err := crypto.NewBcryptHasher(cost).Hash(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
	cmd.Flags().IntVar(&cost, "cost", 12, "bcrypt cost")
	return cmd
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
