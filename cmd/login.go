package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/lingua/internal/activity"
	"github.com/abhisek/lingua/internal/api"
)

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Sign in and save the session",
	Long:  "Sign in (or register with --register) and save the token for the next run. The password is read from the first line of stdin.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		register, _ := cmd.Flags().GetBool("register")
		fullName, _ := cmd.Flags().GetString("name")

		password, err := readPassword(cmd)
		if err != nil {
			return err
		}

		w, err := openWorkspace(cmd)
		if err != nil {
			return err
		}
		defer w.Close()

		ctx := cmd.Context()
		account := activity.NewAccount(w.client)
		var res *api.AuthResponse
		if register {
			res, err = account.Register(ctx, args[0], password, fullName)
		} else {
			res, err = account.Login(ctx, args[0], password)
		}
		if err != nil {
			return w.explain(ctx, err)
		}

		if err := w.store.CredentialRepo().Save(ctx, res.AccessToken); err != nil {
			return fmt.Errorf("save credential: %w", err)
		}
		w.logger.Info("signed in", zap.String("user", res.User.Username))
		fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s.\n", res.User.DisplayName())
		return nil
	},
}

func init() {
	loginCmd.Flags().Bool("register", false, "Create the account instead of signing in")
	loginCmd.Flags().String("name", "", "Full name used with --register")
}

func readPassword(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	sc := bufio.NewScanner(cmd.InOrStdin())
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return "", fmt.Errorf("read password: no input")
	}
	fmt.Fprintln(cmd.ErrOrStderr())
	return strings.TrimRight(sc.Text(), "\r"), nil
}
