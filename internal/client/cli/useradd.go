package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/softasistence/internal/common"
	"github.com/dmitrijs2005/softasistence/internal/server/validators"
)

func (a *App) useraddCmd() *cobra.Command {
	var (
		dsn      string
		u        validators.NewUser
		inactive bool
	)

	cmd := &cobra.Command{
		Use:   "useradd",
		Short: "Create an account directly in the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dsn == "" {
				dsn = os.Getenv("DATABASE_URL")
			}
			if dsn == "" {
				return errors.New("a DSN is required (--dsn or DATABASE_URL)")
			}

			pw, err := a.password("Contraseña")
			if err != nil {
				return err
			}
			defer common.WipeByteArray(pw)
			if _, ok := os.LookupEnv(passwordEnv); !ok {
				confirm, err := getPassword(a.errOut, "Repita la contraseña")
				if err != nil {
					return err
				}
				defer common.WipeByteArray(confirm)
				if string(confirm) != string(pw) {
					return errors.New("las contraseñas no coinciden")
				}
			}
			u.Password = string(pw)

			if err := validators.ValidateNewUser(u); err != nil {
				return err
			}

			ctx := cmd.Context()
			users, closer, err := a.openUsers(ctx, dsn)
			if err != nil {
				return err
			}
			defer closer.Close()

			created, err := users.CreateUser(ctx, u, !inactive)
			if errors.Is(err, common.ErrorAlreadyExists) {
				return fmt.Errorf("user %s already exists", u.Cedula)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "created user %d (%s)\n", created.ID, created.Role)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&dsn, "dsn", "", "PostgreSQL DSN (default DATABASE_URL)")
	f.StringVar(&u.Cedula, "cedula", "", "cedula (8-15 digits)")
	f.StringVar(&u.FirstName, "nombre", "", "first name")
	f.StringVar(&u.LastName, "apellido", "", "last name")
	f.StringVar(&u.Email, "email", "", "email (optional)")
	f.StringVar(&u.Role, "rol", "instrutor", `"administrador" or "instrutor"`)
	f.BoolVar(&inactive, "inactive", false, "create the account disabled")
	_ = cmd.MarkFlagRequired("cedula")
	_ = cmd.MarkFlagRequired("nombre")
	_ = cmd.MarkFlagRequired("apellido")
	return cmd
}
