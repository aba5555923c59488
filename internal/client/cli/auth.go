package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/softasistence/internal/client/client"
	"github.com/dmitrijs2005/softasistence/internal/common"
	"github.com/dmitrijs2005/softasistence/internal/server/dto"
)

const tokenEnv = "ATTENDCTL_TOKEN"

type identifierFlags struct {
	email  string
	cedula string
}

func (f *identifierFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.email, "email", "", "account email")
	cmd.Flags().StringVar(&f.cedula, "cedula", "", "account cedula")
}

// resolve prompts for an identifier when neither flag was given. Input
// containing "@" is taken as an email, anything else as a cedula.
func (f *identifierFlags) resolve(a *App) error {
	if f.email != "" || f.cedula != "" {
		return nil
	}
	v, err := GetSimpleText(a.reader, "Email o cédula", a.errOut)
	if err != nil {
		return err
	}
	if v == "" {
		return errors.New("an email or cedula is required")
	}
	if strings.Contains(v, "@") {
		f.email = v
	} else {
		f.cedula = v
	}
	return nil
}

func (a *App) login(ctx context.Context, c client.Client, id identifierFlags) (*dto.LoginData, error) {
	if err := id.resolve(a); err != nil {
		return nil, err
	}

	pw, err := a.password("Contraseña")
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(pw)

	password := string(pw)
	req := &dto.LoginRequest{Password: &password}
	if id.email != "" {
		req.Email = &id.email
	}
	if id.cedula != "" {
		cedula := dto.IDString(id.cedula)
		req.Cedula = &cedula
	}
	return c.Login(ctx, req)
}

func (a *App) loginCmd() *cobra.Command {
	var id identifierFlags
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withClient(cmd.Context(), func(ctx context.Context, c client.Client) error {
				data, err := a.login(ctx, c, id)
				if err != nil {
					return err
				}
				fmt.Fprintln(a.out, data.Token)
				return nil
			})
		},
	}
	id.register(cmd)
	return cmd
}

func (a *App) meCmd() *cobra.Command {
	var token string
	cmd := &cobra.Command{
		Use:   "me",
		Short: "Print the user behind a token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if token == "" {
				token = os.Getenv(tokenEnv)
			}
			if token == "" {
				return errors.New("a token is required (--token or " + tokenEnv + ")")
			}
			return a.withClient(cmd.Context(), func(ctx context.Context, c client.Client) error {
				me, err := c.Me(ctx, token)
				if err != nil {
					return err
				}
				return printJSON(a, me)
			})
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "session token")
	return cmd
}

func printJSON(a *App, v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
