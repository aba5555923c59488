package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/softasistence/internal/client/client"
	"github.com/dmitrijs2005/softasistence/internal/server/dto"
	"github.com/dmitrijs2005/softasistence/internal/server/models"
)

func (a *App) smokeCmd() *cobra.Command {
	var id identifierFlags
	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Log in, call /me and check that both describe the same user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withClient(cmd.Context(), func(ctx context.Context, c client.Client) error {
				return a.smoke(ctx, c, id)
			})
		},
	}
	id.register(cmd)
	return cmd
}

func (a *App) smoke(ctx context.Context, c client.Client, id identifierFlags) error {
	fmt.Fprintln(a.out, "[auth-smoke] login")
	data, err := a.login(ctx, c, id)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	fmt.Fprintln(a.out, "[auth-smoke] token length:", len(data.Token))

	fmt.Fprintln(a.out, "[auth-smoke] /me")
	me, err := c.Me(ctx, data.Token)
	if err != nil {
		return fmt.Errorf("me failed: %w", err)
	}

	if err := compareIdentity(data.User, me); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "[auth-smoke] me: cedula=%d rol=%s\n", me.ID, me.Role)
	fmt.Fprintln(a.out, "[auth-smoke] ok")
	return nil
}

func compareIdentity(u *models.PublicUser, me *dto.Identity) error {
	if u == nil {
		return fmt.Errorf("login response has no user")
	}
	if u.ID != me.ID {
		return fmt.Errorf("cedula mismatch: login=%d me=%d", u.ID, me.ID)
	}
	if deref(u.Email) != deref(me.Email) {
		return fmt.Errorf("email mismatch: login=%q me=%q", deref(u.Email), deref(me.Email))
	}
	if string(u.Role) != me.Role {
		return fmt.Errorf("rol mismatch: login=%q me=%q", u.Role, me.Role)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
