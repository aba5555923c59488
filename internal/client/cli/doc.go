// Package cli implements attendctl, the operator command-line tool of the
// softasistence auth service.
//
// Commands:
//   - login:   prompt for a password, log in and print the token
//   - me:      print the identity behind a token
//   - smoke:   log in, call /me and check both agree
//   - useradd: create an account directly in the database
//
// Configuration comes from internal/client/config, overridden by the
// persistent flags of the root command. Passwords are read without echo,
// or from ATTENDCTL_PASSWORD when set.
package cli
