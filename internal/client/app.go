package client

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MKhiriev/go-shelf-auth/internal/logger"
	"github.com/MKhiriev/go-shelf-auth/internal/service"
	"github.com/MKhiriev/go-shelf-auth/models"
	"github.com/atotto/clipboard"
)

const usage = `usage: shelf-client <command> [flags]

commands:
  register  -name N -email E [-age A] [-password P] [-copy-token]
  login     -email E [-password P] [-copy-token]
  me
  update    [-name N] [-email E] [-age A] [-password P]
  user      <id>
  follow    <id>
  unfollow  <id>
  logout    [-all]
  delete    -yes
  set-type  <id> <user|author|rejectedUser|rejectedAuthor>
  version

When -password is omitted it is read from the first line of stdin.`

var _ Client = (*App)(nil)

type command func(ctx context.Context, args []string) error

// App is the command-line client.
type App struct {
	auth      service.ClientAuthService
	profile   service.ClientProfileService
	buildInfo models.AppBuildInfo

	in       io.Reader
	out      io.Writer
	copyText func(string) error

	commands map[string]command
	logger   *logger.Logger
}

func NewApp(services *service.ClientServices, buildInfo models.AppBuildInfo, logger *logger.Logger) (*App, error) {
	if services == nil || services.AuthService == nil || services.ProfileService == nil {
		return nil, errors.New("client services are not configured")
	}

	a := &App{
		auth:      services.AuthService,
		profile:   services.ProfileService,
		buildInfo: buildInfo,
		in:        os.Stdin,
		out:       os.Stdout,
		copyText:  clipboard.WriteAll,
		logger:    logger,
	}
	a.commands = map[string]command{
		"register": a.register,
		"login":    a.login,
		"me":       a.authed(a.me),
		"update":   a.authed(a.update),
		"user":     a.authed(a.user),
		"follow":   a.authed(a.follow),
		"unfollow": a.authed(a.unfollow),
		"logout":   a.logout,
		"delete":   a.authed(a.deleteAccount),
		"set-type": a.authed(a.setType),
		"version":  a.version,
	}

	return a, nil
}

// Run executes one subcommand. Errors are also rendered to the output so
// that the caller only has to pick an exit code.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.println(usage)
		return errNoCommand
	}

	name := args[0]
	if name == "help" || name == "-h" || name == "--help" {
		a.println(usage)
		return nil
	}

	cmd, ok := a.commands[name]
	if !ok {
		a.println(usage)
		return fmt.Errorf("%w: %q", errUnknownCommand, name)
	}

	a.logger.Debug().Str("command", name).Msg("running command")
	if err := cmd(ctx, args[1:]); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			a.println(renderError(err))
		}
		return err
	}
	return nil
}

// authed restores the remembered session before running next.
func (a *App) authed(next command) command {
	return func(ctx context.Context, args []string) error {
		if _, err := a.auth.RestoreSession(ctx); err != nil {
			if errors.Is(err, service.ErrNotLoggedIn) {
				return fmt.Errorf("%w: run \"login\" first", err)
			}
			return err
		}
		return next(ctx, args)
	}
}

func (a *App) register(ctx context.Context, args []string) error {
	fs := a.flagSet("register")
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "email address")
	age := fs.Int("age", 0, "age")
	password := fs.String("password", "", "password")
	copyToken := fs.Bool("copy-token", false, "copy the issued token to the clipboard")
	if err := fs.Parse(args); err != nil {
		return err
	}

	pass, err := a.passwordOrStdin(*password)
	if err != nil {
		return err
	}

	session, err := a.auth.Register(ctx, models.RegisterRequest{
		Name:     *name,
		Email:    *email,
		Password: pass,
		Age:      *age,
	})
	if err != nil {
		return err
	}

	a.println(renderSession("registered", session))
	return a.maybeCopyToken(*copyToken, session.Token)
}

func (a *App) login(ctx context.Context, args []string) error {
	fs := a.flagSet("login")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	copyToken := fs.Bool("copy-token", false, "copy the issued token to the clipboard")
	if err := fs.Parse(args); err != nil {
		return err
	}

	pass, err := a.passwordOrStdin(*password)
	if err != nil {
		return err
	}

	session, err := a.auth.Login(ctx, models.Credentials{Email: *email, Password: pass})
	if err != nil {
		return err
	}

	a.println(renderSession("logged in", session))
	return a.maybeCopyToken(*copyToken, session.Token)
}

func (a *App) me(ctx context.Context, args []string) error {
	if err := a.flagSet("me").Parse(args); err != nil {
		return err
	}

	user, err := a.profile.Me(ctx)
	if err != nil {
		return err
	}

	a.println(renderUser(user))
	return nil
}

func (a *App) update(ctx context.Context, args []string) error {
	fs := a.flagSet("update")
	name := fs.String("name", "", "new display name")
	email := fs.String("email", "", "new email address")
	age := fs.Int("age", 0, "new age")
	password := fs.String("password", "", "new password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// Only flags given on the command line become part of the update.
	var upd models.ProfileUpdate
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			upd.Name = name
		case "email":
			upd.Email = email
		case "age":
			upd.Age = age
		case "password":
			upd.Password = password
		}
	})

	user, err := a.profile.Update(ctx, upd)
	if err != nil {
		return err
	}

	a.println(renderUser(user))
	return nil
}

func (a *App) user(ctx context.Context, args []string) error {
	id, err := a.singleArg("user", args)
	if err != nil {
		return err
	}

	user, err := a.profile.Get(ctx, id)
	if err != nil {
		return err
	}

	a.println(renderUser(user))
	return nil
}

func (a *App) follow(ctx context.Context, args []string) error {
	id, err := a.singleArg("follow", args)
	if err != nil {
		return err
	}

	if err = a.profile.Follow(ctx, id); err != nil {
		return err
	}

	a.println(renderOK("now following " + id))
	return nil
}

func (a *App) unfollow(ctx context.Context, args []string) error {
	id, err := a.singleArg("unfollow", args)
	if err != nil {
		return err
	}

	if err = a.profile.Unfollow(ctx, id); err != nil {
		return err
	}

	a.println(renderOK("no longer following " + id))
	return nil
}

func (a *App) logout(ctx context.Context, args []string) error {
	fs := a.flagSet("logout")
	all := fs.Bool("all", false, "revoke every session of the account")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.auth.Logout(ctx, *all); err != nil {
		return err
	}

	if *all {
		a.println(renderOK("logged out of every session"))
	} else {
		a.println(renderOK("logged out"))
	}
	return nil
}

func (a *App) deleteAccount(ctx context.Context, args []string) error {
	fs := a.flagSet("delete")
	yes := fs.Bool("yes", false, "confirm account deletion")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !*yes {
		return errNotConfirmed
	}

	if err := a.profile.DeleteAccount(ctx); err != nil {
		return err
	}

	a.println(renderOK("account deleted"))
	return nil
}

func (a *App) setType(ctx context.Context, args []string) error {
	fs := a.flagSet("set-type")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("%w: set-type <id> <type>", errMissingArgument)
	}

	id, userType := fs.Arg(0), models.UserType(fs.Arg(1))
	if err := a.profile.SetUserType(ctx, id, userType); err != nil {
		return err
	}

	a.println(renderOK(fmt.Sprintf("user %s is now %s", id, userType)))
	return nil
}

func (a *App) version(ctx context.Context, args []string) error {
	if err := a.flagSet("version").Parse(args); err != nil {
		return err
	}

	server, err := a.profile.ServerVersion(ctx)
	if err != nil {
		a.logger.Debug().Err(err).Str("func", "*App.version").Msg("server version unavailable")
	}

	a.println(renderVersion(a.buildInfo, server, err))
	return nil
}

func (a *App) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

func (a *App) singleArg(name string, args []string) (string, error) {
	fs := a.flagSet(name)
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if fs.NArg() != 1 {
		return "", fmt.Errorf("%w: %s <id>", errMissingArgument, name)
	}
	return fs.Arg(0), nil
}

// passwordOrStdin falls back to the first line of stdin when no password
// flag was given. Surrounding spaces are part of the password.
func (a *App) passwordOrStdin(password string) (string, error) {
	if password != "" {
		return password, nil
	}

	line, err := bufio.NewReader(a.in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("error reading password: %w", err)
	}
	line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
	if line == "" {
		return "", fmt.Errorf("%w: password", errMissingArgument)
	}
	return line, nil
}

func (a *App) maybeCopyToken(enabled bool, token string) error {
	if !enabled {
		return nil
	}
	if err := a.copyText(token); err != nil {
		return fmt.Errorf("error copying token to clipboard: %w", err)
	}
	a.println(renderOK("token copied to clipboard"))
	return nil
}

func (a *App) println(s string) {
	_, _ = fmt.Fprintln(a.out, s)
}
