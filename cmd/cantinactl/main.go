// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/carterperez-dev/cantina-core/internal/auth"
	"github.com/carterperez-dev/cantina-core/internal/config"
	"github.com/carterperez-dev/cantina-core/internal/core"
	"github.com/carterperez-dev/cantina-core/internal/user"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Usage = usage
	flag.Parse()

	if err := run(*configPath, flag.Args()); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: cantinactl [-config file] <command> [flags]

Commands:
  add             create a user
  list            list users (active only unless -all)
  update          change fields of a user
  delete          permanently remove a user
  reset-password  set a fresh temporary password
  login           check a username/password pair
`)
}

func run(configPath string, args []string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	store, err := core.NewStore(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("database close error", "error", err)
		}
	}()

	repo, err := user.NewRepository(ctx, store.DB)
	if err != nil {
		return err
	}
	userSvc := user.NewService(repo)

	var limiter *auth.LoginLimiter
	if cfg.LoginLimit.Enabled {
		limiter = auth.NewLoginLimiter(
			cfg.LoginLimit.Attempts,
			cfg.LoginLimit.Window,
			cfg.LoginLimit.Burst,
		)
	}
	authSvc := auth.NewService(userSvc, limiter)

	if len(args) == 0 {
		usage()
		return errors.New("missing command")
	}

	switch args[0] {
	case "add":
		return cmdAdd(ctx, userSvc, args[1:])
	case "list":
		return cmdList(ctx, userSvc, args[1:])
	case "update":
		return cmdUpdate(ctx, userSvc, args[1:])
	case "delete":
		return cmdDelete(ctx, userSvc, args[1:])
	case "reset-password":
		return cmdResetPassword(ctx, userSvc, args[1:])
	case "login":
		return cmdLogin(ctx, authSvc, args[1:])
	default:
		usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func cmdAdd(ctx context.Context, svc *user.Service, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	first := fs.String("first", "", "first name")
	last := fs.String("last", "", "last name")
	cpf := fs.String("cpf", "", "national id")
	login := fs.String("login", "", "login name")
	password := fs.String("password", "", "initial password")
	admission := fs.String("admission", "", "admission date (YYYY-MM-DD)")
	role := fs.String("role", "", "access role (admin or staff)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := user.CreateUserRequest{
		FirstName: *first,
		LastName:  *last,
		CPF:       *cpf,
		Login:     *login,
		Password:  *password,
	}
	if *admission != "" {
		req.AdmissionDate = admission
	}
	if *role != "" {
		req.Role = role
	}

	created, err := svc.Create(ctx, req)
	if err != nil {
		return friendlyError(err)
	}

	fmt.Printf("created user %d (%s)\n", created.ID, created.Login)
	return nil
}

func cmdList(ctx context.Context, svc *user.Service, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	all := fs.Bool("all", false, "include deactivated users")
	if err := fs.Parse(args); err != nil {
		return err
	}

	users, err := svc.List(ctx, *all)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLOGIN\tNAME\tROLE\tACTIVE\tCREATED")
	for i := range users {
		u := &users[i]
		active := "yes"
		if !u.Active {
			active = "no"
		}
		fmt.Fprintf(w, "%d\t%s\t%s %s\t%s\t%s\t%s\n",
			u.ID, u.Login, u.FirstName, u.LastName,
			u.RoleName(), active, u.CreatedAt,
		)
	}
	return w.Flush()
}

func cmdUpdate(ctx context.Context, svc *user.Service, args []string) error {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	id := fs.Int64("id", 0, "user id")
	first := fs.String("first", "", "first name")
	last := fs.String("last", "", "last name")
	cpf := fs.String("cpf", "", "national id")
	login := fs.String("login", "", "login name")
	password := fs.String("password", "", "new password")
	admission := fs.String("admission", "", "admission date (YYYY-MM-DD)")
	role := fs.String("role", "", "access role")
	active := fs.Bool("active", true, "active flag")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// Only flags the operator actually passed become part of the update;
	// everything else stays untouched.
	var req user.UpdateUserRequest
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "first":
			req.FirstName = first
		case "last":
			req.LastName = last
		case "cpf":
			req.CPF = cpf
		case "login":
			req.Login = login
		case "password":
			req.Password = password
		case "admission":
			req.AdmissionDate = admission
		case "role":
			req.Role = role
		case "active":
			req.Active = active
		}
	})

	changed, err := svc.Update(ctx, *id, req)
	if err != nil {
		return friendlyError(err)
	}
	if !changed {
		fmt.Println("nothing to update")
		return nil
	}

	fmt.Printf("updated user %d\n", *id)
	return nil
}

func cmdDelete(ctx context.Context, svc *user.Service, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.Int64("id", 0, "user id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	deleted, err := svc.Delete(ctx, *id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("user %d not found", *id)
	}

	fmt.Printf("deleted user %d\n", *id)
	return nil
}

func cmdResetPassword(
	ctx context.Context,
	svc *user.Service,
	args []string,
) error {
	fs := flag.NewFlagSet("reset-password", flag.ExitOnError)
	id := fs.Int64("id", 0, "user id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	temp, err := svc.ResetPassword(ctx, *id)
	if err != nil {
		return friendlyError(err)
	}

	fmt.Printf("temporary password for user %d: %s\n", *id, temp)
	return nil
}

func cmdLogin(ctx context.Context, svc *auth.Service, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	username := fs.String("user", "", "login name")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	result := svc.Authenticate(ctx, *username, *password)
	if !result.OK {
		fmt.Println("invalid credentials")
		return nil
	}

	role := result.Role
	if role == "" {
		role = "(none)"
	}
	fmt.Printf("ok, role %s\n", role)
	return nil
}

func friendlyError(err error) error {
	switch {
	case errors.Is(err, core.ErrDuplicateKey):
		return errors.New("cpf or login name already registered")
	case errors.Is(err, core.ErrValidation):
		return err
	case errors.Is(err, core.ErrNotFound):
		return errors.New("user not found")
	default:
		return err
	}
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
