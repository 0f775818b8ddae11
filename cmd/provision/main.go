// Command provision installs or removes the credential store.
//
//	provision [-config path] [install|uninstall]
//
// install creates the tables, seeds them with fake users and writes the
// landing page. uninstall drops the tables.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fake-auth/internal/config"
	"fake-auth/internal/database"
	"fake-auth/internal/logging"
	"fake-auth/internal/provision"
	"fake-auth/internal/storage"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

const usage = "usage: provision [-config path] [install|uninstall]"

func main() {
	configPath := flag.String("config", "", "path to settings.yml (default: ./configs or /configs)")
	flag.Parse()

	command := "install"
	switch flag.NArg() {
	case 0:
	case 1:
		command = flag.Arg(0)
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}
	if command != "install" && command != "uninstall" {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}

	if err := run(*configPath, command); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func run(configPath, command string) error {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if err := logging.Setup(cfg.Log, os.Stdout); err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbpool, err := pgxpool.New(ctx, cfg.DB.Source)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer dbpool.Close()

	pages, err := storage.NewLocalStorage(cfg.Web.PublicDir)
	if err != nil {
		return fmt.Errorf("open public directory: %w", err)
	}

	installer := provision.NewInstaller(
		database.NewStore(dbpool),
		provision.NewRandomUserClient(cfg.Provision.UsersURL, cfg.Provision.RequestTimeout),
		pages,
		cfg.Provision.UserCount,
	)

	if command == "uninstall" {
		return installer.Uninstall(ctx)
	}

	users, err := installer.Install(ctx)
	if err != nil {
		return err
	}
	log.Infof("Installed %d fake users", len(users))
	return nil
}
