package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Abraxas-365/devjobs/internal/config"
	"github.com/Abraxas-365/devjobs/internal/migrate"
	"github.com/Abraxas-365/devjobs/jobboard/jobcategory/jobcategoryinfra"
	"github.com/Abraxas-365/devjobs/jobboard/jobcategory/jobcategorysrv"
	"github.com/Abraxas-365/devjobs/pkg/iam/auth"
	"github.com/Abraxas-365/devjobs/pkg/kernel"
	"github.com/Abraxas-365/devjobs/pkg/logx"
)

type ServeCmd struct{}

func (s *ServeCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}
	return runServer(cfg)
}

type MigrateCmd struct {
	SkipSeed bool `help:"Do not insert the default job categories."`
}

func (m *MigrateCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}
	if cfg.Storage.Driver != "postgres" {
		return fmt.Errorf("migrate needs storage.driver postgres, got %q", cfg.Storage.Driver)
	}

	db, err := openDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := migrate.Apply(ctx, db); err != nil {
		return err
	}
	if m.SkipSeed {
		return nil
	}

	created, err := jobcategorysrv.NewCategoryService(jobcategoryinfra.NewPostgresCategoryRepository(db)).Seed(ctx)
	if err != nil {
		return fmt.Errorf("seed job categories: %w", err)
	}
	logx.Infof("seeded %d job categories", created)
	return nil
}

type TokenCmd struct {
	User int64  `arg:"" help:"User id to put in the token subject."`
	Role string `arg:"" enum:"INDIVIDUAL,COMPANY,ADMIN" help:"Role claim: INDIVIDUAL, COMPANY or ADMIN."`
}

func (t *TokenCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}

	tokens := auth.NewJWTService(authConfig(cfg.Auth))
	token, err := tokens.GenerateAccessToken(auth.NewPrincipal(kernel.UserID(t.User), auth.Role(t.Role)))
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}

func loadConfig(cli *CLI) (config.Config, error) {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return cfg, err
	}
	logx.SetLevel(logx.ParseLevel(cfg.Log.Level))
	if cfg.Log.JSON {
		logx.SetOutput(os.Stderr, true)
	}
	return cfg, nil
}

func authConfig(c config.AuthConfig) auth.Config {
	return auth.Config{
		SecretKey:      c.JWTSecret,
		Issuer:         c.Issuer,
		AccessTokenTTL: c.AccessTokenTTL,
	}
}
