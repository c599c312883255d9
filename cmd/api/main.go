package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trustaes/internal/auth"
	"trustaes/internal/config"
	"trustaes/internal/httpserver"
	"trustaes/internal/logger"
	"trustaes/internal/models"
	"trustaes/internal/services/vector"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// logger depends on config; fall back to a default one
		zap.NewExample().Sugar().Fatalw("config", "error", err)
	}
	lg, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer lg.Sync()

	if err := cfg.RequireDatabase(); err != nil {
		lg.Fatalw("config", "error", err)
	}
	if err := selfTest(lg); err != nil {
		lg.Fatalw("known answer self-test failed", "error", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		lg.Fatalw("db connect failed", "error", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		lg.Fatalw("automigrate failed", "error", err)
	}
	if err := seed(db, cfg, lg); err != nil {
		lg.Fatalw("seed failed", "error", err)
	}

	router := httpserver.NewRouter(db, httpserver.Options{
		Signer:         auth.NewSigner(cfg.JWTSecret, cfg.JWTExpiresIn),
		MaxUploadBytes: cfg.MaxUploadBytes,
	}, lg)
	srv := &http.Server{Addr: ":" + cfg.HTTPPort, Handler: router, ReadHeaderTimeout: 10 * time.Second}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		lg.Infow("listening", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatalw("http server", "error", err)
		}
	}()
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Errorw("shutdown", "error", err)
	}
	lg.Infow("stopped")
}

func selfTest(lg *zap.SugaredLogger) error {
	kas, err := vector.RunKnownAnswers()
	if err != nil {
		return err
	}
	for _, ka := range kas {
		if !ka.OK {
			return errors.New(ka.Name)
		}
	}
	lg.Infow("known answer self-test passed", "vectors", len(kas))
	return nil
}

func seed(db *gorm.DB, cfg config.Config, lg *zap.SugaredLogger) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, name := range []string{auth.RoleAdmin, auth.RoleUser} {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.Role{Name: name}).Error; err != nil {
				return err
			}
		}
		aes := models.AESCatalogue()
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"modes", "test_modes", "key_lengths", "block_size_bits", "standard_ref", "updated_at"}),
		}).Create(&aes).Error; err != nil {
			return err
		}
		return seedAdmin(tx, cfg, lg)
	})
}

func seedAdmin(tx *gorm.DB, cfg config.Config, lg *zap.SugaredLogger) error {
	var count int64
	if err := tx.Model(&models.User{}).Where("email = ?", cfg.AdminEmail).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	pw := cfg.AdminPassword
	generated := pw == ""
	if generated {
		pw = auth.RandomPassword()
	}
	hash, err := auth.HashPassword(pw)
	if err != nil {
		return err
	}
	var admin models.Role
	if err := tx.First(&admin, "name = ?", auth.RoleAdmin).Error; err != nil {
		return err
	}
	u := models.User{Email: cfg.AdminEmail, PasswordHash: hash, IsActive: true, Roles: []models.Role{admin}}
	if err := tx.Create(&u).Error; err != nil {
		return err
	}
	if generated {
		lg.Warnw("seeded default admin with a generated password; change it", "email", u.Email, "password", pw)
	} else {
		lg.Infow("seeded default admin", "email", u.Email)
	}
	return nil
}
