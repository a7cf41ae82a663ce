package main

import (
	"net"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/plumecms/plume/config"
	"github.com/plumecms/plume/models"
	"github.com/plumecms/plume/repositories"
	"github.com/plumecms/plume/routes"
	"github.com/plumecms/plume/session"
	"github.com/plumecms/plume/utils"
)

func main() {
	cfg := config.Load()

	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(&models.User{}, &models.Post{}, &models.Comment{})

	rdb := session.DialRedis(net.JoinHostPort(cfg.RedisHost, strconv.Itoa(cfg.RedisPort)), cfg.RedisPassword, cfg.RedisDB)
	if rdb == nil {
		utils.Sugar.Warn("redis unreachable, sessions are kept in process memory")
	}
	store := session.NewStore(rdb, time.Duration(cfg.SessionTTLHours)*time.Hour)

	ensureAdmin(db, cfg)

	r := routes.SetupRouter(cfg, db, store)

	utils.Sugar.Infof("starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}

// ensureAdmin creates the configured administrator account when it does
// not exist yet. Without configuration the users table is left untouched.
func ensureAdmin(db *gorm.DB, cfg config.AppConfig) {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return
	}

	users := repositories.NewUserRepository(db)
	if _, err := users.GetByUsername(cfg.AdminUsername); err == nil {
		return
	} else if err != gorm.ErrRecordNotFound {
		utils.Sugar.Warnf("admin lookup failed: %v", err)
		return
	}

	hash, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		utils.Sugar.Errorf("hash admin password: %v", err)
		return
	}
	if err := users.Add(&models.User{Username: cfg.AdminUsername, PasswordHash: hash}); err != nil {
		utils.Sugar.Errorf("create admin user: %v", err)
		return
	}
	utils.Sugar.Infof("created admin user %q", cfg.AdminUsername)
}
