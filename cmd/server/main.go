// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gillessed/palantarot-sub001/internal/cache"
	"github.com/gillessed/palantarot-sub001/internal/config"
	"github.com/gillessed/palantarot-sub001/internal/database"
	"github.com/gillessed/palantarot-sub001/internal/server"
)

func main() {
	config.Load()
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if dsn := config.PostgresDSN(); dsn != "" {
		if err := database.Connect(ctx); err != nil {
			logrus.WithError(err).Fatal("postgres connection failed")
		}
	} else {
		logrus.Info("no postgres DSN configured, persistence disabled")
	}

	if addr := config.RedisAddr(); addr != "" {
		if err := cache.Init(ctx); err != nil {
			logrus.WithError(err).Fatal("redis connection failed")
		}
	} else {
		logrus.Info("no redis address configured, history stream disabled")
	}

	srv := server.New()
	addr := config.Addr()
	logrus.WithField("addr", addr).Info("listening")
	if err := http.ListenAndServe(addr, srv.Routes()); err != nil {
		logrus.WithError(err).Fatal("server exited")
	}
}
