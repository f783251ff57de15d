package main

import (
	"fmt"

	"eatmove/configs"
	"eatmove/pkg/cache"
	"eatmove/pkg/events"
	"eatmove/repository"
	"eatmove/routes"
	"eatmove/ws"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := configs.LoadConfig()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// DB
	if err := configs.ConnectionDB(cfg); err != nil {
		logrus.WithError(err).Fatal("database connection failed")
	}
	db := configs.DB()

	if err := configs.SeedDemo(cfg); err != nil {
		logrus.WithError(err).Fatal("seed failed")
	}

	// Catalog cache; nil-safe when REDIS_ADDR is unset
	var store *cache.Cache
	if cfg.RedisAddr != "" {
		store = cache.New(cfg.RedisAddr, cfg.CacheTTL)
		logrus.WithField("addr", cfg.RedisAddr).Info("catalog cache enabled")
	}

	// Order/rating event stream
	var pub events.Publisher = events.NopPublisher{}
	if cfg.KafkaBroker != "" {
		kp := events.NewKafkaPublisher(cfg.KafkaBroker, cfg.KafkaTopic)
		defer kp.Close()
		pub = kp
		logrus.WithFields(logrus.Fields{"broker": cfg.KafkaBroker, "topic": cfg.KafkaTopic}).Info("event publisher enabled")
	}

	// Live order tracking over websockets
	hub := ws.NewTrackHub(repository.NewOrderRepository(db))
	go hub.Run()

	// HTTP
	r := gin.Default()
	routes.RegisterRoutes(r, db, cfg, store, pub, hub)

	addr := fmt.Sprintf(":%s", cfg.Port)
	logrus.Info("server running at ", addr)
	if err := r.Run(addr); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
