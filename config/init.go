package config

import (
	"context"
	"fmt"

	"luxestay/middleware"
	"luxestay/repository"
	"luxestay/services/logger"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
)

var devOrigins = []string{"http://localhost:5173", "http://localhost:5174"}

// Components là các kết nối hạ tầng dùng chung
type Components struct {
	Store      *repository.Store
	Redis      *redis.Client
	Cloudinary *cloudinary.Cloudinary
	closers    []func()
}

// Close đóng các kết nối theo thứ tự ngược
func (c *Components) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

// InitComponents mở store theo STORE cùng Redis và Cloudinary nếu có cấu hình
func InitComponents(ctx context.Context, cfg *Config, log logger.Logger) (*Components, error) {
	comps := &Components{}

	switch cfg.Store {
	case StorePostgres:
		db, err := ConnectDB(cfg.DB, log)
		if err != nil {
			return nil, err
		}
		if sqlDB, err := db.DB(); err == nil {
			comps.closers = append(comps.closers, func() { _ = sqlDB.Close() })
		}
		comps.Store = repository.NewGormStore(db)
	case StoreMongo:
		client, db, err := ConnectMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		comps.closers = append(comps.closers, func() { _ = client.Disconnect(context.Background()) })
		store, err := repository.NewMongoStore(ctx, db)
		if err != nil {
			comps.Close()
			return nil, fmt.Errorf("failed to prepare mongo store: %w", err)
		}
		comps.Store = store
		log.Info("Successfully connected to mongo database %s", cfg.Mongo.Database)
	case StoreMemory:
		log.Info("Using in-memory store, data is lost on restart")
		comps.Store = repository.NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown STORE %q", cfg.Store)
	}

	rdb, err := ConnectRedis(cfg.Redis)
	if err != nil {
		comps.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	if rdb != nil {
		comps.Redis = rdb
		comps.closers = append(comps.closers, func() { _ = rdb.Close() })
		log.Info("Successfully connected to redis %s", cfg.Redis.Addr)
	}

	cld, err := ConnectCloudinary(cfg.Cloudinary)
	if err != nil {
		comps.Close()
		return nil, fmt.Errorf("failed to init cloudinary: %w", err)
	}
	comps.Cloudinary = cld

	log.Info("All components initialized successfully")
	return comps, nil
}

// InitApp tạo gin engine với cors và các middleware chung
func InitApp(cfg *Config) (*gin.Engine, *melody.Melody) {
	if cfg.Env == "prod" || cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	origins := append([]string{cfg.ClientURL}, devOrigins...)
	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization", middleware.RequestIDHeader)
	configCors.AllowCredentials = true
	configCors.AllowOrigins = origins
	router.Use(cors.New(configCors))

	router.SetTrustedProxies(nil)

	router.Use(
		middleware.RequestIDMiddleware(),
		middleware.TimeoutMiddleware(cfg.RequestTimeout),
		middleware.ErrorHandler(),
	)
	return router, melody.New()
}

func InitWebSocket(router *gin.Engine, m *melody.Melody, log logger.Logger) {
	router.GET("/ws", func(c *gin.Context) {
		m.HandleRequest(c.Writer, c.Request)
	})
	log.Info("WebSocket initialized successfully")
}
