package bootstrap

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/rms-demo/rms-backend/config"
	httpapi "github.com/rms-demo/rms-backend/internal/api/http"
	"github.com/rms-demo/rms-backend/internal/api/http/middleware"
	authmw "github.com/rms-demo/rms-backend/internal/auth/middleware"
	"github.com/rms-demo/rms-backend/internal/geocode"
	"github.com/rms-demo/rms-backend/internal/records/cache"
	recordshttp "github.com/rms-demo/rms-backend/internal/records/http"
	"github.com/rms-demo/rms-backend/internal/records/repository"
)

type RouterDeps struct {
	ServiceName string
	Cfg         *config.Config
	DB          *pgxpool.Pool
	Redis       *redis.Client
	Verifier    *authmw.Verifier
}

func SetGinMode(env string) {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
}

// BuildRouter wires the HTTP surface: health, CORS for the frontend
// origin, request IDs, and the records API with its store, cache and
// geocode collaborators.
func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{dep.Cfg.CORS.FrontendOrigin},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Cfg.App.Version, dep.DB)
	healthHandler.RegisterRoutes(r)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"name": dep.ServiceName, "health": "/health"})
	})

	repo := repository.NewRepo(dep.DB)
	listCache := cache.NewListCache(dep.Redis)
	geocoder := geocode.NewClient(dep.Cfg.Geocode)

	api := r.Group("/api")
	api.Use(dep.Verifier.RequireAuth())

	recordsHandler := recordshttp.New(repo, listCache, geocoder)
	recordshttp.Register(api.Group("/records"), recordsHandler)

	return r
}
