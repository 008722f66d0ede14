package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nekogravitycat/meeting-room-backend/internal/audit"
	auditHttp "github.com/nekogravitycat/meeting-room-backend/internal/audit/http"
	"github.com/nekogravitycat/meeting-room-backend/internal/auth"
	"github.com/nekogravitycat/meeting-room-backend/internal/company"
	companyHttp "github.com/nekogravitycat/meeting-room-backend/internal/company/http"
	"github.com/nekogravitycat/meeting-room-backend/internal/file"
	fileHttp "github.com/nekogravitycat/meeting-room-backend/internal/file/http"
	"github.com/nekogravitycat/meeting-room-backend/internal/notification"
	notificationHttp "github.com/nekogravitycat/meeting-room-backend/internal/notification/http"
	"github.com/nekogravitycat/meeting-room-backend/internal/reservation"
	reservationHttp "github.com/nekogravitycat/meeting-room-backend/internal/reservation/http"
	"github.com/nekogravitycat/meeting-room-backend/internal/room"
	roomHttp "github.com/nekogravitycat/meeting-room-backend/internal/room/http"
	"github.com/nekogravitycat/meeting-room-backend/internal/user"
	userHttp "github.com/nekogravitycat/meeting-room-backend/internal/user/http"
)

// Config holds everything the router needs to assemble the HTTP surface.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	UserService         user.Service
	CompanyService      company.Service
	RoomService         room.Service
	ReservationService  reservation.Service
	NotificationService notification.Service
	FileService         file.Service
	AuditService        audit.Service

	JWTManager *auth.JWTManager
}

// NewRouter assembles middleware (logging, metrics, CORS, auth) and registers
// routes for every module under /v1.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(RequestLogger(), gin.Recovery(), TrackMetrics())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authMiddleware := auth.AuthRequired(cfg.JWTManager)

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager, cfg.AuditService)
	companyHandler := companyHttp.NewHandler(cfg.CompanyService)
	roomHandler := roomHttp.NewHandler(cfg.RoomService)
	reservationHandler := reservationHttp.NewHandler(cfg.ReservationService)
	notificationHandler := notificationHttp.NewHandler(cfg.NotificationService)
	fileHandler := fileHttp.NewHandler(cfg.FileService, cfg.RoomService)
	auditHandler := auditHttp.NewHandler(cfg.AuditService)

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware)
		companyHttp.RegisterRoutes(v1, companyHandler, authMiddleware)
		roomHttp.RegisterRoutes(v1, roomHandler, authMiddleware)
		reservationHttp.RegisterRoutes(v1, reservationHandler, authMiddleware)
		notificationHttp.RegisterRoutes(v1, notificationHandler, authMiddleware)
		fileHttp.RegisterRoutes(v1, fileHandler, authMiddleware)
		auditHttp.RegisterRoutes(v1, auditHandler, authMiddleware)
	}

	return r
}
