package internal

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"assetflow-api/internal/auth"
	"assetflow-api/internal/config"
	"assetflow-api/internal/handlers"
	"assetflow-api/internal/realtime"

	"github.com/go-chi/chi/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
)

type Server struct {
	DB         *sql.DB
	Router     *chi.Mux
	JWTManager *auth.JWTManager
	Metrics    *Metrics
	Hub        *realtime.Hub
}

func NewServer(dsn string, cfg *config.Config) *Server {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatal("Failed to open database connection:", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal("Database ping failed:", err)
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTExpiry)

	// Validate JWT configuration
	if err := jwtManager.ValidateConfig(); err != nil {
		log.Fatal("JWT configuration validation failed:", err)
	}

	// Initialize metrics
	metrics := NewMetrics()

	s := &Server{
		DB:         db,
		Router:     chi.NewRouter(),
		JWTManager: jwtManager,
		Metrics:    metrics,
		Hub:        realtime.NewHub(),
	}
	go s.Hub.Run()

	// Metrics middleware must be registered before any routes
	if os.Getenv("ENABLE_METRICS") == "true" {
		s.Router.Use(s.Metrics.Middleware())
		s.Router.Get("/metrics", s.Metrics.Handler().ServeHTTP)
	}

	// Mount public routes FIRST (no middleware)
	s.Router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		if _, err := w.Write([]byte("ok")); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
	s.Router.Get("/dbping", func(w http.ResponseWriter, r *http.Request) {
		if err := s.DB.PingContext(r.Context()); err != nil {
			http.Error(w, "db: "+err.Error(), http.StatusServiceUnavailable)
			return
		}
		if _, err := w.Write([]byte("db: ok")); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	// Public auth routes (no JWT required)
	s.Router.Post("/auth/login", s.loginUser)

	// Browsers cannot attach Authorization headers to a WebSocket upgrade,
	// so the realtime endpoint is mounted outside the auth group.
	s.Router.Get("/ws", s.Hub.ServeWS)

	// Create a protected route group with middleware
	s.Router.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware(s.JWTManager))
		s.mountProtectedRoutes(r)
	})

	return s
}

// Close properly shuts down the server and cleans up resources
func (s *Server) Close(ctx context.Context) error {
	s.Hub.Close()
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}

// mountProtectedRoutes mounts all protected routes that require authentication
func (s *Server) mountProtectedRoutes(r chi.Router) {
	// Assets - writes require manager or admin, deletes admin only
	r.Get("/assets", s.listAssets)
	r.Get("/assets/stats/summary", s.assetStats)
	r.Get("/assets/export", s.exportAssets)
	r.Get("/assets/{id}", s.getAsset)
	r.Post("/assets", auth.MustRole("admin", "manager")(http.HandlerFunc(s.createAsset)).(http.HandlerFunc))
	r.Put("/assets/{id}", auth.MustRole("admin", "manager")(http.HandlerFunc(s.updateAsset)).(http.HandlerFunc))
	r.Delete("/assets/{id}", auth.MustRole("admin")(http.HandlerFunc(s.deleteAsset)).(http.HandlerFunc))
	r.Post("/assets/bulk", auth.MustRole("admin", "manager")(http.HandlerFunc(s.bulkAssets)).(http.HandlerFunc))

	// CSV import
	imports := handlers.NewImportsHandler(s)
	r.Get("/imports/templates/{type}", imports.DownloadTemplate)
	r.Post("/imports/csv", auth.MustRole("admin", "manager")(http.HandlerFunc(imports.ImportCSV)).(http.HandlerFunc))

	// Master data
	r.Get("/master-data", s.getMasterData)
	r.Get("/master-data/generate-asset-code/{category}", s.generateAssetCode)

	r.Get("/master-data/departments", s.listDepartments)
	r.Post("/master-data/departments", auth.MustRole("admin", "manager")(http.HandlerFunc(s.createDepartment)).(http.HandlerFunc))
	r.Put("/master-data/departments/{id}", auth.MustRole("admin", "manager")(http.HandlerFunc(s.updateDepartment)).(http.HandlerFunc))
	r.Delete("/master-data/departments/{id}", auth.MustRole("admin")(http.HandlerFunc(s.deleteDepartment)).(http.HandlerFunc))

	r.Get("/master-data/locations", s.listLocations)
	r.Post("/master-data/locations", auth.MustRole("admin", "manager")(http.HandlerFunc(s.createLocation)).(http.HandlerFunc))
	r.Put("/master-data/locations/{id}", auth.MustRole("admin", "manager")(http.HandlerFunc(s.updateLocation)).(http.HandlerFunc))
	r.Delete("/master-data/locations/{id}", auth.MustRole("admin")(http.HandlerFunc(s.deleteLocation)).(http.HandlerFunc))

	r.Get("/master-data/manufacturers", s.listManufacturers)
	r.Post("/master-data/manufacturers", auth.MustRole("admin", "manager")(http.HandlerFunc(s.createManufacturer)).(http.HandlerFunc))
	r.Put("/master-data/manufacturers/{id}", auth.MustRole("admin", "manager")(http.HandlerFunc(s.updateManufacturer)).(http.HandlerFunc))
	r.Delete("/master-data/manufacturers/{id}", auth.MustRole("admin")(http.HandlerFunc(s.deleteManufacturer)).(http.HandlerFunc))

	r.Get("/master-data/categories", s.listCategories)
	r.Post("/master-data/categories", auth.MustRole("admin", "manager")(http.HandlerFunc(s.createCategory)).(http.HandlerFunc))
	r.Put("/master-data/categories/{id}", auth.MustRole("admin", "manager")(http.HandlerFunc(s.updateCategory)).(http.HandlerFunc))
	r.Delete("/master-data/categories/{id}", auth.MustRole("admin")(http.HandlerFunc(s.deleteCategory)).(http.HandlerFunc))

	// Maintenance records
	r.Get("/maintenance", s.listMaintenance)
	r.Get("/maintenance/{id}", s.getMaintenance)
	r.Post("/maintenance", auth.MustRole("admin", "manager")(http.HandlerFunc(s.createMaintenance)).(http.HandlerFunc))
	r.Put("/maintenance/{id}", auth.MustRole("admin", "manager")(http.HandlerFunc(s.updateMaintenance)).(http.HandlerFunc))
	r.Delete("/maintenance/{id}", auth.MustRole("admin")(http.HandlerFunc(s.deleteMaintenance)).(http.HandlerFunc))

	// System access requests
	r.Get("/access-requests", s.listAccessRequests)
	r.Get("/access-requests/{id}", s.getAccessRequest)
	r.Post("/access-requests", s.createAccessRequest)
	r.Put("/access-requests/{id}/status", auth.MustRole("admin", "manager")(http.HandlerFunc(s.updateAccessRequestStatus)).(http.HandlerFunc))
	r.Delete("/access-requests/{id}", auth.MustRole("admin")(http.HandlerFunc(s.deleteAccessRequest)).(http.HandlerFunc))

	// User management - admin only
	r.Get("/users", auth.MustRole("admin")(http.HandlerFunc(s.listUsers)).(http.HandlerFunc))
	r.Get("/users/{id}", auth.MustRole("admin")(http.HandlerFunc(s.getUser)).(http.HandlerFunc))
	r.Post("/users", auth.MustRole("admin")(http.HandlerFunc(s.createUser)).(http.HandlerFunc))
	r.Put("/users/{id}", auth.MustRole("admin")(http.HandlerFunc(s.updateUser)).(http.HandlerFunc))
	r.Delete("/users/{id}", auth.MustRole("admin")(http.HandlerFunc(s.deleteUser)).(http.HandlerFunc))

	// Self-service profile
	r.Get("/auth/profile", s.getUserProfile)
	r.Put("/auth/profile", s.updateUserProfile)
	r.Put("/auth/change-password", s.changePassword)
}
