package httpserver

import (
	"net/http"

	"trustaes/internal/auth"
	"trustaes/internal/httpserver/handlers"
	"trustaes/internal/services/vector"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Options struct {
	Signer         *auth.Signer
	Sessions       auth.Sessions
	MaxUploadBytes int64
}

func NewRouter(db *gorm.DB, opt Options, lg *zap.SugaredLogger) http.Handler {
	if opt.Sessions == nil {
		opt.Sessions = auth.DBSessions{DB: db}
	}
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, middleware.Logger)
	r.Post("/v1/auth/login", handlers.Login(db, opt.Signer, lg))
	r.Group(func(protected chi.Router) {
		protected.Use(auth.JWTAuth(opt.Signer, opt.Sessions))
		protected.Get("/v1/me", handlers.Me(db, lg))
		protected.Post("/v1/auth/logout", handlers.Logout(db, lg))
		protected.Group(func(admin chi.Router) {
			admin.Use(auth.RequireRole(auth.RoleAdmin))
			admin.Get("/v1/admin/users", handlers.ListUsers(db, lg))
			admin.Post("/v1/admin/users", handlers.CreateUser(db, lg))
			admin.Patch("/v1/admin/users/{id}", handlers.UpdateUser(db, lg))
			admin.Delete("/v1/admin/users/{id}", handlers.DeleteUser(db, lg))
		})
		protected.Get("/v1/algorithms", handlers.ListAlgorithms(db, lg))
		protected.Post("/v1/clients", handlers.CreateClient(db, lg))
		protected.Get("/v1/clients", handlers.ListClients(db, lg))
		protected.Delete("/v1/clients/{id}", handlers.DeleteClient(db, lg))
		protected.Post("/v1/clients/{client_id}/vectors", handlers.GenerateVectors(db, lg))
		protected.Post("/v1/clients/{client_id}/vectors/validate", handlers.ValidateVectors(db, lg, opt.MaxUploadBytes))
		protected.Post("/v1/aes/encrypt", handlers.AESCrypt(db, lg, vector.Encrypt))
		protected.Post("/v1/aes/decrypt", handlers.AESCrypt(db, lg, vector.Decrypt))
		protected.Post("/v1/aes/ctr-vector", handlers.CTRVector(db, lg))
		protected.Get("/v1/selftest", handlers.SelfTest(db, lg))
		protected.Get("/v1/logs", handlers.MyLogs(db, lg))
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	return r
}
