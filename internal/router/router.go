package router

import (
	"database/sql"
	"net/http"
	"os"

	"pet-adoption-api/internal/adapters/auth/jwtauth"
	mem "pet-adoption-api/internal/adapters/storage/memory"
	pg "pet-adoption-api/internal/adapters/storage/postgres"
	"pet-adoption-api/internal/domain/admin"
	"pet-adoption-api/internal/domain/applications"
	"pet-adoption-api/internal/domain/favorites"
	"pet-adoption-api/internal/domain/pets"
	"pet-adoption-api/internal/domain/uploads"
	"pet-adoption-api/internal/domain/users"
	"pet-adoption-api/internal/middleware"
	"pet-adoption-api/internal/ports/auth"
	"pet-adoption-api/internal/ports/objectstore"

	_ "pet-adoption-api/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// TokenIssuer firma los tokens de login/registro.
	TokenIssuer users.TokenIssuer

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: storage de imágenes. Si es nil, /uploads responde 503.
	Store objectstore.ObjectStore

	// Efecto sobre el pet al aprobar una candidatura.
	ApprovalPolicy applications.ApprovalPolicy

	// Logger para el access log. Si es nil no se loguean requests.
	Logger *zap.Logger
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if opts.Logger != nil {
		r.Use(middleware.RequestLogger(opts.Logger))
	}

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/docs/*", httpSwagger.WrapHandler)

	var (
		userRepo users.Repository
		petRepo  pets.Repository
		appRepo  applications.Repository
		favRepo  favorites.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	if db != nil {
		userRepo = pg.NewUsersRepo(db)
		petRepo = pg.NewPetsRepo(db)
		appRepo = pg.NewApplicationsRepo(db)
		favRepo = pg.NewFavoritesRepo(db)
	} else {
		userRepo = mem.NewUserRepo()
		petRepo = mem.NewPetRepo()
		appRepo = mem.NewApplicationRepo()
		favRepo = mem.NewFavoriteRepo()
	}

	// Sin issuer explícito, firma con un secreto de dev (junto al
	// verifier nil: tokens que solo sirven contra esta misma instancia).
	issuer := opts.TokenIssuer
	if issuer == nil {
		issuer = jwtauth.New([]byte("dev-secret"), jwtauth.DefaultTTL)
	}

	// Services por módulo
	usersSvc := users.NewService(userRepo, issuer)
	petsSvc := pets.NewService(petRepo)
	appsSvc := applications.NewService(appRepo, applications.NewPetGate(petsSvc), opts.ApprovalPolicy)
	favsSvc := favorites.NewService(favRepo, favorites.NewPetChecker(petsSvc))
	adminSvc := admin.NewService(usersSvc, petsSvc)
	uploadsSvc := uploads.NewService(opts.Store)

	// Rutas por módulo
	users.RegisterRoutes(r, usersSvc, petsSvc, appsSvc)
	pets.RegisterRoutes(r, petsSvc)
	applications.RegisterRoutes(r, appsSvc)
	favorites.RegisterRoutes(r, favsSvc, petsSvc)
	admin.RegisterRoutes(r, adminSvc)
	uploads.RegisterRoutes(r, uploadsSvc)

	return r
}
