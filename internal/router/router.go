package router

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	_ "pet-boarding/docs"
	rediscache "pet-boarding/internal/adapters/cache/redis"
	mem "pet-boarding/internal/adapters/storage/memory"
	pg "pet-boarding/internal/adapters/storage/postgres"
	"pet-boarding/internal/domain/history"
	"pet-boarding/internal/domain/pets"
	"pet-boarding/internal/domain/reservations"
	"pet-boarding/internal/middleware"
	"pet-boarding/internal/platform/config"
	"pet-boarding/internal/platform/logger"
	"pet-boarding/internal/ports/auth"
	"pet-boarding/internal/ports/notify"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	goredis "github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"
)

var defaultPetTypes = []string{"Dog", "Cat"}

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Logger     logger.Logger
	AdminRoles []string

	// Opcional: cache del vocabulario de estados.
	Redis    *goredis.Client
	RedisTTL time.Duration

	Publisher notify.Publisher

	// Crea los estados y tipos de mascota por defecto que falten.
	SeedStatuses bool

	// Reloj y zona para "hoy"; nil = time.Now / hora local.
	Now      func() time.Time
	Location *time.Location
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	adminRoles := opts.AdminRoles
	if len(adminRoles) == 0 {
		adminRoles = config.Default().Auth.AdminRoles
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var (
		petRepo     pets.Repository
		typeRepo    pets.TypeRepository
		statusRepo  reservations.StatusRepository
		resRepo     reservations.Repository
		historyRepo history.Repository
	)

	if opts.DB != nil {
		petRepo = pg.NewPetsRepo(opts.DB)
		typeRepo = pg.NewPetTypesRepo(opts.DB)
		statusRepo = pg.NewStatusesRepo(opts.DB)
		resRepo = pg.NewReservationsRepo(opts.DB)
		historyRepo = pg.NewHistoryRepo(opts.DB)
	} else {
		petRepo = mem.NewPetRepo()
		typeRepo = mem.NewPetTypeRepo()
		statusRepo = mem.NewStatusRepo()
		resRepo = mem.NewReservationRepo(petRepo, statusRepo)
		historyRepo = mem.NewHistoryRepo()
	}

	if opts.Redis != nil {
		statusRepo = rediscache.NewStatusCache(statusRepo, opts.Redis, opts.RedisTTL, log)
	}

	// Services por módulo
	petsSvc := pets.NewService(petRepo, typeRepo)
	historySvc := history.NewService(historyRepo)
	resSvc := reservations.NewService(resRepo, statusRepo, petsSvc,
		reservations.WithLogger(log),
		reservations.WithHistory(historySvc),
		reservations.WithPublisher(opts.Publisher),
		reservations.WithClock(opts.Now),
		reservations.WithLocation(opts.Location),
	)

	bootstrap(opts.SeedStatuses, petsSvc, resSvc, log)

	// Rutas por módulo
	pets.RegisterRoutes(r, petsSvc, middleware.RequireAdmin(adminRoles))
	reservations.RegisterRoutes(r, resSvc, adminRoles)

	return r
}

// bootstrap siembra datos base y resuelve los estados conocidos.
// Un faltante no impide arrancar: las operaciones que lo necesiten devuelven error de configuración.
func bootstrap(seed bool, petsSvc *pets.Service, resSvc *reservations.Service, log logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if !seed {
		if err := resSvc.ResolveWellKnown(ctx); err != nil {
			log.Error("well-known statuses not resolved at startup", map[string]any{"error": err})
		}
		return
	}

	if err := petsSvc.SeedTypes(ctx, defaultPetTypes...); err != nil {
		log.Error("seed pet types failed", map[string]any{"error": err})
	}
	if err := resSvc.SeedStatuses(ctx, reservations.DefaultStatuses...); err != nil {
		log.Error("seed reservation statuses failed", map[string]any{"error": err})
	}
}
