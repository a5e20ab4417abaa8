package main

import (
	"context"
	"flag"
	"log"
	"time"
	_ "time/tzdata"

	"github.com/brianvoe/gofakeit/v7"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/catalog"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/memstore"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

var seeder = auth.Identity{Username: "seed", Name: "Seed", Role: auth.RoleManager}

func main() {
	count := flag.Int("count", 50, "booking attempts")
	days := flag.Int("days", 14, "spread bookings over this many days starting today")
	seed := flag.Uint64("seed", 0, "random seed, 0 picks one")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	zl, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	services := catalog.Default()
	if cfg.CatalogFile != "" {
		if services, err = catalog.Load(cfg.CatalogFile); err != nil {
			zl.Fatal("catalog", zap.Error(err))
		}
	}

	var dir *auth.Directory
	if cfg.StaffFile != "" {
		dir, err = auth.LoadDirectory(cfg.StaffFile)
	} else {
		dir, err = auth.DemoDirectory("seed", bcrypt.MinCost)
	}
	if err != nil {
		zl.Fatal("staff directory", zap.Error(err))
	}

	var (
		store domain.Store
		sink  audit.Sink = audit.NewZapSink(zl)
	)
	if cfg.StoreDriver == config.DriverMemory {
		store = memstore.New()
	} else {
		db, err := dbpkg.NewDB(cfg)
		if err != nil {
			zl.Fatal("database", zap.Error(err))
		}
		store = repository.NewAppointmentGormRepository(db)
		sink = audit.New(db)
	}

	dispatcher := audit.NewDispatcher(sink, zl)
	book := ucAppointment.NewBookAppointment(
		ucAppointment.NewSchedule(store, nil),
		services,
		dir,
		dispatcher,
		timezone.Clock(cfg.Timezone),
	)

	faker := gofakeit.New(*seed)
	created, skipped := 0, 0

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	employees := dir.Employees()
	defs := services.List()
	hours := cfg.BusinessHours()
	today := timezone.NowIn(cfg.Timezone)

	for i := 0; i < *count; i++ {
		def := defs[faker.Number(0, len(defs)-1)]
		latest := hours.Close - def.DurationMin
		if latest < hours.Open {
			skipped++
			continue
		}
		slots := (latest-hours.Open)/hours.Step + 1
		start := hours.Open + faker.Number(0, slots-1)*hours.Step

		_, err := book.Execute(ctx, seeder, ucAppointment.BookAppointmentInput{
			CustomerName:  faker.Name(),
			CustomerPhone: faker.Phone(),
			ServiceType:   def.Name,
			EmployeeName:  employees[faker.Number(0, len(employees)-1)],
			Date:          today.AddDate(0, 0, faker.Number(0, *days-1)).Format(domain.DateLayout),
			Time:          domain.FormatClock(start),
		})
		switch {
		case err == nil:
			created++
		case domain.IsKind(err, domain.KindConflict):
			skipped++
		default:
			zl.Fatal("book", zap.Error(err))
		}
	}

	if err := dispatcher.Close(ctx); err != nil {
		zl.Warn("audit drain", zap.Error(err))
	}
	zl.Info("seed complete",
		zap.String("store", cfg.StoreDriver),
		zap.Int("created", created),
		zap.Int("skipped_conflicts", skipped),
	)
}
