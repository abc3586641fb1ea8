package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tessera-ecs/tessera/internal/config"
	"github.com/tessera-ecs/tessera/internal/core/ecs"
	"github.com/tessera-ecs/tessera/internal/core/event"
	coresys "github.com/tessera-ecs/tessera/internal/core/system"
	"github.com/tessera-ecs/tessera/internal/data"
	"github.com/tessera-ecs/tessera/internal/scripting"
	"github.com/tessera-ecs/tessera/internal/system"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := "config/server.toml"
	if p := os.Getenv("TESSERA_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	table, err := data.LoadSpawnTable(cfg.Data.SpawnTable)
	if err != nil {
		return fmt.Errorf("load spawn table: %w", err)
	}

	engine, err := scripting.NewEngine(cfg.Data.SpawnPolicy, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer engine.Close()

	world := ecs.NewWorld()
	seeded, err := seedWorld(world, table)
	if err != nil {
		return fmt.Errorf("seed world: %w", err)
	}
	log.Info("world seeded",
		zap.Int("entities", seeded),
		zap.Int("bundles", world.Bundles().Len()),
		zap.Int("archetypes", world.Archetypes().Len()),
	)

	bus := event.NewBus()
	event.Subscribe(bus, func(ev event.Expired) {
		log.Debug("entity expired", zap.Uint64("entity", uint64(ev.EntityID)), zap.Uint64("age", ev.Age))
	})
	event.Subscribe(bus, func(ev event.Spawned) {
		log.Debug("entity spawned", zap.String("bundle", ev.Bundle))
	})

	runner := coresys.NewRunner(world, log, cfg.Schedule.Workers)
	runner.Register(system.NewSpawner(engine, table, 256, bus, log))
	runner.Register(system.NewMovement())
	runner.Register(system.NewDecay(bus))
	runner.Register(system.NewBounds(512))
	runner.Register(system.NewMonitor(log))

	log.Info("server started",
		zap.String("name", cfg.Server.Name),
		zap.Duration("tick_rate", cfg.Schedule.TickRate),
		zap.Int("workers", cfg.Schedule.Workers),
	)

	ticker := time.NewTicker(cfg.Schedule.TickRate)
	defer ticker.Stop()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-ticker.C:
			bus.Swap()
			bus.Dispatch()
			runner.Tick()
		case s := <-sig:
			log.Info("shutting down", zap.String("signal", s.String()))
			return nil
		}
	}
}

// seedWorld registers the table's bundles and spawns the initial entities.
func seedWorld(w *ecs.World, table *data.SpawnTable) (int, error) {
	for _, def := range table.Bundles() {
		ids := make([]ecs.ComponentID, 0, len(def.Components))
		for _, name := range def.Components {
			comps, err := system.BuildComponents(data.BundleDef{Name: def.Name, Components: []string{name}}, data.SpawnEntry{})
			if err != nil {
				return 0, err
			}
			ids = append(ids, w.ComponentIDOf(comps[0]))
		}
		w.Bundles().Register(def.Name, ids)
	}
	seeded := 0
	for _, entry := range table.Spawns() {
		def, _ := table.Bundle(entry.Bundle)
		for i := 0; i < entry.Count; i++ {
			comps, err := system.BuildComponents(def, entry)
			if err != nil {
				return 0, err
			}
			w.Spawn(comps...)
			seeded++
		}
	}
	return seeded, nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}
