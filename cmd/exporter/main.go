package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/athebyme/googleshopping-feed/config"
	"github.com/athebyme/googleshopping-feed/internal/adapters/cache"
	"github.com/athebyme/googleshopping-feed/internal/adapters/helper"
	"github.com/athebyme/googleshopping-feed/internal/adapters/logger"
	"github.com/athebyme/googleshopping-feed/internal/adapters/messaging"
	postgres "github.com/athebyme/googleshopping-feed/internal/adapters/storage"
	"github.com/athebyme/googleshopping-feed/internal/domain/models"
	"github.com/athebyme/googleshopping-feed/internal/domain/services"
	"github.com/athebyme/googleshopping-feed/internal/utils"
	"github.com/athebyme/googleshopping-feed/pkg/interfaces"
	"github.com/urfave/cli/v2"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	app := &cli.App{
		Name:    "exporter",
		Usage:   "Генерация фида Google Shopping из каталога товаров",
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Имя файла конфигурации без расширения",
				EnvVars: []string{"EXPORTER_CONFIG"},
			},
		},

		Commands: []*cli.Command{
			runCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Выполнить один запуск экспорта фида",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "lang",
				Usage: "Язык экспорта (переопределяет конфигурацию)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Имя выходного файла фида",
			},
			&cli.StringSliceFlag{
				Name:  "set",
				Usage: "Переопределение настройки запуска в формате key=value",
			},
			&cli.BoolFlag{
				Name:  "only-in-stock",
				Usage: "Экспортировать только варианты с положительным остатком",
			},
			&cli.IntFlag{
				Name:  "min-stock",
				Usage: "Минимальный остаток варианта для экспорта",
			},
			&cli.Int64Flag{
				Name:  "category-id",
				Usage: "Экспортировать только варианты указанной категории",
			},
			&cli.Int64Flag{
				Name:  "supplier-id",
				Usage: "Экспортировать только варианты указанного поставщика",
			},
			&cli.BoolFlag{
				Name:  "no-kafka",
				Usage: "Не публиковать событие о результате запуска",
			},
		},
		Action: runExport,
	}
}

func runExport(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log, err := logger.NewZapLogger(cfg.LogLevel, cfg.ENV == "production")
	if err != nil {
		return fmt.Errorf("ошибка инициализации логгера: %w", err)
	}
	defer log.Sync()

	postgresCon, err := utils.GenerateConnectionString(
		cfg.Postgres.Host,
		cfg.Postgres.User,
		cfg.Postgres.Password,
		cfg.Postgres.DBName,
		cfg.Postgres.SSLMode,
		cfg.Postgres.Port,
		cfg.Postgres.PoolSize,
		cfg.Postgres.Timeout,
	)
	if err != nil {
		return fmt.Errorf("ошибка инициализации строки подключения базы: %w", err)
	}

	db, err := postgres.NewPostgresStorage(ctx, postgresCon)
	if err != nil {
		return fmt.Errorf("ошибка инициализации хранилища: %w", err)
	}
	defer db.Close()

	var cacheClient interfaces.CachePort
	if cfg.Redis.Enabled {
		cacheClient, err = cache.NewRedisCache(
			ctx,
			cfg.Redis.Host,
			cfg.Redis.Port,
			cfg.Redis.Password,
			cfg.Redis.DB,
		)
		if err != nil {
			log.Warn("Redis недоступен, используется только локальный кэш",
				interfaces.LogField{Key: "error", Value: err.Error()})
			cacheClient = nil
		} else {
			defer cacheClient.Close()
		}
	}

	var messagingClient interfaces.MessagingPort
	if cfg.Kafka.Enabled && !c.Bool("no-kafka") {
		messagingClient, err = messaging.NewKafkaMessaging(cfg.Kafka.Brokers)
		if err != nil {
			return fmt.Errorf("ошибка инициализации системы обмена сообщениями: %w", err)
		}
		defer messagingClient.Close()
	}

	if err := os.MkdirAll(cfg.Export.OutputDir, 0o755); err != nil {
		return fmt.Errorf("ошибка создания каталога экспорта: %w", err)
	}

	exportHelper := helper.NewExportHelper(db, cacheClient, log)

	exportService := services.NewExportService(
		db, db, db, db,
		exportHelper,
		messagingClient,
		log,
		cfg.Export.OutputDir,
		cfg.Kafka.EventTopic,
	)

	settings := buildSettings(c, cfg)
	filter := buildFilter(c)

	run, err := exportService.Run(ctx, settings, filter)
	if err != nil {
		return fmt.Errorf("экспорт завершился с ошибкой: %w", err)
	}

	fmt.Printf("Экспорт завершен: всего %d, выпущено %d, пропущено %d\n",
		run.Summary.Total, run.Summary.Emitted, run.Summary.Skipped)
	fmt.Printf("Файл фида: %s\n", run.OutputFile)

	return nil
}

// buildSettings собирает настройки запуска: конфигурация,
// затем переопределения из флагов
func buildSettings(c *cli.Context, cfg *config.Config) *models.Settings {
	values := make(map[string]string, len(cfg.Export.Settings))
	for k, v := range cfg.Export.Settings {
		values[k] = v
	}

	if lang := c.String("lang"); lang != "" {
		values[models.SettingLang] = lang
	}
	if output := c.String("output"); output != "" {
		values[models.SettingOutputFileName] = output
	}

	for _, pair := range c.StringSlice("set") {
		key, value, found := strings.Cut(pair, "=")
		if found && key != "" {
			values[key] = value
		}
	}

	return models.NewSettings(values)
}

// buildFilter собирает фильтр выборки из флагов
func buildFilter(c *cli.Context) *models.DetailFilter {
	filter := &models.DetailFilter{
		OnlyInStock: c.Bool("only-in-stock"),
		MinStock:    c.Int("min-stock"),
		CategoryID:  c.Int64("category-id"),
		SupplierID:  c.Int64("supplier-id"),
	}

	if !filter.OnlyInStock && filter.MinStock == 0 && filter.CategoryID == 0 && filter.SupplierID == 0 {
		return nil
	}
	return filter
}
