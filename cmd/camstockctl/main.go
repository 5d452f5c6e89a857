// camstockctl tareas de mantenimiento de camstock: migraciones, alta de administradores
// e importación de planillas desde la línea de comandos.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jhoicas/camstock-api/internal/infrastructure/postgres"
	"github.com/jhoicas/camstock-api/pkg/config"
	"github.com/jhoicas/camstock-api/pkg/logger"
)

// runtimeEnv recursos compartidos por los subcomandos; se arma en PersistentPreRunE.
type runtimeEnv struct {
	cfg  *config.Config
	log  *logger.Logger
	pool *pgxpool.Pool
}

var (
	env      runtimeEnv
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "camstockctl",
	Short: "Herramientas de mantenimiento de camstock",
	Long: `camstockctl opera directamente sobre la base de datos de camstock.

Lee la configuración de .env y de las variables de entorno, igual que la API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("leer .env: %w", err)
		}
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("cargar configuración: %w", err)
		}
		level := cfg.App.LogLevel
		if logLevel != "" {
			level = logLevel
		}
		env.cfg = cfg
		env.log = logger.New(logger.Config{Env: "development", Level: level})
		env.pool, err = postgres.NewPool(cmd.Context(), cfg.DB, env.log)
		if err != nil {
			return fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if env.pool != nil {
			env.pool.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "nivel de log (debug, info, warn, error)")
	rootCmd.AddCommand(migrateCmd, createAdminCmd, importExcelCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
