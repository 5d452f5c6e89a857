package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/camstock-api/internal/application/auth"
	"github.com/jhoicas/camstock-api/internal/application/inventory"
	infraexcel "github.com/jhoicas/camstock-api/internal/infrastructure/excel"
	"github.com/jhoicas/camstock-api/internal/infrastructure/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica las migraciones SQL pendientes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := postgres.Migrate(cmd.Context(), env.pool, env.log)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d migraciones aplicadas\n", n)
		return nil
	},
}

var adminFlags struct {
	name     string
	email    string
	password string
}

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Crea un administrador o promueve un usuario existente",
	Long: `Si el email no existe crea el usuario con rol admin (requiere --password).
Si existe lo promueve a admin y lo reactiva; --password reemplaza la contraseña.

Ejemplo:
  camstockctl create-admin --email jefa@camstock.io --password 'cambiar123' --name "Jefa de bodega"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		uc := auth.NewAuthUseCase(postgres.NewUserRepository(env.pool), auth.JWTConfig{})
		user, created, err := uc.EnsureAdmin(cmd.Context(), adminFlags.name, adminFlags.email, adminFlags.password)
		if err != nil {
			return err
		}
		action := "promovido"
		if created {
			action = "creado"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "administrador %s: %s (%s)\n", action, user.Email, user.ID)
		return nil
	},
}

// noopObserver la importación solo deja filas Pending; el stock no cambia hasta procesarlas.
type noopObserver struct{}

func (noopObserver) StockChanged(context.Context) {}

var importFlags struct {
	userEmail string
}

var importExcelCmd = &cobra.Command{
	Use:   "import-excel [archivo.xlsx]",
	Short: "Importa una planilla de entradas como filas Pending",
	Long: `Usa el mismo parser que POST /api/product/upload-excel. Las filas válidas quedan
pendientes de revisión; las inválidas se listan con su número de fila.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		users := postgres.NewUserRepository(env.pool)
		user, err := users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(importFlags.userEmail)))
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("usuario %q no existe", importFlags.userEmail)
		}

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		uc := inventory.NewExcelImportUseCase(
			postgres.NewTxRunner(env.pool),
			infraexcel.NewParser(),
			postgres.NewExcelUploadRepository(env.pool),
			postgres.NewCategoryRepository(env.pool),
			postgres.NewSubCategoryRepository(env.pool),
			noopObserver{},
			env.log,
		)
		res, err := uc.Import(ctx, user.ID, f)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "filas importadas: %d, con error: %d\n", res.Inserted, res.Failed)
		for _, e := range res.Errors {
			fmt.Fprintf(out, "  fila %d: %s\n", e.Row, e.Reason)
		}
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminFlags.name, "name", "", "nombre visible")
	createAdminCmd.Flags().StringVar(&adminFlags.email, "email", "", "email del administrador")
	createAdminCmd.Flags().StringVar(&adminFlags.password, "password", "", "contraseña (mínimo 8 caracteres)")
	_ = createAdminCmd.MarkFlagRequired("email")

	importExcelCmd.Flags().StringVar(&importFlags.userEmail, "user", "", "email del usuario que registra la importación")
	_ = importExcelCmd.MarkFlagRequired("user")
}
