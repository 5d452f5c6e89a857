package postgres

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/camstock-api/pkg/config"
)

func TestLikePattern_EscapaComodines(t *testing.T) {
	assert.Equal(t, "%lente%", likePattern("  lente "))
	assert.Equal(t, `%100\%\_ok\\%`, likePattern(`100%_ok\`))
}

func TestViolaciones_DetectaCodigoPostgres(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	fk := &pgconn.PgError{Code: "23503"}

	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isForeignKeyViolation(unique))
	assert.True(t, isForeignKeyViolation(fk))
	assert.False(t, isUniqueViolation(nil))
	assert.False(t, isUniqueViolation(errors.New("timeout")))
}

func TestNullable_VacioEsNull(t *testing.T) {
	assert.Nil(t, nullable(""))
	assert.Equal(t, "u-1", nullable("u-1"))
}

func TestMigraciones_EmbebidasYCompletas(t *testing.T) {
	names, err := fs.Glob(migrationFiles, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	body, err := migrationFiles.ReadFile(names[0])
	require.NoError(t, err)
	for _, table := range []string{
		"users", "categories", "subcategories", "subcategory_categories", "products", "product_boxes",
		"out_products", "damage_products", "ready_cameras", "ready_camera_boxes",
		"delivery_histories", "delivery_boxes", "excel_uploads",
	} {
		assert.Contains(t, string(body), "CREATE TABLE IF NOT EXISTS "+table+" (", table)
	}
	assert.False(t, strings.Contains(string(body), "DROP TABLE"))
}

func TestNewPoolConfig_DSNYLimites(t *testing.T) {
	cfg, err := newPoolConfig(config.DBConfig{
		Host: "db.local", Port: 5433, User: "cam", Password: "p@ss:word", DBName: "camstock", SSLMode: "disable",
	})
	require.NoError(t, err)
	assert.Equal(t, "db.local", cfg.ConnConfig.Host)
	assert.EqualValues(t, 5433, cfg.ConnConfig.Port)
	assert.Equal(t, "p@ss:word", cfg.ConnConfig.Password)
	assert.EqualValues(t, 10, cfg.MaxConns)
	assert.NotNil(t, cfg.AfterConnect)

	cfg, err = newPoolConfig(config.DBConfig{DatabaseURL: "postgres://cam@otro:5432/camstock?pool_max_conns=3"})
	require.NoError(t, err)
	assert.Equal(t, "otro", cfg.ConnConfig.Host, "DATABASE_URL tiene prioridad")
	assert.EqualValues(t, 3, cfg.MaxConns)

	_, err = newPoolConfig(config.DBConfig{DatabaseURL: "postgres://%zz"})
	assert.Error(t, err)
}
