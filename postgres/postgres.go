package postgres

import (
	"errors"
	"fmt"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgtype"
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/lukasz-zimnoch/dexly/history"
)

type Config struct {
	Address      string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MigrationDir string
}

func (c *Config) address() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		c.User,
		c.Password,
		c.Address,
		c.Name,
		c.SSLMode,
	)
}

type Client struct {
	database *sqlx.DB
}

func NewClient(config *Config) (*Client, error) {
	database, err := sqlx.Connect("pgx", config.address())
	if err != nil {
		return nil, fmt.Errorf("could not connect database: [%v]", err)
	}

	return &Client{database: database}, nil
}

func (c *Client) Close() error {
	return c.database.Close()
}

func RunMigration(
	logger history.Logger,
	config *Config,
) error {
	if len(config.MigrationDir) == 0 {
		logger.Infof("postgres migration disabled")
		return nil
	}

	migrationLogger := logger.WithField("migrations", config.MigrationDir)

	migration, err := migrate.New("file://"+config.MigrationDir, config.address())
	if err != nil {
		return fmt.Errorf("could not load migrations: [%v]", err)
	}
	defer migration.Close()

	if err := migration.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			migrationLogger.Debugf("candle archive schema is up to date")
			return nil
		}

		return fmt.Errorf("could not migrate candle archive: [%v]", err)
	}

	version, _, err := migration.Version()
	if err != nil {
		return fmt.Errorf("could not read schema version: [%v]", err)
	}

	migrationLogger.Infof("candle archive schema migrated to version [%v]", version)

	return nil
}

// textToNumeric keeps the exchange's decimal text exact. Empty text maps
// to NULL.
func textToNumeric(value string) (pgtype.Numeric, error) {
	if len(value) == 0 {
		return pgtype.Numeric{Status: pgtype.Null}, nil
	}

	var result pgtype.Numeric

	if err := result.Set(value); err != nil {
		return pgtype.Numeric{}, err
	}

	return result, nil
}
