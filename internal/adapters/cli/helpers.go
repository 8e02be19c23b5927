package cli

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/colonysim-go/internal/adapters/persistence"
	"github.com/andrescamacho/colonysim-go/internal/application/simulation"
	"github.com/andrescamacho/colonysim-go/internal/infrastructure/config"
	"github.com/andrescamacho/colonysim-go/internal/infrastructure/database"
)

// openService loads config, connects to the database, and wires the
// simulation service. The caller closes the returned connection.
func openService() (*simulation.Service, *gorm.DB, *config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Schema is small enough that auto-migration on startup keeps the
	// SQLite default setup-free.
	if err := database.AutoMigrate(db); err != nil {
		_ = database.Close(db)
		return nil, nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	colonies := persistence.NewGormColonyRepository(db)
	static := persistence.NewGormStaticDataRepository(db)
	svc := simulation.NewService(colonies, static, nil)
	return svc, db, cfg, nil
}

// parseTargetTime parses the --target flag, accepting RFC3339 or a
// relative duration like "+2h" from now
func parseTargetTime(value string, now time.Time) (time.Time, error) {
	if strings.HasPrefix(value, "+") {
		d, err := time.ParseDuration(value[1:])
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid relative target %q: %w", value, err)
		}
		return now.Add(d), nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid target time %q (want RFC3339 or +duration): %w", value, err)
	}
	return t, nil
}

// maskPassword hides the password part of a connection URL for display
func maskPassword(url string) string {
	atIdx := strings.Index(url, "@")
	if atIdx == -1 {
		return url
	}
	schemeIdx := strings.Index(url, "://")
	if schemeIdx == -1 {
		return url
	}
	credentials := url[schemeIdx+3 : atIdx]
	colonIdx := strings.Index(credentials, ":")
	if colonIdx == -1 {
		return url
	}
	return url[:schemeIdx+3] + credentials[:colonIdx] + ":****" + url[atIdx:]
}
