package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/yegors/airscen/internal/scenario"
	"github.com/yegors/airscen/pkg/logger"
)

// ScenarioStorage is a SQLite-backed archive of assembled scenarios.
type ScenarioStorage struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewScenarioStorage opens (or creates) the archive database at the given
// path and initializes the schema.
func NewScenarioStorage(dbPath string, log *logger.Logger) (*ScenarioStorage, error) {
	storageLogger := log.Named("sqlite")

	storageLogger.Info("Initializing SQLite storage",
		logger.String("path", dbPath))

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	// Set pragmas for better performance and concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to set journal mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		return nil, fmt.Errorf("failed to set synchronous mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := initDatabase(db, storageLogger); err != nil {
		db.Close()
		return nil, err
	}

	return &ScenarioStorage{
		db:     db,
		logger: storageLogger,
	}, nil
}

// Close closes the database connection
func (s *ScenarioStorage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GetDB returns the database connection
func (s *ScenarioStorage) GetDB() *sql.DB {
	return s.db
}

// initDatabase initializes the database schema
func initDatabase(db *sql.DB, log *logger.Logger) error {
	log.Info("Initializing database schema")

	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS scenarios (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			datetime TEXT,
			author TEXT,
			source TEXT,
			flight_count INTEGER NOT NULL,
			sector_count INTEGER NOT NULL,
			saved_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create scenarios table: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS flights (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			scenario_id INTEGER NOT NULL,
			position INTEGER NOT NULL,
			callsign TEXT,
			airline TEXT,
			aircraft TEXT,
			wake_turbulence_cat TEXT NOT NULL,
			cost_index REAL,
			FOREIGN KEY (scenario_id) REFERENCES scenarios(id) ON DELETE CASCADE
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create flights table: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS flight_plans (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			flight_id INTEGER NOT NULL,
			position INTEGER NOT NULL,
			aircraft_category TEXT,
			delay_allowance REAL,
			preference_rank INTEGER,
			waypoints TEXT NOT NULL,    -- JSON [[lon,lat],...]
			altitudes TEXT NOT NULL,    -- JSON [int,...]
			speeds TEXT NOT NULL,       -- JSON [num,...]
			FOREIGN KEY (flight_id) REFERENCES flights(id) ON DELETE CASCADE
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create flight_plans table: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS sectors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			scenario_id INTEGER NOT NULL,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			polygon TEXT NOT NULL,      -- JSON [[lat,lon],...]
			capacity TEXT NOT NULL,     -- JSON [int x 96]
			centroid TEXT,              -- JSON [lat,lon] or NULL
			lower_altitude REAL,
			upper_altitude REAL,
			FOREIGN KEY (scenario_id) REFERENCES scenarios(id) ON DELETE CASCADE
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create sectors table: %w", err)
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_flights_scenario_id ON flights(scenario_id)`)
	if err != nil {
		return fmt.Errorf("failed to create index on flights.scenario_id: %w", err)
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_flight_plans_flight_id ON flight_plans(flight_id)`)
	if err != nil {
		return fmt.Errorf("failed to create index on flight_plans.flight_id: %w", err)
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_sectors_scenario_id ON sectors(scenario_id)`)
	if err != nil {
		return fmt.Errorf("failed to create index on sectors.scenario_id: %w", err)
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_scenarios_saved_at ON scenarios(saved_at)`)
	if err != nil {
		return fmt.Errorf("failed to create index on scenarios.saved_at: %w", err)
	}

	log.Info("Database schema initialized successfully")
	return nil
}

// SaveScenario archives a fully assembled scenario in a single transaction
// and returns the new archive id. All-or-nothing: any failure rolls the
// whole scenario back.
func (s *ScenarioStorage) SaveScenario(sc *scenario.Scenario, source string) (int64, error) {
	start := time.Now()

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	flights := sc.Flights()
	sectors := sc.Sectors()

	res, err := tx.Exec(`
		INSERT INTO scenarios (name, datetime, author, source, flight_count, sector_count, saved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, sc.Name(), sc.Datetime(), sc.Author(), source, len(flights), len(sectors),
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("failed to insert scenario: %w", err)
	}

	scenarioID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get scenario id: %w", err)
	}

	flightStmt, err := tx.Prepare(`
		INSERT INTO flights (scenario_id, position, callsign, airline, aircraft, wake_turbulence_cat, cost_index)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare flight insert: %w", err)
	}
	defer flightStmt.Close()

	planStmt, err := tx.Prepare(`
		INSERT INTO flight_plans (flight_id, position, aircraft_category, delay_allowance, preference_rank, waypoints, altitudes, speeds)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare plan insert: %w", err)
	}
	defer planStmt.Close()

	for i, f := range flights {
		res, err := flightStmt.Exec(scenarioID, i, f.Callsign(), f.Airline(),
			f.Aircraft(), f.WakeCategory().String(), f.CostIndex())
		if err != nil {
			return 0, fmt.Errorf("failed to insert flight %q: %w", f.Callsign(), err)
		}
		flightID, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("failed to get flight id: %w", err)
		}

		for j, p := range f.FiledPlans() {
			waypoints, err := json.Marshal(p.Waypoints())
			if err != nil {
				return 0, fmt.Errorf("failed to marshal waypoints: %w", err)
			}
			altitudes, err := json.Marshal(p.Altitudes())
			if err != nil {
				return 0, fmt.Errorf("failed to marshal altitudes: %w", err)
			}
			speeds, err := json.Marshal(p.Speeds())
			if err != nil {
				return 0, fmt.Errorf("failed to marshal speeds: %w", err)
			}

			if _, err := planStmt.Exec(flightID, j, p.AircraftCategory(),
				p.DelayAllowance(), p.PreferenceRank(),
				string(waypoints), string(altitudes), string(speeds)); err != nil {
				return 0, fmt.Errorf("failed to insert plan %d of flight %q: %w", j, f.Callsign(), err)
			}
		}
	}

	for i, sec := range sectors {
		polygon, err := json.Marshal(sec.Polygon())
		if err != nil {
			return 0, fmt.Errorf("failed to marshal polygon: %w", err)
		}
		capacity, err := json.Marshal(sec.Capacity())
		if err != nil {
			return 0, fmt.Errorf("failed to marshal capacity: %w", err)
		}

		var centroid any
		if c, ok := sec.Centroid(); ok {
			data, err := json.Marshal(c)
			if err != nil {
				return 0, fmt.Errorf("failed to marshal centroid: %w", err)
			}
			centroid = string(data)
		}

		var lower, upper any
		if v, ok := sec.LowerAltitude(); ok {
			lower = v
		}
		if v, ok := sec.UpperAltitude(); ok {
			upper = v
		}

		if _, err := tx.Exec(`
			INSERT INTO sectors (scenario_id, position, name, polygon, capacity, centroid, lower_altitude, upper_altitude)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, scenarioID, i, sec.Name(), string(polygon), string(capacity), centroid, lower, upper); err != nil {
			return 0, fmt.Errorf("failed to insert sector %q: %w", sec.Name(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Debug("Archived scenario",
		logger.Int64("id", scenarioID),
		logger.String("name", sc.Name()),
		logger.Int("flights", len(flights)),
		logger.Int("sectors", len(sectors)),
		logger.Duration("took", time.Since(start)))

	return scenarioID, nil
}

// ListScenarios returns the archive contents, newest first.
func (s *ScenarioStorage) ListScenarios() ([]*scenario.ScenarioSummary, error) {
	rows, err := s.db.Query(`
		SELECT id, name, author, source, flight_count, sector_count, saved_at
		FROM scenarios
		ORDER BY saved_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query scenarios: %w", err)
	}
	defer rows.Close()

	summaries := make([]*scenario.ScenarioSummary, 0)
	for rows.Next() {
		var sum scenario.ScenarioSummary
		var author, source sql.NullString

		if err := rows.Scan(&sum.ID, &sum.Name, &author, &source,
			&sum.Flights, &sum.Sectors, &sum.SavedAt); err != nil {
			return nil, fmt.Errorf("failed to scan scenario row: %w", err)
		}
		sum.Author = author.String
		sum.Source = source.String
		summaries = append(summaries, &sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate scenario rows: %w", err)
	}

	return summaries, nil
}
