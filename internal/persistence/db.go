// Package persistence provides SQLite storage for optimizer runs and the
// per-swap records of the entropy study.
package persistence

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/dralexportfolio/active-projects/internal/board"
	"github.com/dralexportfolio/active-projects/internal/tiling"
)

// DB wraps a SQLite connection for run and swap storage.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		mode TEXT NOT NULL,
		seed INTEGER NOT NULL,
		iterations INTEGER NOT NULL,
		skew_power REAL NOT NULL,
		policy TEXT NOT NULL,
		objective TEXT NOT NULL,
		started_at TEXT NOT NULL,
		initial_objective REAL,
		final_objective REAL,
		accepted INTEGER,
		rejected INTEGER,
		skipped INTEGER
	);

	CREATE TABLE IF NOT EXISTS sim_results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		sim_index BIGINT NOT NULL,
		step_index BIGINT NOT NULL,
		tile_type_1 TEXT NOT NULL,
		tile_type_2 TEXT NOT NULL,
		polygon_1 INTEGER NOT NULL,
		polygon_2 INTEGER NOT NULL,
		pre_objective FLOAT NOT NULL,
		post_objective FLOAT NOT NULL,
		delta_objective FLOAT NOT NULL,
		accepted INTEGER NOT NULL,
		brick_pre_efficiency FLOAT NOT NULL,
		sheep_pre_efficiency FLOAT NOT NULL,
		stone_pre_efficiency FLOAT NOT NULL,
		wheat_pre_efficiency FLOAT NOT NULL,
		wood_pre_efficiency FLOAT NOT NULL,
		desert_pre_efficiency FLOAT NOT NULL,
		gold_pre_efficiency FLOAT NOT NULL,
		water_pre_efficiency FLOAT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS boards (
		run_id TEXT NOT NULL,
		polygon_index INTEGER NOT NULL,
		tile TEXT NOT NULL,
		PRIMARY KEY (run_id, polygon_index)
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sim_results_run ON sim_results(run_id, sim_index, step_index);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Run describes one optimizer or study run.
type Run struct {
	ID         string  `db:"id"`
	Kind       string  `db:"kind"` // "generate" or "study"
	Mode       string  `db:"mode"`
	Seed       int64   `db:"seed"`
	Iterations int     `db:"iterations"`
	SkewPower  float64 `db:"skew_power"`
	Policy     string  `db:"policy"`
	Objective  string  `db:"objective"`
	StartedAt  string  `db:"started_at"`

	InitialObjective *float64 `db:"initial_objective"`
	FinalObjective   *float64 `db:"final_objective"`
	Accepted         *int     `db:"accepted"`
	Rejected         *int     `db:"rejected"`
	Skipped          *int     `db:"skipped"`
}

// CreateRun stores a new run and returns its generated ID.
func (db *DB) CreateRun(r Run) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.StartedAt == "" {
		r.StartedAt = time.Now().UTC().Format(time.RFC3339)
	}
	_, err := db.conn.NamedExec(`INSERT INTO runs
		(id, kind, mode, seed, iterations, skew_power, policy, objective, started_at)
		VALUES (:id, :kind, :mode, :seed, :iterations, :skew_power, :policy, :objective, :started_at)`, r)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return r.ID, nil
}

// FinishRun records the outcome of a run.
func (db *DB) FinishRun(id string, res tiling.Result) error {
	_, err := db.conn.Exec(`UPDATE runs
		SET initial_objective = ?, final_objective = ?, accepted = ?, rejected = ?, skipped = ?
		WHERE id = ?`,
		res.Initial, res.Final, res.Accepted, res.Rejected, res.Skipped, id,
	)
	if err != nil {
		return fmt.Errorf("finish run %s: %w", id, err)
	}
	return nil
}

// GetRun loads a run by ID.
func (db *DB) GetRun(id string) (Run, error) {
	var r Run
	err := db.conn.Get(&r, "SELECT * FROM runs WHERE id = ?", id)
	return r, err
}

// Runs returns every run, oldest first.
func (db *DB) Runs() ([]Run, error) {
	var runs []Run
	err := db.conn.Select(&runs, "SELECT * FROM runs ORDER BY started_at, id")
	return runs, err
}

// SwapRow is one stored swap attempt.
type SwapRow struct {
	RunID     string  `db:"run_id"`
	SimIndex  int     `db:"sim_index"`
	StepIndex int     `db:"step_index"`
	TileType1 string  `db:"tile_type_1"`
	TileType2 string  `db:"tile_type_2"`
	Polygon1  int     `db:"polygon_1"`
	Polygon2  int     `db:"polygon_2"`
	Pre       float64 `db:"pre_objective"`
	Post      float64 `db:"post_objective"`
	Delta     float64 `db:"delta_objective"`
	Accepted  bool    `db:"accepted"`

	BrickPreEfficiency  float64 `db:"brick_pre_efficiency"`
	SheepPreEfficiency  float64 `db:"sheep_pre_efficiency"`
	StonePreEfficiency  float64 `db:"stone_pre_efficiency"`
	WheatPreEfficiency  float64 `db:"wheat_pre_efficiency"`
	WoodPreEfficiency   float64 `db:"wood_pre_efficiency"`
	DesertPreEfficiency float64 `db:"desert_pre_efficiency"`
	GoldPreEfficiency   float64 `db:"gold_pre_efficiency"`
	WaterPreEfficiency  float64 `db:"water_pre_efficiency"`
}

// PreEfficiency returns the stored pre-swap efficiency of tile type t.
func (r SwapRow) PreEfficiency(t board.Tile) float64 {
	switch t {
	case board.TileBrick:
		return r.BrickPreEfficiency
	case board.TileSheep:
		return r.SheepPreEfficiency
	case board.TileStone:
		return r.StonePreEfficiency
	case board.TileWheat:
		return r.WheatPreEfficiency
	case board.TileWood:
		return r.WoodPreEfficiency
	case board.TileDesert:
		return r.DesertPreEfficiency
	case board.TileGold:
		return r.GoldPreEfficiency
	case board.TileWater:
		return r.WaterPreEfficiency
	default:
		return 0
	}
}

// AppendSwaps appends the swap attempts of one simulation.
func (db *DB) AppendSwaps(runID string, simIndex int, recs []tiling.SwapRecord) error {
	if len(recs) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Preparex(`INSERT INTO sim_results
		(run_id, sim_index, step_index, tile_type_1, tile_type_2, polygon_1, polygon_2,
		 pre_objective, post_objective, delta_objective, accepted,
		 brick_pre_efficiency, sheep_pre_efficiency, stone_pre_efficiency, wheat_pre_efficiency,
		 wood_pre_efficiency, desert_pre_efficiency, gold_pre_efficiency, water_pre_efficiency)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range recs {
		accepted := 0
		if r.Accepted() {
			accepted = 1
		}
		eff := r.PreEfficiency
		_, err := stmt.Exec(
			runID, simIndex, r.Iteration, r.Swap.TileA.String(), r.Swap.TileB.String(),
			r.Swap.PolyA, r.Swap.PolyB, r.Pre, r.Post, r.Delta, accepted,
			eff[board.TileBrick], eff[board.TileSheep], eff[board.TileStone], eff[board.TileWheat],
			eff[board.TileWood], eff[board.TileDesert], eff[board.TileGold], eff[board.TileWater],
		)
		if err != nil {
			return fmt.Errorf("insert swap %d/%d: %w", simIndex, r.Iteration, err)
		}
	}

	return tx.Commit()
}

// Swaps returns the stored swap attempts of a run in simulation/step order.
func (db *DB) Swaps(runID string) ([]SwapRow, error) {
	var rows []SwapRow
	err := db.conn.Select(&rows, `SELECT
		run_id, sim_index, step_index, tile_type_1, tile_type_2, polygon_1, polygon_2,
		pre_objective, post_objective, delta_objective, accepted,
		brick_pre_efficiency, sheep_pre_efficiency, stone_pre_efficiency, wheat_pre_efficiency,
		wood_pre_efficiency, desert_pre_efficiency, gold_pre_efficiency, water_pre_efficiency
		FROM sim_results WHERE run_id = ? ORDER BY sim_index, step_index`, runID)
	return rows, err
}

// Deltas returns the objective delta column of a run.
func (db *DB) Deltas(runID string) ([]float64, error) {
	var deltas []float64
	err := db.conn.Select(&deltas,
		"SELECT delta_objective FROM sim_results WHERE run_id = ? ORDER BY sim_index, step_index",
		runID,
	)
	return deltas, err
}

// SwapCount returns the number of stored swap attempts of a run.
func (db *DB) SwapCount(runID string) (int, error) {
	var n int
	err := db.conn.Get(&n, "SELECT COUNT(*) FROM sim_results WHERE run_id = ?", runID)
	return n, err
}

// SaveBoard writes a run's tiling (full replace).
func (db *DB) SaveBoard(runID string, tiles []board.Tile) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM boards WHERE run_id = ?", runID); err != nil {
		return err
	}
	for i, t := range tiles {
		_, err := tx.Exec("INSERT INTO boards (run_id, polygon_index, tile) VALUES (?, ?, ?)",
			runID, i, t.String())
		if err != nil {
			return fmt.Errorf("insert polygon %d: %w", i, err)
		}
	}

	slog.Debug("board saved", "run", runID, "polygons", len(tiles))
	return tx.Commit()
}

// LoadBoard reads a run's tiling.
func (db *DB) LoadBoard(runID string) ([]board.Tile, error) {
	var names []string
	err := db.conn.Select(&names,
		"SELECT tile FROM boards WHERE run_id = ? ORDER BY polygon_index", runID)
	if err != nil {
		return nil, err
	}
	tiles := make([]board.Tile, len(names))
	for i, n := range names {
		t, ok := board.ParseTile(n)
		if !ok {
			return nil, fmt.Errorf("polygon %d: unknown tile %q", i, n)
		}
		tiles[i] = t
	}
	return tiles, nil
}

// SaveMeta stores a key-value pair.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM meta WHERE key = ?", key)
	return value, err
}
