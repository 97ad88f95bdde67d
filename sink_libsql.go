package gauge

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// LibsqlSink uploads dispatched result tables into a libsql database,
// so results from different hosts land in one queryable place.
//
// The target comes from --libsql_url or, when the flag is empty, from
// the LIBSQL_URL and LIBSQL_AUTH_TOKEN environment (a .env file in the
// working directory is honored). The sink is enabled whenever a URL is
// configured; the database is opened when the run starts.
type LibsqlSink struct {
	url      *string
	resolved string
	db       *sql.DB
}

func NewLibsqlSink() *LibsqlSink {
	return &LibsqlSink{}
}

func (s *LibsqlSink) AddFlags(fs *pflag.FlagSet) {
	s.url = fs.String("libsql_url", "",
		"Upload results to this libsql database, "+
			"e.g. libsql://results-myorg.turso.io?authToken=...")
}

func (s *LibsqlSink) SetOptions(*Options) error {
	s.resolved = *s.url
	if s.resolved == "" {
		_ = godotenv.Load()
		url := os.Getenv("LIBSQL_URL")
		if url == "" {
			return nil
		}
		s.resolved = url
		if token := os.Getenv("LIBSQL_AUTH_TOKEN"); token != "" {
			s.resolved = fmt.Sprintf("%v?authToken=%v", url, token)
		}
	}
	return nil
}

func (s *LibsqlSink) Enabled() bool {
	return s.resolved != ""
}

func (s *LibsqlSink) Start() {
	db, err := sql.Open("libsql", s.resolved)
	if err != nil {
		Logger.Errorf("libsql sink: failed to open %v: %v", s.resolved, err)
		return
	}
	s.db = db
	if err := s.initSchema(); err != nil {
		Logger.Errorf("libsql sink: failed to initialize schema: %v", err)
	}
}

func (s *LibsqlSink) initSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS parameters (
		testcase TEXT,
		benchmark TEXT,
		config TEXT,
		name TEXT,
		value TEXT,
		PRIMARY KEY (testcase, benchmark, config, name)
	)`)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`CREATE TABLE IF NOT EXISTS measurements (
		testcase TEXT,
		benchmark TEXT,
		config TEXT,
		run_number INTEGER,
		name TEXT,
		value TEXT
	)`)
	return err
}

func (s *LibsqlSink) StartBenchmark() {}
func (s *LibsqlSink) EndBenchmark()   {}

func (s *LibsqlSink) BenchmarkResult(b Benchmark, cfg *Config, results *Table) {
	if s.db == nil {
		return
	}
	if err := s.upload(b, cfg, results); err != nil {
		Logger.Errorf("libsql sink: failed to upload %v.%v results: %v",
			b.TestcaseName(), b.BenchmarkName(), err)
	}
}

func (s *LibsqlSink) upload(b Benchmark, cfg *Config, results *Table) error {
	cfgText := ""
	if cfg != nil {
		cfgText = cfg.String()
	}

	tx, err := s.db.BeginTx(context.Background(), nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, name := range results.Columns() {
		if !results.IsConst(name) {
			continue
		}
		_, err = tx.Exec(
			"INSERT INTO parameters VALUES (?, ?, ?, ?, ?) ON CONFLICT DO NOTHING",
			b.TestcaseName(), b.BenchmarkName(), cfgText,
			name, fmt.Sprintf("%v", results.Value(name, 0)),
		)
		if err != nil {
			return err
		}
	}

	for row := 0; row < results.Rows(); row++ {
		for _, name := range results.Columns() {
			if results.IsConst(name) {
				continue
			}
			_, err = tx.Exec(
				"INSERT INTO measurements VALUES (?, ?, ?, ?, ?, ?)",
				b.TestcaseName(), b.BenchmarkName(), cfgText,
				row, name, fmt.Sprintf("%v", results.Value(name, row)),
			)
			if err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

func (s *LibsqlSink) End() {
	if s.db == nil {
		return
	}
	if err := s.db.Close(); err != nil {
		Logger.Errorf("libsql sink: failed to close database: %v", err)
	}
}
