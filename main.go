package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/mickamy/relkind/internal/parse"
	"github.com/mickamy/relkind/internal/report"
	"github.com/mickamy/relkind/introspect"
	"github.com/mickamy/relkind/meta"
)

var version = "dev"

func main() {
	source := flag.String("source", "", "Go file declaring the models (defaults to $GOFILE)")
	driver := flag.String("driver", "", "introspect a database instead: mysql or postgres")
	dsn := flag.String("dsn", "", "data source name for -driver")
	schema := flag.String("schema", "", "schema to introspect (default: public for postgres, required for mysql)")
	entity := flag.String("entity", "", "only report this entity")
	format := flag.String("format", "table", "output format: table or yaml")
	debug := flag.Bool("debug", false, "log catalog queries")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("relkind", version)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var (
		entities []*meta.Entity
		err      error
	)
	if *driver != "" {
		entities, err = introspectDB(ctx, *driver, *dsn, *schema, *debug)
		if err != nil {
			log.Fatalf("introspect: %v", err)
		}
	} else {
		path := *source
		if path == "" {
			path = os.Getenv("GOFILE")
		}
		if path == "" {
			log.Fatal("-source or -driver is required")
		}
		entities, err = parse.Parse(path)
		if err != nil {
			log.Fatalf("parse: %v", err)
		}
	}

	reg := meta.NewRegistry()
	if err := reg.Add(entities...); err != nil {
		log.Fatalf("register: %v", err)
	}
	if err := reg.Validate(); err != nil {
		log.Printf("warning: %v", err)
	}

	selected := reg.Entities()
	if *entity != "" {
		e, ok := reg.Entity(*entity)
		if !ok {
			log.Fatalf("unknown entity %q", *entity)
		}
		selected = []*meta.Entity{e}
	}

	if err := report.Write(os.Stdout, *format, report.Rows(selected)); err != nil {
		log.Fatalf("write: %v", err)
	}
}

func introspectDB(ctx context.Context, driver, dsn, schema string, debug bool) ([]*meta.Entity, error) {
	d, ok := introspect.DialectFor(driver)
	if !ok {
		return nil, fmt.Errorf("unknown driver %q (use 'mysql' or 'postgres')", driver)
	}
	if dsn == "" {
		return nil, fmt.Errorf("-dsn is required with -driver")
	}
	if schema == "" {
		if d != introspect.PostgreSQL {
			return nil, fmt.Errorf("-schema is required with -driver %s", driver)
		}
		schema = "public"
	}

	db, err := sql.Open(d.Name(), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	defer func() { _ = db.Close() }()

	loader := introspect.NewLoader(db, d)
	if debug {
		loader = loader.Debug(stdLogger{})
	}
	catalog, err := loader.Load(ctx, schema)
	if err != nil {
		return nil, err
	}
	return introspect.Build(catalog)
}

type stdLogger struct{}

func (stdLogger) Log(_ context.Context, query string, args ...any) {
	log.Printf("%s %v", query, args)
}
