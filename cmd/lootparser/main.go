package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/TigerhawkT3/sto-loot-parser/internal/config"
	"github.com/TigerhawkT3/sto-loot-parser/internal/logging"
	"github.com/TigerhawkT3/sto-loot-parser/internal/loot"
	"github.com/TigerhawkT3/sto-loot-parser/internal/parse"
	"github.com/TigerhawkT3/sto-loot-parser/internal/pipeline"
	"github.com/TigerhawkT3/sto-loot-parser/internal/report"
	"github.com/TigerhawkT3/sto-loot-parser/internal/source"
	"github.com/TigerhawkT3/sto-loot-parser/internal/store"

	// Register source implementations.
	_ "github.com/TigerhawkT3/sto-loot-parser/internal/source/logdir"
	_ "github.com/TigerhawkT3/sto-loot-parser/internal/source/paste"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logging.Init(cfg.Log.JSON, logging.ParseLevel(cfg.Log.Level))

	ctx := context.Background()

	loc, err := cfg.Parse.TimeLocation()
	if err != nil {
		log.Fatalf("failed to resolve location: %v", err)
	}
	ref := parse.Reference{Year: cfg.Parse.Year(time.Now()), Location: loc}

	col, err := populate(ctx, cfg, ref)
	if err != nil {
		log.Fatalf("failed to populate collection: %v", err)
	}

	if cfg.Store.Path != "" && cfg.Store.LoadSnapshot == "" {
		st, err := store.Open(cfg.Store.Path)
		if err != nil {
			log.Fatalf("failed to open store: %v", err)
		}
		defer st.Close()
		id, err := st.Save(ctx, col)
		if err != nil {
			log.Fatalf("failed to save snapshot: %v", err)
		}
		slog.Info("snapshot saved", "id", id, "events", col.Len())
	}

	if err := render(cfg, loc, col); err != nil {
		log.Fatalf("failed to render report: %v", err)
	}
}

// populate builds the collection, either by re-ingesting a line source or by
// loading a stored snapshot.
func populate(ctx context.Context, cfg *config.Config, ref parse.Reference) (*loot.Collection, error) {
	if cfg.Store.LoadSnapshot != "" {
		st, err := store.Open(cfg.Store.Path)
		if err != nil {
			return nil, err
		}
		defer st.Close()
		return st.Load(ctx, cfg.Store.LoadSnapshot)
	}

	ctor, err := source.Get(cfg.Source.Provider)
	if err != nil {
		return nil, err
	}
	src, err := ctor(source.Config{Dir: cfg.Source.Dir, Path: cfg.Source.Path})
	if err != nil {
		return nil, err
	}

	mode := parse.ModePasted
	if cfg.Source.Provider == "logdir" {
		mode = parse.ModeGameLog
	}
	parser := parse.New(mode, ref)

	var opts []pipeline.Option
	if cfg.Parse.Strict {
		opts = append(opts, pipeline.Strict())
	}
	col, _, err := pipeline.New(src, parser, opts...).Run(ctx)
	return col, err
}

// render writes the configured report.
func render(cfg *config.Config, loc *time.Location, col *loot.Collection) error {
	var pred *loot.Predicate
	if cfg.Report.Filters != "" {
		filter, err := loot.ParseSpec(cfg.Report.Filters, cfg.Report.Regex, loc)
		if err != nil {
			return err
		}
		if pred, err = filter.Compile(cfg.Report.Regex); err != nil {
			return err
		}
	}

	sink := io.Writer(os.Stdout)
	if cfg.Report.Output != "-" && cfg.Report.Output != "" {
		f, err := os.Create(cfg.Report.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		sink = f
	}
	w, err := report.Sanitize(sink, cfg.Report.Charset)
	if err != nil {
		return err
	}
	defer w.Close()

	opts := loot.BucketOptions{
		UTC:               cfg.Report.UTCDays,
		IncludeSaleLosses: cfg.Report.IncludeSaleLosses,
	}

	switch cfg.Report.Kind {
	case "events":
		return report.Events(w, col.Loot(pred))
	case "winners":
		return report.Winners(w, col.Winners(pred))
	case "totals":
		days, err := col.TotalsByDay(pred, opts)
		if err != nil {
			return err
		}
		return report.TotalsByDay(w, days)
	case "cumulative":
		days, err := col.CumulativeTotals(pred, opts)
		if err != nil {
			return err
		}
		return report.CumulativeTotals(w, days)
	case "averages":
		return report.AverageTotals(w, col.AverageTotals(pred, opts))
	case "dabo":
		return report.Dabo(w, col.Dabo(pred))
	default:
		return fmt.Errorf("unknown report kind %q", cfg.Report.Kind)
	}
}
