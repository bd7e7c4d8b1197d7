package main

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/comicdex/comicdex/pkg/comicimport"
	"github.com/comicdex/comicdex/pkg/comics"
	"github.com/comicdex/comicdex/pkg/config"
	"github.com/comicdex/comicdex/pkg/database"
	"github.com/comicdex/comicdex/pkg/migrations"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/urfave/cli/v2"
)

func main() {
	log := logger.New()

	app := &cli.App{
		Name:        "import",
		Usage:       "import comic catalog CSV files",
		Description: "Parses catalog CSV exports, collapses variant rows, and upserts the records into the database.",
		ArgsUsage:   "FILE [FILE...]",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return errors.New("at least one CSV file is required")
			}

			cfg, err := config.New()
			if err != nil {
				return errors.WithStack(err)
			}

			db, err := database.New(cfg)
			if err != nil {
				return errors.WithStack(err)
			}
			defer db.Close()

			if _, err := migrations.BringUpToDate(c.Context, db); err != nil {
				return errors.WithStack(err)
			}

			comicService := comics.NewService(db)

			for _, path := range c.Args().Slice() {
				rows, skipped, err := parseFile(path)
				if err != nil {
					return errors.WithStack(err)
				}

				collapsed := comicimport.Collapse(rows)
				if err := comicService.UpsertFromImport(c.Context, collapsed); err != nil {
					return errors.WithStack(err)
				}

				log.Info("imported file", logger.Data{
					"path":         path,
					"rows":         len(rows),
					"skipped_rows": skipped,
					"records":      len(collapsed),
				})
			}

			total, err := comicService.CountComics(c.Context)
			if err != nil {
				return errors.WithStack(err)
			}
			log.Info("import complete", logger.Data{"total_records": total})

			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Err(err).Fatal("app run error")
	}
}

// parseFile reads one CSV export. Rows without a record id are counted and
// skipped rather than aborting the whole file.
func parseFile(path string) ([]*comicimport.Row, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, 0, errors.Wrapf(err, "reading header of %s", path)
	}

	rows := []*comicimport.Row{}
	skipped := 0
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, errors.Wrapf(err, "reading %s", path)
		}

		fields := map[string]string{}
		for i, name := range header {
			if i < len(record) {
				fields[name] = record[i]
			}
		}

		row, err := comicimport.ParseRow(fields)
		if err != nil {
			if errors.Is(err, comicimport.ErrMissingRecordID) {
				skipped++
				continue
			}
			return nil, 0, errors.WithStack(err)
		}
		rows = append(rows, row)
	}

	return rows, skipped, nil
}
