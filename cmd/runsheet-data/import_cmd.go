package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/greenroomhq/runsheet/modules/runorder/domain/runorder"
	"github.com/greenroomhq/runsheet/modules/runorder/importing"
	"github.com/greenroomhq/runsheet/modules/runorder/infrastructure/persistence"
	"github.com/greenroomhq/runsheet/modules/runorder/services"
	"github.com/greenroomhq/runsheet/pkg/composables"
	"github.com/greenroomhq/runsheet/pkg/configuration"
	"github.com/greenroomhq/runsheet/pkg/eventbus"
)

type importOptions struct {
	showID uuid.UUID
	input  string
	kind   string
	apply  bool
}

func newImportCmd() *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a running-order sheet (CSV or XLSX) into a show",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.input, "input", "", "Input file, .csv or .xlsx (required)")
	cmd.Flags().StringVar(&opts.kind, "kind", string(runorder.ImportKindSketches), "Import kind: sketches or techDetails")
	cmd.Flags().BoolVar(&opts.apply, "apply", false, "Apply changes to DB (default is dry-run)")

	var show string
	cmd.Flags().StringVar(&show, "show", "", "Show UUID (required)")

	_ = cmd.MarkFlagRequired("show")
	_ = cmd.MarkFlagRequired("input")

	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(strings.TrimSpace(show))
		if err != nil {
			return withCode(exitUsage, fmt.Errorf("invalid --show: %w", err))
		}
		opts.showID = id
		return nil
	}

	return cmd
}

func readSheet(path string) (importing.TabularResult, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		f, err := os.Open(path)
		if err != nil {
			return importing.TabularResult{}, withCode(exitUsage, fmt.Errorf("open input: %w", err))
		}
		defer func() {
			_ = f.Close()
		}()
		result, err := importing.ReadXLSX(f)
		if err != nil {
			return importing.TabularResult{}, withCode(exitValidation, fmt.Errorf("read xlsx: %w", err))
		}
		return result, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return importing.TabularResult{}, withCode(exitUsage, fmt.Errorf("read input: %w", err))
	}
	return importing.ParseTabular(string(raw)), nil
}

func runImport(ctx context.Context, opts importOptions) error {
	kind := runorder.ImportKind(opts.kind)
	if !kind.Valid() {
		return withCode(exitUsage, fmt.Errorf("invalid --kind %q: must be sketches or techDetails", opts.kind))
	}

	sheet, err := readSheet(opts.input)
	if err != nil {
		return err
	}

	var (
		records  []runorder.SketchImport
		techRows []runorder.TechImport
	)
	if kind == runorder.ImportKindSketches {
		records = importing.NormalizeRows(sheet.Rows)
	} else {
		techRows = importing.NormalizeTechRows(sheet.Rows)
	}
	normalized := len(records) + len(techRows)

	if !opts.apply {
		return writeJSONLine(map[string]any{
			"dry_run":    true,
			"show_id":    opts.showID,
			"kind":       kind,
			"rows":       len(sheet.Rows),
			"skipped":    sheet.Skipped,
			"normalized": normalized,
		})
	}

	conf := configuration.Use()
	pool, err := pgxpool.New(ctx, conf.Database.Opts)
	if err != nil {
		return withCode(exitDB, fmt.Errorf("connect: %w", err))
	}
	defer pool.Close()
	if err := persistence.EnsureSchema(ctx, pool); err != nil {
		return withCode(exitDB, fmt.Errorf("ensure schema: %w", err))
	}
	ctx = composables.WithPool(ctx, pool)

	importService := services.NewImportService(
		persistence.NewShowRepository(),
		persistence.NewSketchRepository(),
		persistence.NewCharacterPerformerRepository(),
		persistence.NewTechDetailsRepository(),
		eventbus.NewEventPublisher(conf.Logger()),
	)

	var outcomes []runorder.ImportOutcome
	if kind == runorder.ImportKindSketches {
		outcomes, err = importService.ImportSketches(ctx, opts.showID, records)
	} else {
		outcomes, err = importService.ImportTechDetails(ctx, opts.showID, techRows)
	}
	if err != nil {
		return withCode(exitValidation, err)
	}

	succeeded := 0
	for _, o := range outcomes {
		if o.Success {
			succeeded++
		}
	}
	return writeJSONLine(map[string]any{
		"applied":   true,
		"show_id":   opts.showID,
		"kind":      kind,
		"skipped":   sheet.Skipped,
		"succeeded": succeeded,
		"failed":    len(outcomes) - succeeded,
		"results":   outcomes,
	})
}
