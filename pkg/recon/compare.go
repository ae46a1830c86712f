package recon

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/joaomendes-ine/etl-workflow/pkg/recon/grid"
	"github.com/joaomendes-ine/etl-workflow/pkg/recon/match"
	"github.com/joaomendes-ine/etl-workflow/pkg/recon/models"
	"github.com/joaomendes-ine/etl-workflow/pkg/recon/normalize"
	"github.com/joaomendes-ine/etl-workflow/pkg/recon/parser"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Compare reconciles one sheet of the recreated workbook against the same
// sheet of the published workbook. A sheet with no detectable data on either
// side is not an error: the result flags it and every point of the other
// side is reported as missing.
func Compare(sheet string, recreated, published grid.Workbook, cfg Config) (*models.SheetResult, error) {
	n, err := normalize.New(cfg.Normalize)
	if err != nil {
		return nil, errors.Wrap(err, "invalid normalization rules")
	}
	return compareSheet(sheet, recreated, published, n, cfg)
}

func compareSheet(sheet string, recreated, published grid.Workbook, n *normalize.Normalizer, cfg Config) (*models.SheetResult, error) {
	log := cfg.Logger().With(zap.String("sheet", sheet))

	pub, err := extract(published, sheet, n, cfg.Parser)
	if err != nil {
		return nil, err
	}
	rec, err := extract(recreated, sheet, n, cfg.Parser)
	if err != nil {
		return nil, err
	}

	res := match.New(n, cfg.MatchOptions()).Reconcile(sheet, rec.Points, pub.Points)
	res.PublishedStage = pub.Region.Stage
	res.RecreatedStage = rec.Region.Stage
	res.PublishedNoData = len(pub.Points) == 0
	res.RecreatedNoData = len(rec.Points) == 0

	if res.NoData() {
		log.Warn("no data detected",
			zap.Bool("published", res.PublishedNoData),
			zap.Bool("recreated", res.RecreatedNoData))
	}
	if len(res.Duplicates) > 0 {
		log.Warn("duplicate coordinates ignored", zap.Int("count", len(res.Duplicates)))
	}
	log.Debug("sheet reconciled",
		zap.String("published_stage", res.PublishedStage),
		zap.String("recreated_stage", res.RecreatedStage),
		zap.Int("published_fallback_headers", pub.FallbackHeaders),
		zap.Int("recreated_fallback_headers", rec.FallbackHeaders),
		zap.Int("matches", res.CorrectMatches),
		zap.Int("differences", res.ValueDifferences),
		zap.Int("missing_in_published", res.MissingInPublished),
		zap.Int("missing_in_recreated", res.MissingInRecreated))
	return res, nil
}

// extract loads a sheet and its data points. ErrNoDataDetected is absorbed
// into an empty extraction; load failures become InputErrors.
func extract(wb grid.Workbook, sheet string, n *normalize.Normalizer, params parser.Params) (*parser.Extraction, error) {
	s, err := wb.Sheet(sheet)
	if err != nil {
		return nil, NewInputError(wb.Path(), sheet, err)
	}
	ext, err := parser.ExtractPoints(s, n, params)
	if err != nil && !errors.Is(err, parser.ErrNoDataDetected) {
		return nil, NewInputError(wb.Path(), sheet, err)
	}
	return ext, nil
}

// CommonSheets lists the sheets of a that also exist in b, in a's order.
func CommonSheets(a, b grid.Workbook) []string {
	inB := make(map[string]bool)
	for _, name := range b.SheetNames() {
		inB[name] = true
	}
	var common []string
	for _, name := range a.SheetNames() {
		if inB[name] {
			common = append(common, name)
		}
	}
	return common
}

// CompareFiles reconciles the given sheets of two workbook files. With no
// sheets it compares every sheet present in both files. Sheets run
// concurrently, each on its own workbook handles; a failure in one sheet is
// recorded in its result and does not stop the others.
func CompareFiles(ctx context.Context, publishedPath, recreatedPath string, sheets []string, cfg Config) (*models.Report, error) {
	log := cfg.Logger()
	n, err := normalize.New(cfg.Normalize)
	if err != nil {
		return nil, errors.Wrap(err, "invalid normalization rules")
	}

	if len(sheets) == 0 {
		sheets, err = commonSheetsOf(publishedPath, recreatedPath)
		if err != nil {
			return nil, err
		}
		if len(sheets) == 0 {
			return nil, errors.WithHint(
				errors.Newf("no sheets in common between %s and %s", publishedPath, recreatedPath),
				"pass the sheet names explicitly")
		}
	}

	report := &models.Report{
		RunID:         uuid.NewString(),
		PublishedFile: publishedPath,
		RecreatedFile: recreatedPath,
		Tolerance:     cfg.NumericTolerance,
		Sheets:        make([]models.SheetResult, len(sheets)),
	}
	log.Info("comparing workbooks",
		zap.String("run_id", report.RunID),
		zap.String("published", publishedPath),
		zap.String("recreated", recreatedPath),
		zap.Int("sheets", len(sheets)))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers())
	for i, sheet := range sheets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				report.Sheets[i] = models.SheetResult{Sheet: sheet, Error: err.Error()}
				return nil
			}
			report.Sheets[i] = compareFileSheet(gctx, publishedPath, recreatedPath, sheet, n, cfg)
			return nil
		})
	}
	_ = g.Wait()

	report.GeneratedAt = time.Now().UTC()
	report.Summarize()

	for i := range report.Sheets {
		if sh := &report.Sheets[i]; sh.Failed() {
			log.Error("sheet failed", zap.String("sheet", sh.Sheet), zap.String("error", sh.Error))
		}
	}
	log.Info("comparison finished",
		zap.String("run_id", report.RunID),
		zap.Int("compared", report.Summary.SheetsCompared),
		zap.Int("failed", report.Summary.SheetsFailed),
		zap.Float64("accuracy", report.Summary.Accuracy))

	if err := ctx.Err(); err != nil {
		return report, errors.Wrap(err, "comparison interrupted")
	}
	return report, nil
}

// compareFileSheet opens both files and reconciles one sheet, bounded by
// the configured sheet timeout.
func compareFileSheet(ctx context.Context, publishedPath, recreatedPath, sheet string, n *normalize.Normalizer, cfg Config) models.SheetResult {
	if cfg.SheetTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.SheetTimeout)
		defer cancel()
	}

	done := make(chan models.SheetResult, 1)
	go func() {
		done <- openAndCompare(publishedPath, recreatedPath, sheet, n, cfg)
	}()

	select {
	case res := <-done:
		return res
	case <-ctx.Done():
		return models.SheetResult{
			Sheet: sheet,
			Error: errors.Wrapf(ctx.Err(), "sheet %q", sheet).Error(),
		}
	}
}

func openAndCompare(publishedPath, recreatedPath, sheet string, n *normalize.Normalizer, cfg Config) models.SheetResult {
	failed := func(err error) models.SheetResult {
		return models.SheetResult{Sheet: sheet, Error: err.Error()}
	}

	published, err := grid.Open(publishedPath)
	if err != nil {
		return failed(NewInputError(publishedPath, sheet, err))
	}
	defer published.Close()

	recreated, err := grid.Open(recreatedPath)
	if err != nil {
		return failed(NewInputError(recreatedPath, sheet, err))
	}
	defer recreated.Close()

	res, err := compareSheet(sheet, recreated, published, n, cfg)
	if err != nil {
		return failed(err)
	}
	return *res
}

func commonSheetsOf(publishedPath, recreatedPath string) ([]string, error) {
	published, err := grid.Open(publishedPath)
	if err != nil {
		return nil, NewInputError(publishedPath, "", err)
	}
	defer published.Close()

	recreated, err := grid.Open(recreatedPath)
	if err != nil {
		return nil, NewInputError(recreatedPath, "", err)
	}
	defer recreated.Close()

	return CommonSheets(published, recreated), nil
}

// ExtractFile lists the data points of one sheet of a workbook file.
func ExtractFile(path, sheet string, cfg Config) (*parser.Extraction, error) {
	n, err := normalize.New(cfg.Normalize)
	if err != nil {
		return nil, errors.Wrap(err, "invalid normalization rules")
	}

	wb, err := grid.Open(path)
	if err != nil {
		return nil, NewInputError(path, sheet, err)
	}
	defer wb.Close()

	s, err := wb.Sheet(sheet)
	if err != nil {
		return nil, NewInputError(path, sheet, err)
	}
	return parser.ExtractPoints(s, n, cfg.Parser)
}
