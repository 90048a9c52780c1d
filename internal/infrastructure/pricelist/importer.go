package pricelist

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/entity"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/enum"
	domainRepo "github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/repository"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	itemsSheet     = "Прайс"
	modifiersSheet = "Модифікатори"
)

// ImportResult summarizes an import run. Rows that fail to parse are
// skipped and counted, they do not abort the run.
type ImportResult struct {
	Categories  int      `json:"categories"`
	Items       int      `json:"items"`
	Modifiers   int      `json:"modifiers"`
	SkippedRows []string `json:"skipped_rows,omitempty"`
}

// Importer loads the service price list from an Excel workbook and upserts
// it into the catalog. Existing positions are updated by their natural key,
// nothing is deleted.
type Importer struct {
	catalogRepo domainRepo.CatalogRepository
	logger      *zap.Logger
}

// NewImporter creates a new price list importer.
func NewImporter(catalogRepo domainRepo.CatalogRepository, logger *zap.Logger) *Importer {
	return &Importer{catalogRepo: catalogRepo, logger: logger}
}

// Import reads the workbook and upserts categories, items and modifiers.
//
// The items sheet carries one priced position per row:
//
//	category code | category name | group | item name | unit | price (UAH)
//
// The modifiers sheet is optional:
//
//	code | name | type | value | group
func (i *Importer) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("pricelist: failed to open workbook: %w", err)
	}
	defer f.Close()

	result := &ImportResult{}

	if err := i.importItems(ctx, f, result); err != nil {
		return nil, err
	}
	if err := i.importModifiers(ctx, f, result); err != nil {
		return nil, err
	}

	i.logger.Info("price list imported",
		zap.Int("categories", result.Categories),
		zap.Int("items", result.Items),
		zap.Int("modifiers", result.Modifiers),
		zap.Int("skipped", len(result.SkippedRows)))

	return result, nil
}

func (i *Importer) importItems(ctx context.Context, f *excelize.File, result *ImportResult) error {
	rows, err := f.GetRows(itemsSheet)
	if err != nil {
		return fmt.Errorf("pricelist: sheet %q not found: %w", itemsSheet, err)
	}

	seenCategories := map[string]*entity.ServiceCategory{}

	for idx, row := range rows {
		if idx == 0 {
			continue // header
		}
		if len(row) < 6 {
			result.SkippedRows = append(result.SkippedRows, fmt.Sprintf("%s row %d: too few columns", itemsSheet, idx+1))
			continue
		}

		code := strings.TrimSpace(row[0])
		categoryName := strings.TrimSpace(row[1])
		group := enum.CategoryGroup(strings.ToUpper(strings.TrimSpace(row[2])))
		itemName := strings.TrimSpace(row[3])
		unit := enum.UnitOfMeasure(strings.ToUpper(strings.TrimSpace(row[4])))
		priceStr := strings.TrimSpace(row[5])

		if code == "" || itemName == "" {
			result.SkippedRows = append(result.SkippedRows, fmt.Sprintf("%s row %d: missing code or name", itemsSheet, idx+1))
			continue
		}
		if !unit.IsValid() {
			result.SkippedRows = append(result.SkippedRows, fmt.Sprintf("%s row %d: unknown unit %q", itemsSheet, idx+1, row[4]))
			continue
		}

		price, err := parseKopecks(priceStr)
		if err != nil || price <= 0 {
			result.SkippedRows = append(result.SkippedRows, fmt.Sprintf("%s row %d: bad price %q", itemsSheet, idx+1, priceStr))
			continue
		}

		category, ok := seenCategories[code]
		if !ok {
			category = &entity.ServiceCategory{
				Code:      code,
				Name:      categoryName,
				Group:     group,
				SortOrder: len(seenCategories) + 1,
				Active:    true,
			}
			if err := i.catalogRepo.UpsertCategory(ctx, category); err != nil {
				return fmt.Errorf("pricelist: failed to upsert category %s: %w", code, err)
			}
			// the upsert may keep an existing row, reload to get its ID
			stored, err := i.catalogRepo.GetCategoryByCode(ctx, code)
			if err != nil {
				return err
			}
			if stored != nil {
				category = stored
			}
			seenCategories[code] = category
			result.Categories++
		}

		item := &entity.CatalogItem{
			CategoryID: category.ID,
			Name:       itemName,
			Unit:       unit,
			BasePrice:  price,
			Active:     true,
		}
		if err := i.catalogRepo.UpsertItem(ctx, item); err != nil {
			return fmt.Errorf("pricelist: failed to upsert item %s/%s: %w", code, itemName, err)
		}
		result.Items++
	}

	return nil
}

func (i *Importer) importModifiers(ctx context.Context, f *excelize.File, result *ImportResult) error {
	rows, err := f.GetRows(modifiersSheet)
	if err != nil {
		// the sheet is optional
		return nil
	}

	for idx, row := range rows {
		if idx == 0 {
			continue
		}
		if len(row) < 5 {
			result.SkippedRows = append(result.SkippedRows, fmt.Sprintf("%s row %d: too few columns", modifiersSheet, idx+1))
			continue
		}

		code := strings.TrimSpace(row[0])
		name := strings.TrimSpace(row[1])
		modType := enum.ModifierType(strings.ToUpper(strings.TrimSpace(row[2])))
		valueStr := strings.TrimSpace(row[3])
		group := enum.CategoryGroup(strings.ToUpper(strings.TrimSpace(row[4])))

		if code == "" || name == "" {
			result.SkippedRows = append(result.SkippedRows, fmt.Sprintf("%s row %d: missing code or name", modifiersSheet, idx+1))
			continue
		}

		modifier := &entity.PriceModifier{
			Code:   code,
			Name:   name,
			Type:   modType,
			Group:  group,
			Active: true,
		}

		switch modType {
		case enum.ModifierPercentage:
			percent, err := strconv.ParseFloat(normalizeDecimal(valueStr), 64)
			if err != nil {
				result.SkippedRows = append(result.SkippedRows, fmt.Sprintf("%s row %d: bad percent %q", modifiersSheet, idx+1, valueStr))
				continue
			}
			modifier.Percent = percent
		case enum.ModifierFixed:
			amount, err := parseKopecks(valueStr)
			if err != nil {
				result.SkippedRows = append(result.SkippedRows, fmt.Sprintf("%s row %d: bad amount %q", modifiersSheet, idx+1, valueStr))
				continue
			}
			modifier.Amount = amount
		default:
			result.SkippedRows = append(result.SkippedRows, fmt.Sprintf("%s row %d: unknown modifier type %q", modifiersSheet, idx+1, row[2]))
			continue
		}

		if err := i.catalogRepo.UpsertModifier(ctx, modifier); err != nil {
			return fmt.Errorf("pricelist: failed to upsert modifier %s: %w", code, err)
		}
		result.Modifiers++
	}

	return nil
}

// parseKopecks converts a decimal UAH string ("250" or "250.50") to kopecks.
func parseKopecks(s string) (int64, error) {
	value, err := strconv.ParseFloat(normalizeDecimal(s), 64)
	if err != nil {
		return 0, err
	}
	return int64(math.Round(value * 100)), nil
}

// normalizeDecimal accepts a comma decimal separator, common in exported
// Ukrainian spreadsheets.
func normalizeDecimal(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
}
