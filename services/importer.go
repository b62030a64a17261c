package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"smartpick/models"
	"smartpick/storage"
	"smartpick/utils"
)

const defaultImageURL = "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?w=400"

// Importer turns raw catalog records into scored phones and upserts them.
type Importer struct {
	store  storage.PhoneStore
	logger *utils.Logger
}

// NewImporter creates an Importer backed by the given store.
func NewImporter(store storage.PhoneStore, logger *utils.Logger) *Importer {
	return &Importer{store: store, logger: logger}
}

// ImportReport summarizes one ingestion run.
type ImportReport struct {
	Total    int
	Imported int
	Skipped  int
	Failed   int
}

// TransformRaw validates one raw record and derives its feature scores.
// Records missing brand, model, or a positive parseable price are rejected;
// every other malformed field degrades to a scorer baseline instead.
func TransformRaw(raw *models.RawPhone) (*models.Phone, bool) {
	brand := strings.TrimSpace(raw.Brand)
	model := strings.TrimSpace(raw.Model)

	price, ok := ParsePrice(raw.RawPrice)
	if brand == "" || model == "" || !ok || price <= 0 {
		return nil, false
	}

	storageText, ram := SplitMemory(raw.MemoryStorage)

	imageURL := strings.TrimSpace(raw.ImageURL)
	if imageURL == "" {
		imageURL = defaultImageURL
	}
	productURL := strings.TrimSpace(raw.ProductURL)
	if productURL == "" {
		productURL = "#"
	}

	phone := &models.Phone{
		Brand:       brand,
		Model:       model,
		Price:       price,
		Display:     strings.TrimSpace(raw.Display),
		Processor:   strings.TrimSpace(raw.Processor),
		RAM:         ram,
		Storage:     storageText,
		Battery:     strings.TrimSpace(raw.Battery),
		Camera:      strings.TrimSpace(raw.Camera),
		FrontCamera: strings.TrimSpace(raw.FrontCamera),
		ImageURL:    imageURL,
		ProductURL:  productURL,
		Scores:      Score(raw, price),
	}
	return phone, true
}

// ImportCSV reads a phone_data.csv export and upserts every valid row.
// Invalid rows are skipped and per-record persistence failures are counted
// without aborting the batch.
func (im *Importer) ImportCSV(ctx context.Context, path string) (*ImportReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("import: open %q: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("import: read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	field := func(row []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	report := &ImportReport{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			im.logger.Warn("[import] Unreadable row skipped: %v", err)
			report.Skipped++
			continue
		}

		report.Total++
		raw := &models.RawPhone{
			Brand:         field(row, "brand"),
			Model:         field(row, "model"),
			RawPrice:      field(row, "price"),
			MemoryStorage: field(row, "memory_and_storage"),
			Display:       field(row, "display"),
			Camera:        field(row, "camera"),
			FrontCamera:   field(row, "front_camera"),
			Processor:     field(row, "processor"),
			Battery:       field(row, "battery"),
			ImageURL:      field(row, "image"),
			ProductURL:    field(row, "url"),
			Source:        "csv",
		}

		phone, ok := TransformRaw(raw)
		if !ok {
			im.logger.Warn("[import] Skipping invalid row: %s %s", raw.Brand, raw.Model)
			report.Skipped++
			continue
		}

		if err := im.store.UpsertPhone(ctx, phone); err != nil {
			im.logger.Error("[import] Upsert failed for %s %s: %v", phone.Brand, phone.Model, err)
			report.Failed++
			continue
		}
		report.Imported++

		if report.Imported%10 == 0 {
			im.logger.Info("[import] Processed %d/%d phones...", report.Imported, report.Total)
		}
	}

	im.logger.Info("[import] Done — imported: %d | skipped: %d | failed: %d",
		report.Imported, report.Skipped, report.Failed)
	return report, nil
}

// ImportRaw scores and upserts scraped records directly, without a CSV
// round trip.
func (im *Importer) ImportRaw(ctx context.Context, raws []*models.RawPhone) *ImportReport {
	report := &ImportReport{Total: len(raws)}

	for _, raw := range raws {
		phone, ok := TransformRaw(raw)
		if !ok {
			im.logger.Warn("[import] Skipping invalid record: %s %s", raw.Brand, raw.Model)
			report.Skipped++
			continue
		}

		if err := im.store.UpsertPhone(ctx, phone); err != nil {
			im.logger.Error("[import] Upsert failed for %s %s: %v", phone.Brand, phone.Model, err)
			report.Failed++
			continue
		}
		report.Imported++
	}

	return report
}

// UpdateBatteryScores recomputes the battery score of every stored phone
// from its persisted battery text, touching no other fields.
func (im *Importer) UpdateBatteryScores(ctx context.Context) (int, error) {
	phones, err := im.store.AllPhones(ctx)
	if err != nil {
		return 0, fmt.Errorf("battery update: load phones: %w", err)
	}

	im.logger.Info("[battery] Found %d phones to update", len(phones))

	updated := 0
	for _, phone := range phones {
		score := BatteryScore(phone.Battery)
		if score == phone.Scores.Battery {
			continue
		}

		if err := im.store.UpdateBatteryScore(ctx, phone.ID, score); err != nil {
			im.logger.Error("[battery] Update failed for %s %s: %v", phone.Brand, phone.Model, err)
			continue
		}
		updated++

		if updated%50 == 0 {
			im.logger.Info("[battery] Updated %d/%d phones...", updated, len(phones))
		}
	}

	im.logger.Info("[battery] Updated %d phone battery scores", updated)
	return updated, nil
}
