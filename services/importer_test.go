package services

import (
	"context"
	"fmt"
	"testing"

	"smartpick/models"
	"smartpick/utils"
)

func newTestLogger() *utils.Logger { return utils.NewLogger() }

// fakePhoneStore keeps phones in memory keyed by (brand, model), mirroring
// the database upsert contract.
type fakePhoneStore struct {
	phones map[string]*models.Phone
	nextID int64
}

func newFakePhoneStore() *fakePhoneStore {
	return &fakePhoneStore{phones: make(map[string]*models.Phone)}
}

func phoneKey(brand, model string) string { return brand + "|" + model }

func (f *fakePhoneStore) UpsertPhone(_ context.Context, phone *models.Phone) error {
	key := phoneKey(phone.Brand, phone.Model)
	if existing, ok := f.phones[key]; ok {
		phone.ID = existing.ID
	} else {
		f.nextID++
		phone.ID = f.nextID
	}
	copied := *phone
	f.phones[key] = &copied
	return nil
}

func (f *fakePhoneStore) PhonesInPriceRange(_ context.Context, minPrice, maxPrice float64) ([]models.Phone, error) {
	var out []models.Phone
	for _, p := range f.phones {
		price := float64(p.Price)
		if price >= minPrice && price <= maxPrice {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePhoneStore) PhoneByID(_ context.Context, id int64) (*models.Phone, error) {
	for _, p := range f.phones {
		if p.ID == id {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakePhoneStore) AllPhones(_ context.Context) ([]models.Phone, error) {
	out := make([]models.Phone, 0, len(f.phones))
	for _, p := range f.phones {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePhoneStore) UpdateBatteryScore(_ context.Context, id int64, score int) error {
	for _, p := range f.phones {
		if p.ID == id {
			p.Scores.Battery = score
			return nil
		}
	}
	return fmt.Errorf("phone %d not found", id)
}

func TestTransformRawValid(t *testing.T) {
	raw := &models.RawPhone{
		Brand:         "Samsung",
		Model:         "Galaxy S24",
		RawPrice:      "₹79,999",
		MemoryStorage: "256GB 8GB RAM",
		Camera:        "50MP Triple",
		Battery:       "4000mAh",
		Processor:     "Snapdragon 8 Gen 3",
	}

	phone, ok := TransformRaw(raw)
	if !ok {
		t.Fatal("TransformRaw rejected a valid record")
	}

	if phone.Price != 79999 {
		t.Errorf("price = %d; want 79999", phone.Price)
	}
	if phone.Storage != "256GB" || phone.RAM != "8GB" {
		t.Errorf("memory split = (%q, %q); want (256GB, 8GB)", phone.Storage, phone.RAM)
	}
	if phone.Scores.Camera != 85 || phone.Scores.Performance != 95 {
		t.Errorf("scores = %+v; want camera 85, performance 95", phone.Scores)
	}
	if phone.ImageURL == "" || phone.ProductURL == "" {
		t.Error("image and product URLs must have defaults")
	}
}

func TestTransformRawRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		raw  models.RawPhone
	}{
		{"missing brand", models.RawPhone{Model: "X", RawPrice: "1000"}},
		{"missing model", models.RawPhone{Brand: "X", RawPrice: "1000"}},
		{"unparseable price", models.RawPhone{Brand: "X", Model: "Y", RawPrice: "N/A"}},
		{"empty price", models.RawPhone{Brand: "X", Model: "Y", RawPrice: ""}},
		{"zero price", models.RawPhone{Brand: "X", Model: "Y", RawPrice: "0"}},
	}

	for _, tt := range tests {
		if _, ok := TransformRaw(&tt.raw); ok {
			t.Errorf("%s: TransformRaw accepted an invalid record", tt.name)
		}
	}
}

func TestImportRawIdempotent(t *testing.T) {
	store := newFakePhoneStore()
	importer := NewImporter(store, newTestLogger())

	raws := []*models.RawPhone{
		{Brand: "Apple", Model: "iPhone 15", RawPrice: "₹79,900", Battery: "3877mAh"},
		{Brand: "Samsung", Model: "Galaxy S24", RawPrice: "₹74,999", Battery: "4000mAh"},
	}

	first := importer.ImportRaw(context.Background(), raws)
	if first.Imported != 2 {
		t.Fatalf("first run imported %d; want 2", first.Imported)
	}

	second := importer.ImportRaw(context.Background(), raws)
	if second.Imported != 2 {
		t.Fatalf("second run imported %d; want 2", second.Imported)
	}

	all, _ := store.AllPhones(context.Background())
	if len(all) != 2 {
		t.Errorf("store holds %d phones after re-import; want 2", len(all))
	}
}

func TestImportRawSkipsInvalid(t *testing.T) {
	store := newFakePhoneStore()
	importer := NewImporter(store, newTestLogger())

	raws := []*models.RawPhone{
		{Brand: "Apple", Model: "iPhone 15", RawPrice: "₹79,900"},
		{Brand: "", Model: "Ghost", RawPrice: "₹10,000"},
		{Brand: "Nokia", Model: "3310", RawPrice: "N/A"},
	}

	report := importer.ImportRaw(context.Background(), raws)

	if report.Imported != 1 || report.Skipped != 2 {
		t.Errorf("report = %+v; want 1 imported, 2 skipped", report)
	}
}

func TestUpdateBatteryScores(t *testing.T) {
	store := newFakePhoneStore()
	importer := NewImporter(store, newTestLogger())

	// Stored with a stale battery score; the battery text says 7000mAh.
	_ = store.UpsertPhone(context.Background(), &models.Phone{
		Brand: "Xiaomi", Model: "Power Max", Price: 20000,
		Battery: "7000mAh",
		Scores:  models.FeatureScores{Battery: 82},
	})
	// Already correct; must not count as updated.
	_ = store.UpsertPhone(context.Background(), &models.Phone{
		Brand: "Apple", Model: "iPhone 15", Price: 79900,
		Battery: "3877mAh",
		Scores:  models.FeatureScores{Battery: 72},
	})

	updated, err := importer.UpdateBatteryScores(context.Background())
	if err != nil {
		t.Fatalf("UpdateBatteryScores: %v", err)
	}
	if updated != 1 {
		t.Errorf("updated = %d; want 1", updated)
	}

	phone := store.phones[phoneKey("Xiaomi", "Power Max")]
	if phone.Scores.Battery != 98 {
		t.Errorf("battery score = %d; want 98", phone.Scores.Battery)
	}
}
