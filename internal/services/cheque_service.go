package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"docsort/internal/fileingest"
	"docsort/internal/models"
)

// ChequeExtractor reads the structured fields off one cheque image. A
// failed or unreadable extraction degrades to an all-null record; it never
// returns an error.
type ChequeExtractor interface {
	Name() string
	Extract(ctx context.Context, imagePath string) models.ChequeRecord
}

// extractionPrompt instructs the model to read the Turkish cheque fields
// and answer with bare JSON, null for anything unreadable.
const extractionPrompt = `
Bu görüntüdeki Türk çeki/bankacılık belgesinden aşağıdaki bilgileri çıkar ve JSON formatında döndür.
Eğer bir bilgi görüntüde yoksa veya okunamazsa, o alan için null değeri kullan.

Çıkaracağın bilgiler:
- iban: IBAN numarası (TR ile başlayan 26 haneli kod)
- checkNumber: Çek numarası
- branchCode: Şube kodu
- accountNumber: Hesap numarası
- customerIdNumber: TC Kimlik numarası (11 haneli) veya VKN (10 haneli)
- bankCode: Banka kodu
- micrCode: MICR kodu (çekin altındaki manyetik kod)
- checkAmount: Çek tutarı (sadece sayısal değer, para birimi olmadan)

Lütfen sadece JSON formatında yanıt ver, başka açıklama ekleme:

{
    "iban": null,
    "checkNumber": null,
    "branchCode": null,
    "accountNumber": null,
    "customerIdNumber": null,
    "bankCode": null,
    "micrCode": null,
    "checkAmount": null
}
`

var chequeImageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true,
	".bmp": true, ".tiff": true, ".tif": true,
}

// ChequeService batch-extracts cheque fields from every image in the
// cheque category folder.
type ChequeService struct {
	extractor ChequeExtractor
	chequeDir string
}

// NewChequeService creates a cheque service reading from chequeDir.
func NewChequeService(extractor ChequeExtractor, chequeDir string) *ChequeService {
	return &ChequeService{extractor: extractor, chequeDir: chequeDir}
}

// ProcessAll extracts a record for every cheque image, sorted by path. A
// missing cheque folder or an empty one yields an empty result, not an
// error.
func (s *ChequeService) ProcessAll(ctx context.Context) ([]models.ChequeRecord, error) {
	if _, err := os.Stat(s.chequeDir); err != nil {
		log.Warnf("cheque folder not found: %s", s.chequeDir)
		return []models.ChequeRecord{}, nil
	}

	files, err := fileingest.DiscoverFiles(ctx, s.chequeDir)
	if err != nil {
		return nil, fmt.Errorf("list cheque files: %w", err)
	}

	var paths []string
	for _, f := range files {
		if chequeImageExtensions[strings.ToLower(filepath.Ext(f.Path))] {
			paths = append(paths, f.Path)
		}
	}
	if len(paths) == 0 {
		log.Info("no cheque files found")
		return []models.ChequeRecord{}, nil
	}
	log.Infof("found %d cheque files, extracting with %s", len(paths), s.extractor.Name())

	results := make([]models.ChequeRecord, 0, len(paths))
	for i, path := range paths {
		log.Infof("extracting %d/%d: %s", i+1, len(paths), filepath.Base(path))
		results = append(results, s.extractor.Extract(ctx, path))
	}
	return results, nil
}

// ProcessAndSave extracts all cheques and writes the records as a JSON
// array to outputPath. It returns the records for reporting.
func (s *ChequeService) ProcessAndSave(ctx context.Context, outputPath string) ([]models.ChequeRecord, error) {
	results, err := s.ProcessAll(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal cheque results: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("write cheque results: %w", err)
	}
	log.Infof("cheque results saved to %s", outputPath)
	return results, nil
}

// parseChequeResponse turns a raw model reply into a record, tolerating
// markdown code fences, missing fields, and numeric values. Anything it
// cannot parse degrades to the all-null record.
func parseChequeResponse(raw, fileName string) models.ChequeRecord {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var fields map[string]any
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		log.Warnf("unparsable extractor response for %s: %v", fileName, err)
		return models.NullChequeRecord(fileName)
	}

	rec := models.NullChequeRecord(fileName)
	rec.IBAN = stringField(fields, "iban")
	rec.CheckNumber = stringField(fields, "checkNumber")
	rec.BranchCode = stringField(fields, "branchCode")
	rec.AccountNumber = stringField(fields, "accountNumber")
	rec.CustomerIDNumber = stringField(fields, "customerIdNumber")
	rec.BankCode = stringField(fields, "bankCode")
	rec.MICRCode = stringField(fields, "micrCode")
	rec.CheckAmount = stringField(fields, "checkAmount")
	return rec
}

// stringField reads a nullable field, converting numbers the model emits
// without quotes.
func stringField(fields map[string]any, key string) *string {
	v, ok := fields[key]
	if !ok || v == nil {
		return nil
	}
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		s = strconv.FormatBool(t)
	default:
		return nil
	}
	if s == "" {
		return nil
	}
	return &s
}
