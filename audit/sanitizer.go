package audit

import (
	"sync"

	"github.com/goliatone/go-masker"
	"github.com/goliatone/go-trainops/pkg/types"
)

// SanitizerConfig controls the masker used when reading audit rows back out.
type SanitizerConfig struct {
	Masker *masker.Masker
}

var defaultMaskerOnce sync.Once

// DefaultMasker returns a masker instance with the token denylist registered.
func DefaultMasker() *masker.Masker {
	defaultMaskerOnce.Do(func() {
		if masker.Default == nil {
			return
		}
		registerDefaultMaskFields(masker.Default)
	})
	return masker.Default
}

// SanitizeRecord masks token material stored in the audit data payload. Raw
// rows keep the full values; only the read side is masked.
func SanitizeRecord(mask *masker.Masker, record types.AuditRecord) types.AuditRecord {
	if len(record.NewData) == 0 {
		return record
	}
	if mask == nil {
		mask = DefaultMasker()
	}
	if mask == nil {
		record.NewData = map[string]any{}
		return record
	}

	cloned := cloneMap(record.NewData)
	masked, err := mask.Mask(cloned)
	if err != nil {
		record.NewData = map[string]any{}
		return record
	}

	switch masked := masked.(type) {
	case map[string]any:
		record.NewData = masked
	default:
		record.NewData = map[string]any{}
	}
	return record
}

// SanitizeRecords masks token material for every record in the slice.
func SanitizeRecords(mask *masker.Masker, records []types.AuditRecord) []types.AuditRecord {
	if len(records) == 0 {
		return records
	}
	out := make([]types.AuditRecord, 0, len(records))
	for _, record := range records {
		out = append(out, SanitizeRecord(mask, record))
	}
	return out
}

func registerDefaultMaskFields(mask *masker.Masker) {
	if mask == nil {
		return
	}
	mask.RegisterMaskField("invitation_token", "filled4")
	mask.RegisterMaskField("qr_code_token", "filled4")
	mask.RegisterMaskField("token", "filled4")
}
