package normalizers

import (
	"encoding/json"

	"github.com/username/settleadmin/backend/src/models"
)

// Normalizer maps one backend collection payload into CommerceRecords.
// Output order mirrors input order. Items that cannot be minimally
// normalized (no id) are dropped and reported as warnings; they never abort
// the rest of the batch. The returned error covers only an undecodable
// payload as a whole.
type Normalizer interface {
	Kind() models.RecordKind
	Normalize(data json.RawMessage) ([]models.CommerceRecord, []Warning, error)
}

// Warning describes a single item that was skipped or degraded during
// normalization. Index refers to the item's position in the raw payload.
type Warning struct {
	Index  int
	Reason string
}
