package normalizers

import (
	"fmt"

	"github.com/username/settleadmin/backend/src/models"
)

// ForKind returns the normalizer for a backend collection. The caller
// supplies the kind tag; payload content is never sniffed.
func ForKind(kind models.RecordKind) (Normalizer, error) {
	switch kind {
	case models.KindServiceOrder:
		return newServiceOrderNormalizer(), nil
	case models.KindProductOrder:
		return newProductOrderNormalizer(), nil
	case models.KindPayment:
		return newPaymentNormalizer(), nil
	case models.KindUser:
		return newUserNormalizer(), nil
	case models.KindWebinar:
		return newWebinarNormalizer(), nil
	case models.KindProduct:
		return newCatalogProductNormalizer(), nil
	default:
		return nil, fmt.Errorf("no normalizer available for kind: %s", kind)
	}
}
