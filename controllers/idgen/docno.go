package idgen

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/rand"
	"gorm.io/gorm"
)

// Document number prefixes. These are the human-readable identifiers that
// travel on paperwork, not surrogate keys.
const (
	PrefixJobOrder      = "JO"
	PrefixManifest      = "MF"
	PrefixDeliveryOrder = "DO"
	PrefixInvoice       = "INV"
)

const maxDocNoAttempts = 10

// FormatDocNo builds <prefix><YYMMDD><4-digit suffix>, e.g. JO2508310042.
func FormatDocNo(prefix string, t time.Time, suffix int) string {
	return fmt.Sprintf("%s%s%04d", prefix, t.Format("060102"), suffix%10000)
}

// GenerateDocNo returns a document number that does not yet exist in
// table.column. The suffix is random, retried until unique, so concurrent
// creators do not fight over a sequence row.
func GenerateDocNo(db *gorm.DB, prefix, table, column string) (string, error) {
	for i := 0; i < maxDocNoAttempts; i++ {
		docNo := FormatDocNo(prefix, time.Now(), int(rand.Int31n(10000)))

		var count int64
		if err := db.Table(table).Where(column+" = ?", docNo).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return docNo, nil
		}
	}
	return "", errors.New("failed to generate a unique document number")
}
