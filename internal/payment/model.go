package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is a recorded charge against a member. Reference is an opaque
// identifier handed to external systems; no gateway integration happens here.
type Payment struct {
	ID          int             `db:"id" json:"id"`
	MemberID    int             `db:"member_id" json:"member_id"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	Method      string          `db:"method" json:"method"`
	Reference   string          `db:"reference" json:"reference"`
	Description string          `db:"description" json:"description"`
	RecordedAt  time.Time       `db:"recorded_at" json:"recorded_at"`
}
