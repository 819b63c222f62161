package revenue

import (
	"github.com/shopspring/decimal"

	"fleetrent-backend/internal/domain"
)

// GuaranteeBucket names one slice of the deposit ledger. Status and Returned
// are optional predicates; Type is optional too, nil meaning any instrument.
type GuaranteeBucket struct {
	Name     string
	Status   *domain.RentStatus
	Returned *bool
	Type     *domain.PaymentType
}

// Matches reports whether the rent's guarantee belongs to the bucket.
func (b GuaranteeBucket) Matches(r domain.Rent) bool {
	if b.Status != nil && r.Status != *b.Status {
		return false
	}
	if b.Returned != nil && r.IsGuaranteeReturned != *b.Returned {
		return false
	}
	if b.Type != nil && r.GuaranteeType != *b.Type {
		return false
	}
	return true
}

const (
	BucketDuty       = "duty"
	BucketCashDuty   = "cash_duty"
	BucketCardDuty   = "card_duty"
	BucketCashPledge = "cash_pledge"
	BucketCardPledge = "card_pledge"
)

var (
	statusDuty  = domain.RentStatusDuty
	notReturned = false
	cash        = domain.PaymentTypeCash
	card        = domain.PaymentTypeCard
)

// GuaranteeBuckets is the single definition of the deposit breakdown, used to
// build store filters and to classify rents in memory.
var GuaranteeBuckets = []GuaranteeBucket{
	{Name: BucketDuty, Status: &statusDuty},
	{Name: BucketCashDuty, Status: &statusDuty, Type: &cash},
	{Name: BucketCardDuty, Status: &statusDuty, Type: &card},
	{Name: BucketCashPledge, Returned: &notReturned, Type: &cash},
	{Name: BucketCardPledge, Returned: &notReturned, Type: &card},
}

// SetBucket stores amount on the breakdown field named by bucket.
func SetBucket(b *domain.GuaranteeBreakdown, bucket string, amount decimal.Decimal) {
	switch bucket {
	case BucketDuty:
		b.Duty = amount
	case BucketCashDuty:
		b.CashDuty = amount
	case BucketCardDuty:
		b.CardDuty = amount
	case BucketCashPledge:
		b.CashPledge = amount
	case BucketCardPledge:
		b.CardPledge = amount
	}
}

// ClassifyGuarantees builds the breakdown of an in-memory rent set.
func ClassifyGuarantees(rents []domain.Rent) domain.GuaranteeBreakdown {
	var out domain.GuaranteeBreakdown
	sums := make(map[string]decimal.Decimal, len(GuaranteeBuckets))
	for _, r := range rents {
		for _, b := range GuaranteeBuckets {
			if b.Matches(r) {
				sums[b.Name] = sums[b.Name].Add(r.GuaranteeAmount)
			}
		}
	}
	for _, b := range GuaranteeBuckets {
		SetBucket(&out, b.Name, sums[b.Name])
	}
	return out
}
