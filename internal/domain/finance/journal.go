package finance

import (
	"sort"

	"github.com/dixmit/sale-workflow/internal/domain/shared"
	"github.com/dixmit/sale-workflow/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// JournalType classifies journals
type JournalType string

const (
	JournalTypeBank     JournalType = "bank"
	JournalTypeCash     JournalType = "cash"
	JournalTypeSale     JournalType = "sale"
	JournalTypePurchase JournalType = "purchase"
	JournalTypeGeneral  JournalType = "general"
)

// IsValid checks if the journal type is known
func (t JournalType) IsValid() bool {
	switch t {
	case JournalTypeBank, JournalTypeCash, JournalTypeSale, JournalTypePurchase, JournalTypeGeneral:
		return true
	}
	return false
}

// PaymentType is the direction of a payment
type PaymentType string

const (
	PaymentTypeInbound  PaymentType = "inbound"
	PaymentTypeOutbound PaymentType = "outbound"
)

// DefaultPaymentType is used when no direction is given
const DefaultPaymentType = PaymentTypeInbound

// IsValid checks if the payment type is known
func (t PaymentType) IsValid() bool {
	return t == PaymentTypeInbound || t == PaymentTypeOutbound
}

// String returns the string representation of PaymentType
func (t PaymentType) String() string {
	return string(t)
}

// PaymentMethodLine is a payment method enabled on a journal for one
// direction, e.g. "manual" inbound on a bank journal.
type PaymentMethodLine struct {
	ID          uuid.UUID   `json:"id"`
	JournalID   uuid.UUID   `json:"journal_id"`
	Code        string      `json:"code"`
	Name        string      `json:"name"`
	PaymentType PaymentType `json:"payment_type"`
	Sequence    int         `json:"sequence"`
}

// Journal is an accounting journal. Only bank and cash journals can
// receive payments.
type Journal struct {
	shared.BaseEntity
	TenantID           uuid.UUID
	CompanyID          uuid.UUID
	Code               string
	Name               string
	Type               JournalType
	Currency           valueobject.Currency
	Active             bool
	PaymentMethodLines []PaymentMethodLine
}

// NewJournal creates a new active journal without payment methods
func NewJournal(tenantID, companyID uuid.UUID, code, name string, journalType JournalType) (*Journal, error) {
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COMPANY", "Company cannot be empty")
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Journal code cannot be empty")
	}
	if len(code) > 10 {
		return nil, shared.NewDomainError("INVALID_CODE", "Journal code cannot exceed 10 characters")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Journal name cannot be empty")
	}
	if !journalType.IsValid() {
		return nil, shared.NewDomainError("INVALID_JOURNAL_TYPE", "Journal type is not valid")
	}
	return &Journal{
		BaseEntity:         shared.NewBaseEntity(),
		TenantID:           tenantID,
		CompanyID:          companyID,
		Code:               code,
		Name:               name,
		Type:               journalType,
		Active:             true,
		PaymentMethodLines: make([]PaymentMethodLine, 0),
	}, nil
}

// SetCurrency sets the journal's own currency. An empty currency means
// the journal books in the company currency.
func (j *Journal) SetCurrency(currency valueobject.Currency) error {
	if !currency.IsZero() {
		if err := currency.Validate(); err != nil {
			return shared.NewDomainError("INVALID_CURRENCY", err.Error())
		}
	}
	j.Currency = currency
	j.Touch()
	return nil
}

// AddPaymentMethodLine enables a payment method on the journal
func (j *Journal) AddPaymentMethodLine(code, name string, paymentType PaymentType, sequence int) (*PaymentMethodLine, error) {
	if !j.IsPaymentJournal() {
		return nil, shared.NewDomainError("INVALID_JOURNAL_TYPE", "Payment methods can only be added to bank or cash journals")
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Payment method code cannot be empty")
	}
	if !paymentType.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_TYPE", "Invalid payment type")
	}
	for _, line := range j.PaymentMethodLines {
		if line.Code == code && line.PaymentType == paymentType {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Payment method already enabled on the journal")
		}
	}
	if name == "" {
		name = code
	}
	line := PaymentMethodLine{
		ID:          uuid.New(),
		JournalID:   j.ID,
		Code:        code,
		Name:        name,
		PaymentType: paymentType,
		Sequence:    sequence,
	}
	j.PaymentMethodLines = append(j.PaymentMethodLines, line)
	j.Touch()
	return &line, nil
}

// IsPaymentJournal reports whether payments can be registered on the journal
func (j *Journal) IsPaymentJournal() bool {
	return j.Type == JournalTypeBank || j.Type == JournalTypeCash
}

// AvailablePaymentMethodLines returns the lines enabled for the given
// direction ordered by sequence, then name.
func (j *Journal) AvailablePaymentMethodLines(paymentType PaymentType) []PaymentMethodLine {
	lines := make([]PaymentMethodLine, 0, len(j.PaymentMethodLines))
	for _, line := range j.PaymentMethodLines {
		if line.PaymentType == paymentType {
			lines = append(lines, line)
		}
	}
	sort.SliceStable(lines, func(a, b int) bool {
		if lines[a].Sequence != lines[b].Sequence {
			return lines[a].Sequence < lines[b].Sequence
		}
		return lines[a].Name < lines[b].Name
	})
	return lines
}

// FindPaymentMethodLine returns the line with the given id, or nil
func (j *Journal) FindPaymentMethodLine(id uuid.UUID) *PaymentMethodLine {
	for i := range j.PaymentMethodLines {
		if j.PaymentMethodLines[i].ID == id {
			return &j.PaymentMethodLines[i]
		}
	}
	return nil
}

// JournalCurrency returns the currency payments on the journal are booked
// in: the journal's own currency, or the company currency.
func JournalCurrency(journal *Journal, company *Company) valueobject.Currency {
	if journal == nil {
		return ""
	}
	if !journal.Currency.IsZero() {
		return journal.Currency
	}
	if company == nil {
		return ""
	}
	return company.Currency
}
