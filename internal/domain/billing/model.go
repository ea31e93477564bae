package billing

import (
	"github.com/healthcare/healthcare/internal/domain/identity"
	"github.com/healthcare/healthcare/internal/platform/patch"
)

// Billing is an invoice for services rendered to a patient. Amounts are not
// required to reconcile: payment plus outstanding may differ from invoiced.
type Billing struct {
	ID             int              `json:"id"`
	BillDate       string           `json:"bill_date"`
	BillTime       string           `json:"bill_time"`
	Patient        identity.Patient `json:"patient"`
	Services       []string         `json:"services"`
	InvoicedAmount float64          `json:"invoiced_amount"`
	Payment        float64          `json:"payment"`
	Outstanding    float64          `json:"outstanding"`
}

func (b Billing) GetID() int { return b.ID }

func (b Billing) WithID(id int) Billing {
	b.ID = id
	return b
}

// Clone copies the services list so stored bills never share it.
func (b Billing) Clone() Billing {
	if b.Services != nil {
		b.Services = append([]string(nil), b.Services...)
	}
	return b
}

type BillingPatch struct {
	ID             *int          `json:"id,omitempty"`
	BillDate       *string       `json:"bill_date,omitempty"`
	BillTime       *string       `json:"bill_time,omitempty"`
	Patient        *identity.Ref `json:"patient,omitempty"`
	Services       []string      `json:"services,omitempty"`
	InvoicedAmount *float64      `json:"invoiced_amount,omitempty"`
	Payment        *float64      `json:"payment,omitempty"`
	Outstanding    *float64      `json:"outstanding,omitempty"`
}

func (bp BillingPatch) ApplyTo(cur Billing) Billing {
	patch.Set(&cur.BillDate, bp.BillDate)
	patch.Set(&cur.BillTime, bp.BillTime)
	patch.SetSlice(&cur.Services, bp.Services)
	patch.Set(&cur.InvoicedAmount, bp.InvoicedAmount)
	patch.Set(&cur.Payment, bp.Payment)
	patch.Set(&cur.Outstanding, bp.Outstanding)
	return cur
}

type BillingCriteria struct {
	PatientFirstName *string
	PatientLastName  *string
	FromDate         *string
	ToDate           *string
	MinAmount        *float64
	MaxAmount        *float64
}
