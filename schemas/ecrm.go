package schemas

import (
	"encoding/json"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ECRM shapes talk to the fiscal cash-register bridge. All amounts are
// integer minor units, as the device protocol requires; camelCase field
// names are the bridge's contract.

type ECRMItem struct {
	Quantity int `json:"quantity"`
	Price    int `json:"price"`
}

func (i ECRMItem) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Quantity, validation.Required, validation.Min(1)),
		validation.Field(&i.Price, validation.Min(0)),
	)
}

type ECRMPrintRequest struct {
	CRN              int        `json:"crn"`
	CardAmount       int        `json:"cardAmount"`
	CashAmount       int        `json:"cashAmount"`
	PartialAmount    int        `json:"partialAmount"`
	PrePaymentAmount int        `json:"prePaymentAmount"`
	CashierID        int        `json:"cashierId"`
	Mode             int        `json:"mode"`
	Items            []ECRMItem `json:"items"`
}

func (r ECRMPrintRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CRN, validation.Required, validation.Min(1)),
		validation.Field(&r.CardAmount, validation.Min(0)),
		validation.Field(&r.CashAmount, validation.Min(0)),
		validation.Field(&r.PartialAmount, validation.Min(0)),
		validation.Field(&r.PrePaymentAmount, validation.Min(0)),
		validation.Field(&r.Items, validation.Required, validation.By(r.itemsCoverTotal)),
	)
}

// itemsCoverTotal checks that the line items sum to the tendered amount.
func (r ECRMPrintRequest) itemsCoverTotal(value interface{}) error {
	items, _ := value.([]ECRMItem)
	sum := 0
	for _, it := range items {
		sum += it.Quantity * it.Price
	}
	if sum != r.CardAmount+r.CashAmount {
		return errors.New("line items must sum to cardAmount + cashAmount")
	}
	return nil
}

// Total is the amount the fiscal result is expected to echo back.
func (r ECRMPrintRequest) Total() int {
	return r.CardAmount + r.CashAmount
}

type ECRMCheckConnRequest struct {
	CRN int `json:"crn"`
}

func (r ECRMCheckConnRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CRN, validation.Required, validation.Min(1)),
	)
}

type ECRMResult struct {
	ReceiptID string `json:"receiptId"`
	CRN       string `json:"crn"`
	SN        string `json:"sn"`
	TIN       string `json:"tin"`
	Taxpayer  string `json:"taxpayer"`
	Address   string `json:"address"`
	Time      int64  `json:"time"`
	Fiscal    string `json:"fiscal"`
	Total     int    `json:"total"`
	Change    int    `json:"change"`
	QR        string `json:"qr"`

	// Error holds the bare-string result the bridge sends on failures.
	Error string `json:"-"`
}

// UnmarshalJSON accepts both result shapes the bridge emits: an object
// on success and a plain string on device errors.
func (r *ECRMResult) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		r.Error = s
		return nil
	}

	type result ECRMResult
	var v result
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = ECRMResult(v)
	return nil
}

type ECRMResponse struct {
	Code    int        `json:"code"`
	Message string     `json:"message"`
	Result  ECRMResult `json:"result"`
}
