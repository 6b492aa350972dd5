package services

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CustomerInfo is the customer block printed on the estimate document.
// It plays no role in pricing; all three fields are required before a
// document can be generated.
type CustomerInfo struct {
	CustomerName   string
	ProjectAddress string
	SalesRep       string
}

// Validate checks the required fields for document generation. This is the
// only hard validation in the core: incomplete measurement rows are
// tolerated, missing customer fields are not.
func (c CustomerInfo) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.CustomerName, validation.Required.Error("customer name is required")),
		validation.Field(&c.ProjectAddress, validation.Required.Error("project address is required")),
		validation.Field(&c.SalesRep, validation.Required.Error("sales representative is required")),
	)
}
