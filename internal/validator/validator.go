// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"reflect"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"equitylens/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
		_ = v.RegisterValidation("stakeholder_role", validateStakeholderRole)
		_ = v.RegisterValidation("share_class", validateShareClass)
		_ = v.RegisterValidation("instrument_type", validateInstrumentType)
		_ = v.RegisterValidation("instrument_status", validateInstrumentStatus)
		_ = v.RegisterValidation("interest_type", validateInterestType)
	}
}

// decimalValue exposes a decimal as float64 so numeric tags like gt and gte apply.
func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

func validateStakeholderRole(fl validator.FieldLevel) bool {
	return models.StakeholderRole(fl.Field().String()).Valid()
}

func validateShareClass(fl validator.FieldLevel) bool {
	return models.ShareClass(fl.Field().String()).Valid()
}

func validateInstrumentType(fl validator.FieldLevel) bool {
	switch models.InstrumentType(fl.Field().String()) {
	case models.InstrumentTypeSAFE, models.InstrumentTypeConvertibleNote:
		return true
	}
	return false
}

func validateInstrumentStatus(fl validator.FieldLevel) bool {
	switch models.InstrumentStatus(fl.Field().String()) {
	case models.InstrumentStatusOutstanding, models.InstrumentStatusConverted, models.InstrumentStatusCancelled:
		return true
	}
	return false
}

func validateInterestType(fl validator.FieldLevel) bool {
	switch models.InterestType(fl.Field().String()) {
	case models.InterestSimple, models.InterestCompound:
		return true
	}
	return false
}
