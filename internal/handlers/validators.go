package handlers

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sjperalta/billing-api/internal/models"
)

var registerOnce sync.Once

// enumValidators maps custom binding tags to the values they accept.
var enumValidators = map[string]func(string) bool{
	"payment_method": models.IsValidPaymentMethod,
	"bill_status":    models.IsValidBillStatus,
	"rate_type":      models.IsValidRateType,
	"user_role":      models.IsValidRole,
}

// RegisterValidators adds the enum tags to gin's validator engine.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		for tag, valid := range enumValidators {
			valid := valid
			_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
				return valid(fl.Field().String())
			})
		}
	})
}

var enumMessages = map[string]string{
	"payment_method": "method must be one of " + strings.Join(models.PaymentMethods, ", "),
	"bill_status":    "status must be one of " + strings.Join(models.BillStatuses, ", "),
	"rate_type":      "Rate type must be either CHINE or STAR",
	"user_role":      "Invalid role",
}

func validationMessage(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return "Invalid request body"
	}
	fe := errs[0]
	if msg, ok := enumMessages[fe.Tag()]; ok {
		return msg
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
