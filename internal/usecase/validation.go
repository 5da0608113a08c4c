package usecase

import (
	"strings"
	"unicode"

	"github.com/nurbekov/mealbox/internal/domain/model"
)

// ValidatePhone checks a delivery phone number: optional leading +, 10 to 15
// digits, no other characters.
func ValidatePhone(phone string) bool {
	phone = strings.TrimSpace(phone)
	phone = strings.TrimPrefix(phone, "+")
	if len(phone) < 10 || len(phone) > 15 {
		return false
	}
	for _, r := range phone {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ValidateSelections checks a plan order's meal choices against the closed
// category list. At least one slot must be filled and every filled slot must
// name an item.
func ValidateSelections(selections map[model.MealCategory]string) bool {
	if len(selections) == 0 {
		return false
	}
	for category, item := range selections {
		if strings.TrimSpace(item) == "" {
			return false
		}
		valid := false
		for _, known := range model.MealCategories {
			if category == known {
				valid = true
				break
			}
		}
		if !valid {
			return false
		}
	}
	return true
}

// ValidateItems checks quick-order line items: at least one, positive
// quantities, non-negative prices, named.
func ValidateItems(items []model.OrderItem) bool {
	if len(items) == 0 {
		return false
	}
	for _, item := range items {
		if strings.TrimSpace(item.Name) == "" || item.Quantity <= 0 || item.Price < 0 {
			return false
		}
	}
	return true
}
