package budget

import (
	"testing"

	"github.com/fintrack/fintrack/pkg/category"
	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	t.Run("should stay silent below the warning threshold", func(t *testing.T) {
		result := Evaluate(category.Food, "₹", 1000, 799)

		assert.Equal(t, AlertNone, result.Type)
		assert.Empty(t, result.Message)
		assert.InDelta(t, 79.9, result.Percentage, 0.0001)
	})

	t.Run("should warn at exactly 80 percent", func(t *testing.T) {
		result := Evaluate(category.Food, "₹", 1000, 800)

		assert.Equal(t, AlertWarning, result.Type)
		assert.Equal(t, "You've used 80.0% of your Food budget", result.Message)
		assert.Equal(t, 80.0, result.Percentage)
	})

	t.Run("should warn just below the exceeded threshold", func(t *testing.T) {
		result := Evaluate(category.Travel, "₹", 1000, 999)

		assert.Equal(t, AlertWarning, result.Type)
		assert.Equal(t, "You've used 99.9% of your Travel budget", result.Message)
	})

	t.Run("should report exceeded at exactly the goal", func(t *testing.T) {
		result := Evaluate(category.Shopping, "₹", 1000, 1000)

		assert.Equal(t, AlertExceeded, result.Type)
		assert.Equal(t, "You've exceeded your Shopping budget by ₹0", result.Message)
		assert.Equal(t, 100.0, result.Percentage)
	})

	t.Run("should clamp percentage but report true overage", func(t *testing.T) {
		result := Evaluate(category.Entertainment, "₹", 1000, 1500)

		assert.Equal(t, AlertExceeded, result.Type)
		assert.Equal(t, 100.0, result.Percentage)
		assert.Equal(t, "You've exceeded your Entertainment budget by ₹500", result.Message)
	})

	t.Run("should report overage above the goal", func(t *testing.T) {
		result := Evaluate(category.Healthcare, "₹", 1000, 1200)

		assert.Equal(t, AlertExceeded, result.Type)
		assert.Equal(t, "You've exceeded your Healthcare budget by ₹200", result.Message)
	})

	t.Run("should format fractional overage without trailing zeros", func(t *testing.T) {
		result := Evaluate(category.Rent, "₹", 1000, 1200.5)

		assert.Equal(t, "You've exceeded your Rent budget by ₹200.5", result.Message)
	})

	t.Run("should never alert on a zero goal", func(t *testing.T) {
		result := Evaluate(category.Utilities, "₹", 0, 5000)

		assert.Equal(t, AlertNone, result.Type)
		assert.Equal(t, 0.0, result.Percentage)
	})

	t.Run("should use the caller's currency symbol", func(t *testing.T) {
		result := Evaluate(category.Food, "$", 100, 150)

		assert.Equal(t, "You've exceeded your Food budget by $50", result.Message)
	})
}
