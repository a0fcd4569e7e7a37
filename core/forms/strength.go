package forms

import "github.com/trezcool/masomo-portal/core"

// Strength is an advisory password score, never blocking.
type Strength struct {
	Score int
	Label string
	Color string
}

const (
	weakColor   = "#e74c3c"
	mediumColor = "#f39c12"
	strongColor = "#27ae60"
)

// PasswordStrength scores pwd from 0 to 6: a point each for length >= 8, length >= 12
// and each of the lowercase, uppercase, digit and special character classes.
func PasswordStrength(pwd string) Strength {
	if pwd == "" {
		return Strength{}
	}

	score := 0
	for _, tag := range []string{"min=8", "min=12", core.HasLowerTag, core.HasUpperTag, core.HasDigitTag, core.HasSpecialTag} {
		if core.Check(pwd, tag) {
			score++
		}
	}

	switch {
	case score <= 2:
		return Strength{Score: score, Label: "Weak", Color: weakColor}
	case score <= 4:
		return Strength{Score: score, Label: "Medium", Color: mediumColor}
	default:
		return Strength{Score: score, Label: "Strong", Color: strongColor}
	}
}
