package classifier

import (
	"fmt"
	"strings"
)

// Category is the closed set of outcomes a classification can produce.
type Category int

const (
	// Undetermined means the model replied but named no service model.
	Undetermined Category = iota
	IaaS
	PaaS
	SaaS
	FaaS
	// Error means the remote call or reply extraction failed.
	Error
)

// ServiceModels lists the four real categories in parse priority order.
var ServiceModels = []Category{IaaS, PaaS, SaaS, FaaS}

func (c Category) String() string {
	switch c {
	case IaaS:
		return "IaaS"
	case PaaS:
		return "PaaS"
	case SaaS:
		return "SaaS"
	case FaaS:
		return "FaaS"
	case Undetermined:
		return "Undetermined"
	case Error:
		return "Error"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// IsServiceModel reports whether c is one of the four service models.
func (c Category) IsServiceModel() bool {
	return c >= IaaS && c <= FaaS
}

// MarshalText encodes the category as its label.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a label produced by MarshalText.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseLabel(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseLabel converts a label such as "paas" or "Undetermined" back into a Category.
func ParseLabel(label string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "iaas":
		return IaaS, nil
	case "paas":
		return PaaS, nil
	case "saas":
		return SaaS, nil
	case "faas":
		return FaaS, nil
	case "undetermined":
		return Undetermined, nil
	case "error":
		return Error, nil
	default:
		return Undetermined, fmt.Errorf("unknown category %q", label)
	}
}

func (c Category) needle() string {
	return strings.ToLower(c.String())
}
