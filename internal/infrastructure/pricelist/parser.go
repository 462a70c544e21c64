package pricelist

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/retailorders/backend/internal/domain/catalog"
	"github.com/retailorders/backend/internal/domain/shared"
)

// Document is a fully validated price list ready for import
type Document struct {
	ShopName   string
	Categories []catalog.ImportCategory
	Goods      []catalog.ImportGood
}

type yamlPriceList struct {
	Shop       string         `yaml:"shop"`
	Categories []yamlCategory `yaml:"categories"`
	Goods      []yamlGood     `yaml:"goods"`
}

type yamlCategory struct {
	ID   int64  `yaml:"id"`
	Name string `yaml:"name"`
}

type yamlGood struct {
	ID         int64                 `yaml:"id"`
	Category   int64                 `yaml:"category"`
	Model      string                `yaml:"model"`
	Name       string                `yaml:"name"`
	Price      yamlDecimal           `yaml:"price"`
	PriceRRC   yamlDecimal           `yaml:"price_rrc"`
	Quantity   int                   `yaml:"quantity"`
	Parameters map[string]yamlScalar `yaml:"parameters"`
}

// yamlDecimal decodes YAML numbers (and numeric strings) into a decimal
// without passing through float64
type yamlDecimal struct {
	decimal.Decimal
}

func (d *yamlDecimal) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("expected a number, got %s", node.Tag)
	}
	dec, err := decimal.NewFromString(node.Value)
	if err != nil {
		return fmt.Errorf("invalid number %q", node.Value)
	}
	d.Decimal = dec
	return nil
}

// yamlScalar captures a parameter value of any scalar type as its literal
// string form
type yamlScalar string

func (s *yamlScalar) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("expected a scalar value, got %s", node.Tag)
	}
	*s = yamlScalar(node.Value)
	return nil
}

// Parse decodes and validates a YAML price list. The whole document is
// checked before the caller touches the database; a single bad entry
// rejects the entire list.
func Parse(data []byte) (*Document, error) {
	var raw yamlPriceList
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, shared.NewDomainError("VALIDATION_FAILED", fmt.Sprintf("Malformed YAML: %v", err))
	}

	if raw.Shop == "" {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Price list is missing the shop name")
	}

	declared := make(map[int64]bool, len(raw.Categories))
	categories := make([]catalog.ImportCategory, 0, len(raw.Categories))
	for i, c := range raw.Categories {
		if c.ID <= 0 {
			return nil, shared.NewDomainError("VALIDATION_FAILED",
				fmt.Sprintf("Category entry %d has a non-positive id", i+1))
		}
		if c.Name == "" {
			return nil, shared.NewDomainError("VALIDATION_FAILED",
				fmt.Sprintf("Category entry %d is missing a name", i+1))
		}
		if declared[c.ID] {
			return nil, shared.NewDomainError("VALIDATION_FAILED",
				fmt.Sprintf("Category id %d is declared twice", c.ID))
		}
		declared[c.ID] = true
		categories = append(categories, catalog.ImportCategory{ExternalID: c.ID, Name: c.Name})
	}

	goods := make([]catalog.ImportGood, 0, len(raw.Goods))
	for i, g := range raw.Goods {
		if g.ID <= 0 {
			return nil, shared.NewDomainError("VALIDATION_FAILED",
				fmt.Sprintf("Goods entry %d has a non-positive id", i+1))
		}
		if g.Name == "" {
			return nil, shared.NewDomainError("VALIDATION_FAILED",
				fmt.Sprintf("Goods entry %d is missing a name", i+1))
		}
		if !declared[g.Category] {
			return nil, shared.NewDomainError("VALIDATION_FAILED",
				fmt.Sprintf("Goods entry %d references undeclared category %d", i+1, g.Category))
		}
		if g.Quantity < 0 {
			return nil, shared.NewDomainError("VALIDATION_FAILED",
				fmt.Sprintf("Goods entry %d has a negative quantity", i+1))
		}
		if g.Price.IsNegative() || g.PriceRRC.IsNegative() {
			return nil, shared.NewDomainError("VALIDATION_FAILED",
				fmt.Sprintf("Goods entry %d has a negative price", i+1))
		}

		parameters := make(map[string]string, len(g.Parameters))
		for name, value := range g.Parameters {
			if name == "" {
				return nil, shared.NewDomainError("VALIDATION_FAILED",
					fmt.Sprintf("Goods entry %d has a parameter with an empty name", i+1))
			}
			parameters[name] = string(value)
		}

		goods = append(goods, catalog.ImportGood{
			ExternalID:         g.ID,
			CategoryExternalID: g.Category,
			Name:               g.Name,
			Quantity:           g.Quantity,
			Price:              g.Price.Decimal,
			PriceRRC:           g.PriceRRC.Decimal,
			Parameters:         parameters,
		})
	}

	return &Document{
		ShopName:   raw.Shop,
		Categories: categories,
		Goods:      goods,
	}, nil
}
