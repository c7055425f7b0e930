package application

import (
	"github.com/shopspring/decimal"
	"github.com/wyfcoding/optionpricing/internal/pricing/domain"
)

// EstimateDTO 估值结果传输对象
// 协作层只做展示，置信区间在此已展开为 [low, high]。
type EstimateDTO struct {
	Model    string           `json:"model"`
	Price    decimal.Decimal  `json:"price"`
	StdErr   decimal.Decimal  `json:"stderr"`
	ConfLow  decimal.Decimal  `json:"conf_low"`
	ConfHigh decimal.Decimal  `json:"conf_high"`
	Delta    *decimal.Decimal `json:"delta,omitempty"`
	Warning  string           `json:"warning,omitempty"`
	Seed     uint64           `json:"seed,omitempty"`
	Paths    int              `json:"paths,omitempty"`
}

func toDTO(model string, r *domain.EstimationResult, seed uint64) *EstimateDTO {
	dto := &EstimateDTO{
		Model:    model,
		Price:    decimal.NewFromFloat(r.Price),
		StdErr:   decimal.NewFromFloat(r.StdErr),
		ConfLow:  decimal.NewFromFloat(r.ConfLow),
		ConfHigh: decimal.NewFromFloat(r.ConfHigh),
		Warning:  r.Warning,
		Seed:     seed,
	}
	if r.Delta != nil {
		d := decimal.NewFromFloat(*r.Delta)
		dto.Delta = &d
	}
	return dto
}
