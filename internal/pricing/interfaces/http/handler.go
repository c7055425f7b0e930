package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/pkg/response"

	"github.com/wyfcoding/optionpricing/internal/pricing/application"
	"github.com/wyfcoding/optionpricing/internal/pricing/domain"
	"github.com/wyfcoding/optionpricing/pkg/logger"
	"github.com/wyfcoding/optionpricing/pkg/metrics"
)

// HTTP 处理器
// 薄协作层：只负责绑定入参、调用应用服务、渲染结果与错误，
// 不做任何数值计算。
type PricingHandler struct {
	svc *application.PricingService
	m   *metrics.Metrics
}

// 创建 HTTP 处理器实例
func NewPricingHandler(svc *application.PricingService, m *metrics.Metrics) *PricingHandler {
	return &PricingHandler{svc: svc, m: m}
}

// 注册路由
func (h *PricingHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1/pricing")
	{
		api.POST("/european", h.PriceEuropean)
		api.POST("/implied-volatility", h.ImpliedVolatility)
		api.POST("/american", h.PriceAmerican)
		api.POST("/asian/geometric", h.PriceGeometricAsian)
		api.POST("/asian/arithmetic", h.PriceArithmeticAsian)
		api.POST("/basket/geometric", h.PriceGeometricBasket)
		api.POST("/basket/arithmetic", h.PriceArithmeticBasket)
		api.POST("/kiko-put", h.PriceKIKOPut)
	}
}

// EuropeanRequest 欧式期权定价请求
type EuropeanRequest struct {
	Spot       float64 `json:"spot" binding:"required"`
	Strike     float64 `json:"strike" binding:"required"`
	Rate       float64 `json:"rate"`
	Repo       float64 `json:"repo"`
	Maturity   float64 `json:"maturity" binding:"required"`
	Volatility float64 `json:"volatility" binding:"required"`
	OptionType string  `json:"option_type" binding:"required"`
}

// PriceEuropean 欧式期权闭式定价
func (h *PricingHandler) PriceEuropean(c *gin.Context) {
	var req EuropeanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	start := time.Now()
	result, err := h.svc.PriceEuropean(c.Request.Context(), application.EuropeanCommand{
		Spot: req.Spot, Strike: req.Strike, Rate: req.Rate, Repo: req.Repo,
		Maturity: req.Maturity, Volatility: req.Volatility, OptionType: req.OptionType,
	})
	if err != nil {
		h.renderError(c, "black_scholes", err)
		return
	}
	h.observe("black_scholes", start, 0)
	response.Success(c, result)
}

// ImpliedVolRequest 隐含波动率请求
type ImpliedVolRequest struct {
	Spot       float64 `json:"spot" binding:"required"`
	Strike     float64 `json:"strike" binding:"required"`
	Rate       float64 `json:"rate"`
	Repo       float64 `json:"repo"`
	Maturity   float64 `json:"maturity" binding:"required"`
	Premium    float64 `json:"premium" binding:"required"`
	OptionType string  `json:"option_type" binding:"required"`
}

// ImpliedVolatility 隐含波动率反解
func (h *PricingHandler) ImpliedVolatility(c *gin.Context) {
	var req ImpliedVolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	start := time.Now()
	iv, err := h.svc.ImpliedVolatility(c.Request.Context(), application.ImpliedVolCommand{
		Spot: req.Spot, Strike: req.Strike, Rate: req.Rate, Repo: req.Repo,
		Maturity: req.Maturity, Premium: req.Premium, OptionType: req.OptionType,
	})
	if err != nil {
		h.renderError(c, "implied_volatility", err)
		return
	}
	h.observe("implied_volatility", start, 0)
	response.Success(c, gin.H{"implied_volatility": iv})
}

// AmericanRequest 美式期权定价请求
type AmericanRequest struct {
	Spot       float64 `json:"spot" binding:"required"`
	Strike     float64 `json:"strike" binding:"required"`
	Rate       float64 `json:"rate"`
	Maturity   float64 `json:"maturity" binding:"required"`
	Volatility float64 `json:"volatility" binding:"required"`
	Steps      int     `json:"steps"`
	OptionType string  `json:"option_type" binding:"required"`
}

// PriceAmerican 美式期权二叉树定价
func (h *PricingHandler) PriceAmerican(c *gin.Context) {
	var req AmericanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	start := time.Now()
	result, err := h.svc.PriceAmerican(c.Request.Context(), application.AmericanCommand{
		Spot: req.Spot, Strike: req.Strike, Rate: req.Rate,
		Maturity: req.Maturity, Volatility: req.Volatility,
		Steps: req.Steps, OptionType: req.OptionType,
	})
	if err != nil {
		h.renderError(c, "binomial_tree", err)
		return
	}
	h.observe("binomial_tree", start, 0)
	response.Success(c, result)
}

// AsianRequest 亚式期权定价请求
type AsianRequest struct {
	Spot           float64 `json:"spot" binding:"required"`
	Strike         float64 `json:"strike" binding:"required"`
	Rate           float64 `json:"rate"`
	Maturity       float64 `json:"maturity" binding:"required"`
	Volatility     float64 `json:"volatility" binding:"required"`
	Observations   int     `json:"observations" binding:"required"`
	Paths          int     `json:"paths"`
	ControlVariate string  `json:"control_variate"`
	Seed           uint64  `json:"seed"`
	OptionType     string  `json:"option_type" binding:"required"`
}

// PriceGeometricAsian 几何亚式闭式定价
func (h *PricingHandler) PriceGeometricAsian(c *gin.Context) {
	var req AsianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	start := time.Now()
	result, err := h.svc.PriceGeometricAsian(c.Request.Context(), application.GeometricAsianCommand{
		Spot: req.Spot, Strike: req.Strike, Rate: req.Rate,
		Maturity: req.Maturity, Volatility: req.Volatility,
		Observations: req.Observations, OptionType: req.OptionType,
	})
	if err != nil {
		h.renderError(c, "geometric_asian", err)
		return
	}
	h.observe("geometric_asian", start, 0)
	response.Success(c, result)
}

// PriceArithmeticAsian 算术亚式蒙特卡洛定价
func (h *PricingHandler) PriceArithmeticAsian(c *gin.Context) {
	var req AsianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	start := time.Now()
	result, err := h.svc.PriceArithmeticAsian(c.Request.Context(), application.ArithmeticAsianCommand{
		Spot: req.Spot, Strike: req.Strike, Rate: req.Rate,
		Maturity: req.Maturity, Volatility: req.Volatility,
		Observations: req.Observations, Paths: req.Paths,
		ControlVariate: req.ControlVariate, Seed: req.Seed, OptionType: req.OptionType,
	})
	if err != nil {
		h.renderError(c, "arithmetic_asian_mc", err)
		return
	}
	h.observe("arithmetic_asian_mc", start, result.Paths)
	response.Success(c, result)
}

// BasketRequest 篮子期权定价请求
type BasketRequest struct {
	Spot1          float64 `json:"spot1" binding:"required"`
	Spot2          float64 `json:"spot2" binding:"required"`
	Strike         float64 `json:"strike" binding:"required"`
	Rate           float64 `json:"rate"`
	Maturity       float64 `json:"maturity" binding:"required"`
	Volatility1    float64 `json:"volatility1" binding:"required"`
	Volatility2    float64 `json:"volatility2" binding:"required"`
	Correlation    float64 `json:"correlation"`
	Paths          int     `json:"paths"`
	ControlVariate string  `json:"control_variate"`
	Seed           uint64  `json:"seed"`
	OptionType     string  `json:"option_type" binding:"required"`
}

// PriceGeometricBasket 几何篮子闭式定价
func (h *PricingHandler) PriceGeometricBasket(c *gin.Context) {
	var req BasketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	start := time.Now()
	result, err := h.svc.PriceGeometricBasket(c.Request.Context(), application.GeometricBasketCommand{
		Spot1: req.Spot1, Spot2: req.Spot2, Strike: req.Strike, Rate: req.Rate,
		Maturity: req.Maturity, Volatility1: req.Volatility1, Volatility2: req.Volatility2,
		Correlation: req.Correlation, OptionType: req.OptionType,
	})
	if err != nil {
		h.renderError(c, "geometric_basket", err)
		return
	}
	h.observe("geometric_basket", start, 0)
	response.Success(c, result)
}

// PriceArithmeticBasket 算术篮子蒙特卡洛定价
func (h *PricingHandler) PriceArithmeticBasket(c *gin.Context) {
	var req BasketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	start := time.Now()
	result, err := h.svc.PriceArithmeticBasket(c.Request.Context(), application.ArithmeticBasketCommand{
		Spot1: req.Spot1, Spot2: req.Spot2, Strike: req.Strike, Rate: req.Rate,
		Maturity: req.Maturity, Volatility1: req.Volatility1, Volatility2: req.Volatility2,
		Correlation: req.Correlation, Paths: req.Paths,
		ControlVariate: req.ControlVariate, Seed: req.Seed, OptionType: req.OptionType,
	})
	if err != nil {
		h.renderError(c, "arithmetic_basket_mc", err)
		return
	}
	h.observe("arithmetic_basket_mc", start, result.Paths)
	response.Success(c, result)
}

// KIKORequest 敲入敲出看跌期权定价请求
type KIKORequest struct {
	Spot         float64 `json:"spot" binding:"required"`
	Strike       float64 `json:"strike" binding:"required"`
	Rate         float64 `json:"rate"`
	Maturity     float64 `json:"maturity" binding:"required"`
	Volatility   float64 `json:"volatility" binding:"required"`
	LowerBarrier float64 `json:"lower_barrier" binding:"required"`
	UpperBarrier float64 `json:"upper_barrier" binding:"required"`
	Rebate       float64 `json:"rebate"`
	Observations int     `json:"observations" binding:"required"`
	Paths        int     `json:"paths"`
	Seed         uint64  `json:"seed"`
	WithDelta    bool    `json:"with_delta"`
}

// PriceKIKOPut 敲入敲出看跌期权拟蒙特卡洛定价
func (h *PricingHandler) PriceKIKOPut(c *gin.Context) {
	var req KIKORequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	start := time.Now()
	result, err := h.svc.PriceKIKOPut(c.Request.Context(), application.KIKOPutCommand{
		Spot: req.Spot, Strike: req.Strike, Rate: req.Rate,
		Maturity: req.Maturity, Volatility: req.Volatility,
		LowerBarrier: req.LowerBarrier, UpperBarrier: req.UpperBarrier,
		Rebate: req.Rebate, Observations: req.Observations,
		Paths: req.Paths, Seed: req.Seed, WithDelta: req.WithDelta,
	})
	if err != nil {
		h.renderError(c, "kiko_quasi_mc", err)
		return
	}
	h.observe("kiko_quasi_mc", start, result.Paths)
	response.Success(c, result)
}

// renderError 错误分类映射到 HTTP 状态：
// 参数校验失败 400，数值失败 422，其余 500。
func (h *PricingHandler) renderError(c *gin.Context, model string, err error) {
	ctx := c.Request.Context()
	switch {
	case errors.Is(err, domain.ErrValidation):
		h.observeError("validation")
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, domain.ErrNumerical):
		h.observeError("numerical")
		response.ErrorWithStatus(c, http.StatusUnprocessableEntity, err.Error(), "")
	default:
		h.observeError("internal")
		logger.Error(ctx, "pricing failed", "model", model, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
	}
}

func (h *PricingHandler) observe(model string, start time.Time, paths int) {
	if h.m == nil {
		return
	}
	h.m.PricingRequestsTotal.WithLabelValues(model).Inc()
	h.m.PricingDuration.WithLabelValues(model).Observe(time.Since(start).Seconds())
	if paths > 0 {
		h.m.SimulationPathsTotal.Add(float64(paths))
	}
}

func (h *PricingHandler) observeError(kind string) {
	if h.m != nil {
		h.m.PricingErrorsTotal.WithLabelValues(kind).Inc()
	}
}
