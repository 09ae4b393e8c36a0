package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/optioncalc/internal/options/application"
	"github.com/wyfcoding/optioncalc/internal/options/domain"
	"github.com/wyfcoding/optioncalc/pkg/logger"
	"github.com/wyfcoding/optioncalc/pkg/response"
)

// OptionsHandler 期权收益分析 HTTP 处理器
type OptionsHandler struct {
	svc *application.OptionsService
}

// NewOptionsHandler 创建 HTTP 处理器实例
func NewOptionsHandler(svc *application.OptionsService) *OptionsHandler {
	return &OptionsHandler{svc: svc}
}

// RegisterRoutes 将处理器方法绑定到 Gin 路由
func (h *OptionsHandler) RegisterRoutes(router gin.IRouter) {
	api := router.Group("/api/v1/options")
	{
		api.POST("/price", h.Price)
		api.POST("/roi", h.ROI)
		api.POST("/calculate", h.Calculate)
		api.POST("/payoff", h.Payoff)
	}
}

// PriceRequest 定价请求
type PriceRequest struct {
	Kind     string             `json:"kind" binding:"required"`
	Env      domain.Environment `json:"env"`
	Contract domain.Contract    `json:"contract"`
}

// ScenarioRequest ROI 与收益曲线共用的情景。end 为空时与 start 相同。
type ScenarioRequest struct {
	Kind     string              `json:"kind" binding:"required"`
	Start    domain.Environment  `json:"start"`
	End      *domain.Environment `json:"end"`
	Contract domain.Contract     `json:"contract"`
	Movement domain.Movement     `json:"movement"`
}

func (r ScenarioRequest) scenario() domain.Scenario {
	end := r.Start
	if r.End != nil {
		end = *r.End
	}
	return domain.Scenario{Start: r.Start, End: end, Contract: r.Contract, Movement: r.Movement}
}

// PayoffRequest 收益曲线请求
type PayoffRequest struct {
	ScenarioRequest
	Axis     string        `json:"axis"`
	Variable string        `json:"variable" binding:"required"`
	Range    *domain.Range `json:"range"`
	Points   int           `json:"points"`
}

// CalculateRequest 最优合约请求
type CalculateRequest struct {
	Env      domain.Environment `json:"env"`
	Movement domain.Movement    `json:"movement"`
}

// Price 理论价格与偏导
func (h *OptionsHandler) Price(c *gin.Context) {
	var req PriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.svc.Price(c.Request.Context(), application.PriceQuery{
		Kind:     req.Kind,
		Env:      req.Env,
		Contract: req.Contract,
	})
	if err != nil {
		h.fail(c, "Failed to price option", err)
		return
	}
	response.Success(c, result)
}

// ROI 单点收益率
func (h *OptionsHandler) ROI(c *gin.Context) {
	var req ScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.svc.ROI(c.Request.Context(), application.ROIQuery{
		Kind:     req.Kind,
		Scenario: req.scenario(),
	})
	if err != nil {
		h.fail(c, "Failed to evaluate ROI", err)
		return
	}
	response.Success(c, result)
}

// Calculate 求最优合约
func (h *OptionsHandler) Calculate(c *gin.Context) {
	var req CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	answer, err := h.svc.Calculate(c.Request.Context(), application.CalculateCommand{
		Env:      req.Env,
		Movement: req.Movement,
	})
	if err != nil {
		h.fail(c, "Failed to calculate best contract", err)
		return
	}
	response.Success(c, answer)
}

// Payoff 收益曲线
func (h *OptionsHandler) Payoff(c *gin.Context) {
	var req PayoffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	curve, err := h.svc.PayoffCurve(c.Request.Context(), application.CurveQuery{
		Kind:     req.Kind,
		Scenario: req.scenario(),
		Axis:     req.Axis,
		Variable: req.Variable,
		Range:    req.Range,
		Points:   req.Points,
	})
	if err != nil {
		h.fail(c, "Failed to compute payoff curve", err)
		return
	}
	response.Success(c, curve)
}

// fail 参数错误返回 400，其余返回 500
func (h *OptionsHandler) fail(c *gin.Context, msg string, err error) {
	if errors.Is(err, application.ErrInvalidInput) {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	logger.Error(c.Request.Context(), msg, "error", err)
	response.ErrorWithStatus(c, http.StatusInternalServerError, msg, err.Error())
}
