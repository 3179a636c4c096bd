package handler

import (
	"net/http"

	"github.com/blues/launchpad/internal/logic"
	"github.com/gin-gonic/gin"
)

// ContributeHandler 贡献处理器
type ContributeHandler struct {
	contributeLogic *logic.ContributeLogic
}

// NewContributeHandler 创建贡献处理器
func NewContributeHandler(contributeLogic *logic.ContributeLogic) *ContributeHandler {
	return &ContributeHandler{
		contributeLogic: contributeLogic,
	}
}

// Contribute 参与项目众筹，等待交易确认后返回贡献记录
func (h *ContributeHandler) Contribute(c *gin.Context) {
	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	var req ContributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "请求参数错误: "+err.Error())
		return
	}

	investor, err := h.contributeLogic.Contribute(c.Request.Context(), logic.ContributeRequest{
		ProjectID:     id,
		Amount:        req.Amount,
		Currency:      req.Currency,
		WalletAddress: req.WalletAddress,
	})
	if err != nil {
		handleError(c, err, "Failed to process contribution. Please try again.")
		return
	}

	SuccessResponse(c, http.StatusCreated, "贡献成功", ContributeResponse{
		Investor: ToInvestorResponse(&investor),
	})
}

// ValidateContribution 预校验贡献金额，结果最多包含一条错误
func (h *ContributeHandler) ValidateContribution(c *gin.Context) {
	var req ValidateContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "请求参数错误: "+err.Error())
		return
	}

	currency, err := logic.ParseCurrency(req.Currency)
	if err != nil {
		handleError(c, err, "")
		return
	}

	SuccessResponse(c, http.StatusOK, "校验完成", h.contributeLogic.ValidateAmount(req.Amount, currency))
}
