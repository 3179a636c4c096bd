package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/launchpad/internal/logic"
	"github.com/blues/launchpad/internal/share"
	"github.com/gin-gonic/gin"
)

// ShareOptions 分享链接配置
type ShareOptions struct {
	BaseURL  string
	Hashtags []string
}

type ProjectHandler struct {
	projectLogic *logic.ProjectLogic
	share        ShareOptions
	loading      func() bool
}

// NewProjectHandler 创建项目处理器，loading 为空时视为数据已就绪
func NewProjectHandler(projectLogic *logic.ProjectLogic, shareOpts ShareOptions, loading func() bool) *ProjectHandler {
	if loading == nil {
		loading = func() bool { return false }
	}
	return &ProjectHandler{
		projectLogic: projectLogic,
		share:        shareOpts,
		loading:      loading,
	}
}

// parseProjectID 解析路径中的项目ID
func parseProjectID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return 0, false
	}
	return id, true
}

// CreateProject 创建项目
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "请求参数错误: "+err.Error())
		return
	}

	// 调用logic层创建项目
	project, err := h.projectLogic.CreateProject(c.Request.Context(), req.ToLogic())
	if err != nil {
		handleError(c, err, "Failed to create project. Please try again.")
		return
	}

	SuccessResponse(c, http.StatusCreated, "项目创建成功", GetProjectResponse{
		Project: ToProjectResponse(&project),
	})
}

// GetProjects 获取项目列表
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	projects, err := h.projectLogic.GetProjects(c.Request.Context(), c.Query("status"))
	if err != nil {
		handleError(c, err, "Failed to load projects")
		return
	}

	SuccessResponse(c, http.StatusOK, "获取项目列表成功", GetProjectsResponse{
		Projects: ToProjectResponseList(projects),
		Loading:  h.loading(),
	})
}

// GetProject 获取单个项目详情
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	project, err := h.projectLogic.GetProject(c.Request.Context(), id)
	if err != nil {
		handleError(c, err, "Failed to load project")
		return
	}

	SuccessResponse(c, http.StatusOK, "获取项目详情成功", GetProjectResponse{
		Project: ToProjectResponse(&project),
	})
}

// GetProjectInvestors 获取项目贡献记录
func (h *ProjectHandler) GetProjectInvestors(c *gin.Context) {
	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	investors, err := h.projectLogic.GetInvestors(c.Request.Context(), id)
	if err != nil {
		handleError(c, err, "Failed to load investors")
		return
	}

	SuccessResponse(c, http.StatusOK, "获取项目贡献记录成功", GetProjectInvestorsResponse{
		Investors: ToInvestorResponseList(investors),
	})
}

// GetProjectStats 获取项目统计信息
func (h *ProjectHandler) GetProjectStats(c *gin.Context) {
	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	stats, err := h.projectLogic.GetProjectStats(c.Request.Context(), id)
	if err != nil {
		handleError(c, err, "Failed to load project stats")
		return
	}

	SuccessResponse(c, http.StatusOK, "获取项目统计信息成功", GetProjectStatsResponse{Stats: stats})
}

// GetAllProjectStats 获取所有项目的统计信息
func (h *ProjectHandler) GetAllProjectStats(c *gin.Context) {
	stats, err := h.projectLogic.GetPlatformStats(c.Request.Context())
	if err != nil {
		handleError(c, err, "Failed to load stats")
		return
	}

	SuccessResponse(c, http.StatusOK, "获取所有项目统计信息成功", GetAllProjectStatsResponse{Stats: stats})
}

// GetShareLinks 获取项目分享链接
func (h *ProjectHandler) GetShareLinks(c *gin.Context) {
	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	project, err := h.projectLogic.GetProject(c.Request.Context(), id)
	if err != nil {
		handleError(c, err, "Failed to load project")
		return
	}

	SuccessResponse(c, http.StatusOK, "获取分享链接成功", GetShareLinksResponse{
		Links: share.ProjectLinks(project, h.share.BaseURL, h.share.Hashtags),
	})
}

// ValidateProject 预校验创建表单，不创建项目
func (h *ProjectHandler) ValidateProject(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "请求参数错误: "+err.Error())
		return
	}

	res := h.projectLogic.ValidateForm(req.Form(), req.TokenomicsDetails.StakingTiers)
	SuccessResponse(c, http.StatusOK, "校验完成", res)
}
