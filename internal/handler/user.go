package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/league-service/internal/service"
	"github.com/maxviazov/league-service/pkg/response"
)

type UserHandler struct {
	svc service.UserService
}

func NewUserHandler(svc service.UserService) *UserHandler { return &UserHandler{svc: svc} }

// Register mounts the unauthenticated account routes.
func (h *UserHandler) Register(r *gin.RouterGroup) {
	r.POST("/users", h.registerUser)
	r.POST("/admin", h.registerAdmin)
	r.POST("/login", h.login)
}

func (h *UserHandler) registerUser(c *gin.Context) {
	var in service.RegisterInput
	if !bindJSON(c, &in) {
		return
	}
	user, err := h.svc.RegisterUser(c.Request.Context(), in)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, user)
}

func (h *UserHandler) registerAdmin(c *gin.Context) {
	var in service.RegisterInput
	if !bindJSON(c, &in) {
		return
	}
	admin, err := h.svc.RegisterAdmin(c.Request.Context(), in)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, admin)
}

type loginResponse struct {
	Token string `json:"token"`
}

func (h *UserHandler) login(c *gin.Context) {
	var in service.LoginInput
	if !bindJSON(c, &in) {
		return
	}
	token, err := h.svc.Login(c.Request.Context(), in)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, loginResponse{Token: token})
}
