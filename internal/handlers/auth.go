package handlers

import (
	"errors"
	"net/http"

	"authsvc"
	"authsvc/internal/metrics"
	"authsvc/internal/models"
	"authsvc/internal/service"

	"github.com/gin-gonic/gin"
)

const msgProtected = "Protected route accessed successfully"

// registerRequest is the body of POST /auth/register.
type registerRequest struct {
	Name     string `json:"name" binding:"required" example:"Alice"`
	Age      int    `json:"age" binding:"required" example:"30"`
	Company  string `json:"company" binding:"required" example:"Acme"`
	Username string `json:"username" binding:"required" example:"alice"`
	Password string `json:"password" binding:"required" example:"s3cret"`
}

// loginRequest is the body of POST /auth/login.
type loginRequest struct {
	Username string `json:"username" binding:"required" example:"alice"`
	Password string `json:"password" binding:"required" example:"s3cret"`
}

// updateRequest is the body of PUT /auth/update.
type updateRequest struct {
	Name    string `json:"name" binding:"required" example:"Alice"`
	Age     int    `json:"age" binding:"required" example:"31"`
	Company string `json:"company" binding:"required" example:"Acme"`
}

type tokenResult struct {
	Token string `json:"token"`
}

// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration payload"
// @Success      201   {object}  authsvc.Response
// @Failure      400   {object}  authsvc.Response  "missing fields or user already exists"
// @Failure      500   {object}  authsvc.Response
// @Router       /auth/register [post]
func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	u, err := h.services.Register(c.Request.Context(), service.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Profile:  models.Profile{Name: req.Name, Age: req.Age, Company: req.Company},
	})
	if err != nil {
		h.writeError(c, "auth_register_failed", err, "username", req.Username)
		return
	}

	if h.log != nil {
		h.log.Infow("auth_registered", "username", u.Username, "id", u.ID)
	}
	c.JSON(http.StatusCreated, authsvc.Success(u))
}

// @Summary      Log in
// @Description  Exchanges username and password for a bearer token valid for one hour.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  authsvc.Response  "result.token"
// @Failure      400   {object}  authsvc.Response
// @Failure      401   {object}  authsvc.Response
// @Failure      500   {object}  authsvc.Response
// @Router       /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	token, err := h.services.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			h.metrics.ObserveLogin(metrics.LoginInvalid)
		case !errors.Is(err, service.ErrValidation):
			h.metrics.ObserveLogin(metrics.LoginError)
		}
		h.writeError(c, "auth_login_failed", err, "username", req.Username)
		return
	}

	h.metrics.ObserveLogin(metrics.LoginSuccess)
	c.JSON(http.StatusOK, authsvc.Success(tokenResult{Token: token}))
}

// @Summary      Update profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      updateRequest  true  "Profile payload"
// @Success      200   {object}  authsvc.Response
// @Failure      400   {object}  authsvc.Response
// @Failure      401   {object}  authsvc.Response
// @Failure      403   {object}  authsvc.Response
// @Failure      404   {object}  authsvc.Response
// @Failure      500   {object}  authsvc.Response
// @Router       /auth/update [put]
// @Security     BearerAuth
func (h *Handler) updateProfile(c *gin.Context) {
	var req updateRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	username := currentUsername(c)
	u, err := h.services.UpdateProfile(c.Request.Context(), username, models.Profile{
		Name:    req.Name,
		Age:     req.Age,
		Company: req.Company,
	})
	if err != nil {
		h.writeError(c, "auth_update_failed", err, "username", username)
		return
	}

	c.JSON(http.StatusOK, authsvc.Success(u))
}

// @Summary      Protected probe
// @Tags         auth
// @Produce      json
// @Success      200  {object}  authsvc.Response
// @Failure      401  {object}  authsvc.Response
// @Failure      403  {object}  authsvc.Response
// @Router       /auth/protected [get]
// @Security     BearerAuth
func (h *Handler) protected(c *gin.Context) {
	c.JSON(http.StatusOK, authsvc.Success(authsvc.Message{Message: msgProtected}))
}
