package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/practice_backend/models"
	"github.com/mmdatafocus/practice_backend/utils"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var input loginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	info, err := models.Signin(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, info)
}

func (h *Handler) Logout(c *gin.Context) {
	ctx := c.Request.Context()
	if userId, found := utils.GetUserIdFromContext(ctx); found {
		if user, err := models.GetUser(ctx, userId); err == nil {
			ctx = utils.SetUsernameInContext(ctx, user.Username)
		}
	}
	ok, err := models.Logout(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": ok})
}

func (h *Handler) CreateUser(c *gin.Context) {
	var input models.NewUser
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	user, err := models.CreateUser(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	user.PrepareGive()
	c.JSON(http.StatusCreated, user)
}

func (h *Handler) GetUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondBindError(c, err)
		return
	}
	user, err := models.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	user.PrepareGive()
	c.JSON(http.StatusOK, user)
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := models.GetUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	for _, u := range users {
		u.PrepareGive()
	}
	c.JSON(http.StatusOK, users)
}
