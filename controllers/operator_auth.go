package controllers

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/medibook/medibook/config"
	"github.com/medibook/medibook/models"
	"github.com/medibook/medibook/utils"
)

// POST /v1/operator/login
func OperatorLogin(c *gin.Context) {
	utils.LogInfo("OperatorLogin called")

	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request. Email and password are required", err.Error())
		return
	}

	var operator models.Operator
	if err := config.DB.Where("email = ?", req.Email).First(&operator).Error; err != nil {
		utils.LogError("Operator login failed, unknown email: %s", req.Email)
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	if !utils.CheckPassword(req.Password, operator.Password) {
		utils.LogError("Operator login failed, bad password for: %s", req.Email)
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	if !operator.IsActive {
		utils.LogError("Deactivated operator attempted login: %s", req.Email)
		utils.Forbidden(c, "Account is deactivated")
		return
	}

	token, err := utils.GenerateOperatorToken(&operator)
	if err != nil {
		utils.LogError("Failed to generate token for operator %d: %v", operator.ID, err)
		utils.InternalServerError(c, "Failed to generate token", nil)
		return
	}

	operator.LastLogin = time.Now()
	if err := config.DB.Save(&operator).Error; err != nil {
		utils.LogError("Failed to update last login for operator %d: %v", operator.ID, err)
	}
	utils.LogInfo("Operator %d logged in", operator.ID)

	utils.Success(c, "Login successful", gin.H{
		"token": token,
		"operator": gin.H{
			"id":    operator.ID,
			"email": operator.Email,
			"name":  operator.Name,
		},
	})
}

// CreateDefaultOperator seeds the first operator account from the environment
// when the table is empty. Called once at startup.
func CreateDefaultOperator() error {
	var count int64
	if err := config.DB.Model(&models.Operator{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	email := os.Getenv("OPERATOR_EMAIL")
	password := os.Getenv("OPERATOR_PASSWORD")
	if email == "" || password == "" {
		utils.LogInfo("No default operator configured, skipping seed")
		return nil
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	operator := models.Operator{
		Email:    email,
		Password: hashed,
		Name:     "Default Operator",
		IsActive: true,
	}
	if err := config.DB.Create(&operator).Error; err != nil {
		return err
	}
	utils.LogInfo("Seeded default operator %s", email)
	return nil
}
