package controllers

import (
	"net/http"
	"time"

	"github.com/Asep3580/kopkaka/config"
	"github.com/Asep3580/kopkaka/models"
	"github.com/Asep3580/kopkaka/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// Registrasi publik calon anggota; status Pending sampai disetujui admin.
func Register(c *gin.Context) {
	var in RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var exists models.Member
	if err := config.DB.Where("email = ?", in.Email).First(&exists).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email sudah terdaftar"})
		return
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)

	var seq int64
	config.DB.Model(&models.Member{}).Count(&seq)

	member := models.Member{
		CooperativeNumber: utils.GenCooperativeNumber(seq+1, time.Now()),
		Name:              in.Name,
		Email:             in.Email,
		PasswordHash:      string(hash),
		Phone:             in.Phone,
		Address:           in.Address,
		Role:              models.RoleMember,
		Status:            models.MemberPending,
	}
	if err := config.DB.Create(&member).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal mendaftarkan anggota"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":            "Pendaftaran berhasil, menunggu persetujuan admin",
		"cooperative_number": member.CooperativeNumber,
	})
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Login(c *gin.Context) {
	var in LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var member models.Member
	if err := config.DB.Where("email = ?", in.Email).First(&member).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email atau password salah"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(in.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email atau password salah"})
		return
	}
	if member.Status != models.MemberActive && member.Role == models.RoleMember {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Keanggotaan Anda belum aktif"})
		return
	}

	// Ambil permissions dari matriks role
	type Row struct{ Code string }
	var rows []Row
	config.DB.Raw(`
		SELECT p.code FROM permissions p
		JOIN role_permissions rp ON rp.permission_id = p.id
		WHERE rp.role = ?`, member.Role).Scan(&rows)

	perms := make([]string, 0, len(rows))
	for _, r := range rows {
		perms = append(perms, r.Code)
	}

	token, _ := utils.GenerateToken(member.ID, member.Name, member.Role, perms, 24*time.Hour)

	c.JSON(http.StatusOK, gin.H{
		"message": "Login sukses",
		"token":   token,
		"role":    member.Role,
		"perms":   perms,
	})
}
