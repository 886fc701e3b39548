package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Asep3580/kopkaka/config"
	"github.com/Asep3580/kopkaka/models"
	"github.com/Asep3580/kopkaka/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ===== ADMIN: daftar anggota (opsional ?status=Pending&search=nama)
func GetAllMembers(c *gin.Context) {
	q := config.DB.Model(&models.Member{}).Order("created_at DESC")

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if role := c.Query("role"); role != "" {
		q = q.Where("role = ?", role)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		q = q.Where("name ILIKE ? OR cooperative_number ILIKE ?", like, like)
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal mengambil data anggota", "error": err.Error()})
		return
	}

	var rows []models.Member
	if err := q.Offset((page - 1) * limit).Limit(limit).Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal mengambil data anggota", "error": err.Error()})
		return
	}
	utils.Paginated(c, rows, total, page, limit)
}

func GetMemberByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var member models.Member
	if err := config.DB.First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Anggota tidak ditemukan"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal mengambil data anggota", "error": err.Error()})
		return
	}
	utils.Success(c, "Berhasil mengambil data anggota", member)
}

type MemberStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// Admin menyetujui/menolak keanggotaan. Tidak ada posting jurnal di sini;
// simpanan pokok dicatat lewat modul simpanan.
func UpdateMemberStatus(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var in MemberStatusInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Payload tidak valid"})
		return
	}
	switch in.Status {
	case models.MemberActive, models.MemberRejected, models.MemberPending, models.MemberResigned:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"message": "Status tidak valid"})
		return
	}

	res := config.DB.Model(&models.Member{}).Where("id = ?", id).Update("status", in.Status)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal memperbarui status anggota", "error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Anggota tidak ditemukan"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Status anggota diperbarui"})
}

type MemberRoleInput struct {
	Role string `json:"role" binding:"required"`
}

// Admin mengangkat anggota jadi staf (akunting/manager) atau sebaliknya.
// Permission ikut role, jadi cukup ganti kolomnya; token lama tetap membawa
// perms lama sampai login ulang.
func UpdateMemberRole(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var in MemberRoleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Payload tidak valid"})
		return
	}
	switch in.Role {
	case models.RoleMember, models.RoleAdmin, models.RoleAkunting, models.RoleManager:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"message": "Role tidak dikenal"})
		return
	}

	res := config.DB.Model(&models.Member{}).Where("id = ?", id).Update("role", in.Role)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal memperbarui role anggota", "error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Anggota tidak ditemukan"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Role anggota diperbarui"})
}

// ===== MEMBER: profil sendiri
func GetMemberProfile(c *gin.Context) {
	uid, err := currentMemberID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}

	var member models.Member
	if err := config.DB.First(&member, uid).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Anggota tidak ditemukan"})
		return
	}
	utils.Success(c, "Berhasil mengambil profil", member)
}

type ChangePasswordInput struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

func ChangePassword(c *gin.Context) {
	uid, err := currentMemberID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}

	var in ChangePasswordInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Payload tidak valid"})
		return
	}

	var member models.Member
	if err := config.DB.First(&member, uid).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Anggota tidak ditemukan"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(in.OldPassword)) != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Password lama salah"})
		return
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err := config.DB.Model(&member).Update("password_hash", string(hash)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal mengganti password", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password berhasil diganti"})
}
