package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Asep3580/kopkaka/config"
	"github.com/Asep3580/kopkaka/models"
	"github.com/Asep3580/kopkaka/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ===== Produk toko

func GetProducts(c *gin.Context) {
	var rows []models.Product
	if err := config.DB.Order("name ASC").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal mengambil data produk", "error": err.Error()})
		return
	}
	utils.Success(c, "Berhasil mengambil produk", rows)
}

type ProductInput struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Stock       int             `json:"stock"`
	ImagePath   string          `json:"image_path"`
}

func CreateProduct(c *gin.Context) {
	var in ProductInput
	if err := c.ShouldBindJSON(&in); err != nil || in.Price.LessThan(decimal.Zero) || in.Stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Data produk tidak valid: name dan price diperlukan"})
		return
	}

	product := models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		ImagePath:   in.ImagePath,
	}
	if err := config.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal membuat produk", "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Produk dibuat", "data": product})
}

func UpdateProduct(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var in ProductInput
	if err := c.ShouldBindJSON(&in); err != nil || in.Price.LessThan(decimal.Zero) || in.Stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Data produk tidak valid: name dan price diperlukan"})
		return
	}

	res := config.DB.Model(&models.Product{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":        in.Name,
			"description": in.Description,
			"price":       in.Price,
			"stock":       in.Stock,
			"image_path":  in.ImagePath,
		})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal memperbarui produk", "error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Produk tidak ditemukan"})
		return
	}

	var updated models.Product
	config.DB.First(&updated, id)
	utils.Success(c, "Produk diperbarui", updated)
}

func DeleteProduct(c *gin.Context) {
	id := c.Param("id")

	var used int64
	if err := config.DB.Model(&models.SaleItem{}).Where("product_id = ?", id).Count(&used).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal memeriksa pemakaian produk", "error": err.Error()})
		return
	}
	if used > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Produk sudah dipakai di transaksi dan tidak bisa dihapus"})
		return
	}

	res := config.DB.Delete(&models.Product{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal menghapus produk", "error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Produk tidak ditemukan"})
		return
	}
	c.Status(http.StatusNoContent)
}

// ===== Pesanan

type SaleItemInput struct {
	ProductID uint `json:"productId" binding:"required"`
	Qty       int  `json:"qty" binding:"required"`
}

type SaleInput struct {
	Items []SaleItemInput `json:"items" binding:"required"`
}

// buildSaleItems mengunci produk yang dipesan, memvalidasi stok, lalu
// menyusun baris penjualan dengan snapshot nama & harga. Stok TIDAK
// dikurangi di sini; pengurangan terjadi saat penjualan dieksekusi.
func buildSaleItems(tx *gorm.DB, inputs []SaleItemInput) ([]models.SaleItem, decimal.Decimal, error) {
	total := decimal.Zero
	items := make([]models.SaleItem, 0, len(inputs))

	for _, it := range inputs {
		if it.Qty <= 0 {
			return nil, decimal.Zero, fmt.Errorf("%w: qty harus lebih dari 0", errInvalidStatus)
		}

		var product models.Product
		if err := tx.Clauses(clauseUpdateLock()).First(&product, it.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, decimal.Zero, fmt.Errorf("%w: produk id %d", errNotFound, it.ProductID)
			}
			return nil, decimal.Zero, err
		}
		if product.Stock < it.Qty {
			return nil, decimal.Zero, fmt.Errorf("%w: %s (sisa %d)", errInsufficientStock, product.Name, product.Stock)
		}

		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(it.Qty)))
		total = total.Add(lineTotal)
		items = append(items, models.SaleItem{
			ProductID: product.ID,
			Name:      product.Name,
			Qty:       it.Qty,
			Price:     product.Price,
			LineTotal: lineTotal,
		})
	}
	return items, total, nil
}

func decrementStock(tx *gorm.DB, items []models.SaleItem) error {
	for _, it := range items {
		res := tx.Model(&models.Product{}).
			Where("id = ? AND stock >= ?", it.ProductID, it.Qty).
			Update("stock", gorm.Expr("stock - ?", it.Qty))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: produk id %d", errInsufficientStock, it.ProductID)
		}
	}
	return nil
}

func nextOrderNumber(tx *gorm.DB, now time.Time) (string, error) {
	var seq int64
	if err := tx.Model(&models.Sale{}).
		Where("created_at::date = ?", now.Format("2006-01-02")).
		Count(&seq).Error; err != nil {
		return "", err
	}
	return utils.GenOrderNumber(seq+1, now), nil
}

// POST /api/member/orders - anggota membuat pesanan; status Pending sampai
// ditangani kasir. Stok divalidasi tapi belum dikurangi.
func CreateOrder(c *gin.Context) {
	uid, err := currentMemberID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}

	var in SaleInput
	if err := c.ShouldBindJSON(&in); err != nil || len(in.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Pesanan harus berisi minimal satu item"})
		return
	}

	var sale models.Sale
	txErr := config.DB.Transaction(func(tx *gorm.DB) error {
		items, total, err := buildSaleItems(tx, in.Items)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		orderNumber, err := nextOrderNumber(tx, now)
		if err != nil {
			return err
		}

		sale = models.Sale{
			OrderNumber: orderNumber,
			MemberID:    &uid,
			Total:       total,
			Status:      models.SalePending,
			Items:       items,
		}
		return tx.Create(&sale).Error
	})

	switch {
	case txErr == nil:
		c.JSON(http.StatusCreated, gin.H{"message": "Pesanan dibuat", "data": sale})
	case errors.Is(txErr, errNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": txErr.Error()})
	case errors.Is(txErr, errInsufficientStock), errors.Is(txErr, errInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"message": txErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal membuat pesanan", "error": txErr.Error()})
	}
}

func GetMyOrders(c *gin.Context) {
	uid, err := currentMemberID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}

	var rows []models.Sale
	if err := config.DB.Preload("Items").
		Where("member_id = ?", uid).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal mengambil data pesanan", "error": err.Error()})
		return
	}
	utils.Success(c, "Berhasil mengambil pesanan", rows)
}

// GET /api/admin/toko/sales?status=&page=&limit=
func GetSales(c *gin.Context) {
	q := config.DB.Model(&models.Sale{}).
		Preload("Member").Preload("Items").
		Order("created_at DESC")

	if v := c.Query("status"); v != "" {
		q = q.Where("status = ?", v)
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
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal mengambil data penjualan", "error": err.Error()})
		return
	}

	var rows []models.Sale
	if err := q.Offset((page - 1) * limit).Limit(limit).Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal mengambil data penjualan", "error": err.Error()})
		return
	}
	utils.Paginated(c, rows, total, page, limit)
}

// POST /api/admin/toko/sales - penjualan tunai kasir: stok langsung berkurang,
// jurnal kas atas pendapatan penjualan langsung diposting, status Completed.
func CreateCashSale(c *gin.Context) {
	var in SaleInput
	if err := c.ShouldBindJSON(&in); err != nil || len(in.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Penjualan harus berisi minimal satu item"})
		return
	}

	var sale models.Sale
	txErr := config.DB.Transaction(func(tx *gorm.DB) error {
		items, total, err := buildSaleItems(tx, in.Items)
		if err != nil {
			return err
		}
		if err := decrementStock(tx, items); err != nil {
			return err
		}

		now := time.Now().UTC()
		orderNumber, err := nextOrderNumber(tx, now)
		if err != nil {
			return err
		}

		cash, err := resolveCashAccount(tx)
		if err != nil {
			return err
		}
		income, err := resolveAccountByNumber(tx, config.SalesIncomeAccountNumber, errMissingSalesAccount)
		if err != nil {
			return err
		}

		journalID, err := postJournalPair(tx, now,
			fmt.Sprintf("Penjualan toko %s", orderNumber),
			cash.ID, income.ID, total)
		if err != nil {
			return err
		}

		sale = models.Sale{
			OrderNumber: orderNumber,
			Total:       total,
			Status:      models.SaleCompleted,
			JournalID:   &journalID,
			Items:       items,
		}
		return tx.Create(&sale).Error
	})

	switch {
	case txErr == nil:
		c.JSON(http.StatusCreated, gin.H{"message": "Penjualan tercatat", "data": sale})
	case errors.Is(txErr, errNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": txErr.Error()})
	case errors.Is(txErr, errInsufficientStock), errors.Is(txErr, errInvalidStatus),
		errors.Is(txErr, errMissingCashAccount), errors.Is(txErr, errMissingSalesAccount):
		c.JSON(http.StatusBadRequest, gin.H{"message": txErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal mencatat penjualan", "error": txErr.Error()})
	}
}

type SaleStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// PUT /api/admin/toko/sales/:id/status - selesaikan atau batalkan pesanan anggota.
// Completed mengurangi stok dan memposting jurnal; Cancelled hanya menutup
// pesanan. Keduanya hanya boleh dari Pending.
func UpdateSaleStatus(c *gin.Context) {
	id := c.Param("id")

	var in SaleStatusInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Payload tidak valid"})
		return
	}
	if in.Status != models.SaleCompleted && in.Status != models.SaleCancelled {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Status tidak valid"})
		return
	}

	txErr := config.DB.Transaction(func(tx *gorm.DB) error {
		var sale models.Sale
		if err := tx.Clauses(clauseUpdateLock()).Preload("Items").First(&sale, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound
			}
			return err
		}
		if sale.Status != models.SalePending {
			return fmt.Errorf("%w: pesanan sudah %s", errAlreadyProcessed, sale.Status)
		}

		if in.Status == models.SaleCancelled {
			return tx.Model(&models.Sale{}).
				Where("id = ?", sale.ID).
				Update("status", models.SaleCancelled).Error
		}

		if err := decrementStock(tx, sale.Items); err != nil {
			return err
		}

		cash, err := resolveCashAccount(tx)
		if err != nil {
			return err
		}
		income, err := resolveAccountByNumber(tx, config.SalesIncomeAccountNumber, errMissingSalesAccount)
		if err != nil {
			return err
		}

		journalID, err := postJournalPair(tx, time.Now().UTC(),
			fmt.Sprintf("Penjualan toko %s", sale.OrderNumber),
			cash.ID, income.ID, sale.Total)
		if err != nil {
			return err
		}

		return tx.Model(&models.Sale{}).
			Where("id = ?", sale.ID).
			Updates(map[string]any{
				"status":     models.SaleCompleted,
				"journal_id": journalID,
			}).Error
	})

	switch {
	case txErr == nil:
		var updated models.Sale
		config.DB.Preload("Member").Preload("Items").First(&updated, id)
		utils.Success(c, "Status pesanan diperbarui", updated)
	case errors.Is(txErr, errNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Pesanan tidak ditemukan"})
	case errors.Is(txErr, errAlreadyProcessed), errors.Is(txErr, errInsufficientStock),
		errors.Is(txErr, errMissingCashAccount), errors.Is(txErr, errMissingSalesAccount):
		c.JSON(http.StatusBadRequest, gin.H{"message": txErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal memperbarui status pesanan", "error": txErr.Error()})
	}
}
