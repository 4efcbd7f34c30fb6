package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/cafe-ordering/middlewares"
	"github.com/yeremiapane/cafe-ordering/models"
	"github.com/yeremiapane/cafe-ordering/utils"
	"gorm.io/gorm"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

type itemRequest struct {
	Category    *string          `json:"category" binding:"omitempty,max=100"`
	SubCategory *string          `json:"subCategory" binding:"omitempty,max=100"`
	Name        *string          `json:"name" binding:"omitempty,min=3,max=100"`
	Description *string          `json:"description" binding:"omitempty,max=1000"`
	Price       *decimal.Decimal `json:"price"`
	Variant     *string          `json:"variant" binding:"omitempty,max=100"`
	FoodChoice  *string          `json:"foodChoice" binding:"omitempty,max=100"`
	Recommended *bool            `json:"recommended"`
	InStock     *bool            `json:"inStock"`
	Image       *string          `json:"image"`
}

func (r itemRequest) updates() map[string]interface{} {
	updates := map[string]interface{}{}
	set := func(col string, v *string) {
		if v != nil {
			updates[col] = *v
		}
	}
	set("category", r.Category)
	set("sub_category", r.SubCategory)
	set("name", r.Name)
	set("description", r.Description)
	set("variant", r.Variant)
	set("food_choice", r.FoodChoice)
	set("image", r.Image)
	if r.Price != nil {
		updates["price"] = *r.Price
	}
	if r.Recommended != nil {
		updates["recommended"] = *r.Recommended
	}
	if r.InStock != nil {
		updates["in_stock"] = *r.InStock
	}
	return updates
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// AddItem -> menu baru untuk cafe admin; inStock default true
func (mc *MenuController) AddItem(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}
	if req.Category == nil || *req.Category == "" {
		utils.RespondAppError(c, utils.Validation("category", "Category is required"))
		return
	}
	if req.Name == nil || len(*req.Name) < 3 {
		utils.RespondAppError(c, utils.Validation("name", "Name is required"))
		return
	}
	if req.Price == nil || req.Price.IsNegative() {
		utils.RespondAppError(c, utils.Validation("price", "Price is required"))
		return
	}

	item := models.Item{
		CafeID:      c.GetString(middlewares.KeyCafeID),
		Category:    *req.Category,
		SubCategory: deref(req.SubCategory),
		Name:        *req.Name,
		Description: deref(req.Description),
		Price:       req.Price.Round(2),
		Variant:     deref(req.Variant),
		FoodChoice:  deref(req.FoodChoice),
		Image:       deref(req.Image),
		InStock:     true,
	}
	if req.Recommended != nil {
		item.Recommended = *req.Recommended
	}
	if req.InStock != nil {
		item.InStock = *req.InStock
	}

	if err := mc.DB.Create(&item).Error; err != nil {
		utils.RespondAppError(c, utils.Internal(err))
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Item Created!", item)
}

func (mc *MenuController) findItem(c *gin.Context) (*models.Item, bool) {
	var item models.Item
	err := mc.DB.First(&item, "id = ? AND cafe_id = ?", c.Param("id"), c.GetString(middlewares.KeyCafeID)).Error
	if err != nil {
		utils.RespondAppError(c, utils.NotFound("item"))
		return nil, false
	}
	return &item, true
}

func (mc *MenuController) FetchItem(c *gin.Context) {
	item, ok := mc.findItem(c)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item Found!", item)
}

// UpdateItem -> perubahan harga tidak menyentuh order yang sudah ditempatkan
func (mc *MenuController) UpdateItem(c *gin.Context) {
	item, ok := mc.findItem(c)
	if !ok {
		return
	}

	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}
	if req.Price != nil && req.Price.IsNegative() {
		utils.RespondAppError(c, utils.Validation("price", "Price must not be negative"))
		return
	}
	updates := req.updates()
	if len(updates) == 0 {
		utils.RespondAppError(c, utils.Validation("body", "Nothing to update"))
		return
	}

	if err := mc.DB.Model(item).Updates(updates).Error; err != nil {
		utils.RespondAppError(c, utils.Internal(err))
		return
	}
	if err := mc.DB.First(item, "id = ?", item.ID).Error; err != nil {
		utils.RespondAppError(c, utils.Internal(err))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item Updated!", item)
}

func (mc *MenuController) ToggleInStock(c *gin.Context) {
	item, ok := mc.findItem(c)
	if !ok {
		return
	}
	if err := mc.DB.Model(item).Update("in_stock", !item.InStock).Error; err != nil {
		utils.RespondAppError(c, utils.Internal(err))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item Updated!", item)
}

// ItemsByCategory -> "All", "Recommended" lalu per kategori; menu yang tersedia di depan
func (mc *MenuController) ItemsByCategory(c *gin.Context) {
	var items []models.Item
	if err := mc.DB.Where("cafe_id = ?", c.GetString(middlewares.KeyCafeID)).
		Order("in_stock DESC").Order("name ASC").
		Find(&items).Error; err != nil {
		utils.RespondAppError(c, utils.Internal(err))
		return
	}

	grouped := map[string][]models.Item{
		"All":         {},
		"Recommended": {},
	}
	for _, item := range items {
		grouped["All"] = append(grouped["All"], item)
		if item.Recommended {
			grouped["Recommended"] = append(grouped["Recommended"], item)
		}
		grouped[item.Category] = append(grouped[item.Category], item)
	}
	utils.RespondJSON(c, http.StatusOK, "Items Found!", grouped)
}
