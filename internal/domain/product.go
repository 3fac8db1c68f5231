package domain

import "time"

const (
	CategoryMen      = "men"
	CategoryWomen    = "women"
	CategoryChildren = "children"

	TypeClothes = "clothes"
	TypeShoes   = "shoes"
)

type Product struct {
	ID                 string    `gorm:"primaryKey;size:36" json:"id"`
	Name               string    `gorm:"uniqueIndex;size:191;not null" json:"name"`
	Description        string    `gorm:"size:255;not null" json:"description"`
	Image              string    `gorm:"size:255" json:"image"`
	Price              float64   `gorm:"not null" json:"price"`
	Category           string    `gorm:"size:16" json:"category"`    // men/women/children
	ProductType        string    `gorm:"size:16" json:"productType"` // clothes/shoes
	Size               []string  `gorm:"serializer:json;type:text" json:"size"`
	DiscountPercentage float64   `gorm:"default:0" json:"discountPercentage"`
	Amount             *int      `json:"amount"`
	IsNewProduct       bool      `gorm:"default:true" json:"isNewProduct"`
	CreatedAt          time.Time `json:"createdAt"`
}

func (Product) TableName() string { return "products" }

type ProductRepository interface {
	Create(p *Product) error
	FindByID(id string) (*Product, error)
	FindByName(name string) (*Product, error)
	List() ([]Product, error)
	Update(p *Product) error
	Delete(id string) error
}
