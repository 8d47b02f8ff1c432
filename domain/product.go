package domain

import (
	"time"

	"gorm.io/datatypes"
)

// CREATE TABLE public.products (
//     id               TEXT PRIMARY KEY,
//     name             TEXT,
//     price            NUMERIC,
//     category         TEXT,
//     subcategory      TEXT,
//     tags             JSONB,
//     vendor_id        TEXT,
//     vendor_name      TEXT,
//     vendor_verified  BOOLEAN,
//     rating_average   NUMERIC,
//     rating_count     BIGINT,
//     views            BIGINT,
//     likes            BIGINT,
//     sales            BIGINT,
//     on_sale          BOOLEAN,
//     discount         NUMERIC,
//     created_at       TIMESTAMPTZ DEFAULT NOW()
// );

type Vendor struct {
	ID       string `gorm:"column:id;type:text" json:"id"`
	Name     string `gorm:"column:name;type:text" json:"name"`
	Verified bool   `gorm:"column:verified;default:false" json:"verified"`
}

type Rating struct {
	Average float64 `gorm:"column:average;type:numeric" json:"average"`
	Count   int64   `gorm:"column:count;default:0" json:"count"`
}

// Product is one catalog candidate. The views/likes/sales counters are owned
// by the catalog service and only ever move up; the recommendation engine
// reads products but never writes them.
type Product struct {
	ID          string                      `gorm:"primaryKey;column:id;type:text" json:"id"`
	Name        string                      `gorm:"column:name;type:text" json:"name"`
	Price       float64                     `gorm:"column:price;type:numeric" json:"price"`
	Category    string                      `gorm:"column:category;type:text" json:"category"`
	Subcategory string                      `gorm:"column:subcategory;type:text" json:"subcategory,omitempty"`
	Tags        datatypes.JSONSlice[string] `gorm:"column:tags;type:jsonb" json:"tags"`
	Vendor      Vendor                      `gorm:"embedded;embeddedPrefix:vendor_" json:"vendor"`
	Rating      Rating                      `gorm:"embedded;embeddedPrefix:rating_" json:"rating"`
	Views       int64                       `gorm:"column:views;default:0" json:"views"`
	Likes       int64                       `gorm:"column:likes;default:0" json:"likes"`
	Sales       int64                       `gorm:"column:sales;default:0" json:"sales"`
	OnSale      bool                        `gorm:"column:on_sale;default:false" json:"on_sale"`
	Discount    float64                     `gorm:"column:discount;type:numeric" json:"discount,omitempty"`
	CreatedAt   time.Time                   `gorm:"column:created_at" json:"created_at"`
}

func (Product) TableName() string {
	return "products"
}
